package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/japaniel/vocabprep/pkg/analyzer"
	"github.com/japaniel/vocabprep/pkg/cleanup"
	"github.com/japaniel/vocabprep/pkg/db"
	"github.com/japaniel/vocabprep/pkg/dictionary"
	"github.com/japaniel/vocabprep/pkg/lesson"
	"github.com/japaniel/vocabprep/pkg/report"
	"github.com/japaniel/vocabprep/pkg/source"
	"github.com/japaniel/vocabprep/pkg/vocab"
)

// primaryReading returns the first accepted reading of a cleaned kana field.
func primaryReading(kana string) string {
	first, _, _ := strings.Cut(kana, cleanup.Separator)
	return first
}

func (p *Pipeline) writeReport(name, content string) error {
	if p.opts.DryRun {
		p.log.Info("dry run, report not written", slog.String("report", name))
		return nil
	}
	path, err := report.WriteFile(p.opts.ReportsDir, name, content)
	if err != nil {
		return err
	}
	p.log.Info("report written", slog.String("path", path))
	return nil
}

func (p *Pipeline) runExtract(ctx context.Context) PhaseResult {
	var res PhaseResult
	if p.opts.SourcePath == "" {
		res.Err = errors.New("extract: no source workbook configured")
		return res
	}
	sheet, err := source.Open(p.opts.SourcePath)
	if err != nil {
		res.Err = fmt.Errorf("extract: %w", err)
		return res
	}
	p.log.Info("source opened",
		slog.String("path", p.opts.SourcePath),
		slog.String("sheet", sheet.Name),
		slog.Int("rows", len(sheet.Rows)),
	)

	lessons := source.Split(sheet, source.Options{
		Marker:     p.opts.Marker,
		Classifier: p.opts.Classifier,
	})
	for _, l := range lessons {
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res
		}
		if l.Number < p.opts.FirstLesson || l.Number > p.opts.LastLesson {
			continue
		}

		t, err := p.load(l.Number)
		created := false
		if errors.Is(err, lesson.ErrLessonNotFound) {
			if len(l.Entries) == 0 {
				continue
			}
			t = &lesson.Table{Layout: lesson.Standard}
			created = true
		} else if err != nil {
			p.log.Warn("lesson table unreadable", slog.String("phase", PhaseExtract), slog.Int("lesson", l.Number), slog.String("error", err.Error()))
			res.Errors++
			continue
		}

		merged, added := vocab.Merge(t.Entries, l.Entries, l.Number)
		changed := added
		for i := range t.Entries {
			if merged[i] != t.Entries[i] {
				changed++
			}
		}
		t.Entries = merged

		if changed > 0 || created {
			if err := p.save(l.Number, t); err != nil {
				p.log.Warn("lesson not saved", slog.String("phase", PhaseExtract), slog.Int("lesson", l.Number), slog.String("error", err.Error()))
				res.Errors++
				continue
			}
		}
		p.stats.SetLesson(l.Number, t.Entries)
		p.stats.Added[l.Number] += added
		res.Processed++
		res.Changed += changed
		res.Skipped += l.Skipped
		p.log.Debug("lesson extracted",
			slog.Int("lesson", l.Number),
			slog.Int("rows", len(l.Entries)),
			slog.Int("added", added),
			slog.Int("filtered", l.Skipped),
		)
	}
	return res
}

func (p *Pipeline) runClean(ctx context.Context) PhaseResult {
	startedAt := p.opts.Now()
	res := p.eachLesson(ctx, PhaseClean, func(n int, t *lesson.Table) (int, error) {
		path := p.opts.Store.Path(n)
		backedUp := false
		if !p.opts.DryRun && p.opts.Store.Exists(n) {
			if _, err := lesson.Backup(path); err != nil {
				return 0, fmt.Errorf("backup: %w", err)
			}
			backedUp = true
		}

		changes := cleanup.Lesson(t.Entries)
		file := filepath.Base(path)
		if len(changes) > 0 {
			p.stats.Changes = append(p.stats.Changes, report.FileChanges{File: file, Changes: changes})
		} else if backedUp {
			if err := lesson.DiscardBackup(path); err != nil {
				p.log.Warn("backup not removed", slog.String("path", path), slog.String("error", err.Error()))
			}
		}
		p.stats.Checks = append(p.stats.Checks, report.FileCheck{File: file, Result: cleanup.Verify(t.Entries)})
		return len(changes), nil
	})
	if res.Err != nil {
		return res
	}

	if err := p.writeReport(report.CleanupFile(startedAt), report.Cleanup(p.stats, startedAt)); err != nil {
		res.Err = err
		return res
	}
	if err := p.writeReport(report.VerificationFile, report.Verification(p.stats)); err != nil {
		res.Err = err
	}
	return res
}

func (p *Pipeline) runClassify(ctx context.Context) PhaseResult {
	return p.eachLesson(ctx, PhaseClassify, func(_ int, t *lesson.Table) (int, error) {
		changed := 0
		for i := range t.Entries {
			e := &t.Entries[i]
			wt := p.opts.Classifier.Classify(e.Kanji, primaryReading(e.Kana), e.Meaning)
			if wt != e.WordType {
				e.WordType = wt
				changed++
			}
		}
		return changed, nil
	})
}

func (p *Pipeline) runCategorize(ctx context.Context) PhaseResult {
	return p.eachLesson(ctx, PhaseCategorize, func(n int, t *lesson.Table) (int, error) {
		// Extended tables have no category column to write to.
		if t.Layout == lesson.Extended {
			p.log.Debug("no category column, lesson left as is", slog.Int("lesson", n))
			return 0, nil
		}
		changed := 0
		for i := range t.Entries {
			e := &t.Entries[i]
			c := p.opts.Categories.Assign(n, *e)
			if c != e.Category {
				e.Category = c
				changed++
			}
		}
		return changed, nil
	})
}

func (p *Pipeline) runExport(ctx context.Context) PhaseResult {
	var res PhaseResult
	if p.opts.DBPath == "" {
		p.log.Info("no database configured, export skipped")
		return res
	}
	if p.opts.DryRun {
		return p.eachLesson(ctx, PhaseExport, func(int, *lesson.Table) (int, error) { return 0, nil })
	}

	conn, err := db.Open(p.opts.DBPath)
	if err != nil {
		res.Err = fmt.Errorf("export: %w", err)
		return res
	}
	defer conn.Close()

	bw := db.NewBatchWriter(conn, p.opts.BatchSize)
	bw.OnError = func(err error) {
		p.log.Warn("export batch rolled back", slog.String("error", err.Error()))
	}

	// Rows the store would reject never join a batch.
	invalid := 0
	res = p.eachLesson(ctx, PhaseExport, func(n int, t *lesson.Table) (int, error) {
		for i, e := range t.Entries {
			if e.Lesson == 0 {
				e.Lesson = n
			}
			if strings.TrimSpace(e.Kana) == "" || !vocab.ValidLesson(e.Lesson) {
				p.log.Warn("row not exported",
					slog.Int("lesson", n),
					slog.Int("row", i+1),
					slog.String("kana", e.Kana),
					slog.Int("row_lesson", e.Lesson),
				)
				invalid++
				continue
			}
			err := bw.Submit(ctx, func(_ context.Context, tx *sql.Tx) error {
				_, err := db.UpsertWord(tx, e)
				return err
			})
			if err != nil {
				return 0, err
			}
		}
		return 0, nil
	})
	if err := bw.Close(ctx); err != nil {
		res.Errors++
		if res.Err == nil {
			res.Err = fmt.Errorf("export: %w", err)
		}
	}
	res.Changed = bw.Committed()
	res.Skipped += invalid

	counts, err := db.CountByCategory(conn)
	if err != nil {
		p.log.Warn("category counts unavailable", slog.String("error", err.Error()))
		return res
	}
	p.stats.Stored = counts
	p.log.Info("database updated", slog.Int("categories", len(counts)), slog.Int("committed", res.Changed))
	return res
}

func (p *Pipeline) runReport(ctx context.Context) PhaseResult {
	res := p.eachLesson(ctx, PhaseReport, func(int, *lesson.Table) (int, error) { return 0, nil })
	if res.Err != nil {
		return res
	}
	reports := []struct {
		name  string
		build func(*report.Stats) string
	}{
		{report.CategoryFile, report.Category},
		{report.AnalysisFile, report.Analysis},
		{report.SummaryFile, report.Summary},
		{report.FinalFile, report.Final},
	}
	for _, r := range reports {
		if err := p.writeReport(r.name, r.build(p.stats)); err != nil {
			res.Err = err
			return res
		}
	}
	return res
}

// openDictionary returns the JMdict index, or nil when no dictionary is
// configured or it cannot be loaded.
func (p *Pipeline) openDictionary(ctx context.Context) *dictionary.Index {
	path := p.opts.DictionaryPath
	if path == "" {
		return nil
	}
	if p.opts.AutoDownload {
		if err := dictionary.EnsureDictionary(ctx, path); err != nil {
			p.log.Warn("dictionary download failed", slog.String("path", path), slog.String("error", err.Error()))
			return nil
		}
	} else if _, err := os.Stat(path); err != nil {
		p.log.Warn("dictionary not available", slog.String("path", path))
		return nil
	}
	entries, err := dictionary.LoadJMdictSimplified(path)
	if err != nil {
		p.log.Warn("dictionary not loaded", slog.String("path", path), slog.String("error", err.Error()))
		return nil
	}
	ix := dictionary.NewIndex(entries)
	p.log.Info("dictionary loaded", slog.String("path", path), slog.Int("entries", ix.Len()))
	return ix
}

// nounLike are the word types JMdict tags as plain nouns.
var nounLike = []vocab.WordType{
	vocab.Noun, vocab.Loanword, vocab.TimeWord, vocab.Direction,
	vocab.ProperNoun, vocab.Numeral, vocab.Pronoun,
}

// dictionaryAgrees reports whether the stored type is among the dictionary
// types. Noun subtypes match a plain noun tag, and suru verbs match the noun
// they are built on.
func dictionaryAgrees(stored vocab.WordType, expected []vocab.WordType) bool {
	if len(expected) == 0 || slices.Contains(expected, stored) {
		return true
	}
	if slices.Contains(expected, vocab.Noun) {
		return slices.Contains(nounLike, stored) || stored == vocab.Irregular
	}
	return false
}

// morphAgrees checks the head token of the written form: a verb or
// i-adjective head must be stored as such. Greetings are set phrases and
// always agree.
func morphAgrees(stored vocab.WordType, pos string) bool {
	if stored == vocab.Greeting {
		return true
	}
	switch pos {
	case "動詞":
		return stored.IsVerb()
	case "形容詞":
		return stored == vocab.IAdjective
	}
	return true
}

// auditEntry checks one entry and returns its mismatch, or nil.
func (p *Pipeline) auditEntry(ix *dictionary.Index, az *analyzer.Analyzer, n, row int, e vocab.Entry) *report.Mismatch {
	kana := primaryReading(e.Kana)

	var expected []vocab.WordType
	if ix != nil {
		expected = ix.ExpectedTypes(e.Kanji, kana)
	}
	var pos string
	if az != nil && e.Kanji != "" {
		pos = az.PrimaryPOS(e.Kanji)
	}
	if dictionaryAgrees(e.WordType, expected) && morphAgrees(e.WordType, pos) {
		return nil
	}
	_, rule := p.opts.Classifier.Explain(e.Kanji, kana, e.Meaning)
	m := &report.Mismatch{
		Lesson:     n,
		Row:        row,
		Kana:       e.Kana,
		Kanji:      e.Kanji,
		Meaning:    e.Meaning,
		Stored:     e.WordType,
		Rule:       rule,
		Dictionary: expected,
		Morph:      pos,
	}
	if ix != nil {
		m.Glosses = ix.Glosses(e.Kanji, kana)
	}
	if az != nil && e.Kanji != "" {
		m.Reading = az.Reading(e.Kanji)
	}
	return m
}

func (p *Pipeline) runAudit(ctx context.Context) PhaseResult {
	ix := p.openDictionary(ctx)
	az, err := analyzer.NewAnalyzer()
	if err != nil {
		p.log.Warn("morphological analyzer unavailable", slog.String("error", err.Error()))
	}
	if ix == nil && az == nil {
		return PhaseResult{Err: errors.New("audit: neither dictionary nor analyzer available")}
	}

	pool := NewWorkerPool(p.opts.Workers, 0)
	pool.Start(ctx)

	// Workers fill distinct slots; results are read after Close.
	found := make(map[int][]*report.Mismatch)
	res := p.eachLesson(ctx, PhaseAudit, func(n int, t *lesson.Table) (int, error) {
		slots := make([]*report.Mismatch, len(t.Entries))
		found[n] = slots
		for i, e := range t.Entries {
			p.stats.Audited++
			err := pool.Submit(ctx, func(context.Context) {
				slots[i] = p.auditEntry(ix, az, n, i+1, e)
			})
			if err != nil {
				return 0, err
			}
		}
		return 0, nil
	})
	pool.Close()
	if res.Err != nil {
		return res
	}

	for n := p.opts.FirstLesson; n <= p.opts.LastLesson; n++ {
		for _, m := range found[n] {
			if m != nil {
				p.stats.Mismatches = append(p.stats.Mismatches, *m)
			}
		}
	}
	p.log.Info("audit finished",
		slog.Int("audited", p.stats.Audited),
		slog.Int("mismatches", len(p.stats.Mismatches)),
	)
	if err := p.writeReport(report.AuditFile, report.Audit(p.stats)); err != nil {
		res.Err = err
	}
	return res
}
