// Package pipeline runs the batch passes over the lesson tables.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/japaniel/vocabprep/pkg/category"
	"github.com/japaniel/vocabprep/pkg/classify"
	"github.com/japaniel/vocabprep/pkg/lesson"
	"github.com/japaniel/vocabprep/pkg/report"
	"github.com/japaniel/vocabprep/pkg/vocab"
)

// Phase names.
const (
	PhaseExtract    = "extract"
	PhaseClean      = "clean"
	PhaseClassify   = "classify"
	PhaseCategorize = "categorize"
	PhaseExport     = "export"
	PhaseReport     = "report"
	PhaseAudit      = "audit"
)

// allPhases defines the canonical execution order.
var allPhases = []string{PhaseExtract, PhaseClean, PhaseClassify, PhaseCategorize, PhaseExport, PhaseReport, PhaseAudit}

// Phases returns the phase names in execution order.
func Phases() []string {
	return append([]string(nil), allPhases...)
}

// ParsePhases splits a comma-separated phase list and rejects unknown names.
// An empty string selects every phase.
func ParsePhases(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	known := make(map[string]bool, len(allPhases))
	for _, ph := range allPhases {
		known[ph] = true
	}
	var out []string
	for _, ph := range strings.Split(s, ",") {
		ph = strings.TrimSpace(ph)
		if ph == "" {
			continue
		}
		if !known[ph] {
			return nil, fmt.Errorf("unknown phase %q (known: %s)", ph, strings.Join(allPhases, ","))
		}
		out = append(out, ph)
	}
	return out, nil
}

// PhaseResult holds the outcome of a single pipeline phase.
type PhaseResult struct {
	Processed int
	Changed   int
	Skipped   int
	Errors    int
	Duration  time.Duration
	Err       error
}

// Options configures a Pipeline.
type Options struct {
	Store       lesson.Store
	FirstLesson int
	LastLesson  int

	SourcePath string
	Marker     string

	ReportsDir string

	DBPath    string
	BatchSize int

	DictionaryPath string
	AutoDownload   bool
	// Workers sizes the audit worker pool.
	Workers int

	Classifier *classify.Classifier
	Categories *category.Table

	// DryRun computes every change but writes no lesson file, database row
	// or report.
	DryRun bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// Pipeline orchestrates the passes over lessons FirstLesson..LastLesson.
type Pipeline struct {
	log     *slog.Logger
	opts    Options
	results map[string]PhaseResult
	stats   *report.Stats
	tables  map[int]*lesson.Table
}

// New creates a Pipeline. Zero options take their defaults.
func New(log *slog.Logger, opts Options) *Pipeline {
	if opts.FirstLesson == 0 {
		opts.FirstLesson = vocab.FirstLesson
	}
	if opts.LastLesson == 0 {
		opts.LastLesson = vocab.LastLesson
	}
	if opts.Classifier == nil {
		opts.Classifier = classify.New()
	}
	if opts.Categories == nil {
		opts.Categories = category.Default
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 200
	}
	if opts.Workers <= 0 {
		opts.Workers = 4
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{
		log:     log,
		opts:    opts,
		results: make(map[string]PhaseResult),
		stats:   report.NewStats(),
		tables:  make(map[int]*lesson.Table),
	}
}

// Results returns phase results after Run completes.
func (p *Pipeline) Results() map[string]PhaseResult {
	return p.results
}

// HasErrors returns true if any phase recorded errors.
func (p *Pipeline) HasErrors() bool {
	for _, r := range p.results {
		if r.Err != nil || r.Errors > 0 {
			return true
		}
	}
	return false
}

// Run executes the pipeline and returns the run state. If phases is
// non-empty, only the listed phases run, still in canonical order. A failing
// phase is logged and the next one runs; only cancellation stops the run
// early.
func (p *Pipeline) Run(ctx context.Context, phases []string) (*report.Stats, error) {
	toRun := allPhases
	if len(phases) > 0 {
		filter := make(map[string]bool, len(phases))
		for _, ph := range phases {
			filter[ph] = true
		}
		var filtered []string
		for _, ph := range allPhases {
			if filter[ph] {
				filtered = append(filtered, ph)
			}
		}
		toRun = filtered
	}

	for _, phase := range toRun {
		if err := ctx.Err(); err != nil {
			return p.stats, err
		}
		start := time.Now()
		p.log.Info("starting phase", slog.String("phase", phase))

		var result PhaseResult
		switch phase {
		case PhaseExtract:
			result = p.runExtract(ctx)
		case PhaseClean:
			result = p.runClean(ctx)
		case PhaseClassify:
			result = p.runClassify(ctx)
		case PhaseCategorize:
			result = p.runCategorize(ctx)
		case PhaseExport:
			result = p.runExport(ctx)
		case PhaseReport:
			result = p.runReport(ctx)
		case PhaseAudit:
			result = p.runAudit(ctx)
		}
		result.Duration = time.Since(start)
		p.results[phase] = result

		if result.Err != nil {
			p.log.Warn("phase failed",
				slog.String("phase", phase),
				slog.String("error", result.Err.Error()),
				slog.Duration("duration", result.Duration),
			)
			if errors.Is(result.Err, context.Canceled) || errors.Is(result.Err, context.DeadlineExceeded) {
				return p.stats, result.Err
			}
		} else {
			p.log.Info("phase completed",
				slog.String("phase", phase),
				slog.Int("processed", result.Processed),
				slog.Int("changed", result.Changed),
				slog.Int("skipped", result.Skipped),
				slog.Int("errors", result.Errors),
				slog.Duration("duration", result.Duration),
			)
		}
	}
	return p.stats, nil
}

// load returns lesson n, reading it from disk on first use. Later phases see
// the edits of earlier ones even in a dry run.
func (p *Pipeline) load(n int) (*lesson.Table, error) {
	if t, ok := p.tables[n]; ok {
		return t, nil
	}
	t, err := p.opts.Store.Load(n)
	if err != nil {
		return nil, err
	}
	p.tables[n] = t
	return t, nil
}

func (p *Pipeline) save(n int, t *lesson.Table) error {
	p.tables[n] = t
	if p.opts.DryRun {
		return nil
	}
	return p.opts.Store.Save(n, t)
}

// lessonFunc edits one lesson table and returns the number of changed rows.
type lessonFunc func(n int, t *lesson.Table) (int, error)

// eachLesson runs fn over every lesson of the range. Missing tables are
// skipped, unreadable or failing ones counted as errors; neither stops the
// batch. Tables with changes are saved.
func (p *Pipeline) eachLesson(ctx context.Context, phase string, fn lessonFunc) PhaseResult {
	var res PhaseResult
	for n := p.opts.FirstLesson; n <= p.opts.LastLesson; n++ {
		if err := ctx.Err(); err != nil {
			res.Err = err
			return res
		}
		t, err := p.load(n)
		if errors.Is(err, lesson.ErrLessonNotFound) {
			p.log.Info("lesson table missing, skipped", slog.String("phase", phase), slog.Int("lesson", n))
			res.Skipped++
			continue
		}
		if err != nil {
			p.log.Warn("lesson table unreadable", slog.String("phase", phase), slog.Int("lesson", n), slog.String("error", err.Error()))
			res.Errors++
			continue
		}

		changed, err := fn(n, t)
		if err != nil {
			p.log.Warn("lesson failed", slog.String("phase", phase), slog.Int("lesson", n), slog.String("error", err.Error()))
			res.Errors++
			continue
		}
		if changed > 0 {
			if err := p.save(n, t); err != nil {
				p.log.Warn("lesson not saved", slog.String("phase", phase), slog.Int("lesson", n), slog.String("error", err.Error()))
				res.Errors++
				continue
			}
		}
		p.stats.SetLesson(n, t.Entries)
		res.Processed++
		res.Changed += changed
		p.log.Debug("lesson done", slog.String("phase", phase), slog.Int("lesson", n),
			slog.Int("entries", len(t.Entries)), slog.Int("changed", changed))
	}
	return res
}
