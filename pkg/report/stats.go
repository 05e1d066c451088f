// Package report builds the plain-text reports written after each run.
//
// All run state lives in a Stats value that the pipeline fills phase by
// phase; the builders are pure functions of it.
package report

import (
	"sort"

	"github.com/japaniel/vocabprep/pkg/cleanup"
	"github.com/japaniel/vocabprep/pkg/vocab"
)

// Unclassified labels entries with an empty category or word type.
const Unclassified = "未分类"

// FileChanges are the kana rewrites made in one lesson file.
type FileChanges struct {
	File    string
	Changes []cleanup.Change
}

// FileCheck is the post-cleanup verification of one lesson file.
type FileCheck struct {
	File   string
	Result cleanup.Verification
}

// Mismatch is an entry whose stored word type disagrees with a reference.
type Mismatch struct {
	Lesson  int
	Row     int
	Kana    string
	Kanji   string
	Meaning string
	Stored  vocab.WordType
	// Rule is the classifier rule that produced Stored.
	Rule string
	// Dictionary lists the word types implied by the JMdict tags.
	Dictionary []vocab.WordType
	// Morph is the part of speech of the head token of the written form.
	Morph string
	// Reading is the analyzer's hiragana reading of the written form.
	Reading string
	// Glosses are the English glosses of the matching JMdict entry.
	Glosses []string
}

// Stats carries the state of one pipeline run.
type Stats struct {
	lessons map[int][]vocab.Entry

	// Added counts words appended per lesson by extraction.
	Added map[int]int
	// Changes and Checks are filled by the cleanup pass in lesson order.
	Changes []FileChanges
	Checks  []FileCheck
	// Audited counts entries the audit looked at.
	Audited    int
	Mismatches []Mismatch
	// Stored counts database rows per category after export. Nil when the
	// export did not run.
	Stored map[string]int
}

// NewStats returns empty run state.
func NewStats() *Stats {
	return &Stats{
		lessons: make(map[int][]vocab.Entry),
		Added:   make(map[int]int),
	}
}

// SetLesson records the current entries of lesson n. The slice is copied.
func (s *Stats) SetLesson(n int, entries []vocab.Entry) {
	s.lessons[n] = append([]vocab.Entry(nil), entries...)
}

// Lessons returns the recorded lesson numbers in ascending order.
func (s *Stats) Lessons() []int {
	out := make([]int, 0, len(s.lessons))
	for n := range s.lessons {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Entries returns the recorded entries of lesson n.
func (s *Stats) Entries(n int) []vocab.Entry {
	return s.lessons[n]
}

// Total returns the number of recorded entries.
func (s *Stats) Total() int {
	total := 0
	for _, entries := range s.lessons {
		total += len(entries)
	}
	return total
}

// CategoryCounts counts entries per category over all lessons.
func (s *Stats) CategoryCounts() map[string]int {
	out := make(map[string]int)
	for _, entries := range s.lessons {
		for _, e := range entries {
			out[categoryOf(e)]++
		}
	}
	return out
}

// LessonCategoryCounts counts entries per category in lesson n.
func (s *Stats) LessonCategoryCounts(n int) map[string]int {
	out := make(map[string]int)
	for _, e := range s.lessons[n] {
		out[categoryOf(e)]++
	}
	return out
}

// TypeCounts counts entries per word type over all lessons.
func (s *Stats) TypeCounts() map[string]int {
	out := make(map[string]int)
	for _, entries := range s.lessons {
		for _, e := range entries {
			out[typeOf(e)]++
		}
	}
	return out
}

func categoryOf(e vocab.Entry) string {
	if e.Category == "" {
		return Unclassified
	}
	return e.Category
}

func typeOf(e vocab.Entry) string {
	if e.WordType == "" {
		return Unclassified
	}
	return string(e.WordType)
}

// Count is one label with its number of entries.
type Count struct {
	Label string
	N     int
}

// ByCount orders counts by number descending, then label.
func ByCount(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{k, v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].N != out[j].N {
			return out[i].N > out[j].N
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// ByLabel orders counts by label.
func ByLabel(m map[string]int) []Count {
	out := make([]Count, 0, len(m))
	for k, v := range m {
		out = append(out, Count{k, v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}
