package source

import (
	"sort"
	"strconv"
	"strings"

	"github.com/japaniel/vocabprep/pkg/classify"
	"github.com/japaniel/vocabprep/pkg/vocab"
)

// DefaultMarker prefixes the first cell of a lesson marker row.
const DefaultMarker = "大家日语_"

// DefaultStarts maps each lesson to the data-row index of its marker in the
// book export. Rows after a start up to the next start belong to the lesson.
var DefaultStarts = map[int]int{
	1: 2, 2: 36, 3: 82, 4: 119, 5: 171,
	6: 225, 7: 277, 8: 317, 9: 370, 10: 415,
	11: 460, 12: 516, 13: 558, 14: 593, 15: 631,
	16: 655, 17: 695, 18: 731, 19: 753, 20: 777,
	21: 803, 22: 837, 23: 851, 24: 880, 25: 897,
}

// Row is one data row of the workbook.
type Row struct {
	Index   int
	Kanji   string
	Kana    string
	Meaning string
	Romaji  string
	Accent  string
}

// Options controls Split.
type Options struct {
	// Marker prefixes marker rows; DefaultMarker when empty.
	Marker string
	// Starts is used when the sheet has no marker rows; DefaultStarts when nil.
	Starts map[int]int
	// Classifier assigns word types; the default rule order when nil.
	Classifier *classify.Classifier
}

// Lesson is the extracted content of one lesson.
type Lesson struct {
	Number  int
	Entries []vocab.Entry
	// Skipped counts rows rejected by the row filter.
	Skipped int
}

// Split divides the sheet rows into lessons, filters incomplete rows and
// classifies the rest. Lessons come back in ascending order; lessons with no
// kept rows are still returned so callers can report them.
func Split(s *Sheet, opts Options) []Lesson {
	if opts.Marker == "" {
		opts.Marker = DefaultMarker
	}
	if opts.Classifier == nil {
		opts.Classifier = classify.New()
	}

	starts := Markers(s.Rows, opts.Marker)
	if len(starts) == 0 {
		starts = opts.Starts
		if starts == nil {
			starts = DefaultStarts
		}
	}

	type span struct{ lesson, start int }
	spans := make([]span, 0, len(starts))
	for n, idx := range starts {
		spans = append(spans, span{n, idx})
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	lessons := make([]Lesson, 0, len(spans))
	for i, sp := range spans {
		end := len(s.Rows)
		if i+1 < len(spans) {
			end = spans[i+1].start
		}
		l := Lesson{Number: sp.lesson}
		for j := sp.start + 1; j < end && j < len(s.Rows); j++ {
			row, ok := parseRow(j, s.Rows[j], opts.Marker)
			if !ok {
				l.Skipped++
				continue
			}
			l.Entries = append(l.Entries, vocab.Entry{
				Lesson:      sp.lesson,
				LessonLabel: vocab.LessonLabel(sp.lesson),
				Kanji:       row.Kanji,
				Kana:        row.Kana,
				Meaning:     row.Meaning,
				Romaji:      row.Romaji,
				Accent:      row.Accent,
				WordType:    opts.Classifier.Classify(row.Kanji, row.Kana, row.Meaning),
			})
		}
		lessons = append(lessons, l)
	}
	sort.SliceStable(lessons, func(i, j int) bool { return lessons[i].Number < lessons[j].Number })
	return lessons
}

// Markers returns lesson number → row index for every marker row. Markers
// whose suffix is not a valid lesson number are ignored.
func Markers(rows [][]string, marker string) map[int]int {
	out := make(map[int]int)
	for i, rec := range rows {
		if len(rec) == 0 {
			continue
		}
		first := strings.TrimSpace(rec[0])
		if !strings.HasPrefix(first, marker) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(first, marker)))
		if err != nil || !vocab.ValidLesson(n) {
			continue
		}
		if _, seen := out[n]; !seen {
			out[n] = i
		}
	}
	return out
}

// parseRow applies the row filter: kanji, kana and meaning must be present,
// not the literal None, and the row must not be a marker.
func parseRow(idx int, rec []string, marker string) (Row, bool) {
	field := func(i int) string {
		if i < len(rec) {
			return strings.TrimSpace(rec[i])
		}
		return ""
	}
	r := Row{
		Index:   idx,
		Kanji:   field(0),
		Kana:    field(1),
		Meaning: field(2),
		Romaji:  field(3),
		Accent:  field(4),
	}
	for _, v := range []string{r.Kanji, r.Kana, r.Meaning} {
		if v == "" || v == "None" {
			return r, false
		}
	}
	if strings.HasPrefix(r.Kanji, marker) {
		return r, false
	}
	if r.Romaji == "None" {
		r.Romaji = ""
	}
	if r.Accent == "None" {
		r.Accent = ""
	}
	return r, true
}
