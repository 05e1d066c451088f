// Package lesson reads and writes the per-lesson vocabulary tables.
//
// A table is a delimited text file with a header row. Two column layouts are
// in use; the layout is detected from the header and preserved on write.
package lesson

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/japaniel/vocabprep/pkg/vocab"
)

// Layout is a column layout of a lesson table.
type Layout int

const (
	// Standard is 课程,栏目,假名,汉字,释义,词性.
	Standard Layout = iota
	// Extended is kana,kanji,meaning,type,romaji,accent.
	Extended
)

var headers = map[Layout][]string{
	Standard: {"课程", "栏目", "假名", "汉字", "释义", "词性"},
	Extended: {"kana", "kanji", "meaning", "type", "romaji", "accent"},
}

func (l Layout) String() string {
	switch l {
	case Standard:
		return "standard"
	case Extended:
		return "extended"
	}
	return "layout(" + strconv.Itoa(int(l)) + ")"
}

// Header returns the header row of the layout.
func (l Layout) Header() []string {
	return append([]string(nil), headers[l]...)
}

var (
	// ErrUnknownLayout is returned for a header that matches no layout.
	ErrUnknownLayout = errors.New("unknown lesson table layout")
	// ErrEmptyTable is returned for a file without a header row.
	ErrEmptyTable = errors.New("lesson table has no header")
)

// Table is a decoded lesson table.
type Table struct {
	Layout  Layout
	Entries []vocab.Entry
	// Encoding names the encoding the file was decoded from.
	Encoding string
}

// Read loads the table at path.
func Read(path string) (*Table, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a table from raw file content.
func Parse(raw []byte) (*Table, error) {
	text, enc := Decode(raw)

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	layout, err := detect(header)
	if err != nil {
		return nil, err
	}

	t := &Table{Layout: layout, Encoding: enc}
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(t.Entries)+1, err)
		}
		if blank(rec) {
			continue
		}
		t.Entries = append(t.Entries, decodeRow(layout, pad(rec, 6)))
	}
	return t, nil
}

// Write stores t at path as UTF-8.
func Write(path string, t *Table) error {
	var buf bytes.Buffer
	if err := Encode(&buf, t); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// Encode writes the header and rows of t.
func Encode(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Layout.Header()); err != nil {
		return err
	}
	for _, e := range t.Entries {
		if err := cw.Write(encodeRow(t.Layout, e)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

var bom = []byte("\xef\xbb\xbf")

var fallbacks = []struct {
	name string
	enc  encoding.Encoding
}{
	{"gbk", simplifiedchinese.GBK},
	{"shift_jis", japanese.ShiftJIS},
}

// Decode returns raw as text. Valid UTF-8 is used as is (minus a byte order
// mark). Otherwise GBK and Shift_JIS are tried; the decoding with the fewest
// replacement characters wins, and among those the one that yields more
// full-width kana, since every table carries a kana column.
func Decode(raw []byte) (string, string) {
	if utf8.Valid(raw) {
		return string(bytes.TrimPrefix(raw, bom)), "utf-8"
	}
	best, bestName := string(raw), "utf-8"
	bestBad, bestKana := -1, 0
	for _, f := range fallbacks {
		out, err := f.enc.NewDecoder().String(string(raw))
		if err != nil {
			continue
		}
		bad, kana := score(out)
		if bestBad < 0 || bad < bestBad || (bad == bestBad && kana > bestKana) {
			best, bestName, bestBad, bestKana = out, f.name, bad, kana
		}
	}
	return strings.TrimPrefix(best, "\ufeff"), bestName
}

func score(s string) (bad, kana int) {
	for _, r := range s {
		switch {
		case r == utf8.RuneError:
			bad++
		case r >= 0x3041 && r <= 0x30FF:
			kana++
		}
	}
	return bad, kana
}

func detect(header []string) (Layout, error) {
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}
	for _, l := range []Layout{Standard, Extended} {
		want := headers[l]
		if len(header) < len(want) {
			continue
		}
		ok := true
		for i, h := range want {
			if strings.TrimSpace(header[i]) != h {
				ok = false
				break
			}
		}
		if ok {
			return l, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownLayout, strings.Join(header, ","))
}

var labelRe = regexp.MustCompile(`^第\s*(\d+)\s*课$`)

// ParseLessonLabel extracts the lesson number from a label like 第5课.
func ParseLessonLabel(label string) (int, bool) {
	m := labelRe.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	return n, err == nil
}

func decodeRow(l Layout, rec []string) vocab.Entry {
	if l == Extended {
		return vocab.Entry{
			Kana:     rec[0],
			Kanji:    rec[1],
			Meaning:  rec[2],
			WordType: vocab.ParseWordType(rec[3]),
			Romaji:   rec[4],
			Accent:   rec[5],
		}
	}
	e := vocab.Entry{
		LessonLabel: rec[0],
		Category:    rec[1],
		Kana:        rec[2],
		Kanji:       rec[3],
		Meaning:     rec[4],
		WordType:    vocab.ParseWordType(rec[5]),
	}
	e.Lesson, _ = ParseLessonLabel(rec[0])
	return e
}

func encodeRow(l Layout, e vocab.Entry) []string {
	if l == Extended {
		return []string{e.Kana, e.Kanji, e.Meaning, string(e.WordType), e.Romaji, e.Accent}
	}
	label := e.LessonLabel
	if label == "" && e.Lesson > 0 {
		label = vocab.LessonLabel(e.Lesson)
	}
	return []string{label, e.Category, e.Kana, e.Kanji, e.Meaning, string(e.WordType)}
}

func pad(rec []string, n int) []string {
	for len(rec) < n {
		rec = append(rec, "")
	}
	return rec
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
