// Package source reads the vocabulary workbook and splits it into lessons.
//
// The workbook has a header row followed by data rows with the columns
// kanji, kana, meaning, romaji, accent. Lessons are delimited either by marker
// rows (大家日语_05) or, for exports without markers, by a fixed table of
// start rows.
package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-readability"
	"github.com/xuri/excelize/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/japaniel/vocabprep/pkg/analyzer"
	"github.com/japaniel/vocabprep/pkg/lesson"
)

// ErrUnsupportedFormat is returned for a workbook extension Open cannot read.
var ErrUnsupportedFormat = errors.New("unsupported workbook format")

// Sheet is the raw content of a workbook: a header row and the data rows.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Open reads the workbook at path. The format is chosen by extension:
// .xlsx, .csv, .tsv, .html and .htm. An .xls file is accepted when it is
// an HTML export, which is how most spreadsheet sites serve it.
func Open(path string) (*Sheet, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx", ".xlsm":
		return openXLSX(path)
	case ".csv", ".tsv":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		comma := ','
		if ext == ".tsv" {
			comma = '\t'
		}
		return parseDelimited(raw, comma)
	case ".html", ".htm", ".xls":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if ext == ".xls" && !looksLikeHTML(raw) {
			return nil, fmt.Errorf("%s: binary xls: %w", path, ErrUnsupportedFormat)
		}
		return ParseHTML(raw)
	}
	return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

func openXLSX(path string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	return newSheet(sheets[0], rows), nil
}

func parseDelimited(raw []byte, comma rune) (*Sheet, error) {
	text, enc := lesson.Decode(raw)
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse delimited (%s): %w", enc, err)
	}
	return newSheet("", records), nil
}

func newSheet(name string, rows [][]string) *Sheet {
	s := &Sheet{Name: name}
	if len(rows) == 0 {
		return s
	}
	s.Header = rows[0]
	s.Rows = rows[1:]
	return s
}

func looksLikeHTML(raw []byte) bool {
	head := bytes.ToLower(bytes.TrimSpace(raw[:min(len(raw), 512)]))
	return bytes.HasPrefix(head, []byte("<")) &&
		(bytes.Contains(head, []byte("<html")) || bytes.Contains(head, []byte("<table")) ||
			bytes.Contains(head, []byte("<!doctype")))
}

// ParseHTML reads the first table of an HTML workbook export. Ruby readings
// are stripped first. The readable article body is preferred, with the raw
// document as fallback when readability drops the table.
func ParseHTML(raw []byte) (*Sheet, error) {
	raw = analyzer.SanitizeRuby(raw)

	var title string
	base, _ := url.Parse("http://localhost/workbook")
	if article, err := readability.FromReader(bytes.NewReader(raw), base); err == nil {
		title = article.Title
		if rows, err := tableRows(strings.NewReader(article.Content)); err == nil && len(rows) > 1 {
			return newSheet(title, rows), nil
		}
	} else {
		slog.Debug("readability failed, reading raw document", "error", err)
	}

	rows, err := tableRows(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("html workbook has no table rows")
	}
	return newSheet(title, rows), nil
}

// tableRows returns the cell texts of every row of the first table in r.
func tableRows(r io.Reader) ([][]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	table := find(doc, atom.Table)
	if table == nil {
		return nil, nil
	}

	var rows [][]string
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.Tr {
			var cells []string
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
					cells = append(cells, strings.TrimSpace(text(c)))
				}
			}
			rows = append(rows, cells)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			// Nested tables belong to their own cell.
			if c.Type == html.ElementNode && c.DataAtom == atom.Table {
				continue
			}
			walk(c)
		}
	}
	walk(table)
	return rows, nil
}

func find(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, a); found != nil {
			return found
		}
	}
	return nil
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
