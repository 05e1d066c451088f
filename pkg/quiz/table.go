// Package quiz implements the kana to romaji multiple-choice drill.
package quiz

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Kana types of the table.
const (
	Hiragana        = "hiragana"
	Katakana        = "katakana"
	Dakuten         = "dakuten"
	Handakuten      = "handakuten"
	Youon           = "youon"
	YouonDakuten    = "youon_dakuten"
	YouonHandakuten = "youon_handakuten"
	Chouon          = "chouon"
)

// AllTypes lists every kana type in table order.
var AllTypes = []string{Hiragana, Katakana, Dakuten, Handakuten, Youon, YouonDakuten, YouonHandakuten, Chouon}

//go:embed kana_data.csv
var defaultTable string

// ErrTableNotFound is returned when the kana table file does not exist.
var ErrTableNotFound = errors.New("kana table not found")

// LoadTable reads the kana table at path, or the built-in table when path is
// empty, keeping rows whose type is enabled. A nil enabled list keeps every
// type. A missing file yields an empty map and ErrTableNotFound.
func LoadTable(path string, enabled []string) (map[string]string, error) {
	if path == "" {
		return ParseTable(strings.NewReader(defaultTable), enabled)
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, fmt.Errorf("%s: %w", path, ErrTableNotFound)
		}
		return map[string]string{}, fmt.Errorf("open kana table: %w", err)
	}
	defer f.Close()
	return ParseTable(f, enabled)
}

// ParseTable reads a kana,romaji,type table with a header row. Columns are
// located by header name.
func ParseTable(r io.Reader, enabled []string) (map[string]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return map[string]string{}, fmt.Errorf("parse kana table: %w", err)
	}
	if len(records) == 0 {
		return map[string]string{}, fmt.Errorf("kana table has no header")
	}

	col := map[string]int{}
	for i, h := range records[0] {
		col[strings.TrimPrefix(strings.TrimSpace(h), "\ufeff")] = i
	}
	for _, name := range []string{"kana", "romaji", "type"} {
		if _, ok := col[name]; !ok {
			return map[string]string{}, fmt.Errorf("kana table missing column %q", name)
		}
	}

	allow := make(map[string]bool)
	for _, t := range enabled {
		allow[t] = true
	}

	out := make(map[string]string)
	for _, rec := range records[1:] {
		get := func(name string) string {
			if i := col[name]; i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}
		kana, romaji, typ := get("kana"), get("romaji"), get("type")
		if kana == "" || romaji == "" {
			continue
		}
		if len(enabled) > 0 && !allow[typ] {
			continue
		}
		out[kana] = romaji
	}
	return out, nil
}
