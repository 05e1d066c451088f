// Package cleanup repairs kana readings that carry textbook notation: a
// leading ellipsis for bound forms (…ふん) and a parenthetical alternate
// pronunciation (ふん（ぷん）). Alternates are kept as separate answers joined
// by Separator.
package cleanup

import (
	"strings"

	"github.com/japaniel/vocabprep/pkg/vocab"
)

// Separator joins acceptable readings in a cleaned kana field.
const Separator = "|"

var (
	ellipses = []string{"…", "..."}
	parens   = [][2]string{{"（", "）"}, {"(", ")"}}
	// markers never survive cleanup.
	markers = []string{"…", "...", "（", "）", "(", ")"}
)

// Variants returns the acceptable readings encoded in kana. Ellipses are
// removed everywhere. When a parenthetical is present the result is the text
// outside it followed by the text inside it, both trimmed. Empty and repeated
// variants are dropped.
func Variants(kana string) []string {
	s := stripEllipses(kana)
	outer, inner, ok := splitParen(s)
	if !ok {
		return []string{strings.TrimSpace(s)}
	}
	var out []string
	for _, v := range []string{outer, inner} {
		v = strings.TrimSpace(v)
		if v == "" || contains(out, v) {
			continue
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return []string{""}
	}
	return out
}

// Kana returns the cleaned field and whether it differs from kana. A field
// holding nothing but notation is returned unchanged so Verify flags it.
func Kana(kana string) (string, bool) {
	if !NeedsCleanup(kana) {
		return kana, false
	}
	cleaned := strings.Join(Variants(kana), Separator)
	if cleaned == "" {
		return kana, false
	}
	return cleaned, cleaned != kana
}

// NeedsCleanup reports whether kana holds an ellipsis or a parenthesis.
func NeedsCleanup(kana string) bool {
	for _, m := range markers {
		if strings.Contains(kana, m) {
			return true
		}
	}
	return false
}

// Accepts reports whether answer matches any reading of a cleaned field,
// ignoring surrounding space and letter case.
func Accepts(field, answer string) bool {
	want := strings.ToLower(strings.TrimSpace(answer))
	for _, v := range strings.Split(field, Separator) {
		if strings.ToLower(strings.TrimSpace(v)) == want {
			return true
		}
	}
	return false
}

// Change records one rewritten kana field. Row is 1-based.
type Change struct {
	Row      int
	Original string
	Cleaned  string
	Variants []string
}

// MultiAnswer reports whether the change produced more than one reading.
func (c Change) MultiAnswer() bool {
	return len(c.Variants) > 1
}

// Lesson cleans the kana of every entry in place and returns the changes.
func Lesson(entries []vocab.Entry) []Change {
	var changes []Change
	for i := range entries {
		cleaned, changed := Kana(entries[i].Kana)
		if !changed {
			continue
		}
		changes = append(changes, Change{
			Row:      i + 1,
			Original: entries[i].Kana,
			Cleaned:  cleaned,
			Variants: strings.Split(cleaned, Separator),
		})
		entries[i].Kana = cleaned
	}
	return changes
}

func stripEllipses(s string) string {
	for _, e := range ellipses {
		s = strings.ReplaceAll(s, e, "")
	}
	return s
}

// splitParen removes every parenthetical group from s and returns the
// remainder and the content of the first group.
func splitParen(s string) (outer, inner string, ok bool) {
	for _, p := range parens {
		open := strings.Index(s, p[0])
		if open < 0 {
			continue
		}
		rest := s[open+len(p[0]):]
		end := strings.Index(rest, p[1])
		if end < 0 {
			continue
		}
		inner = rest[:end]
		outer = s[:open] + rest[end+len(p[1]):]
		if o, _, more := splitParen(outer); more {
			outer = o
		}
		return outer, inner, true
	}
	// Unbalanced marks are dropped.
	if strings.ContainsAny(s, "（）()") {
		return strings.NewReplacer("（", "", "）", "", "(", "", ")", "").Replace(s), "", true
	}
	return s, "", false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
