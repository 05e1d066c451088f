package cleanup

import (
	"strings"

	"github.com/japaniel/vocabprep/pkg/vocab"
)

// Finding is one row noted by Verify. Row is 1-based.
type Finding struct {
	Row      int
	Kana     string
	Kanji    string
	Meaning  string
	Variants []string
}

// Verification is the result of checking a cleaned lesson.
type Verification struct {
	// Residual rows still hold an ellipsis or parenthesis in the kana.
	Residual []Finding
	// MultiAnswer rows accept more than one reading.
	MultiAnswer []Finding
	// KanjiEllipsis rows keep an ellipsis in the written form. Informational.
	KanjiEllipsis []Finding
}

// OK reports whether no residual notation was found.
func (v Verification) OK() bool {
	return len(v.Residual) == 0
}

// Verify inspects entries without modifying them.
func Verify(entries []vocab.Entry) Verification {
	var v Verification
	for i, e := range entries {
		f := Finding{Row: i + 1, Kana: e.Kana, Kanji: e.Kanji, Meaning: e.Meaning}
		if NeedsCleanup(e.Kana) {
			v.Residual = append(v.Residual, f)
		}
		if strings.Contains(e.Kana, Separator) {
			f.Variants = strings.Split(e.Kana, Separator)
			v.MultiAnswer = append(v.MultiAnswer, f)
		}
		if strings.Contains(e.Kanji, "…") {
			v.KanjiEllipsis = append(v.KanjiEllipsis, f)
		}
	}
	return v
}
