// Package analyzer wraps the kagome morphological analyzer to give readings
// and parts of speech for the written form of a vocabulary entry.
package analyzer

import (
	"regexp"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// Token represents a single analyzed unit of text.
type Token struct {
	Surface       string   // The text as it appears (e.g. "行き")
	BaseForm      string   // The dictionary form (e.g. "行く")
	Reading       string   // The pronunciation (katakana, e.g. "イキ")
	PartsOfSpeech []string // e.g. ["動詞", "自立", "*", "*"] (Kagome POS labels)
	// PrimaryPOS stores the first (primary) part of speech if available.
	PrimaryPOS string
}

// Analyzer handles text segmentation.
type Analyzer struct {
	t *tokenizer.Tokenizer
}

// NewAnalyzer creates a new tokenizer instance over the IPA dictionary.
func NewAnalyzer() (*Analyzer, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &Analyzer{t: t}, nil
}

// Analyze breaks text into tokens with readings and base forms.
func (a *Analyzer) Analyze(text string) []Token {
	var result []Token
	for _, token := range a.t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		if strings.TrimSpace(token.Surface) == "" {
			continue
		}

		// IPA features: 0-3 POS levels, 4-5 conjugation, 6 base form, 7 reading.
		features := token.Features()

		base := token.Surface
		if len(features) > 6 && features[6] != "*" {
			base = features[6]
		}
		reading := ""
		if len(features) > 7 && features[7] != "*" {
			reading = features[7]
		}
		primaryPOS := ""
		if len(features) > 0 {
			primaryPOS = features[0]
		}

		result = append(result, Token{
			Surface:       token.Surface,
			BaseForm:      base,
			Reading:       reading,
			PartsOfSpeech: features,
			PrimaryPOS:    primaryPOS,
		})
	}
	return result
}

// Reading returns the hiragana reading of text. Tokens unknown to the
// dictionary contribute their surface form.
func (a *Analyzer) Reading(text string) string {
	var b strings.Builder
	for _, tok := range a.Analyze(text) {
		if tok.Reading != "" {
			b.WriteString(ToHiragana(tok.Reading))
		} else {
			b.WriteString(ToHiragana(tok.Surface))
		}
	}
	return b.String()
}

// PrimaryPOS returns the primary part of speech of the first content token of
// text, skipping leading symbols. It returns "" when nothing was recognized.
func (a *Analyzer) PrimaryPOS(text string) string {
	for _, tok := range a.Analyze(text) {
		if tok.PrimaryPOS == "記号" {
			continue
		}
		return tok.PrimaryPOS
	}
	return ""
}

// ToHiragana converts Katakana to Hiragana.
func ToHiragana(s string) string {
	runes := []rune(s)
	for i, r := range runes {
		if r >= 0x30A1 && r <= 0x30F6 {
			runes[i] = r - 0x60
		}
	}
	return string(runes)
}

var (
	// (?s) allows dot to match newlines
	// (?i) makes it case-insensitive
	reRT = regexp.MustCompile(`(?si)<rt\b[^>]*>.*?</rt>`)
	reRP = regexp.MustCompile(`(?si)<rp\b[^>]*>.*?</rp>`)
)

// SanitizeRuby removes ruby text (<rt>...</rt>) and ruby parentheses (<rp>...</rp>)
// from HTML content, so that a cell written as <ruby>漢字<rt>かんじ</rt></ruby>
// yields 漢字 and not 漢字かんじ.
// This function operates on bytes and is generally safe for Shift_JIS as well,
// because <, >, r, t, p are ASCII and < is not a trailing byte in Shift_JIS.
func SanitizeRuby(content []byte) []byte {
	cleaned := reRT.ReplaceAll(content, []byte{})
	cleaned = reRP.ReplaceAll(cleaned, []byte{})
	return cleaned
}
