package dictionary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// JMdictEntry matches the structure of jmdict-simplified entries.
type JMdictEntry struct {
	Id    string          `json:"id"`
	Kanji []JMdictElement `json:"kanji"`
	Kana  []JMdictElement `json:"kana"`
	Sense []JMdictSense   `json:"sense"`
}

type JMdictElement struct {
	Text   string   `json:"text"`
	Common bool     `json:"common"`
	Tags   []string `json:"tags"`
}

type JMdictSense struct {
	PartOfSpeech []string      `json:"partOfSpeech"`
	Gloss        []JMdictGloss `json:"gloss"`
}

type JMdictGloss struct {
	Text string `json:"text"`
	Lang string `json:"lang"` // defaults to 'eng' if missing
}

// PartsOfSpeech returns the distinct POS tags of all senses, in order.
func (e JMdictEntry) PartsOfSpeech() []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range e.Sense {
		for _, p := range s.PartOfSpeech {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}
	return out
}

// LoadJMdictSimplified reads a jmdict-simplified release file and returns its
// entries. Both the release object ({"version": ..., "words": [...]}) and a
// bare array of entries are accepted.
func LoadJMdictSimplified(path string) ([]JMdictEntry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, fmt.Errorf("dictionary %s is empty", path)
	}

	if raw[0] == '[' {
		var entries []JMdictEntry
		if err := json.Unmarshal(raw, &entries); err != nil {
			return nil, fmt.Errorf("parse dictionary array: %w", err)
		}
		return entries, nil
	}

	var release struct {
		Version string        `json:"version"`
		Words   []JMdictEntry `json:"words"`
	}
	if err := json.Unmarshal(raw, &release); err != nil {
		return nil, fmt.Errorf("parse dictionary release: %w", err)
	}
	return release.Words, nil
}
