package dictionary

import (
	"sort"
	"strings"

	"github.com/japaniel/vocabprep/pkg/analyzer"
	"github.com/japaniel/vocabprep/pkg/vocab"
)

// Index answers lookups by written form or reading.
type Index struct {
	// Key: string (Kanji or Kana), Value: List of matching JMdictEntry
	index map[string][]JMdictEntry
	size  int
}

// NewIndex builds an in-memory index of the provided dictionary.
func NewIndex(entries []JMdictEntry) *Index {
	idx := make(map[string][]JMdictEntry)
	for _, e := range entries {
		// Index by Kanji
		for _, k := range e.Kanji {
			idx[k.Text] = append(idx[k.Text], e)
		}
		// Index by Kana
		for _, k := range e.Kana {
			idx[k.Text] = append(idx[k.Text], e)
		}
	}
	return &Index{index: idx, size: len(entries)}
}

// Len returns the number of indexed entries.
func (ix *Index) Len() int { return ix.size }

// Lookup finds the entries written as kanji and read as kana. Either may be
// empty. A kana field holding several readings separated by | matches any of
// them. Results are ordered by entry id.
func (ix *Index) Lookup(kanji, kana string) []JMdictEntry {
	readings := splitReadings(kana)
	candidates := make(map[string]JMdictEntry) // use map to dedupe by Entry ID

	search := func(term string) {
		if term == "" {
			return
		}
		for _, e := range ix.index[term] {
			candidates[e.Id] = e
		}
	}
	search(kanji)
	for _, r := range readings {
		search(r)
	}

	var results []JMdictEntry
	for _, entry := range candidates {
		if isMatch(entry, kanji, readings) {
			results = append(results, entry)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Id < results[j].Id
	})
	return results
}

func splitReadings(kana string) []string {
	var out []string
	for _, r := range strings.Split(kana, "|") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

func isMatch(entry JMdictEntry, kanji string, readings []string) bool {
	// With a written form the entry must carry it, as kanji or kana element.
	if kanji != "" && !contains(readings, kanji) {
		hasText := false
		for _, k := range entry.Kanji {
			if k.Text == kanji {
				hasText = true
				break
			}
		}
		for _, k := range entry.Kana {
			if k.Text == kanji {
				hasText = true
				break
			}
		}
		if !hasText {
			return false
		}
	}

	if len(readings) == 0 {
		return true
	}
	for _, k := range entry.Kana {
		for _, r := range readings {
			if analyzer.ToHiragana(k.Text) == analyzer.ToHiragana(r) {
				return true
			}
		}
	}
	return false
}

// posTypes maps JMdict part-of-speech tags onto word types. Tags without a
// counterpart (auxiliaries, particles, suffixes) are absent.
var posTypes = map[string]vocab.WordType{
	"v1":     vocab.Ichidan,
	"v1-s":   vocab.Ichidan,
	"vs-i":   vocab.Irregular,
	"vs-s":   vocab.Irregular,
	"vk":     vocab.Irregular,
	"vz":     vocab.Irregular,
	"adj-i":  vocab.IAdjective,
	"adj-ix": vocab.IAdjective,
	"adj-na": vocab.NaAdjective,
	"adv":    vocab.Adverb,
	"adv-to": vocab.Adverb,
	"pn":     vocab.Pronoun,
	"adj-pn": vocab.Determiner,
	"num":    vocab.Numeral,
	"ctr":    vocab.Numeral,
	"int":    vocab.Greeting,
	"n-t":    vocab.TimeWord,
	"n-adv":  vocab.TimeWord,
	"n-pr":   vocab.ProperNoun,
	"n":      vocab.Noun,
}

// TypeOfPOS maps one JMdict POS tag to a word type. Every godan tag (v5*)
// maps to the type-1 verb group.
func TypeOfPOS(tag string) (vocab.WordType, bool) {
	if strings.HasPrefix(tag, "v5") || tag == "v4r" {
		return vocab.Godan, true
	}
	t, ok := posTypes[tag]
	return t, ok
}

// ExpectedTypes returns the word types the dictionary supports for an entry,
// in first-seen order. It is empty when the word is not in the dictionary.
func (ix *Index) ExpectedTypes(kanji, kana string) []vocab.WordType {
	seen := make(map[vocab.WordType]bool)
	var out []vocab.WordType
	for _, e := range ix.Lookup(kanji, kana) {
		for _, p := range e.PartsOfSpeech() {
			t, ok := TypeOfPOS(p)
			if !ok || seen[t] {
				continue
			}
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// Glosses returns the glosses of the first matching entry.
func (ix *Index) Glosses(kanji, kana string) []string {
	matches := ix.Lookup(kanji, kana)
	if len(matches) == 0 {
		return nil
	}
	var out []string
	for _, s := range matches[0].Sense {
		for _, g := range s.Gloss {
			out = append(out, g.Text)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
