package vocab

import "unicode/utf8"

// Merge folds incoming entries into an existing lesson table keyed by kana.
//
// Existing rows keep their position. A row that shares its kana with an
// incoming entry takes the incoming kanji when the stored kanji is empty or
// only repeats the kana, and takes the incoming meaning when it is longer.
// Unseen kana are appended in input order as supplementary words of lesson n.
// The returned count is the number of appended rows.
func Merge(existing, incoming []Entry, lesson int) ([]Entry, int) {
	merged := make([]Entry, len(existing), len(existing)+len(incoming))
	copy(merged, existing)

	index := make(map[string]int, len(merged))
	for i, e := range merged {
		if _, dup := index[e.Kana]; !dup {
			index[e.Kana] = i
		}
	}

	added := 0
	for _, in := range incoming {
		if i, ok := index[in.Kana]; ok {
			mergeInto(&merged[i], in)
			continue
		}
		e := in
		e.Lesson = lesson
		e.LessonLabel = LessonLabel(lesson)
		e.Category = SupplementCategory
		index[e.Kana] = len(merged)
		merged = append(merged, e)
		added++
	}
	return merged, added
}

func mergeInto(dst *Entry, src Entry) {
	if src.Kanji != "" && (dst.Kanji == "" || dst.Kanji == dst.Kana) {
		dst.Kanji = src.Kanji
	}
	if src.Meaning != "" && utf8.RuneCountInString(src.Meaning) > utf8.RuneCountInString(dst.Meaning) {
		dst.Meaning = src.Meaning
	}
	if dst.Romaji == "" {
		dst.Romaji = src.Romaji
	}
	if dst.Accent == "" {
		dst.Accent = src.Accent
	}
	if dst.WordType == "" {
		dst.WordType = src.WordType
	}
}
