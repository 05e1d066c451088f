// Package vocab holds the lesson vocabulary entry and the closed word-type
// label set shared by every pass over the lesson tables.
package vocab

import "fmt"

// FirstLesson and LastLesson bound the lesson numbers of the textbook.
const (
	FirstLesson = 1
	LastLesson  = 25
)

// SupplementCategory marks words added by an extraction run that no category
// rule has claimed yet.
const SupplementCategory = "补充词汇"

// WordType is a part-of-speech label. The string value is the label stored in
// the lesson tables.
type WordType string

const (
	Godan       WordType = "动词(1型)"
	Ichidan     WordType = "动词(2型)"
	Irregular   WordType = "动词(3型)"
	IAdjective  WordType = "い形容词"
	NaAdjective WordType = "な形容词"
	Loanword    WordType = "外来词"
	Greeting    WordType = "寒暄语"
	Numeral     WordType = "数词"
	TimeWord    WordType = "时间词"
	Direction   WordType = "方位词"
	ProperNoun  WordType = "专有名词"
	Pronoun     WordType = "代词"
	Determiner  WordType = "连体词"
	Adverb      WordType = "副词"
	Noun        WordType = "名词"
)

// WordTypes lists every label in classifier order.
var WordTypes = []WordType{
	Godan, Ichidan, Irregular, IAdjective, NaAdjective, Loanword, Greeting,
	Numeral, TimeWord, Direction, ProperNoun, Pronoun, Determiner, Adverb, Noun,
}

var englishNames = map[WordType]string{
	Godan:       "type-1 verb",
	Ichidan:     "type-2 verb",
	Irregular:   "type-3 verb",
	IAdjective:  "i-adjective",
	NaAdjective: "na-adjective",
	Loanword:    "loanword",
	Greeting:    "greeting",
	Numeral:     "numeral",
	TimeWord:    "time-word",
	Direction:   "direction-word",
	ProperNoun:  "proper-noun",
	Pronoun:     "pronoun",
	Determiner:  "determiner",
	Adverb:      "adverb",
	Noun:        "noun",
}

// Name returns the English name of the label, or the raw label when it is not
// one of the known types.
func (t WordType) Name() string {
	if n, ok := englishNames[t]; ok {
		return n
	}
	return string(t)
}

// Known reports whether t belongs to the closed label set.
func (t WordType) Known() bool {
	_, ok := englishNames[t]
	return ok
}

// IsVerb reports whether t is one of the three verb groups.
func (t WordType) IsVerb() bool {
	return t == Godan || t == Ichidan || t == Irregular
}

// IsAdjective reports whether t is an i- or na-adjective.
func (t WordType) IsAdjective() bool {
	return t == IAdjective || t == NaAdjective
}

// ParseWordType maps a stored label or English name to a WordType. Unknown
// labels are returned verbatim so that hand-edited tables survive a rewrite.
func ParseWordType(s string) WordType {
	for t, n := range englishNames {
		if s == n {
			return t
		}
	}
	return WordType(s)
}

// Entry is one row of a lesson table.
type Entry struct {
	Lesson      int
	LessonLabel string
	Category    string
	Kana        string
	Kanji       string
	Meaning     string
	WordType    WordType
	Romaji      string
	Accent      string
}

// LessonLabel formats the lesson column value used by the standard layout.
func LessonLabel(n int) string {
	return fmt.Sprintf("第%d课", n)
}

// ValidLesson reports whether n is a lesson number of the textbook.
func ValidLesson(n int) bool {
	return n >= FirstLesson && n <= LastLesson
}
