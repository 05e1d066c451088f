// Package classify assigns a word type to a vocabulary entry from the surface
// shape of its reading, its written form, and its gloss.
//
// The classifier is an ordered table of rules evaluated first-match-wins. The
// order is part of the behavior: moving a rule changes the output for words
// that satisfy more than one predicate (for example a gloss that contains both
// a greeting and a time word).
package classify

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/japaniel/vocabprep/pkg/vocab"
)

// Input is the part of an entry the rules look at.
type Input struct {
	Kanji   string
	Kana    string
	Meaning string
}

// Rule pairs a predicate with the word type it yields.
type Rule struct {
	Name  string
	Type  vocab.WordType
	Match func(in Input) bool
	// Dynamic rules pick the type from the input; Type is then informational.
	Pick func(in Input) vocab.WordType
}

func (r Rule) result(in Input) vocab.WordType {
	if r.Pick != nil {
		return r.Pick(in)
	}
	return r.Type
}

const (
	// Final kana of godan dictionary forms other than る.
	godanEndings = "うくぐすつぬぶむ"
	// Kana before a final る that mark an ichidan verb.
	ichidanStems = "いえきけしせちてにねひへみめりれびべぎげじぜぢでぴぺ"
)

var (
	irregularForms   = []string{"する", "くる"}
	irregularSuffix  = "する"
	irregularKanji   = "来"
	iAdjBlockers     = []string{"的", "...的", "某种"}
	naAdjMarker      = "的"
	determinerForms  = []string{"この", "その", "あの", "どの"}
	greetingPhrases  = []string{"早上好", "您好", "再见", "谢谢", "对不起", "请", "欢迎", "打扰", "失礼", "初次见面", "请多关照", "不客气", "excuse me", "冒昧", "问候"}
	numberReadings   = []string{"いち", "に", "さん", "よん", "ご", "ろく", "なな", "はち", "きゅう", "じゅう"}
	timeWords        = []string{"时", "分", "点", "年", "月", "日", "星期", "今天", "明天", "昨天", "现在", "上午", "下午"}
	directionWords   = []string{"上", "下", "左", "右", "前", "后", "里", "外", "东", "西", "南", "北", "中", "旁边"}
	properNounMarker = []string{"国", "市", "县", "省", "京", "州", "大学", "银行", "医院", "公司", "车站"}
	pronounWords     = []string{"我", "你", "他", "她", "这", "那", "哪", "什么", "谁"}
	adverbWords      = []string{"很", "非常", "特别", "稍微", "一点", "完全", "绝对"}
)

var (
	godanRule = Rule{
		Name: "godan-ending",
		Type: vocab.Godan,
		Match: func(in Input) bool {
			r, ok := lastRune(in.Kana)
			return ok && strings.ContainsRune(godanEndings, r)
		},
	}
	ruRule = Rule{
		Name: "ru-ending",
		Type: vocab.Ichidan,
		Match: func(in Input) bool {
			return strings.HasSuffix(in.Kana, "る")
		},
		Pick: func(in Input) vocab.WordType {
			runes := []rune(in.Kana)
			if len(runes) >= 2 && strings.ContainsRune(ichidanStems, runes[len(runes)-2]) {
				return vocab.Ichidan
			}
			return vocab.Godan
		},
	}
	irregularRule = Rule{
		Name: "irregular-verb",
		Type: vocab.Irregular,
		Match: func(in Input) bool {
			for _, f := range irregularForms {
				if in.Kana == f {
					return true
				}
			}
			return strings.HasSuffix(in.Kana, irregularSuffix) || strings.Contains(in.Kanji, irregularKanji)
		},
	}
)

// DefaultRules is the rule table in its standard precedence: conjugation
// endings first, then the irregular verbs, then the gloss and shape checks.
var DefaultRules = []Rule{
	godanRule,
	ruRule,
	irregularRule,
	{
		Name: "i-adjective",
		Type: vocab.IAdjective,
		Match: func(in Input) bool {
			return strings.HasSuffix(in.Kana, "い") && !strings.HasSuffix(in.Kana, "る") &&
				!containsAny(in.Meaning, iAdjBlockers)
		},
	},
	{
		Name: "na-adjective",
		Type: vocab.NaAdjective,
		Match: func(in Input) bool {
			return strings.Contains(in.Meaning, naAdjMarker) && !strings.HasSuffix(in.Kana, "い")
		},
	},
	{
		Name:  "katakana",
		Type:  vocab.Loanword,
		Match: func(in Input) bool { return HasKatakana(in.Kana) },
	},
	{
		Name: "greeting",
		Type: vocab.Greeting,
		Match: func(in Input) bool {
			return containsAny(strings.ToLower(in.Meaning), greetingPhrases)
		},
	},
	{
		Name: "numeral",
		Type: vocab.Numeral,
		Match: func(in Input) bool {
			return containsAny(in.Kana, numberReadings) || strings.IndexFunc(in.Kanji, unicode.IsDigit) >= 0
		},
	},
	{
		Name:  "time-word",
		Type:  vocab.TimeWord,
		Match: func(in Input) bool { return containsAny(in.Meaning, timeWords) },
	},
	{
		Name:  "direction-word",
		Type:  vocab.Direction,
		Match: func(in Input) bool { return containsAny(in.Meaning, directionWords) },
	},
	{
		Name:  "proper-noun",
		Type:  vocab.ProperNoun,
		Match: func(in Input) bool { return containsAny(in.Meaning, properNounMarker) },
	},
	{
		Name:  "pronoun",
		Type:  vocab.Pronoun,
		Match: func(in Input) bool { return containsAny(in.Meaning, pronounWords) },
	},
	{
		Name: "determiner",
		Type: vocab.Determiner,
		Match: func(in Input) bool {
			for _, f := range determinerForms {
				if in.Kana == f {
					return true
				}
			}
			return false
		},
	},
	{
		Name:  "adverb",
		Type:  vocab.Adverb,
		Match: func(in Input) bool { return containsAny(in.Meaning, adverbWords) },
	},
}

// DefaultName is reported by Explain when no rule matched.
const DefaultName = "default"

// Classifier evaluates a rule table.
type Classifier struct {
	rules []Rule
}

// Option adjusts the rule table of a Classifier.
type Option func(rules []Rule) []Rule

// WithIrregularFirst moves the irregular-verb rule ahead of the ending rules,
// so that する compounds and 来 forms are never reported as godan or ichidan.
func WithIrregularFirst() Option {
	return func(rules []Rule) []Rule {
		out := make([]Rule, 0, len(rules))
		var irregular *Rule
		for i := range rules {
			if rules[i].Name == irregularRule.Name {
				irregular = &rules[i]
				continue
			}
			out = append(out, rules[i])
		}
		if irregular == nil {
			return rules
		}
		return append([]Rule{*irregular}, out...)
	}
}

// New returns a classifier over DefaultRules with the options applied.
func New(opts ...Option) *Classifier {
	rules := make([]Rule, len(DefaultRules))
	copy(rules, DefaultRules)
	for _, o := range opts {
		rules = o(rules)
	}
	return &Classifier{rules: rules}
}

// Rules returns a copy of the table in evaluation order.
func (c *Classifier) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Classify returns the word type of the first matching rule, or vocab.Noun.
func (c *Classifier) Classify(kanji, kana, meaning string) vocab.WordType {
	t, _ := c.Explain(kanji, kana, meaning)
	return t
}

// Explain is Classify that also names the rule that decided.
func (c *Classifier) Explain(kanji, kana, meaning string) (vocab.WordType, string) {
	in := Input{Kanji: kanji, Kana: kana, Meaning: meaning}
	for _, r := range c.rules {
		if r.Match(in) {
			return r.result(in), r.Name
		}
	}
	return vocab.Noun, DefaultName
}

var std = New()

// Classify runs the standard rule table.
func Classify(kanji, kana, meaning string) vocab.WordType {
	return std.Classify(kanji, kana, meaning)
}

// HasKatakana reports whether s contains a katakana letter or the prolonged
// sound mark.
func HasKatakana(s string) bool {
	for _, r := range s {
		if r == 'ー' || unicode.In(r, unicode.Katakana) {
			return true
		}
	}
	return false
}

func lastRune(s string) (rune, bool) {
	if s == "" {
		return 0, false
	}
	r, _ := utf8.DecodeLastRuneInString(s)
	return r, r != utf8.RuneError
}

func containsAny(s string, subs []string) bool {
	if s == "" {
		return false
	}
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
