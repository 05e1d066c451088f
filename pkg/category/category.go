// Package category assigns the display category of a lesson entry.
//
// Categories are finer than word types and depend on the lesson: the same
// keyword can mean a study item in lesson 2 and nothing in lesson 7. The table
// is evaluated in this order, first decision wins:
//
//  1. pins: exact kana per lesson
//  2. greeting override: word type 寒暄语 or a strong greeting keyword in the meaning
//  3. lesson rules, in order
//  4. global rules, in order
//  5. the entry's word type label
package category

import (
	"strings"

	"github.com/japaniel/vocabprep/pkg/vocab"
)

// Greeting is the category of greetings and set phrases.
const Greeting = "寒暄语"

// Rule maps any of its keywords to a category. A keyword matches when it is
// contained in the kana, the kanji or the meaning of the entry.
type Rule struct {
	Category string
	Keywords []string
}

// Matches reports whether any keyword occurs in e.
func (r Rule) Matches(e vocab.Entry) bool {
	for _, k := range r.Keywords {
		if strings.Contains(e.Kana, k) || strings.Contains(e.Kanji, k) || strings.Contains(e.Meaning, k) {
			return true
		}
	}
	return false
}

// Pin forces the category of one kana within a lesson.
type Pin struct {
	Kana     string
	Category string
}

// Table is a complete category rule set.
type Table struct {
	Pins    map[int][]Pin
	Lessons map[int][]Rule
	Global  []Rule
	// GreetingMeanings force the greeting category when found in the meaning.
	GreetingMeanings []string
}

// Decision names the step of the table that produced a category.
type Decision string

const (
	ByPin      Decision = "pin"
	ByGreeting Decision = "greeting"
	ByLesson   Decision = "lesson"
	ByGlobal   Decision = "global"
	ByWordType Decision = "word-type"
	Unchanged  Decision = "unchanged"
)

// Assign returns the category of e in lesson n.
func (t *Table) Assign(n int, e vocab.Entry) string {
	c, _ := t.Explain(n, e)
	return c
}

// Explain is Assign that also reports which step decided. An entry with no
// matching rule and no word type keeps its current category.
func (t *Table) Explain(n int, e vocab.Entry) (string, Decision) {
	for _, p := range t.Pins[n] {
		if e.Kana == p.Kana {
			return p.Category, ByPin
		}
	}
	if e.WordType == vocab.Greeting || containsAny(e.Meaning, t.GreetingMeanings) {
		return Greeting, ByGreeting
	}
	for _, r := range t.Lessons[n] {
		if r.Matches(e) {
			return r.Category, ByLesson
		}
	}
	for _, r := range t.Global {
		if r.Matches(e) {
			return r.Category, ByGlobal
		}
	}
	if e.WordType != "" {
		return string(e.WordType), ByWordType
	}
	return e.Category, Unchanged
}

// Assign runs the default table.
func Assign(n int, e vocab.Entry) string {
	return Default.Assign(n, e)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
