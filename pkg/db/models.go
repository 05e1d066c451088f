package db

import "time"

// Word is a stored lesson vocabulary row.
type Word struct {
	ID          int64
	Lesson      int
	LessonLabel string
	Category    string
	Kana        string
	Kanji       string
	Meaning     string
	WordType    string
	Romaji      string
	Accent      string
}

// QuizSession is one run of the kana quiz.
type QuizSession struct {
	ID          string
	StartedAt   time.Time
	TargetScore int
	OptionCount int
}

// Mistake kinds.
const (
	KindWrong    = "wrong"
	KindDontKnow = "dont_know"
)

// Mistake is one wrong answer.
type Mistake struct {
	ID         int64
	SessionID  string
	Item       string
	Answer     string
	Expected   string
	Kind       string
	Day        string
	RecordedAt time.Time
}

// MistakeCount aggregates the mistakes made on one item.
type MistakeCount struct {
	Item     string
	Expected string
	Count    int
	Days     []string
}

// MistakeStats summarizes the mistake log.
type MistakeStats struct {
	Items      int
	Total      int
	Today      int
	Yesterday  int
	AvgPerItem float64
}
