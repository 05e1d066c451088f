package db

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/japaniel/vocabprep/pkg/vocab"
)

// DBExecutor is an interface that allows methods to accept either *sql.DB or *sql.Tx
type DBExecutor interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// UpsertWord inserts e or folds it into the stored row with the same lesson
// and kana. Kanji is replaced when the stored value is empty or only repeats
// the kana; meaning is replaced by a longer one. Category and word type follow
// the latest pass when non-empty. Returns the row id.
func UpsertWord(db DBExecutor, e vocab.Entry) (int64, error) {
	kana := strings.TrimSpace(e.Kana)
	if kana == "" {
		return 0, fmt.Errorf("kana must be non-empty")
	}
	if !vocab.ValidLesson(e.Lesson) {
		return 0, fmt.Errorf("lesson %d out of range", e.Lesson)
	}
	label := e.LessonLabel
	if label == "" {
		label = vocab.LessonLabel(e.Lesson)
	}

	var id int64
	query := `INSERT INTO words (lesson, lesson_label, category, kana, kanji, meaning, word_type, romaji, accent, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			  ON CONFLICT(lesson, kana)
			  DO UPDATE SET
			    kanji = CASE
			      WHEN excluded.kanji <> '' AND (IFNULL(words.kanji, '') = '' OR words.kanji = words.kana) THEN excluded.kanji
			      ELSE words.kanji END,
			    meaning = CASE
			      WHEN length(excluded.meaning) > length(IFNULL(words.meaning, '')) THEN excluded.meaning
			      ELSE words.meaning END,
			    category = COALESCE(NULLIF(excluded.category, ''), words.category),
			    word_type = COALESCE(NULLIF(excluded.word_type, ''), words.word_type),
			    romaji = COALESCE(NULLIF(excluded.romaji, ''), words.romaji),
			    accent = COALESCE(NULLIF(excluded.accent, ''), words.accent),
			    updated_at = excluded.updated_at
			  RETURNING id`

	err := db.QueryRow(query, e.Lesson, label, e.Category, kana, e.Kanji, e.Meaning,
		string(e.WordType), e.Romaji, e.Accent, time.Now()).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert word: %w", err)
	}
	return id, nil
}

// GetLessonWords returns the stored rows of a lesson in insertion order.
func GetLessonWords(db DBExecutor, lesson int) ([]Word, error) {
	rows, err := db.Query(`SELECT id, lesson, lesson_label, category, kana, kanji, meaning, word_type, romaji, accent
		FROM words WHERE lesson = ? ORDER BY id`, lesson)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Word
	for rows.Next() {
		var w Word
		var label, cat, kanji, meaning, wt, romaji, accent sql.NullString
		if err := rows.Scan(&w.ID, &w.Lesson, &label, &cat, &w.Kana, &kanji, &meaning, &wt, &romaji, &accent); err != nil {
			return nil, err
		}
		w.LessonLabel = label.String
		w.Category = cat.String
		w.Kanji = kanji.String
		w.Meaning = meaning.String
		w.WordType = wt.String
		w.Romaji = romaji.String
		w.Accent = accent.String
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByCategory returns the number of stored words per category.
func CountByCategory(db DBExecutor) (map[string]int, error) {
	rows, err := db.Query(`SELECT IFNULL(category, ''), COUNT(*) FROM words GROUP BY 1`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var cat string
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, err
		}
		out[cat] = n
	}
	return out, rows.Err()
}
