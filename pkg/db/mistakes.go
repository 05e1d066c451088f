package db

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DayFormat is the layout of the day column.
const DayFormat = "2006-01-02"

// CreateQuizSession stores a new session and returns its id.
func CreateQuizSession(db DBExecutor, targetScore, optionCount int, startedAt time.Time) (string, error) {
	id := uuid.NewString()
	_, err := db.Exec(`INSERT INTO quiz_sessions (id, started_at, target_score, option_count) VALUES (?, ?, ?, ?)`,
		id, startedAt.UTC(), targetScore, optionCount)
	if err != nil {
		return "", fmt.Errorf("create quiz session: %w", err)
	}
	return id, nil
}

// RecordMistake appends one mistake. An empty kind is stored as KindWrong.
func RecordMistake(db DBExecutor, m Mistake) error {
	if strings.TrimSpace(m.Item) == "" {
		return fmt.Errorf("item must be non-empty")
	}
	if m.Kind == "" {
		m.Kind = KindWrong
	}
	if m.RecordedAt.IsZero() {
		m.RecordedAt = time.Now()
	}
	if m.Day == "" {
		m.Day = m.RecordedAt.Format(DayFormat)
	}
	_, err := db.Exec(`INSERT INTO mistakes (session_id, item, answer, expected, kind, day, recorded_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		nullableString(m.SessionID), m.Item, m.Answer, m.Expected, m.Kind, m.Day, m.RecordedAt.UTC())
	if err != nil {
		return fmt.Errorf("record mistake: %w", err)
	}
	return nil
}

// nullableString returns nil for "" else the value.
func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// MostMistaken returns the items with the most mistakes, most first. Ties
// are ordered by item.
func MostMistaken(db DBExecutor, limit int) ([]MistakeCount, error) {
	if limit <= 0 {
		limit = 50
	}
	return queryCounts(db, `SELECT item, MAX(expected), COUNT(*), GROUP_CONCAT(DISTINCT day)
		FROM mistakes GROUP BY item ORDER BY COUNT(*) DESC, item LIMIT ?`, limit)
}

// MistakesOn returns the items with at least one mistake on day (YYYY-MM-DD),
// with their total counts, most first.
func MistakesOn(db DBExecutor, day string) ([]MistakeCount, error) {
	return queryCounts(db, `SELECT item, MAX(expected), COUNT(*), GROUP_CONCAT(DISTINCT day)
		FROM mistakes WHERE item IN (SELECT item FROM mistakes WHERE day = ?)
		GROUP BY item ORDER BY COUNT(*) DESC, item`, day)
}

func queryCounts(db DBExecutor, query string, args ...interface{}) ([]MistakeCount, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MistakeCount
	for rows.Next() {
		var c MistakeCount
		var expected, days sql.NullString
		if err := rows.Scan(&c.Item, &expected, &c.Count, &days); err != nil {
			return nil, err
		}
		c.Expected = expected.String
		if days.String != "" {
			c.Days = strings.Split(days.String, ",")
			sort.Strings(c.Days)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// MistakeCountOf returns the number of mistakes recorded for item.
func MistakeCountOf(db DBExecutor, item string) (int, error) {
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM mistakes WHERE item = ?`, item).Scan(&n)
	return n, err
}

// ClearOldMistakes deletes mistakes older than daysToKeep days before now and
// returns the number of items that no longer have any mistake.
func ClearOldMistakes(db DBExecutor, daysToKeep int, now time.Time) (int, error) {
	cutoff := now.AddDate(0, 0, -daysToKeep).Format(DayFormat)

	var before int
	if err := db.QueryRow(`SELECT COUNT(DISTINCT item) FROM mistakes`).Scan(&before); err != nil {
		return 0, err
	}
	if _, err := db.Exec(`DELETE FROM mistakes WHERE day < ?`, cutoff); err != nil {
		return 0, fmt.Errorf("clear mistakes: %w", err)
	}
	var after int
	if err := db.QueryRow(`SELECT COUNT(DISTINCT item) FROM mistakes`).Scan(&after); err != nil {
		return 0, err
	}
	return before - after, nil
}

// GetMistakeStats summarizes the log relative to now.
func GetMistakeStats(db DBExecutor, now time.Time) (MistakeStats, error) {
	var s MistakeStats
	today := now.Format(DayFormat)
	yesterday := now.AddDate(0, 0, -1).Format(DayFormat)

	err := db.QueryRow(`SELECT COUNT(DISTINCT item), COUNT(*),
		COUNT(DISTINCT CASE WHEN day = ? THEN item END),
		COUNT(DISTINCT CASE WHEN day = ? THEN item END)
		FROM mistakes`, today, yesterday).Scan(&s.Items, &s.Total, &s.Today, &s.Yesterday)
	if err != nil {
		return s, err
	}
	if s.Items > 0 {
		s.AvgPerItem = float64(s.Total) / float64(s.Items)
	}
	return s, nil
}
