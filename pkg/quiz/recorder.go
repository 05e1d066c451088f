package quiz

import (
	"time"

	"github.com/japaniel/vocabprep/pkg/db"
)

// DBRecorder writes mistakes to the SQLite mistake log.
type DBRecorder struct {
	DB        db.DBExecutor
	SessionID string
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewDBRecorder registers a quiz session and returns a recorder bound to it.
func NewDBRecorder(conn db.DBExecutor, cfg *Config) (*DBRecorder, error) {
	now := time.Now()
	id, err := db.CreateQuizSession(conn, cfg.TargetScore, cfg.OptionCount, now)
	if err != nil {
		return nil, err
	}
	return &DBRecorder{DB: conn, SessionID: id}, nil
}

// RecordMistake implements MistakeRecorder.
func (r *DBRecorder) RecordMistake(kana, answer, expected, kind string) error {
	now := time.Now
	if r.Now != nil {
		now = r.Now
	}
	return db.RecordMistake(r.DB, db.Mistake{
		SessionID:  r.SessionID,
		Item:       kana,
		Answer:     answer,
		Expected:   expected,
		Kind:       kind,
		RecordedAt: now(),
	})
}
