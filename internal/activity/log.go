// Package activity keeps an append-only log of aggregate session events.
// Nothing written here is enough to rebuild a learner's session.
package activity

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
)

type Type string

const (
	SessionCreated   Type = "session_created"
	UploadRejected   Type = "upload_rejected"
	ExtractionFailed Type = "extraction_failed"
	QuizStarted      Type = "quiz_started"
	QuizCompleted    Type = "quiz_completed"
	SessionRestarted Type = "session_restarted"
	SessionExpired   Type = "session_expired"
)

type Event struct {
	ID        int64  `db:"id" json:"id"`
	SessionID string `db:"session_id" json:"session_id"`
	Type      Type   `db:"typ" json:"type"`
	Total     int    `db:"total" json:"total,omitempty"`
	Correct   int    `db:"correct" json:"correct,omitempty"`
	Detail    string `db:"detail" json:"detail,omitempty"`
	CreatedAt int64  `db:"created_at" json:"created_at"`
}

// Recorder is what the session service writes to.
type Recorder interface {
	Record(ctx context.Context, e Event) error
}

// modernc registers itself as "sqlite", a name sqlx does not know.
func init() { sqlx.BindDriver("sqlite", sqlx.QUESTION) }

type Repo struct{ db *sqlx.DB }

// NewRepo wraps an open handle; driverName is the database/sql driver name.
func NewRepo(db *sql.DB, driverName string) *Repo {
	return &Repo{db: sqlx.NewDb(db, driverName)}
}

func (r *Repo) Record(ctx context.Context, e Event) error {
	if e.CreatedAt == 0 {
		e.CreatedAt = time.Now().Unix()
	}
	_, err := r.db.NamedExecContext(ctx,
		`INSERT INTO activity_log (session_id, typ, total, correct, detail, created_at)
		 VALUES (:session_id, :typ, :total, :correct, :detail, :created_at)`, e)
	return err
}

// Recent returns the newest events first.
func (r *Repo) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	out := []Event{}
	err := r.db.SelectContext(ctx, &out, r.db.Rebind(
		`SELECT id, session_id, typ, total, correct, detail, created_at
		   FROM activity_log ORDER BY id DESC LIMIT ?`), limit)
	return out, err
}

// Discard drops every event. Used when no database is configured.
type Discard struct{}

func (Discard) Record(context.Context, Event) error { return nil }
