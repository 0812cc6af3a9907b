package activity_test

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/mind-engage/snapstudy/internal/activity"
	"github.com/mind-engage/snapstudy/internal/db"
)

func TestRecordAndRecent(t *testing.T) {
	ctx := context.Background()
	h, err := db.Open(ctx, db.DriverSQLite, "file::memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer h.Close()
	repo := activity.NewRepo(h, db.DriverSQLite.SQLName())

	if err := repo.Record(ctx, activity.Event{SessionID: "s1", Type: activity.SessionCreated}); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := repo.Record(ctx, activity.Event{SessionID: "s1", Type: activity.QuizCompleted, Total: 4, Correct: 3}); err != nil {
		t.Fatalf("record: %v", err)
	}

	got, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("want 2 events, got %d", len(got))
	}
	if got[0].Type != activity.QuizCompleted || got[0].Correct != 3 || got[0].Total != 4 {
		t.Fatalf("newest event = %+v", got[0])
	}
	if got[1].CreatedAt == 0 {
		t.Fatal("created_at not stamped")
	}

	one, err := repo.Recent(ctx, 1)
	if err != nil {
		t.Fatalf("recent limit: %v", err)
	}
	if len(one) != 1 || one[0].Type != activity.QuizCompleted {
		t.Fatalf("limit 1 = %+v", one)
	}
}

func TestRebindPerDriver(t *testing.T) {
	const q = "SELECT 1 LIMIT ?"
	if got := sqlx.Rebind(sqlx.BindType(db.DriverSQLite.SQLName()), q); got != q {
		t.Fatalf("sqlite: %q", got)
	}
	if got := sqlx.Rebind(sqlx.BindType(db.DriverPostgres.SQLName()), q); got != "SELECT 1 LIMIT $1" {
		t.Fatalf("postgres: %q", got)
	}
}
