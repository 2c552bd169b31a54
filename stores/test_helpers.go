package stores

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/doug-martin/goqu/v9"
)

// newTestDB builds a goqu database over a sqlmock connection. Stores under
// test are constructed directly on top of it; nothing global is touched.
func newTestDB(t *testing.T) (*goqu.Database, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}

	goquDB := goqu.New("postgres", db)

	cleanup := func() {
		db.Close()
	}

	return goquDB, mock, cleanup
}

var activityColumns = []string{
	"activity_id", "owner_id", "participants", "status",
	"created_at", "updated_at", "aggregate_rating", "rating_ids",
}

var matchColumns = []string{
	"match_id", "activity_id", "status", "matched_candidates",
	"pending", "accepted", "rejected", "updated_at",
}
