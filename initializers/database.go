package initializers

import (
	"database/sql"
	"log"
	"os"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/lib/pq"
)

var sqlDB *sql.DB

// schemaDDL creates every table the service owns. Statements are idempotent
// so startup against an existing store is a no-op.
var schemaDDL = []string{
	`CREATE TABLE IF NOT EXISTS activity (
		activity_id      TEXT PRIMARY KEY,
		owner_id         TEXT NOT NULL,
		participants     TEXT[] NOT NULL DEFAULT '{}',
		status           TEXT NOT NULL,
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL,
		aggregate_rating DOUBLE PRECISION,
		rating_ids       TEXT[] NOT NULL DEFAULT '{}'
	)`,
	`CREATE TABLE IF NOT EXISTS activity_content (
		content_id            SERIAL PRIMARY KEY,
		activity_id           TEXT NOT NULL REFERENCES activity(activity_id),
		title                 TEXT NOT NULL,
		description           TEXT NOT NULL DEFAULT '',
		start_time            TIMESTAMPTZ NOT NULL,
		duration              DOUBLE PRECISION,
		theme                 TEXT NOT NULL DEFAULT '',
		location              TEXT NOT NULL DEFAULT '',
		budget                INTEGER NOT NULL DEFAULT 0,
		group_size            INTEGER NOT NULL DEFAULT 1,
		recommended_equipment TEXT[] NOT NULL DEFAULT '{}',
		activity_tags         TEXT[] NOT NULL DEFAULT '{}'
	)`,
	`CREATE TABLE IF NOT EXISTS activity_rating (
		rating_id    TEXT PRIMARY KEY,
		activity_id  TEXT NOT NULL REFERENCES activity(activity_id),
		rater_id     TEXT NOT NULL,
		rating       DOUBLE PRECISION NOT NULL,
		comment      TEXT NOT NULL DEFAULT '',
		submitted_at TIMESTAMPTZ NOT NULL,
		UNIQUE (activity_id, rater_id)
	)`,
	`CREATE TABLE IF NOT EXISTS activity_match (
		match_id           TEXT PRIMARY KEY,
		activity_id        TEXT NOT NULL,
		status             TEXT NOT NULL,
		matched_candidates TEXT[] NOT NULL DEFAULT '{}',
		pending            TEXT[] NOT NULL DEFAULT '{}',
		accepted           TEXT[] NOT NULL DEFAULT '{}',
		rejected           TEXT[] NOT NULL DEFAULT '{}',
		updated_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS match_history (
		entry_id    SERIAL PRIMARY KEY,
		match_id    TEXT NOT NULL REFERENCES activity_match(match_id),
		action      TEXT NOT NULL,
		recorded_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS match_feedback (
		feedback_id  SERIAL PRIMARY KEY,
		rater_id     TEXT NOT NULL,
		match_id     TEXT NOT NULL REFERENCES activity_match(match_id),
		rating       DOUBLE PRECISION NOT NULL,
		submitted_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS admin_activity_action (
		action_id   SERIAL PRIMARY KEY,
		activity_id TEXT NOT NULL,
		reviewer_id TEXT NOT NULL,
		decision    TEXT NOT NULL,
		comment     TEXT NOT NULL DEFAULT '',
		operated_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS user_push_token (
		user_push_token_id SERIAL PRIMARY KEY,
		user_id            TEXT NOT NULL,
		push_token         TEXT NOT NULL,
		platform           TEXT NOT NULL,
		created_at         TIMESTAMPTZ NOT NULL,
		updated_at         TIMESTAMPTZ NOT NULL,
		UNIQUE (user_id, push_token)
	)`,
}

// ConnectDB opens the store, verifies connectivity and bootstraps the
// schema. Schema creation gets one retry before the process gives up;
// a store we cannot write is fatal at startup, never mid-operation.
func ConnectDB() *goqu.Database {
	dsn := os.Getenv("DB_URL")

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	sqlDB = db
	gq := goqu.New("postgres", db)

	if err := ensureSchema(db); err != nil {
		log.Printf("schema bootstrap failed, retrying once: %v", err)
		if err := ensureSchema(db); err != nil {
			log.Fatal(err)
		}
	}

	return gq
}

func ensureSchema(db *sql.DB) error {
	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// CloseDB releases the connection pool. Safe to call more than once.
func CloseDB() {
	if sqlDB == nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Println(err)
	}
	sqlDB = nil
}
