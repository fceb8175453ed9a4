package repositories

import (
	"database/sql"
	"fmt"
)

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

const createTasksTable = `
CREATE TABLE IF NOT EXISTS tasks (
	id               BIGSERIAL PRIMARY KEY,
	title            TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	type             TEXT NOT NULL CHECK (type IN ('daily','scheduled','backlog')),
	created_at       BIGINT NOT NULL,
	archived         BOOLEAN NOT NULL DEFAULT FALSE,
	archived_at      BIGINT,
	completed        BOOLEAN NOT NULL DEFAULT FALSE,
	daily_done_dates BIGINT[] NOT NULL DEFAULT '{}',
	days_of_week     BIGINT[] NOT NULL DEFAULT '{}',
	date_ranges      JSONB NOT NULL DEFAULT '[]',
	planned_dates    BIGINT[] NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS idx_tasks_type_active ON tasks (type) WHERE NOT archived;`

// Migrate applies the schema at startup. Statements are idempotent so a
// restart never fails on existing objects.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(createUsersTable); err != nil {
		return fmt.Errorf("apply users migration: %w", err)
	}
	if _, err := db.Exec(createTasksTable); err != nil {
		return fmt.Errorf("apply tasks migration: %w", err)
	}
	return nil
}
