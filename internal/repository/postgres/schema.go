package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS datasets (
	id            UUID PRIMARY KEY,
	session_id    TEXT NOT NULL,
	file_name     TEXT NOT NULL,
	status        TEXT NOT NULL DEFAULT 'pending',
	progress      INTEGER NOT NULL DEFAULT 0,
	s3_key        TEXT,
	fingerprint   TEXT,
	error_message TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	completed_at  TIMESTAMPTZ
);

CREATE INDEX IF NOT EXISTS datasets_session_id_idx ON datasets (session_id);

CREATE TABLE IF NOT EXISTS signal_catalogs (
	dataset_id  UUID PRIMARY KEY REFERENCES datasets (id) ON DELETE CASCADE,
	fingerprint TEXT NOT NULL,
	signals     JSONB NOT NULL,
	warnings    JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`

// Migrate creates the tables if they do not exist
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
