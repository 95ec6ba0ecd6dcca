package database

import (
	"context"
	"fmt"
)

// Migrate creates all tables needed by the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func (db *DB) Migrate(ctx context.Context) error {
	schema := postgresSchema
	if db.dialect == SQLite {
		schema = sqliteSchema
	}

	if _, err := db.DB.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS override_rules (
    id BIGSERIAL PRIMARY KEY,
    label TEXT NOT NULL,
    patterns JSONB NOT NULL,
    multiplier DOUBLE PRECISION NOT NULL CHECK (multiplier > 0),
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS rosters (
    id BIGSERIAL PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT,
    created_at TIMESTAMPTZ NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS roster_members (
    id BIGSERIAL PRIMARY KEY,
    roster_id BIGINT NOT NULL REFERENCES rosters(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    role_class TEXT NOT NULL,
    override_multiplier DOUBLE PRECISION CHECK (override_multiplier > 0)
);

CREATE INDEX IF NOT EXISTS idx_roster_members_roster_id ON roster_members(roster_id, position);

CREATE TABLE IF NOT EXISTS calculations (
    id TEXT PRIMARY KEY,
    roster_id BIGINT,
    target_total DOUBLE PRECISION NOT NULL,
    rounding_unit DOUBLE PRECISION NOT NULL,
    max_rounds INTEGER NOT NULL,
    rounds INTEGER NOT NULL,
    converged BOOLEAN NOT NULL,
    achieved_total DOUBLE PRECISION NOT NULL,
    difference DOUBLE PRECISION NOT NULL,
    seed BIGINT,
    weights JSONB NOT NULL,
    shares JSONB NOT NULL,
    created_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_calculations_created_at ON calculations(created_at);
`

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS override_rules (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    label TEXT NOT NULL,
    patterns TEXT NOT NULL,
    multiplier REAL NOT NULL CHECK (multiplier > 0),
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS rosters (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    description TEXT,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS roster_members (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    roster_id INTEGER NOT NULL REFERENCES rosters(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    role_class TEXT NOT NULL,
    override_multiplier REAL CHECK (override_multiplier > 0)
);

CREATE INDEX IF NOT EXISTS idx_roster_members_roster_id ON roster_members(roster_id, position);

CREATE TABLE IF NOT EXISTS calculations (
    id TEXT PRIMARY KEY,
    roster_id INTEGER,
    target_total REAL NOT NULL,
    rounding_unit REAL NOT NULL,
    max_rounds INTEGER NOT NULL,
    rounds INTEGER NOT NULL,
    converged BOOLEAN NOT NULL,
    achieved_total REAL NOT NULL,
    difference REAL NOT NULL,
    seed INTEGER,
    weights TEXT NOT NULL,
    shares TEXT NOT NULL,
    created_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_calculations_created_at ON calculations(created_at);
`
