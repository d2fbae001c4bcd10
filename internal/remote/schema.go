package remote

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/manav03panchal/careeros/internal/model"
)

// columns lists the readable and writable columns of every table, in select order.
var columns = map[string][]string{
	model.TableKPIs: {
		"id", "account_id", "phase", "key", "label", "current", "target", "unit", "created_at", "updated_at",
	},
	model.TableCompanies: {
		"id", "account_id", "name", "tier", "status", "notes", "created_at", "updated_at",
	},
	model.TableScheduleBlocks: {
		"id", "account_id", "day", "start_time", "end_time", "category", "title", "details", "created_at", "updated_at",
	},
	model.TableNonNegotiables: {
		"id", "account_id", "time_of_day", "text", "minutes", "order_index", "event", "created_at", "updated_at",
	},
	model.TableCompletions: {
		"id", "account_id", "item_id", "date", "completed", "completed_at", "created_at", "updated_at",
	},
	model.TableSeedMarkers: {
		"account_id", "tables", "created_at", "completed_at",
	},
}

// migrations is valid for both PostgreSQL and SQLite. Times are RFC 3339 text,
// dates are YYYY-MM-DD text and booleans are 0/1 integers.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS "kpis" (
		"id"         TEXT PRIMARY KEY,
		"account_id" TEXT NOT NULL,
		"phase"      BIGINT NOT NULL DEFAULT 0,
		"key"        TEXT NOT NULL,
		"label"      TEXT NOT NULL DEFAULT '',
		"current"    DOUBLE PRECISION NOT NULL DEFAULT 0,
		"target"     DOUBLE PRECISION NOT NULL DEFAULT 0,
		"unit"       TEXT NOT NULL DEFAULT '',
		"created_at" TEXT NOT NULL,
		"updated_at" TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS "idx_kpis_account_key" ON "kpis" ("account_id", "key")`,

	`CREATE TABLE IF NOT EXISTS "companies" (
		"id"         TEXT PRIMARY KEY,
		"account_id" TEXT NOT NULL,
		"name"       TEXT NOT NULL,
		"tier"       TEXT NOT NULL,
		"status"     TEXT NOT NULL,
		"notes"      TEXT NOT NULL DEFAULT '',
		"created_at" TEXT NOT NULL,
		"updated_at" TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS "idx_companies_account" ON "companies" ("account_id")`,

	`CREATE TABLE IF NOT EXISTS "schedule_blocks" (
		"id"         TEXT PRIMARY KEY,
		"account_id" TEXT NOT NULL,
		"day"        BIGINT NOT NULL,
		"start_time" TEXT NOT NULL,
		"end_time"   TEXT NOT NULL,
		"category"   TEXT NOT NULL,
		"title"      TEXT NOT NULL,
		"details"    TEXT NOT NULL DEFAULT '',
		"created_at" TEXT NOT NULL,
		"updated_at" TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS "idx_schedule_blocks_account" ON "schedule_blocks" ("account_id")`,

	`CREATE TABLE IF NOT EXISTS "non_negotiables" (
		"id"          TEXT PRIMARY KEY,
		"account_id"  TEXT NOT NULL,
		"time_of_day" TEXT NOT NULL,
		"text"        TEXT NOT NULL,
		"minutes"     BIGINT NOT NULL DEFAULT 0,
		"order_index" BIGINT NOT NULL DEFAULT 0,
		"event"       TEXT NOT NULL DEFAULT '',
		"created_at"  TEXT NOT NULL,
		"updated_at"  TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS "idx_non_negotiables_account" ON "non_negotiables" ("account_id")`,

	`CREATE TABLE IF NOT EXISTS "daily_completions" (
		"id"           TEXT PRIMARY KEY,
		"account_id"   TEXT NOT NULL,
		"item_id"      TEXT NOT NULL,
		"date"         TEXT NOT NULL,
		"completed"    BIGINT NOT NULL DEFAULT 0,
		"completed_at" TEXT,
		"created_at"   TEXT NOT NULL,
		"updated_at"   TEXT NOT NULL
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS "idx_daily_completions_unique" ON "daily_completions" ("account_id", "item_id", "date")`,

	`CREATE TABLE IF NOT EXISTS "seed_markers" (
		"account_id"   TEXT PRIMARY KEY,
		"tables"       TEXT NOT NULL DEFAULT '',
		"created_at"   TEXT NOT NULL,
		"completed_at" TEXT
	)`,
}

// Migrate creates every table and index that does not exist yet.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
