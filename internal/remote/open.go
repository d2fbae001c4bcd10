// Package remote talks to the hosted relational tables used in remote mode.
// The same client serves PostgreSQL (through pgx) and SQLite (through modernc),
// so tests and offline installs can run the remote code path without a server.
package remote

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"

	"github.com/manav03panchal/careeros/internal/config"
	errs "github.com/manav03panchal/careeros/internal/errors"
	"github.com/manav03panchal/careeros/internal/logging"
)

const (
	driverPostgres = "pgx"
	driverSQLite   = "sqlite"

	// defaultUser is used when a postgres URL names no user.
	defaultUser = "careeros"
)

var sqlOpen = sql.Open

// target is a resolved driver and data source name.
type target struct {
	driver  string
	dsn     string
	dialect Dialect
	memory  bool
}

// resolve picks the driver from the URL scheme (or the explicit override) and
// injects the access key into postgres URLs.
func resolve(cfg config.RemoteConfig) (target, error) {
	raw := strings.TrimSpace(cfg.URL)
	if raw == "" {
		return target{}, fmt.Errorf("%w: remote url is empty", errs.ErrRemoteConfig)
	}

	driver := cfg.Driver
	lower := strings.ToLower(raw)
	if driver == "" {
		switch {
		case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
			driver = driverPostgres
		default:
			driver = driverSQLite
		}
	}

	switch driver {
	case driverPostgres, "postgres", "postgresql":
		u, err := url.Parse(raw)
		if err != nil {
			return target{}, fmt.Errorf("%w: %v", errs.ErrRemoteConfig, err)
		}
		if cfg.Key != "" {
			user := defaultUser
			if u.User != nil && u.User.Username() != "" {
				user = u.User.Username()
			}
			u.User = url.UserPassword(user, cfg.Key)
		}
		return target{driver: driverPostgres, dsn: u.String(), dialect: Postgres}, nil

	case driverSQLite:
		dsn := strings.TrimPrefix(raw, "sqlite://")
		memory := dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
		return target{driver: driverSQLite, dsn: dsn, dialect: SQLite, memory: memory}, nil
	}

	return target{}, fmt.Errorf("%w: unsupported driver %q", errs.ErrRemoteConfig, driver)
}

// Open connects to the remote tables and applies the schema.
func Open(ctx context.Context, cfg config.RemoteConfig) (*Client, error) {
	t, err := resolve(cfg)
	if err != nil {
		return nil, err
	}

	if t.driver == driverSQLite && !t.memory && !strings.HasPrefix(t.dsn, "file:") {
		if err := os.MkdirAll(filepath.Dir(t.dsn), 0o755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sqlOpen(t.driver, t.dsn)
	if err != nil {
		return nil, errs.NewSystemErrorWithOp("remote.open", "cannot open remote tables", err)
	}

	if t.driver == driverSQLite {
		// SQLite allows one writer; an in-memory database exists per connection.
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
			db.Close()
			return nil, errs.NewSystemErrorWithOp("remote.open", "cannot configure sqlite", err)
		}
	} else if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errs.NewSystemErrorWithOp("remote.open", "cannot reach remote tables", err)
	}

	if err := Migrate(ctx, db); err != nil {
		db.Close()
		return nil, errs.NewSystemErrorWithOp("remote.migrate", "cannot apply schema", err)
	}

	logging.DebugContext(ctx, "remote tables ready", "driver", t.driver, "dsn", logging.MaskDSN(t.dsn))
	return NewClient(db, t.dialect), nil
}
