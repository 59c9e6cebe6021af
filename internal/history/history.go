// Package history records completed runs in a SQL database so results can
// be compared across machines and CI jobs. MySQL and PostgreSQL are
// supported; the driver is picked by configuration.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"

	"github.com/YassineDev91/smart-contract-eval/internal/types"
)

// ErrNotConfigured is returned by Open when no database is configured.
var ErrNotConfigured = errors.New("history: no database configured")

const (
	mysqlSchema = `CREATE TABLE IF NOT EXISTS runs (
		id VARCHAR(36) PRIMARY KEY,
		root TEXT NOT NULL,
		report_path TEXT NOT NULL,
		targets INT NOT NULL,
		solc_passed INT NOT NULL,
		slither_passed INT NOT NULL,
		started_at DATETIME(6) NOT NULL,
		finished_at DATETIME(6) NOT NULL
	)`

	postgresSchema = `CREATE TABLE IF NOT EXISTS runs (
		id VARCHAR(36) PRIMARY KEY,
		root TEXT NOT NULL,
		report_path TEXT NOT NULL,
		targets INT NOT NULL,
		solc_passed INT NOT NULL,
		slither_passed INT NOT NULL,
		started_at TIMESTAMPTZ NOT NULL,
		finished_at TIMESTAMPTZ NOT NULL
	)`
)

// DB is an open run-history database.
type DB struct {
	conn   *sql.DB
	driver string
}

// Open connects to the configured database, verifies the connection with
// a short ping, and ensures the runs table exists.
func Open(ctx context.Context, driver, dsn string) (*DB, error) {
	if driver == "" || dsn == "" {
		return nil, ErrNotConfigured
	}
	switch driver {
	case "mysql", "postgres":
	default:
		return nil, fmt.Errorf("history: unsupported driver %q (use mysql or postgres)", driver)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", driver, err)
	}
	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(10)
	conn.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("history: ping %s: %w", driver, err)
	}

	db := &DB{conn: conn, driver: driver}
	if err := db.migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

func (d *DB) migrate(ctx context.Context) error {
	ddl := mysqlSchema
	if d.driver == "postgres" {
		ddl = postgresSchema
	}
	if _, err := d.conn.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("history: create runs table: %w", err)
	}
	return nil
}

// rebind rewrites ? placeholders to $n for postgres; mysql queries pass
// through unchanged.
func (d *DB) rebind(query string) string {
	if d.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Record inserts one completed run.
func (d *DB) Record(ctx context.Context, run types.RunSummary) error {
	query := d.rebind(`INSERT INTO runs
		(id, root, report_path, targets, solc_passed, slither_passed, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := d.conn.ExecContext(ctx, query,
		run.ID, run.Root, run.ReportPath,
		run.Targets, run.SolcPassed, run.SlitherPassed,
		run.StartedAt, run.FinishedAt)
	if err != nil {
		return fmt.Errorf("history: record run %s: %w", run.ID, err)
	}
	return nil
}

// Recent returns up to limit runs, newest first. limit <= 0 defaults
// to 20.
func (d *DB) Recent(ctx context.Context, limit int) ([]types.RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	query := d.rebind(`SELECT id, root, report_path, targets, solc_passed, slither_passed, started_at, finished_at
		FROM runs ORDER BY started_at DESC LIMIT ?`)
	rows, err := d.conn.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("history: list runs: %w", err)
	}
	defer rows.Close()

	var runs []types.RunSummary
	for rows.Next() {
		var r types.RunSummary
		if err := rows.Scan(&r.ID, &r.Root, &r.ReportPath,
			&r.Targets, &r.SolcPassed, &r.SlitherPassed,
			&r.StartedAt, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("history: scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close releases the underlying connection pool.
func (d *DB) Close() error {
	return d.conn.Close()
}
