// Package pgstore reads a course catalog out of PostgreSQL.
//
// The table is expected to look like:
//
//	CREATE TABLE courses (
//	    course_number text PRIMARY KEY,
//	    title         text NOT NULL,
//	    prerequisites text[]
//	);
//
// Records are turned back into plain rows and go through the same
// catalog.Load validation as a CSV file, so a dangling prerequisite in the
// database fails a load exactly the way it would in a file.
package pgstore

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JonMunkholm/CoursePlanner/internal/catalog"
	"github.com/JonMunkholm/CoursePlanner/internal/config"
)

var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Querier is the subset of *pgxpool.Pool the source needs.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Source implements catalog.Source over a table.
type Source struct {
	db    Querier
	table pgx.Identifier
}

// NewSource validates table (optionally schema-qualified, e.g.
// "planner.courses") and returns a Source reading from it.
func NewSource(db Querier, table string) (*Source, error) {
	ident, err := ParseTable(table)
	if err != nil {
		return nil, err
	}
	return &Source{db: db, table: ident}, nil
}

// ParseTable splits and validates a table name.
func ParseTable(table string) (pgx.Identifier, error) {
	parts := strings.Split(table, ".")
	if len(parts) > 2 {
		return nil, fmt.Errorf("invalid table name %q: too many parts", table)
	}
	for _, p := range parts {
		if !identRegex.MatchString(p) {
			return nil, fmt.Errorf("invalid table name %q", table)
		}
	}
	return pgx.Identifier(parts), nil
}

// Name identifies the source in logs and load results.
func (s *Source) Name() string {
	return "postgres:" + strings.Join(s.table, ".")
}

// courseRecord is one row of the catalog table.
type courseRecord struct {
	CourseNumber  string
	Title         string
	Prerequisites []string
}

// row flattens the record into the CSV row layout.
func (r courseRecord) row() []string {
	row := make([]string, 0, 2+len(r.Prerequisites))
	row = append(row, r.CourseNumber, r.Title)
	return append(row, r.Prerequisites...)
}

// Rows selects the whole table. Query and scan failures are reported as
// catalog.SourceUnavailableError.
func (s *Source) Rows(ctx context.Context) ([][]string, error) {
	sql := fmt.Sprintf(
		"SELECT course_number, title, COALESCE(prerequisites, '{}'::text[]) FROM %s ORDER BY course_number",
		s.table.Sanitize(),
	)

	rows, err := s.db.Query(ctx, sql)
	if err != nil {
		return nil, &catalog.SourceUnavailableError{Source: s.Name(), Err: err}
	}

	records, err := pgx.CollectRows(rows, pgx.RowToStructByPos[courseRecord])
	if err != nil {
		return nil, &catalog.SourceUnavailableError{Source: s.Name(), Err: err}
	}

	out := make([][]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.row())
	}
	return out, nil
}

// Connect opens a pool from cfg and pings it. A failed ping is reported as
// catalog.SourceUnavailableError.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, &catalog.SourceUnavailableError{Source: "postgres", Err: err}
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, &catalog.SourceUnavailableError{Source: "postgres", Err: err}
	}

	return pool, nil
}
