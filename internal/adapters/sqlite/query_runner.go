// Package sqlite contains the in-process SQLite implementation of the query port.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/wrapped/internal/db"
	"github.com/example/wrapped/internal/ports/secondary"
)

// QueryRunner implements secondary.QueryRunner with database/sql.
// Arguments are always bound as statement parameters.
type QueryRunner struct {
	db *sql.DB
}

// NewQueryRunner creates a new SQLite query runner over an open database.
func NewQueryRunner(db *sql.DB) *QueryRunner {
	return &QueryRunner{db: db}
}

// Open opens path read-only with the given driver and wraps it in a QueryRunner.
func Open(path, driver string) (*QueryRunner, error) {
	database, err := db.OpenReadOnly(path, driver)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", secondary.ErrStoreUnavailable, err)
	}
	return NewQueryRunner(database), nil
}

// RunQuery executes query and returns every row keyed by column name.
func (r *QueryRunner) RunQuery(ctx context.Context, query string, args ...any) (*secondary.Rows, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: sqlite query failed: %w", secondary.ErrQuery, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: reading sqlite columns failed: %w", secondary.ErrQuery, err)
	}

	result := &secondary.Rows{
		Columns: columns,
		Records: make([]secondary.Row, 0, 64),
	}
	for rows.Next() {
		values := make([]any, len(columns))
		valuePointers := make([]any, len(columns))
		for i := range values {
			valuePointers[i] = &values[i]
		}
		if err := rows.Scan(valuePointers...); err != nil {
			return nil, fmt.Errorf("%w: scanning sqlite row failed: %w", secondary.ErrQuery, err)
		}

		record := make(secondary.Row, len(columns))
		for i, value := range values {
			if b, ok := value.([]byte); ok {
				value = string(b)
			}
			record[columns[i]] = value
		}
		result.Records = append(result.Records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating sqlite rows failed: %w", secondary.ErrQuery, err)
	}

	return result, nil
}

// RunQueryRaw executes a single-column query and joins the values with newlines.
// NULL values are skipped.
func (r *QueryRunner) RunQueryRaw(ctx context.Context, query string, args ...any) (string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return "", fmt.Errorf("%w: sqlite query failed: %w", secondary.ErrQuery, err)
	}
	defer rows.Close()

	var b strings.Builder
	for rows.Next() {
		var text sql.NullString
		if err := rows.Scan(&text); err != nil {
			return "", fmt.Errorf("%w: scanning sqlite row failed: %w", secondary.ErrQuery, err)
		}
		if !text.Valid {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(text.String)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("%w: iterating sqlite rows failed: %w", secondary.ErrQuery, err)
	}

	return b.String(), nil
}

// Close closes the underlying database.
func (r *QueryRunner) Close() error {
	return r.db.Close()
}
