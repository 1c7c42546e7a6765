// Package secondary defines the driven ports: contracts this application
// needs from the outside world (the message store).
package secondary

import (
	"context"
	"errors"
	"time"
)

// Error taxonomy for store access. Both are fatal to a run; nothing retries.
var (
	// ErrStoreUnavailable means the store could not be opened, spawned or reached.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrQuery means the store rejected the query, or an argument could not be bound safely.
	ErrQuery = errors.New("query error")
)

// Row is one result row keyed by column name.
type Row map[string]any

// Rows is a query result with the declared column order preserved.
type Rows struct {
	Columns []string
	Records []Row
}

// QueryRunner executes read-only queries against the message store.
// Placeholders are written as '?' and bound from args.
type QueryRunner interface {
	// RunQuery returns structured rows.
	RunQuery(ctx context.Context, query string, args ...any) (*Rows, error)

	// RunQueryRaw returns the values of a single-column query joined by newlines.
	RunQueryRaw(ctx context.Context, query string, args ...any) (string, error)

	// Close releases the underlying connection or process resources.
	Close() error
}

// ContactAggregateRecord is the per-identifier message count over a window.
type ContactAggregateRecord struct {
	Identifier  string
	ContactName string // Empty when the store has no name for the identifier
	Sent        int
	Received    int
	Total       int
}

// AggregateFilters scope FetchAggregates.
type AggregateFilters struct {
	WindowStart time.Time
}

// TextFilters scope FetchText.
type TextFilters struct {
	Identifier  string
	WindowStart time.Time
}

// MessageStore is the narrow read interface the report pipeline depends on.
// Group chats and tapback/reaction messages are always excluded.
type MessageStore interface {
	// FetchAggregates returns sent/received/total per identifier, ordered by total descending.
	FetchAggregates(ctx context.Context, filters AggregateFilters) ([]*ContactAggregateRecord, error)

	// FetchText returns the concatenated outbound text sent to one identifier.
	FetchText(ctx context.Context, filters TextFilters) (string, error)
}
