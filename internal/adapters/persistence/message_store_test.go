package persistence_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/example/wrapped/internal/adapters/persistence"
	"github.com/example/wrapped/internal/adapters/sqlite"
	"github.com/example/wrapped/internal/db"
	"github.com/example/wrapped/internal/ports/secondary"
)

var window = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// setupSeededStore creates an in-memory database with the reference schema and demo fixtures.
func setupSeededStore(t *testing.T) *persistence.MessageStore {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	testDB.SetMaxOpenConns(1)
	t.Cleanup(func() { testDB.Close() })

	_, err = testDB.Exec(db.GetSchemaSQL())
	require.NoError(t, err)
	require.NoError(t, db.SeedFixtures(testDB))

	return persistence.NewMessageStore(sqlite.NewQueryRunner(testDB))
}

func TestMessageStore_FetchAggregates(t *testing.T) {
	store := setupSeededStore(t)

	records, err := store.FetchAggregates(context.Background(), secondary.AggregateFilters{WindowStart: window})
	require.NoError(t, err)

	expected := []*secondary.ContactAggregateRecord{
		{Identifier: "+15550000001", ContactName: "Alice Smith", Sent: 3, Received: 2, Total: 5},
		{Identifier: "+15550000002", ContactName: "", Sent: 3, Received: 1, Total: 4},
		{Identifier: "friend@example.com", ContactName: "Old Friend", Sent: 1, Received: 0, Total: 1},
	}
	require.Equal(t, expected, records)

	for _, r := range records {
		require.Equal(t, r.Sent+r.Received, r.Total, "totals for %s", r.Identifier)
	}
}

func TestMessageStore_FetchAggregates_FutureWindow(t *testing.T) {
	store := setupSeededStore(t)

	records, err := store.FetchAggregates(context.Background(), secondary.AggregateFilters{
		WindowStart: time.Now().AddDate(1, 0, 0),
	})
	require.NoError(t, err)
	require.Empty(t, records)
}

func TestMessageStore_FetchText(t *testing.T) {
	store := setupSeededStore(t)
	ctx := context.Background()

	text, err := store.FetchText(ctx, secondary.TextFilters{Identifier: "+15550000001", WindowStart: window})
	require.NoError(t, err)
	require.Equal(t, "morning 😀\ncoffee? ☕\n😀 see you", text)

	text, err = store.FetchText(ctx, secondary.TextFilters{Identifier: "+15550000004", WindowStart: window})
	require.NoError(t, err)
	require.Empty(t, text, "group chat messages must be excluded")
}

func TestMessageStore_FetchText_HostileIdentifier(t *testing.T) {
	store := setupSeededStore(t)

	text, err := store.FetchText(context.Background(), secondary.TextFilters{
		Identifier:  "x' OR '1'='1",
		WindowStart: window,
	})
	require.NoError(t, err)
	require.Empty(t, text, "identifier must be bound, not interpolated")
}

// failingRunner implements secondary.QueryRunner and always fails.
type failingRunner struct {
	err error
}

func (f failingRunner) RunQuery(context.Context, string, ...any) (*secondary.Rows, error) {
	return nil, f.err
}

func (f failingRunner) RunQueryRaw(context.Context, string, ...any) (string, error) {
	return "", f.err
}

func (f failingRunner) Close() error { return nil }

func TestMessageStore_PropagatesRunnerErrors(t *testing.T) {
	store := persistence.NewMessageStore(failingRunner{err: secondary.ErrStoreUnavailable})

	_, err := store.FetchAggregates(context.Background(), secondary.AggregateFilters{WindowStart: window})
	require.True(t, errors.Is(err, secondary.ErrStoreUnavailable))

	_, err = store.FetchText(context.Background(), secondary.TextFilters{Identifier: "a", WindowStart: window})
	require.True(t, errors.Is(err, secondary.ErrStoreUnavailable))
}

// rowsRunner implements secondary.QueryRunner with canned rows.
type rowsRunner struct {
	rows *secondary.Rows
}

func (r rowsRunner) RunQuery(context.Context, string, ...any) (*secondary.Rows, error) {
	return r.rows, nil
}

func (r rowsRunner) RunQueryRaw(context.Context, string, ...any) (string, error) { return "", nil }

func (r rowsRunner) Close() error { return nil }

func TestMessageStore_FetchAggregates_BadCount(t *testing.T) {
	store := persistence.NewMessageStore(rowsRunner{rows: &secondary.Rows{
		Columns: []string{"identifier", "contact_name", "sent", "received", "total"},
		Records: []secondary.Row{
			{"identifier": "a", "contact_name": "", "sent": "many", "received": 1, "total": 2},
		},
	}})

	_, err := store.FetchAggregates(context.Background(), secondary.AggregateFilters{WindowStart: window})
	require.ErrorIs(t, err, secondary.ErrQuery)
}
