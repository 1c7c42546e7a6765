// Package persistence contains adapters that implement the MessageStore port
// on top of whichever QueryRunner reaches the database.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/example/wrapped/internal/ports/secondary"
)

// TimestampLayout is the textual form of sent_at used for window bounds.
const TimestampLayout = "2006-01-02 15:04:05"

// Both queries exclude group chats (room_name set) and tapbacks
// (associated_message_type set and non-zero).
const (
	aggregateQuery = `
SELECT
	h.identifier AS identifier,
	COALESCE(MAX(c.name), '') AS contact_name,
	SUM(CASE WHEN m.is_from_me THEN 1 ELSE 0 END) AS sent,
	SUM(CASE WHEN m.is_from_me THEN 0 ELSE 1 END) AS received,
	COUNT(*) AS total
FROM messages m
JOIN handles h ON m.handle_id = h.handle_id
LEFT JOIN contacts c ON h.identifier = c.identifier
WHERE m.sent_at >= ?
	AND (m.associated_message_type IS NULL OR m.associated_message_type = 0)
	AND m.room_name IS NULL
GROUP BY h.identifier
ORDER BY total DESC`

	textQuery = `
SELECT m.text
FROM messages m
JOIN handles h ON m.handle_id = h.handle_id
WHERE h.identifier = ?
	AND m.is_from_me = ?
	AND m.text IS NOT NULL
	AND m.sent_at >= ?
	AND (m.associated_message_type IS NULL OR m.associated_message_type = 0)
	AND m.room_name IS NULL
ORDER BY m.sent_at`
)

// MessageStore implements secondary.MessageStore over a QueryRunner.
type MessageStore struct {
	runner secondary.QueryRunner
}

// NewMessageStore creates a new MessageStore.
func NewMessageStore(runner secondary.QueryRunner) *MessageStore {
	return &MessageStore{runner: runner}
}

// FetchAggregates returns per-identifier counts ordered by total descending.
func (s *MessageStore) FetchAggregates(ctx context.Context, filters secondary.AggregateFilters) ([]*secondary.ContactAggregateRecord, error) {
	rows, err := s.runner.RunQuery(ctx, aggregateQuery, filters.WindowStart.Format(TimestampLayout))
	if err != nil {
		return nil, err
	}

	records := make([]*secondary.ContactAggregateRecord, 0, len(rows.Records))
	for _, row := range rows.Records {
		record := &secondary.ContactAggregateRecord{
			Identifier:  asString(row["identifier"]),
			ContactName: asString(row["contact_name"]),
		}
		if record.Sent, err = asInt(row["sent"]); err != nil {
			return nil, fmt.Errorf("%w: sent for %s: %w", secondary.ErrQuery, record.Identifier, err)
		}
		if record.Received, err = asInt(row["received"]); err != nil {
			return nil, fmt.Errorf("%w: received for %s: %w", secondary.ErrQuery, record.Identifier, err)
		}
		if record.Total, err = asInt(row["total"]); err != nil {
			return nil, fmt.Errorf("%w: total for %s: %w", secondary.ErrQuery, record.Identifier, err)
		}
		if record.Identifier == "" {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}

// FetchText returns the outbound text for one identifier, one message per line.
func (s *MessageStore) FetchText(ctx context.Context, filters secondary.TextFilters) (string, error) {
	return s.runner.RunQueryRaw(ctx, textQuery,
		filters.Identifier,
		true,
		filters.WindowStart.Format(TimestampLayout),
	)
}

func asString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

func asInt(value any) (int, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		return int(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case json.Number:
		i, err := v.Int64()
		return int(i), err
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	case []byte:
		return strconv.Atoi(strings.TrimSpace(string(v)))
	default:
		return 0, fmt.Errorf("unexpected count type %T", value)
	}
}
