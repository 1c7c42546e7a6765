package db

import (
	"database/sql"
	"fmt"
)

// SeedFixtures populates the database with a small demo message history.
// It exercises every filter the report applies: group chats, tapbacks,
// messages before the default window and contacts without a name.
func SeedFixtures(database *sql.DB) error {
	handles := []struct {
		id         int
		identifier string
	}{
		{1, "+15550000001"},
		{2, "+15550000002"},
		{3, "friend@example.com"},
		{4, "+15550000004"},
	}
	for _, h := range handles {
		if _, err := database.Exec(
			"INSERT INTO handles (handle_id, identifier) VALUES (?, ?)",
			h.id, h.identifier,
		); err != nil {
			return fmt.Errorf("seed handles: %w", err)
		}
	}

	contacts := []struct{ identifier, name string }{
		{"+15550000001", "Alice Smith"},
		{"friend@example.com", "Old Friend"},
	}
	for _, c := range contacts {
		if _, err := database.Exec(
			"INSERT INTO contacts (identifier, name) VALUES (?, ?)",
			c.identifier, c.name,
		); err != nil {
			return fmt.Errorf("seed contacts: %w", err)
		}
	}

	type message struct {
		handle   int
		text     any
		sentAt   string
		fromMe   bool
		assocTyp any
		room     any
	}
	messages := []message{
		{1, "morning 😀", "2025-02-01 08:00:00", true, nil, nil},
		{1, "coffee? ☕", "2025-02-01 08:01:00", true, nil, nil},
		{1, "yes!", "2025-02-01 08:02:00", false, nil, nil},
		{1, "😀 see you", "2025-02-02 09:00:00", true, 0, nil},
		{1, "Loved “yes!”", "2025-02-02 09:01:00", true, 2000, nil},
		{1, "night", "2025-02-03 22:00:00", false, nil, nil},
		{2, "hey", "2025-03-01 10:00:00", true, nil, nil},
		{2, "hi 👋", "2025-03-01 10:05:00", false, nil, nil},
		{2, "pizza 🍕🍕", "2025-03-02 19:00:00", true, nil, nil},
		{2, nil, "2025-03-02 19:01:00", true, nil, nil},
		{3, "long time 🙂", "2024-12-30 12:00:00", true, nil, nil},
		{3, "happy new year 🎉", "2025-01-01 00:00:00", true, nil, nil},
		{4, "group plan 🎉", "2025-04-01 12:00:00", true, nil, "chat123456"},
		{4, "who's in", "2025-04-01 12:01:00", false, nil, "chat123456"},
	}
	for _, m := range messages {
		if _, err := database.Exec(
			"INSERT INTO messages (handle_id, text, sent_at, is_from_me, associated_message_type, room_name) VALUES (?, ?, ?, ?, ?, ?)",
			m.handle, m.text, m.sentAt, m.fromMe, m.assocTyp, m.room,
		); err != nil {
			return fmt.Errorf("seed messages: %w", err)
		}
	}

	return nil
}
