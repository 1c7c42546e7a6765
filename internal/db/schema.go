package db

// SchemaSQL is the reference layout of the exported message-history database.
// The store is external and read-only to this tool; the schema exists so tests
// and the demo database run against the exact columns the queries use.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the columns the adapters query. All
// tests use this schema via GetSchemaSQL(). If adapter code references a column
// that doesn't exist here, tests fail immediately with "no such column".
//
// sent_at is stored as "YYYY-MM-DD HH:MM:SS" text so window comparisons sort
// lexically in sqlite and cast cleanly to TIMESTAMP in duckdb.
const SchemaSQL = `
-- Handles (one row per phone number or email address)
CREATE TABLE IF NOT EXISTS handles (
	handle_id INTEGER PRIMARY KEY,
	identifier TEXT NOT NULL UNIQUE
);

-- Contacts (address book names keyed by identifier)
CREATE TABLE IF NOT EXISTS contacts (
	identifier TEXT PRIMARY KEY,
	name TEXT
);

-- Messages
CREATE TABLE IF NOT EXISTS messages (
	message_id INTEGER PRIMARY KEY,
	handle_id INTEGER NOT NULL,
	text TEXT,
	sent_at TEXT NOT NULL,
	is_from_me BOOLEAN NOT NULL DEFAULT 0,
	associated_message_type INTEGER,
	room_name TEXT,
	FOREIGN KEY (handle_id) REFERENCES handles(handle_id)
);

CREATE INDEX IF NOT EXISTS idx_messages_handle ON messages(handle_id);
CREATE INDEX IF NOT EXISTS idx_messages_sent_at ON messages(sent_at);
`

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
