// Package db opens the message-history database and holds its reference schema.
package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverCGO    = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPureGo = "sqlite"  // modernc.org/sqlite
)

// IsSupportedDriver reports whether driver names a registered sqlite driver.
func IsSupportedDriver(driver string) bool {
	return driver == DriverCGO || driver == DriverPureGo
}

// OpenReadOnly opens an existing database file without write access.
// The file must exist; the store is never created or migrated here.
func OpenReadOnly(path, driver string) (*sql.DB, error) {
	if !IsSupportedDriver(driver) {
		return nil, fmt.Errorf("unsupported sqlite driver %q", driver)
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("database unavailable at %s: %w", path, err)
	}

	database, err := sql.Open(driver, readOnlyDSN(path, driver))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return database, nil
}

// Create creates a new database file at path with the reference schema.
// Fails if the file already exists.
func Create(path, driver string) (*sql.DB, error) {
	if !IsSupportedDriver(driver) {
		return nil, fmt.Errorf("unsupported sqlite driver %q", driver)
	}
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("database already exists at %s", path)
	}

	database, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := database.Exec(SchemaSQL); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return database, nil
}

func readOnlyDSN(path, driver string) string {
	u := url.URL{Scheme: "file", Opaque: (&url.URL{Path: path}).EscapedPath()}
	q := url.Values{}
	q.Set("mode", "ro")
	if driver == DriverCGO {
		q.Set("_busy_timeout", "5000")
	} else {
		q.Add("_pragma", "busy_timeout(5000)")
	}
	u.RawQuery = q.Encode()
	return u.String()
}
