// Package duckdb implements the query port by spawning the duckdb command-line
// client once per query.
package duckdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/example/wrapped/internal/ports/secondary"
)

// DefaultBinary is the client looked up on PATH when none is configured.
const DefaultBinary = "duckdb"

// Runner implements secondary.QueryRunner with the duckdb CLI.
// Each query is an isolated process; nothing is shared between calls.
type Runner struct {
	bin    string
	dbPath string
}

// NewRunner creates a runner without checking that bin or dbPath exist.
func NewRunner(bin, dbPath string) *Runner {
	if bin == "" {
		bin = DefaultBinary
	}
	return &Runner{bin: bin, dbPath: dbPath}
}

// Open resolves the client binary and checks the database file exists.
func Open(bin, dbPath string) (*Runner, error) {
	if bin == "" {
		bin = DefaultBinary
	}
	resolved, err := exec.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("%w: duckdb client %q not found: %w", secondary.ErrStoreUnavailable, bin, err)
	}
	if _, err := os.Stat(dbPath); err != nil {
		return nil, fmt.Errorf("%w: database unavailable at %s: %w", secondary.ErrStoreUnavailable, dbPath, err)
	}
	return NewRunner(resolved, dbPath), nil
}

// RunQuery runs query in JSON output mode.
func (r *Runner) RunQuery(ctx context.Context, query string, args ...any) (*secondary.Rows, error) {
	out, err := r.run(ctx, "-json", query, args)
	if err != nil {
		return nil, err
	}
	return decodeRows(out)
}

// RunQueryRaw runs a single-column query in list mode and returns its output.
func (r *Runner) RunQueryRaw(ctx context.Context, query string, args ...any) (string, error) {
	out, err := r.run(ctx, "-list", query, args)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(out), "\n"), nil
}

// Close is a no-op; every query runs in its own process.
func (r *Runner) Close() error {
	return nil
}

func (r *Runner) run(ctx context.Context, mode, query string, args []any) ([]byte, error) {
	bound, err := bindArgs(query, args)
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, r.bin, r.dbPath, "-readonly", "-noheader", mode, "-c", bound)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: duckdb exited with %d: %s", secondary.ErrQuery, exitErr.ExitCode(), strings.TrimSpace(stderr.String()))
		}
		return nil, fmt.Errorf("%w: running duckdb: %w", secondary.ErrStoreUnavailable, err)
	}
	return stdout.Bytes(), nil
}

// decodeRows parses duckdb -json output, keeping the key order of the first row as Columns.
func decodeRows(out []byte) (*secondary.Rows, error) {
	rows := &secondary.Rows{Records: []secondary.Row{}}
	out = bytes.TrimSpace(out)
	if len(out) == 0 {
		return rows, nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("%w: decoding duckdb output: %w", secondary.ErrQuery, err)
	}

	for i, item := range raw {
		if i == 0 {
			columns, err := objectKeys(item)
			if err != nil {
				return nil, fmt.Errorf("%w: decoding duckdb columns: %w", secondary.ErrQuery, err)
			}
			rows.Columns = columns
		}

		dec := json.NewDecoder(bytes.NewReader(item))
		dec.UseNumber()
		var record secondary.Row
		if err := dec.Decode(&record); err != nil {
			return nil, fmt.Errorf("%w: decoding duckdb row: %w", secondary.ErrQuery, err)
		}
		rows.Records = append(rows.Records, record)
	}
	return rows, nil
}

func objectKeys(item json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(item))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok)
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("expected key, got %v", tok)
		}
		keys = append(keys, key)

		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
