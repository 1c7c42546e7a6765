// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting and sinks,
// but delegate business logic to services.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/example/wrapped/internal/ports/primary"
)

// Sinks names the optional files a report run writes besides stdout.
type Sinks struct {
	ContactsPath string // JSON array of {contact, sent, received, total}
	EmojiPath    string // Same JSON as stdout
}

// ReportAdapter is a thin adapter that translates CLI operations to ReportService calls.
// It depends only on the ReportService interface, enabling easy testing with mocks.
type ReportAdapter struct {
	service primary.ReportService
	out     io.Writer
}

// NewReportAdapter creates a new ReportAdapter with the given service.
func NewReportAdapter(service primary.ReportService, out io.Writer) *ReportAdapter {
	return &ReportAdapter{
		service: service,
		out:     out,
	}
}

// Run builds the full report, writes the file sinks, then prints the emoji report.
// Nothing is written if the report fails.
func (a *ReportAdapter) Run(ctx context.Context, sinks Sinks) error {
	report, err := a.service.BuildReport(ctx)
	if err != nil {
		return err
	}

	if sinks.ContactsPath != "" {
		if err := WriteJSONFile(sinks.ContactsPath, report.Summaries()); err != nil {
			return err
		}
	}
	if sinks.EmojiPath != "" {
		if err := WriteJSONFile(sinks.EmojiPath, report.Emojis); err != nil {
			return err
		}
	}

	return WriteJSON(a.out, report.Emojis)
}

// Emojis prints one contact's emoji report as JSON.
func (a *ReportAdapter) Emojis(ctx context.Context, identifier string) error {
	counts, err := a.service.EmojiReportFor(ctx, identifier)
	if err != nil {
		return err
	}
	return WriteJSON(a.out, counts)
}

// Contacts prints the ranked contact list as a table.
func (a *ReportAdapter) Contacts(ctx context.Context) error {
	contacts, err := a.service.RankContacts(ctx)
	if err != nil {
		return fmt.Errorf("failed to rank contacts: %w", err)
	}

	if len(contacts) == 0 {
		fmt.Fprintln(a.out, "No contacts found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-4s %-28s %10s %10s %10s\n", "#", "CONTACT", "SENT", "RECEIVED", "TOTAL")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────")
	for i, c := range contacts {
		marker := ""
		if c.Overridden {
			marker = color.New(color.FgCyan).Sprint(" [override]")
		}
		if c.Forced {
			marker += color.New(color.FgHiMagenta).Sprint(" [must-include]")
		}
		fmt.Fprintf(a.out, "%-4d %-28s %10s %10s %10s%s\n",
			i+1,
			truncate(c.DisplayName, 28),
			humanize.Comma(int64(c.Sent)),
			humanize.Comma(int64(c.Received)),
			humanize.Comma(int64(c.Total)),
			marker,
		)
	}
	fmt.Fprintln(a.out)

	return nil
}

// WriteJSON encodes v with 2-space indentation.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// WriteJSONFile writes v as indented JSON to path, creating parent directories.
func WriteJSONFile(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteJSON(f, v); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
