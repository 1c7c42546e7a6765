// Package primary defines the driving ports: what the CLI can ask of the application.
package primary

import (
	"context"

	"github.com/example/wrapped/internal/core/emoji"
)

// ReportService defines the primary port for the contact/emoji report.
type ReportService interface {
	// RankContacts returns the ranked, named contact list for the configured window.
	RankContacts(ctx context.Context) ([]ResolvedContact, error)

	// EmojiReportFor returns the top emoji one contact sent. Empty, never nil, when none.
	EmojiReportFor(ctx context.Context, identifier string) ([]emoji.Count, error)

	// BuildReport runs the whole pipeline: ranking followed by per-contact emoji reports.
	BuildReport(ctx context.Context) (*Report, error)
}

// ResolvedContact is a ranked contact with its display name resolved.
type ResolvedContact struct {
	Identifier  string
	DisplayName string
	Sent        int
	Received    int
	Total       int
	Overridden  bool // Name came from the override table
	Forced      bool // Added by the must-include rule
}

// EmojiReport is one contact's entry in the emoji output.
type EmojiReport struct {
	Name   string        `json:"name"`
	Emojis []emoji.Count `json:"emojis"`
}

// ContactSummary is one entry of the contacts output file.
type ContactSummary struct {
	Contact  string `json:"contact"`
	Sent     int    `json:"sent"`
	Received int    `json:"received"`
	Total    int    `json:"total"`
}

// Report is the result of a full run.
type Report struct {
	Contacts []ResolvedContact
	Emojis   []EmojiReport
}

// Summaries converts the ranked contacts to their file representation.
func (r *Report) Summaries() []ContactSummary {
	out := make([]ContactSummary, 0, len(r.Contacts))
	for _, c := range r.Contacts {
		out = append(out, ContactSummary{
			Contact:  c.DisplayName,
			Sent:     c.Sent,
			Received: c.Received,
			Total:    c.Total,
		})
	}
	return out
}
