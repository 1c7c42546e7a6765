// Package app contains the application services that orchestrate the report.
package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/example/wrapped/internal/core/contact"
	"github.com/example/wrapped/internal/core/emoji"
	"github.com/example/wrapped/internal/ports/primary"
	"github.com/example/wrapped/internal/ports/secondary"
)

// ReportOptions is the run configuration handed to the service at construction.
type ReportOptions struct {
	WindowStart     time.Time
	Overrides       map[string]string
	Skip            []string
	MustInclude     []string
	TopContactLimit int
	TopEmojiLimit   int
}

// ReportServiceImpl implements the ReportService interface.
type ReportServiceImpl struct {
	store  secondary.MessageStore
	opts   ReportOptions
	policy contact.Policy
	logger *zap.Logger
}

// NewReportService creates a new ReportService with injected dependencies.
func NewReportService(store secondary.MessageStore, opts ReportOptions, logger *zap.Logger) *ReportServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.TopEmojiLimit <= 0 {
		opts.TopEmojiLimit = emoji.DefaultTopN
	}
	return &ReportServiceImpl{
		store: store,
		opts:  opts,
		policy: contact.Policy{
			Overrides:   opts.Overrides,
			Skip:        contact.SetOf(opts.Skip),
			MustInclude: contact.SetOf(opts.MustInclude),
			Limit:       opts.TopContactLimit,
		},
		logger: logger,
	}
}

// RankContacts returns the ranked contact list for the configured window.
func (s *ReportServiceImpl) RankContacts(ctx context.Context) ([]primary.ResolvedContact, error) {
	aggregates, err := s.store.FetchAggregates(ctx, secondary.AggregateFilters{WindowStart: s.opts.WindowStart})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contact aggregates: %w", err)
	}
	s.logger.Debug("fetched contact aggregates",
		zap.Int("count", len(aggregates)),
		zap.Time("window_start", s.opts.WindowStart))

	candidates := make([]contact.Candidate, 0, len(aggregates))
	for _, a := range aggregates {
		candidates = append(candidates, contact.Candidate{
			Identifier: a.Identifier,
			StoreName:  a.ContactName,
			Sent:       a.Sent,
			Received:   a.Received,
			Total:      a.Total,
		})
	}

	ranked := contact.Rank(candidates, s.policy)

	contacts := make([]primary.ResolvedContact, 0, len(ranked))
	for _, r := range ranked {
		if r.Forced {
			s.logger.Info("must-include contact appended", zap.String("identifier", r.Identifier), zap.Int("total", r.Total))
		}
		contacts = append(contacts, primary.ResolvedContact{
			Identifier:  r.Identifier,
			DisplayName: r.DisplayName,
			Sent:        r.Sent,
			Received:    r.Received,
			Total:       r.Total,
			Overridden:  r.Overridden,
			Forced:      r.Forced,
		})
	}

	for id := range s.policy.MustInclude {
		if !contact.Contains(ranked, id) && !s.policy.Skip[id] {
			s.logger.Debug("must-include contact has no messages in window", zap.String("identifier", id))
		}
	}

	return contacts, nil
}

// EmojiReportFor returns the top emoji sent to one contact.
func (s *ReportServiceImpl) EmojiReportFor(ctx context.Context, identifier string) ([]emoji.Count, error) {
	text, err := s.store.FetchText(ctx, secondary.TextFilters{
		Identifier:  identifier,
		WindowStart: s.opts.WindowStart,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages for %s: %w", identifier, err)
	}
	return emoji.TallyText(text, s.opts.TopEmojiLimit), nil
}

// BuildReport runs the full pipeline. A failure on any contact aborts the run.
func (s *ReportServiceImpl) BuildReport(ctx context.Context) (*primary.Report, error) {
	contacts, err := s.RankContacts(ctx)
	if err != nil {
		return nil, err
	}

	report := &primary.Report{
		Contacts: contacts,
		Emojis:   make([]primary.EmojiReport, 0, len(contacts)),
	}

	for _, c := range contacts {
		counts, err := s.EmojiReportFor(ctx, c.Identifier)
		if err != nil {
			return nil, err
		}
		if len(counts) == 0 {
			s.logger.Debug("no emoji for contact", zap.String("identifier", c.Identifier))
			continue
		}
		report.Emojis = append(report.Emojis, primary.EmojiReport{
			Name:   c.DisplayName,
			Emojis: counts,
		})
	}

	s.logger.Info("report built",
		zap.Int("contacts", len(report.Contacts)),
		zap.Int("emoji_reports", len(report.Emojis)))

	return report, nil
}
