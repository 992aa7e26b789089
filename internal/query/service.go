package query

import (
	"context"
	"fmt"
	"time"

	"github.com/devstefancho/claude-hook-logger/internal/analytics"
	"github.com/devstefancho/claude-hook-logger/internal/clock"
	"github.com/devstefancho/claude-hook-logger/internal/domain"
	"github.com/devstefancho/claude-hook-logger/internal/eventstore"
	"github.com/devstefancho/claude-hook-logger/internal/ports"
)

// Defaults applied when Options leaves a field zero.
const (
	DefaultTop           = 10
	DefaultMaxEvents     = 200
	DefaultRecentMinutes = 30
	DefaultSearchLimit   = 50
	DefaultSearchMax     = 500
)

// Options tunes the service.
type Options struct {
	LiveThreshold time.Duration
	SearchLimit   int
	SearchMax     int
}

// Service runs queries against the log directory. Every call re-reads the
// selected file; nothing is cached between calls.
type Service struct {
	store  *eventstore.Store
	clock  clock.Clock
	logger ports.Logger
	opts   Options
}

// NewService creates a new query service
func NewService(store *eventstore.Store, clk clock.Clock, logger ports.Logger, opts Options) *Service {
	if opts.SearchLimit <= 0 {
		opts.SearchLimit = DefaultSearchLimit
	}
	if opts.SearchMax <= 0 {
		opts.SearchMax = DefaultSearchMax
	}
	if opts.SearchLimit > opts.SearchMax {
		opts.SearchLimit = opts.SearchMax
	}
	return &Service{store: store, clock: clk, logger: logger, opts: opts}
}

func (s *Service) load(ctx context.Context, file string) ([]domain.EventRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if file == "" {
		file = eventstore.CurrentFile
	}
	s.logger.Debug(fmt.Sprintf("Loading events from %s", file))
	events, err := s.store.ReadLogFile(file)
	if err != nil {
		s.logger.Error(fmt.Sprintf("Failed to load %s: %v", file, err))
		return nil, err
	}
	return events, nil
}

func (s *Service) summaryOptions() analytics.SummaryOptions {
	return analytics.SummaryOptions{Now: s.clock.Now(), LiveThreshold: s.opts.LiveThreshold}
}

// Now is the service clock's current time.
func (s *Service) Now() time.Time {
	return s.clock.Now()
}

// Files lists the log files, most recent first.
func (s *Service) Files(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.store.ListLogFiles()
}

// Summary returns the full summary of file.
func (s *Service) Summary(ctx context.Context, file string) (domain.Summary, error) {
	events, err := s.load(ctx, file)
	if err != nil {
		return domain.Summary{}, err
	}
	return analytics.Summarize(events, s.summaryOptions()), nil
}

// Dashboard returns the summary of file with histograms capped at top.
func (s *Service) Dashboard(ctx context.Context, file string, top int) (domain.Summary, error) {
	if top <= 0 {
		top = DefaultTop
	}
	sum, err := s.Summary(ctx, file)
	if err != nil {
		return domain.Summary{}, err
	}
	return Dashboard(sum, top), nil
}

// Sessions lists the sessions of file matching f.
func (s *Service) Sessions(ctx context.Context, file string, f SessionFilter) (SessionList, error) {
	sum, err := s.Summary(ctx, file)
	if err != nil {
		return SessionList{}, err
	}
	return ListSessions(sum, f)
}

// SessionDetail projects the session matching idOrPrefix.
func (s *Service) SessionDetail(ctx context.Context, file, idOrPrefix string, maxEvents int) (domain.SessionDetail, error) {
	if maxEvents <= 0 {
		maxEvents = DefaultMaxEvents
	}
	events, err := s.load(ctx, file)
	if err != nil {
		return domain.SessionDetail{}, err
	}
	return SessionDetail(events, idOrPrefix, maxEvents)
}

// Recent summarizes the activity inside the window of q. A zero q covers
// the last DefaultRecentMinutes.
func (s *Service) Recent(ctx context.Context, file string, q RecentQuery) (RecentActivity, error) {
	if q.Since == "" && q.Minutes == 0 {
		q.Minutes = DefaultRecentMinutes
	}
	events, err := s.load(ctx, file)
	if err != nil {
		return RecentActivity{}, err
	}
	return Recent(events, q, s.summaryOptions())
}

// Usage returns the tool and skill histograms scoped by q.
func (s *Service) Usage(ctx context.Context, file string, q UsageQuery) (UsageResult, error) {
	events, err := s.load(ctx, file)
	if err != nil {
		return UsageResult{}, err
	}
	return Usage(events, q)
}

// Search returns the events of file matching c. The limit defaults to the
// configured search limit and is clamped to the configured maximum.
func (s *Service) Search(ctx context.Context, file string, c SearchCriteria) (SearchResult, error) {
	if c.Limit < 0 {
		return SearchResult{}, fmt.Errorf("%w: limit must not be negative", ErrInvalidArgument)
	}
	if c.Limit == 0 {
		c.Limit = s.opts.SearchLimit
	}
	if c.Limit > s.opts.SearchMax {
		c.Limit = s.opts.SearchMax
	}
	events, err := s.load(ctx, file)
	if err != nil {
		return SearchResult{}, err
	}
	return Search(events, c), nil
}
