// Package app contains application services that orchestrate use cases.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quote-service/internal/domain"
	"github.com/jsamuelsen/quote-service/internal/platform/metrics"
	"github.com/jsamuelsen/quote-service/internal/platform/telemetry"
	"github.com/jsamuelsen/quote-service/internal/ports"
)

// QuoteService is the quote store facade. It depends on a single
// ports.QuoteDriver chosen at startup and never branches on the backend type.
//
// QuoteService holds no lock: the sequence number is count()+1 read before the
// insert, so concurrent adds may observe the same count.
type QuoteService struct {
	driver  ports.QuoteDriver
	metrics *metrics.StoreMetrics
	logger  *slog.Logger
	now     func() time.Time
}

// QuoteServiceConfig contains the quote service dependencies.
type QuoteServiceConfig struct {
	Driver  ports.QuoteDriver
	Metrics *metrics.StoreMetrics
	Logger  *slog.Logger

	// Clock overrides time.Now for timestamps. Optional.
	Clock func() time.Time
}

// NewQuoteService creates the facade. It panics when no driver is supplied.
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Driver == nil {
		panic("app: QuoteServiceConfig.Driver is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}

	return &QuoteService{
		driver:  cfg.Driver,
		metrics: cfg.Metrics,
		logger:  logger,
		now:     clock,
	}
}

// AddQuote stores text with the next sequence number and returns the
// persisted record including its backend id.
func (s *QuoteService) AddQuote(ctx context.Context, text, sourceIP string) (saved *domain.Quote, err error) {
	ctx, span := telemetry.StartStoreSpan(ctx, s.backend(), metrics.OpCreate)
	defer func() { telemetry.EndStoreSpan(span, err) }()

	count, err := s.driver.Count(ctx)
	if err != nil {
		return nil, s.fail(ctx, metrics.OpCreate, "count quotes", err)
	}

	quote := domain.NewQuote(text, sourceIP, s.now(), int(count)+1)

	saved, err = s.driver.Save(ctx, quote)
	if err != nil {
		return nil, s.fail(ctx, metrics.OpCreate, "save quote", err)
	}

	s.observe(metrics.OpCreate, metrics.OutcomeSuccess)
	s.metrics.SetSequence(s.backend(), saved.SequenceNumber)

	s.logger.InfoContext(ctx, "quote added",
		slog.String("backend", s.backend()),
		slog.String("quote_id", saved.ID.String()),
		slog.Int("quote_number", saved.SequenceNumber),
		slog.String("ip", saved.SourceIP),
	)

	return saved, nil
}

// GetLatestQuote returns the quote with the highest sequence number, or nil
// when the store is empty.
func (s *QuoteService) GetLatestQuote(ctx context.Context) (latest *domain.Quote, err error) {
	ctx, span := telemetry.StartStoreSpan(ctx, s.backend(), "latest")
	defer func() { telemetry.EndStoreSpan(span, err) }()

	latest, err = s.driver.FindLatest(ctx)
	if err != nil {
		return nil, s.fail(ctx, metrics.OpRead, "read latest quote", err)
	}

	s.observe(metrics.OpRead, metrics.OutcomeSuccess)

	return latest, nil
}

// ListQuotes returns every stored quote in backend-native order.
func (s *QuoteService) ListQuotes(ctx context.Context) (quotes []*domain.Quote, err error) {
	ctx, span := telemetry.StartStoreSpan(ctx, s.backend(), "list")
	defer func() { telemetry.EndStoreSpan(span, err) }()

	quotes, err = s.driver.FindAll(ctx)
	if err != nil {
		return nil, s.fail(ctx, metrics.OpRead, "list quotes", err)
	}

	s.observe(metrics.OpRead, metrics.OutcomeSuccess)

	if quotes == nil {
		quotes = []*domain.Quote{}
	}

	return quotes, nil
}

// DeleteQuote removes a quote. Deleting an id that does not exist succeeds.
func (s *QuoteService) DeleteQuote(ctx context.Context, id domain.QuoteID) (err error) {
	ctx, span := telemetry.StartStoreSpan(ctx, s.backend(), metrics.OpDelete)
	defer func() { telemetry.EndStoreSpan(span, err) }()

	if err = s.driver.Delete(ctx, id); err != nil {
		return s.fail(ctx, metrics.OpDelete, "delete quote", err)
	}

	s.observe(metrics.OpDelete, metrics.OutcomeSuccess)

	s.logger.InfoContext(ctx, "quote deleted",
		slog.String("backend", s.backend()),
		slog.String("quote_id", id.String()),
	)

	return nil
}

// ParseQuoteID converts a path parameter into the active backend's id form.
func (s *QuoteService) ParseQuoteID(raw string) (domain.QuoteID, error) {
	return s.driver.ParseID(raw)
}

// BackendStatus reports the configured backend. It does not probe the backend.
func (s *QuoteService) BackendStatus(_ context.Context) domain.BackendStatus {
	kind := s.driver.Kind()
	connected := s.driver.Connected()

	return domain.BackendStatus{
		Kind:      kind,
		Connected: connected,
		Message:   statusMessage(kind, connected),
	}
}

func statusMessage(kind domain.BackendKind, connected bool) string {
	switch {
	case kind == domain.BackendDocument && connected:
		return "Connected to MongoDB."
	case kind == domain.BackendDocument:
		return "MongoDB connection unavailable at configured URL."
	case connected:
		return "Using embedded SQLite database."
	default:
		return "SQLite database unavailable."
	}
}

// fail records the failed operation and translates the driver error.
// Unavailable and validation errors pass through; everything else becomes a
// persistence error.
func (s *QuoteService) fail(ctx context.Context, op, action string, err error) error {
	switch {
	case domain.IsUnavailable(err):
		s.observe(op, metrics.OutcomeUnavailable)
		s.logger.WarnContext(ctx, "quote backend unavailable",
			slog.String("backend", s.backend()),
			slog.String("action", action),
			slog.Any("error", err),
		)

		return err
	case domain.IsValidation(err):
		s.observe(op, metrics.OutcomeError)
		return err
	}

	s.observe(op, metrics.OutcomeError)
	s.logger.ErrorContext(ctx, "quote store operation failed",
		slog.String("backend", s.backend()),
		slog.String("action", action),
		slog.Any("error", err),
	)

	return domain.NewPersistenceError(action, err)
}

func (s *QuoteService) observe(op, outcome string) {
	s.metrics.Observe(s.backend(), op, outcome)
}

func (s *QuoteService) backend() string {
	return string(s.driver.Kind())
}
