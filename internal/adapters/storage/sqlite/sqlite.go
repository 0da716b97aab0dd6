// Package sqlite is the embedded relational quote driver backed by SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 database/sql driver

	"github.com/jsamuelsen/quote-service/internal/domain"
	"github.com/jsamuelsen/quote-service/internal/ports"
)

const driverName = "sqlite3"

// Compile-time interface checks.
var (
	_ ports.QuoteDriver    = (*Store)(nil)
	_ ports.HealthChecker  = (*Store)(nil)
	_ ports.HealthDetailer = (*Store)(nil)
)

// Config configures the SQLite driver.
type Config struct {
	// Path is the database file. ":memory:" keeps everything in process.
	Path string

	// BusyTimeout is how long a statement waits on a locked database.
	BusyTimeout time.Duration

	Logger *slog.Logger
}

// Store implements ports.QuoteDriver on a single SQLite database.
// A Store with a nil db is disconnected and reports domain.ErrUnavailable.
type Store struct {
	db     *sqlx.DB
	path   string
	reason string
	logger *slog.Logger
}

// quoteRow is the table layout of a quote.
type quoteRow struct {
	ID          int64  `db:"id"`
	Quote       string `db:"quote"`
	Timestamp   string `db:"timestamp"`
	IP          string `db:"ip"`
	QuoteNumber int    `db:"quote_number"`
}

// New opens (creating if necessary) the database file and ensures the schema.
func New(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, errors.New("sqlite: path must be set")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o750); err != nil {
			return nil, fmt.Errorf("sqlite: creating data directory: %w", err)
		}
	}

	db, err := sqlx.Open(driverName, dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", cfg.Path, err)
	}

	// ":memory:" databases are per connection.
	db.SetMaxOpenConns(1)

	s := &Store{
		db:     db,
		path:   cfg.Path,
		logger: logger.With(slog.String("component", "sqlite")),
	}

	if err := s.createSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	s.logger.Info("sqlite quote store ready", slog.String("path", cfg.Path))

	return s, nil
}

// NewDisconnected returns a Store without a database handle. Every operation
// returns domain.ErrUnavailable carrying reason.
func NewDisconnected(reason string) *Store {
	return &Store{reason: reason, logger: slog.Default()}
}

func dsn(cfg Config) string {
	timeout := cfg.BusyTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return fmt.Sprintf("file:%s?_busy_timeout=%d&_foreign_keys=on", cfg.Path, timeout.Milliseconds())
}

func (s *Store) createSchema(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS quotes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    quote TEXT NOT NULL DEFAULT '',
    timestamp TEXT NOT NULL,
    ip TEXT NOT NULL DEFAULT '',
    quote_number INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_quotes_quote_number ON quotes(quote_number);`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("sqlite: create schema: %w", err)
	}

	return nil
}

// Kind identifies the backend.
func (s *Store) Kind() domain.BackendKind {
	return domain.BackendRelational
}

// Connected reports whether a database handle is held.
func (s *Store) Connected() bool {
	return s != nil && s.db != nil
}

// Count returns the number of stored quotes.
func (s *Store) Count(ctx context.Context) (int64, error) {
	if err := s.ensure(); err != nil {
		return 0, err
	}

	var n int64
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM quotes`); err != nil {
		return 0, fmt.Errorf("sqlite: count quotes: %w", err)
	}

	return n, nil
}

// Save inserts the quote and returns a copy carrying the new row id.
func (s *Store) Save(ctx context.Context, q *domain.Quote) (*domain.Quote, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}

	const insert = `INSERT INTO quotes (quote, timestamp, ip, quote_number)
VALUES (:quote, :timestamp, :ip, :quote_number)`

	res, err := s.db.NamedExecContext(ctx, insert, toRow(q))
	if err != nil {
		return nil, fmt.Errorf("sqlite: insert quote: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("sqlite: read inserted id: %w", err)
	}

	saved := *q
	saved.ID = domain.IntQuoteID(id)

	return &saved, nil
}

// FindAll returns every quote in insertion order.
func (s *Store) FindAll(ctx context.Context) ([]*domain.Quote, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}

	var rows []quoteRow
	if err := s.db.SelectContext(ctx, &rows,
		`SELECT id, quote, timestamp, ip, quote_number FROM quotes ORDER BY id`); err != nil {
		return nil, fmt.Errorf("sqlite: list quotes: %w", err)
	}

	quotes := make([]*domain.Quote, 0, len(rows))
	for i := range rows {
		q, err := fromRow(&rows[i])
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}

	return quotes, nil
}

// FindLatest returns the quote with the highest sequence number. Ties go to
// the most recently inserted row.
func (s *Store) FindLatest(ctx context.Context) (*domain.Quote, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}

	var row quoteRow

	err := s.db.GetContext(ctx, &row,
		`SELECT id, quote, timestamp, ip, quote_number FROM quotes
ORDER BY quote_number DESC, id DESC LIMIT 1`)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil //nolint:nilnil // empty store is not an error
		}

		return nil, fmt.Errorf("sqlite: latest quote: %w", err)
	}

	return fromRow(&row)
}

// Delete removes the row with the given id. Missing rows are not an error.
func (s *Store) Delete(ctx context.Context, id domain.QuoteID) error {
	if err := s.ensure(); err != nil {
		return err
	}

	if !id.IsNumeric() {
		return domain.NewValidationErrorWithValue("id", "must be an integer", id.String())
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM quotes WHERE id = ?`, id.Int())
	if err != nil {
		return fmt.Errorf("sqlite: delete quote %d: %w", id.Int(), err)
	}

	if n, _ := res.RowsAffected(); n == 0 {
		s.logger.DebugContext(ctx, "delete matched no rows", slog.Int64("id", id.Int()))
	}

	return nil
}

// ParseID accepts decimal row ids. A disconnected store reports unavailable
// before looking at raw.
func (s *Store) ParseID(raw string) (domain.QuoteID, error) {
	if err := s.ensure(); err != nil {
		return domain.QuoteID{}, err
	}

	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return domain.QuoteID{}, domain.NewValidationErrorWithValue("id", "must be an integer", raw)
	}

	return domain.IntQuoteID(n), nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "sqlite"
}

// Check implements ports.HealthChecker by pinging the database.
func (s *Store) Check(ctx context.Context) error {
	if err := s.ensure(); err != nil {
		return err
	}

	return s.db.PingContext(ctx)
}

// Details implements ports.HealthDetailer.
func (s *Store) Details() map[string]string {
	if !s.Connected() {
		return map[string]string{"state": "disconnected", "reason": s.reason}
	}

	return map[string]string{"state": "connected", "path": s.path}
}

// Close releases the database handle.
func (s *Store) Close() error {
	if !s.Connected() {
		return nil
	}

	return s.db.Close()
}

func (s *Store) ensure() error {
	if s.Connected() {
		return nil
	}

	reason := "database not opened"
	if s != nil && s.reason != "" {
		reason = s.reason
	}

	return domain.NewUnavailableError(string(domain.BackendRelational), reason)
}

func toRow(q *domain.Quote) quoteRow {
	return quoteRow{
		Quote:       q.Text,
		Timestamp:   q.Timestamp.UTC().Format(time.RFC3339Nano),
		IP:          q.SourceIP,
		QuoteNumber: q.SequenceNumber,
	}
}

func fromRow(r *quoteRow) (*domain.Quote, error) {
	ts, err := time.Parse(time.RFC3339Nano, r.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("sqlite: decode timestamp of quote %d: %w", r.ID, err)
	}

	return &domain.Quote{
		ID:             domain.IntQuoteID(r.ID),
		Text:           r.Quote,
		Timestamp:      ts,
		SourceIP:       r.IP,
		SequenceNumber: r.QuoteNumber,
	}, nil
}
