// Package mongo is the document-store quote driver backed by MongoDB.
//
// A Store is either Connected (it holds a *mongo.Client) or Disconnected
// (no URI was configured, or the client could not be constructed). The
// disconnected state is explicit: every operation returns
// domain.ErrUnavailable without touching the network, so process startup
// never fails because MongoDB is missing.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/jsamuelsen/quote-service/internal/domain"
	"github.com/jsamuelsen/quote-service/internal/ports"
)

// Defaults used when Config leaves a field empty.
const (
	DefaultDatabase         = "quotes"
	DefaultCollection       = "quotes"
	DefaultConnectTimeout   = 5 * time.Second
	DefaultOperationTimeout = 10 * time.Second
)

// Compile-time interface checks.
var (
	_ ports.QuoteDriver    = (*Store)(nil)
	_ ports.HealthChecker  = (*Store)(nil)
	_ ports.HealthDetailer = (*Store)(nil)
)

// State is the connection state of a Store.
type State int

const (
	// Disconnected means no client handle exists.
	Disconnected State = iota

	// Connected means a client handle exists. It says nothing about reachability.
	Connected
)

// String returns the state name.
func (s State) String() string {
	if s == Connected {
		return "connected"
	}

	return "disconnected"
}

// Config configures the MongoDB driver.
type Config struct {
	URI              string
	Database         string
	Collection       string
	ConnectTimeout   time.Duration
	OperationTimeout time.Duration
	Logger           *slog.Logger
}

// Store implements ports.QuoteDriver on a MongoDB collection.
type Store struct {
	state     State
	reason    string
	client    *mongod.Client
	coll      *mongod.Collection
	opTimeout time.Duration
	logger    *slog.Logger
}

// New builds a Store. It never fails: a missing URI or a client construction
// error yields a Disconnected store and the reason is logged. The driver dials
// lazily, so a Connected store may still fail individual operations.
func New(cfg Config) *Store {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("component", "mongodb"))

	if cfg.URI == "" {
		logger.Warn("mongodb URI not set; document store operations will report unavailable")
		return &Store{state: Disconnected, reason: "no connection URI configured", logger: logger}
	}

	applyDefaults(&cfg)

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout)

	client, err := mongod.Connect(opts)
	if err != nil {
		logger.Error("mongodb client construction failed", slog.Any("error", err))
		return &Store{state: Disconnected, reason: err.Error(), logger: logger}
	}

	logger.Info("mongodb quote store ready",
		slog.String("database", cfg.Database),
		slog.String("collection", cfg.Collection),
	)

	return &Store{
		state:     Connected,
		client:    client,
		coll:      client.Database(cfg.Database).Collection(cfg.Collection),
		opTimeout: cfg.OperationTimeout,
		logger:    logger,
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}

	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}

	if cfg.OperationTimeout <= 0 {
		cfg.OperationTimeout = DefaultOperationTimeout
	}
}

// State returns the connection state.
func (s *Store) State() State {
	return s.state
}

// Kind identifies the backend.
func (s *Store) Kind() domain.BackendKind {
	return domain.BackendDocument
}

// Connected reports whether a client handle is held.
func (s *Store) Connected() bool {
	return s.state == Connected
}

// Migrate creates the {quoteNumber:-1, _id:-1} index matching the FindLatest sort.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.ensure(); err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.coll.Indexes().CreateOne(ctx, mongod.IndexModel{
		Keys: latestIndexKeys(),
	})
	if err != nil {
		return fmt.Errorf("mongodb: create latest quote index: %w", err)
	}

	return nil
}

func latestIndexKeys() bson.D {
	return bson.D{
		{Key: "quoteNumber", Value: -1},
		{Key: "_id", Value: -1},
	}
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "mongodb"
}

// Check implements ports.HealthChecker by pinging the primary.
func (s *Store) Check(ctx context.Context) error {
	if err := s.ensure(); err != nil {
		return err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	return s.client.Ping(ctx, readpref.Primary())
}

// Details implements ports.HealthDetailer.
func (s *Store) Details() map[string]string {
	if s.coll == nil {
		return map[string]string{"state": s.state.String(), "reason": s.reason}
	}

	return map[string]string{
		"state":      s.state.String(),
		"database":   s.coll.Database().Name(),
		"collection": s.coll.Name(),
	}
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if !s.Connected() {
		return nil
	}

	return s.client.Disconnect(ctx)
}

func (s *Store) ensure() error {
	if s.Connected() {
		return nil
	}

	return domain.NewUnavailableError(string(domain.BackendDocument), s.reason)
}

func (s *Store) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.opTimeout)
}

// isNoDocuments returns true when err indicates no MongoDB documents found.
func isNoDocuments(err error) bool {
	return errors.Is(err, mongod.ErrNoDocuments)
}
