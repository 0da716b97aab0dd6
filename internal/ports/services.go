// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrUnavailable, ErrNotFound, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/jsamuelsen/quote-service/internal/domain"
)

// QuoteDriver is a storage backend for quotes. The relational (SQLite) and
// document (MongoDB) adapters both implement it; exactly one is selected at
// startup and handed to the quote store.
//
// A driver may exist without a usable handle (for example MongoDB with no
// connection URI). Connected reports that state without touching the network,
// and every other method returns domain.ErrUnavailable while it holds.
type QuoteDriver interface {
	// Kind identifies the backend.
	Kind() domain.BackendKind

	// Connected reports whether the driver holds a handle. It is not a probe.
	Connected() bool

	// Count returns the number of stored quotes.
	Count(ctx context.Context) (int64, error)

	// Save inserts a new quote and returns it with the backend-assigned ID.
	Save(ctx context.Context, quote *domain.Quote) (*domain.Quote, error)

	// FindAll returns every stored quote in backend-native order.
	FindAll(ctx context.Context) ([]*domain.Quote, error)

	// FindLatest returns the quote with the highest sequence number,
	// or nil without error when the store is empty.
	FindLatest(ctx context.Context) (*domain.Quote, error)

	// Delete removes a quote. Deleting an ID that does not exist succeeds.
	Delete(ctx context.Context, id domain.QuoteID) error

	// ParseID converts a path parameter to this backend's ID form.
	// Returns domain.ErrUnavailable when the driver is disconnected, else
	// domain.ErrValidation when raw is not a valid ID.
	ParseID(raw string) (domain.QuoteID, error)
}
