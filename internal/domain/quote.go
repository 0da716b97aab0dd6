// Package domain contains core business entities and rules.
package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Quote is a submitted quotation as persisted by the active backend.
// This is a domain entity - it has no knowledge of external systems.
type Quote struct {
	// ID is assigned by the backend on insert.
	ID QuoteID

	// Text is the submitted content. It is stored verbatim and may be empty.
	Text string

	// Timestamp is when the service accepted the submission.
	Timestamp time.Time

	// SourceIP is the submitter address taken from X-Forwarded-For or the peer.
	SourceIP string

	// SequenceNumber is count()+1 of the active backend at insert time.
	SequenceNumber int
}

// NewQuote builds an unsaved quote stamped with the given time and sequence.
func NewQuote(text, sourceIP string, now time.Time, sequence int) *Quote {
	return &Quote{
		Text:           text,
		Timestamp:      now.UTC(),
		SourceIP:       sourceIP,
		SequenceNumber: sequence,
	}
}

// QuoteID identifies a stored quote. The relational backend assigns integer
// ids and the document backend assigns string ids; QuoteID carries either.
type QuoteID struct {
	num     int64
	str     string
	numeric bool
}

// IntQuoteID wraps an integer id assigned by the relational backend.
func IntQuoteID(n int64) QuoteID {
	return QuoteID{num: n, numeric: true}
}

// StringQuoteID wraps a string id assigned by the document backend.
func StringQuoteID(s string) QuoteID {
	return QuoteID{str: s}
}

// IsZero reports whether the id has not been assigned yet.
func (id QuoteID) IsZero() bool {
	return id == QuoteID{}
}

// IsNumeric reports whether the id came from the relational backend.
func (id QuoteID) IsNumeric() bool {
	return id.numeric
}

// Int returns the integer form of a relational id.
func (id QuoteID) Int() int64 {
	return id.num
}

// String returns the textual form of the id.
func (id QuoteID) String() string {
	if id.numeric {
		return strconv.FormatInt(id.num, 10)
	}

	return id.str
}

// MarshalJSON renders relational ids as JSON numbers and document ids as strings.
func (id QuoteID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}

	if id.numeric {
		return []byte(strconv.FormatInt(id.num, 10)), nil
	}

	return json.Marshal(id.str)
}

// UnmarshalJSON accepts the forms MarshalJSON produces: a number becomes a
// relational id, a string a document id and null the unassigned id.
func (id *QuoteID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case bytes.Equal(data, []byte("null")):
		*id = QuoteID{}
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("quote id: %w", err)
		}

		*id = StringQuoteID(s)

		return nil
	}

	n, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("quote id: must be an integer or a string: %w", err)
	}

	*id = IntQuoteID(n)

	return nil
}

// BackendKind names a storage backend.
type BackendKind string

const (
	// BackendRelational is the embedded SQLite store.
	BackendRelational BackendKind = "sqlite"

	// BackendDocument is the MongoDB document store.
	BackendDocument BackendKind = "mongodb"
)

// BackendStatus describes the configured backend. Connected only reflects
// whether a driver handle exists; it is not a live connectivity probe.
type BackendStatus struct {
	Kind      BackendKind
	Connected bool
	Message   string
}
