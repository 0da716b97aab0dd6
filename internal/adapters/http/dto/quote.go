package dto

import (
	"strconv"
	"time"

	"github.com/jsamuelsen/quote-service/internal/domain"
)

// AddQuoteRequest is the body of POST /api/quotes. The text is stored as-is.
type AddQuoteRequest struct {
	Quote string `json:"quote"`
}

// QuoteResponse is the wire form of a quote.
type QuoteResponse struct {
	ID          domain.QuoteID `json:"id"`
	Quote       string         `json:"quote"`
	Timestamp   string         `json:"timestamp"`
	IP          string         `json:"ip"`
	QuoteNumber int            `json:"quoteNumber"`
}

// NewQuoteResponse converts a domain quote. A nil quote yields nil, which
// serializes as JSON null.
func NewQuoteResponse(q *domain.Quote) *QuoteResponse {
	if q == nil {
		return nil
	}

	return &QuoteResponse{
		ID:          q.ID,
		Quote:       q.Text,
		Timestamp:   FormatTimestamp(q.Timestamp),
		IP:          q.SourceIP,
		QuoteNumber: q.SequenceNumber,
	}
}

// NewQuoteListResponse converts a slice of quotes. It never returns nil.
func NewQuoteListResponse(quotes []*domain.Quote) []*QuoteResponse {
	out := make([]*QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		out = append(out, NewQuoteResponse(q))
	}

	return out
}

// DeleteResponse is returned by a successful delete.
type DeleteResponse struct {
	Success bool `json:"success"`
}

// DBStatusResponse is the body of GET /api/dbstatus. Connected is the string
// "true" or "false".
type DBStatusResponse struct {
	Type      string `json:"type"`
	Connected string `json:"connected"`
	Message   string `json:"message"`
}

// NewDBStatusResponse converts a backend status.
func NewDBStatusResponse(s domain.BackendStatus) *DBStatusResponse {
	return &DBStatusResponse{
		Type:      string(s.Kind),
		Connected: strconv.FormatBool(s.Connected),
		Message:   s.Message,
	}
}

// NodeInfoResponse is the body of GET /api/nodeinfo.
type NodeInfoResponse struct {
	Hostname            string `json:"hostname"`
	App                 string `json:"app"`
	OSName              string `json:"os.name"`
	OSVersion           string `json:"os.version"`
	OSArch              string `json:"os.arch"`
	AvailableProcessors int    `json:"availableProcessors"`
	MaxMemoryMB         uint64 `json:"maxMemoryMB"`
	TotalMemoryMB       uint64 `json:"totalMemoryMB"`
	FreeMemoryMB        uint64 `json:"freeMemoryMB"`
	Timestamp           string `json:"timestamp"`
}

// FormatTimestamp renders t as RFC 3339 in UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
