package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/jsamuelsen/quote-service/internal/domain"
)

// quoteDocument is the stored shape of a quote. Field names match documents
// written by earlier versions of the service.
type quoteDocument struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Quote       string        `bson:"quote"`
	Timestamp   string        `bson:"timestamp"`
	IP          string        `bson:"ip"`
	QuoteNumber int           `bson:"quoteNumber"`
}

// Count returns the number of documents in the collection.
func (s *Store) Count(ctx context.Context) (int64, error) {
	if err := s.ensure(); err != nil {
		return 0, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	n, err := s.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("mongodb: count quotes: %w", err)
	}

	return n, nil
}

// Save inserts the quote and returns a copy carrying the generated ObjectID.
func (s *Store) Save(ctx context.Context, q *domain.Quote) (*domain.Quote, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	doc := toDocument(q)
	doc.ID = bson.NewObjectID()

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("mongodb: insert quote: %w", err)
	}

	saved := *q
	saved.ID = domain.StringQuoteID(doc.ID.Hex())

	return &saved, nil
}

// FindAll returns every quote in natural collection order.
func (s *Store) FindAll(ctx context.Context) ([]*domain.Quote, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	cursor, err := s.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("mongodb: list quotes: %w", err)
	}

	var docs []quoteDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongodb: decode quotes: %w", err)
	}

	quotes := make([]*domain.Quote, 0, len(docs))
	for i := range docs {
		q, err := fromDocument(&docs[i])
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}

	return quotes, nil
}

// FindLatest returns the document with the highest quoteNumber. Ties go to the
// newest ObjectID.
func (s *Store) FindLatest(ctx context.Context) (*domain.Quote, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	opts := options.FindOne().SetSort(latestIndexKeys())

	var doc quoteDocument

	err := s.coll.FindOne(ctx, bson.D{}, opts).Decode(&doc)
	if err != nil {
		if isNoDocuments(err) {
			return nil, nil //nolint:nilnil // empty store is not an error
		}

		return nil, fmt.Errorf("mongodb: latest quote: %w", err)
	}

	return fromDocument(&doc)
}

// Delete removes the document with the given id. Missing documents are not an error.
func (s *Store) Delete(ctx context.Context, id domain.QuoteID) error {
	if err := s.ensure(); err != nil {
		return err
	}

	oid, err := bson.ObjectIDFromHex(id.String())
	if err != nil {
		return domain.NewValidationErrorWithValue("id", "must be a 24 character hex ObjectID", id.String())
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("mongodb: delete quote %s: %w", id, err)
	}

	return nil
}

// ParseID accepts hex ObjectIDs. A disconnected store reports unavailable
// before looking at raw.
func (s *Store) ParseID(raw string) (domain.QuoteID, error) {
	if err := s.ensure(); err != nil {
		return domain.QuoteID{}, err
	}

	if _, err := bson.ObjectIDFromHex(raw); err != nil {
		return domain.QuoteID{}, domain.NewValidationErrorWithValue("id", "must be a 24 character hex ObjectID", raw)
	}

	return domain.StringQuoteID(raw), nil
}

func toDocument(q *domain.Quote) quoteDocument {
	return quoteDocument{
		Quote:       q.Text,
		Timestamp:   q.Timestamp.UTC().Format(time.RFC3339Nano),
		IP:          q.SourceIP,
		QuoteNumber: q.SequenceNumber,
	}
}

func fromDocument(d *quoteDocument) (*domain.Quote, error) {
	ts, err := time.Parse(time.RFC3339Nano, d.Timestamp)
	if err != nil {
		return nil, fmt.Errorf("mongodb: decode timestamp of quote %s: %w", d.ID.Hex(), err)
	}

	return &domain.Quote{
		ID:             domain.StringQuoteID(d.ID.Hex()),
		Text:           d.Quote,
		Timestamp:      ts,
		SourceIP:       d.IP,
		SequenceNumber: d.QuoteNumber,
	}, nil
}
