package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rml/bookkeeper/internal/domain/ledger"
	"github.com/rml/bookkeeper/internal/domain/shared"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const userIDField = "user_id"

// Store keeps every user's books in shared collections partitioned by a
// user_id field. The logical path users/{userID}/{collection} maps onto a
// collection name plus that filter.
type Store struct {
	db  *mongo.Database
	log *zap.Logger
}

// NewStore creates a document store backed by the given database
func NewStore(db *mongo.Database, log *zap.Logger) *Store {
	return &Store{db: db, log: log.Named("store")}
}

var _ ledger.Store = (*Store)(nil)

func (s *Store) scope(userID string) bson.M {
	return bson.M{userIDField: userID}
}

// Snapshot returns the current contents of a collection
func (s *Store) Snapshot(ctx context.Context, userID, collection string) ([]ledger.Document, error) {
	cur, err := s.db.Collection(collection).Find(ctx, s.scope(userID))
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	var docs []ledger.Document
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", collection, err)
		}
		docs = append(docs, normalizeDocument(raw))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", collection, err)
	}
	return docs, nil
}

// Get returns a single record by id
func (s *Store) Get(ctx context.Context, userID, collection, id string) (ledger.Document, error) {
	filter := s.scope(userID)
	filter["_id"] = id

	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, filter).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return normalizeDocument(raw), nil
}

// Find returns the records whose field equals value
func (s *Store) Find(ctx context.Context, userID, collection, field string, value any) ([]ledger.Document, error) {
	filter := s.scope(userID)
	filter[field] = value

	cur, err := s.db.Collection(collection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find %s by %s: %w", collection, field, err)
	}
	defer cur.Close(ctx)

	var docs []ledger.Document
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("find %s by %s: %w", collection, field, err)
		}
		docs = append(docs, normalizeDocument(raw))
	}
	return docs, cur.Err()
}

// Insert stores a new record; the record carries its own id
func (s *Store) Insert(ctx context.Context, userID, collection string, record any) error {
	doc, err := s.toOwnedDoc(userID, record)
	if err != nil {
		return err
	}
	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert into %s: %w", collection, err)
	}
	return nil
}

// Update replaces an existing record
func (s *Store) Update(ctx context.Context, userID, collection, id string, record any) error {
	doc, err := s.toOwnedDoc(userID, record)
	if err != nil {
		return err
	}
	filter := s.scope(userID)
	filter["_id"] = id

	res, err := s.db.Collection(collection).ReplaceOne(ctx, filter, doc)
	if err != nil {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	if res.MatchedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a record by id
func (s *Store) Delete(ctx context.Context, userID, collection, id string) error {
	filter := s.scope(userID)
	filter["_id"] = id

	res, err := s.db.Collection(collection).DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if res.DeletedCount == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// toOwnedDoc marshals a record through the registry and stamps the owner
func (s *Store) toOwnedDoc(userID string, record any) (bson.M, error) {
	raw, err := bson.MarshalWithRegistry(Registry(), record)
	if err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("marshal record: %w", err)
	}
	doc[userIDField] = userID
	return doc, nil
}

// normalizeDocument strips driver types so the domain layer only ever sees
// plain Go values.
func normalizeDocument(raw bson.M) ledger.Document {
	doc := make(ledger.Document, len(raw))
	for k, v := range raw {
		doc[k] = normalizeValue(v)
	}
	return doc
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.Timestamp:
		return time.Unix(int64(t.T), 0).UTC()
	case primitive.ObjectID:
		return t.Hex()
	case primitive.Decimal128:
		return t.String()
	case primitive.M:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalizeValue(val)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = normalizeValue(e.Value)
		}
		return out
	case primitive.A:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalizeValue(val)
		}
		return out
	default:
		return v
	}
}
