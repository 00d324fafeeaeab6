package mongo

import (
	"context"

	"github.com/rml/bookkeeper/internal/domain/ledger"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// subscription re-queries the collection on every change event and pushes the
// fresh snapshot. The channel holds one pending snapshot; a newer one replaces
// a stale unread one, so a slow consumer only ever sees the latest state.
type subscription struct {
	updates chan []ledger.Document
	cancel  context.CancelFunc
}

func (s *subscription) Updates() <-chan []ledger.Document { return s.updates }

func (s *subscription) Stop() { s.cancel() }

// Watch subscribes to live snapshots of a collection. The initial snapshot is
// pushed right after subscribing, then one per change until Stop is called or
// the stream fails. The channel closes when the feed ends.
func (s *Store) Watch(ctx context.Context, userID, collection string) (ledger.Subscription, error) {
	streamCtx, cancel := context.WithCancel(context.Background())

	stream, err := s.db.Collection(collection).Watch(streamCtx, mongo.Pipeline{})
	if err != nil {
		cancel()
		return nil, err
	}

	sub := &subscription{
		updates: make(chan []ledger.Document, 1),
		cancel:  cancel,
	}

	go s.run(streamCtx, stream, sub, userID, collection)
	return sub, nil
}

func (s *Store) run(ctx context.Context, stream *mongo.ChangeStream, sub *subscription, userID, collection string) {
	defer close(sub.updates)
	defer stream.Close(context.Background())

	if !s.push(ctx, sub, userID, collection) {
		return
	}

	for stream.Next(ctx) {
		if !s.push(ctx, sub, userID, collection) {
			return
		}
	}
	if err := stream.Err(); err != nil && ctx.Err() == nil {
		s.log.Warn("change stream ended",
			zap.String("collection", collection),
			zap.Error(err))
	}
}

// push re-queries the snapshot and delivers it, replacing a stale pending one
func (s *Store) push(ctx context.Context, sub *subscription, userID, collection string) bool {
	docs, err := s.Snapshot(ctx, userID, collection)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		s.log.Error("snapshot refresh failed",
			zap.String("collection", collection),
			zap.Error(err))
		return true
	}

	for {
		select {
		case sub.updates <- docs:
			return true
		case <-ctx.Done():
			return false
		default:
		}
		// Drop the unread stale snapshot and retry with the fresh one.
		select {
		case <-sub.updates:
		default:
		}
	}
}
