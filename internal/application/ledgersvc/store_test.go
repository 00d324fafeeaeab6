package ledgersvc

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rml/bookkeeper/internal/domain/ledger"
	"github.com/rml/bookkeeper/internal/domain/shared"
)

// fakeStore is an in-memory ledger.Store for service tests. Records round-trip
// through JSON so the services see the same loosely typed documents the real
// store produces.
type fakeStore struct {
	mu   sync.Mutex
	data map[string]map[string]ledger.Document // collection -> id -> doc
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string]map[string]ledger.Document)}
}

func toDoc(record any) ledger.Document {
	raw, err := json.Marshal(record)
	if err != nil {
		panic(err)
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		panic(err)
	}
	if id, ok := m["id"]; ok {
		m["_id"] = id
		delete(m, "id")
	}
	return ledger.Document(m)
}

func (f *fakeStore) bucket(collection string) map[string]ledger.Document {
	if f.data[collection] == nil {
		f.data[collection] = make(map[string]ledger.Document)
	}
	return f.data[collection]
}

func (f *fakeStore) Snapshot(_ context.Context, _, collection string) ([]ledger.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var docs []ledger.Document
	for _, d := range f.bucket(collection) {
		docs = append(docs, d)
	}
	return docs, nil
}

func (f *fakeStore) Watch(_ context.Context, userID, collection string) (ledger.Subscription, error) {
	docs, _ := f.Snapshot(context.Background(), userID, collection)
	ch := make(chan []ledger.Document, 1)
	ch <- docs
	return &fakeSub{ch: ch}, nil
}

func (f *fakeStore) Get(_ context.Context, _, collection, id string) (ledger.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	doc, ok := f.bucket(collection)[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return doc, nil
}

func (f *fakeStore) Find(_ context.Context, _, collection, field string, value any) ([]ledger.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var docs []ledger.Document
	for _, d := range f.bucket(collection) {
		if d[field] == value {
			docs = append(docs, d)
		}
	}
	return docs, nil
}

func (f *fakeStore) Insert(_ context.Context, _, collection string, record any) error {
	doc := toDoc(record)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bucket(collection)[doc.String("_id")] = doc
	return nil
}

func (f *fakeStore) Update(_ context.Context, _, collection, id string, record any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bucket(collection)[id]; !ok {
		return shared.ErrNotFound
	}
	f.bucket(collection)[id] = toDoc(record)
	return nil
}

func (f *fakeStore) Delete(_ context.Context, _, collection, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.bucket(collection)[id]; !ok {
		return shared.ErrNotFound
	}
	delete(f.bucket(collection), id)
	return nil
}

func (f *fakeStore) count(collection string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bucket(collection))
}

type fakeSub struct {
	ch   chan []ledger.Document
	once sync.Once
}

func (s *fakeSub) Updates() <-chan []ledger.Document { return s.ch }

func (s *fakeSub) Stop() { s.once.Do(func() { close(s.ch) }) }
