// Package docstore keeps documents in named collections inside one flat
// structure (collection name -> ordered documents) held by a Backend.
//
// Every mutation loads the whole structure, changes it in memory and saves the
// whole structure back before returning. There is no lock around that cycle:
// two concurrent writers, in one process or several, can both load the same
// state and the later Save wins, silently dropping the other write. The store
// is meant for low traffic, single writer use; callers needing concurrent
// writes must serialise them themselves.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aquaalert/aquaalert/pkg/logger"
	"github.com/aquaalert/aquaalert/pkg/metrics"
)

// Reserved document fields.
const (
	FieldID        = "id"
	FieldCreatedAt = "created_at"
	FieldUpdatedAt = "updated_at"
)

// ErrNotFound is returned when no document matches an id.
var ErrNotFound = errors.New("docstore: document not found")

// Document is a single JSON object.
type Document map[string]any

// ID returns the document identifier as text.
func (d Document) ID() string {
	return idString(d[FieldID])
}

// Data is the whole persisted structure.
type Data map[string][]Document

// Backend loads and saves the whole structure. Load on empty storage returns an
// empty Data and no error.
type Backend interface {
	Load(ctx context.Context) (Data, error)
	Save(ctx context.Context, data Data) error
}

// Option customises a Store.
type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides how missing ids are generated.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// Store implements collection operations over a Backend.
type Store struct {
	backend Backend
	now     func() time.Time
	newID   func() string
	log     *zap.Logger
}

// New returns a Store persisting through backend.
func New(backend Backend, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, errors.New("docstore: backend is required")
	}

	s := &Store{
		backend: backend,
		now:     time.Now,
		newID:   uuid.NewString,
		log:     logger.WithModule("docstore"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Create appends doc to collection, assigning an id when absent and stamping
// both timestamps.
func (s *Store) Create(ctx context.Context, collection string, doc Document) (Document, error) {
	created, err := s.BulkCreate(ctx, collection, []Document{doc})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

// Get returns the document with id, or ErrNotFound.
func (s *Store) Get(ctx context.Context, collection, id string) (Document, error) {
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	for _, doc := range data[collection] {
		if doc.ID() == id {
			return doc, nil
		}
	}
	return nil, ErrNotFound
}

// All returns every document of collection in stored order.
func (s *Store) All(ctx context.Context, collection string) ([]Document, error) {
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	docs := data[collection]
	if docs == nil {
		return []Document{}, nil
	}
	return docs, nil
}

// Update shallow-merges fields into the document with id and re-stamps
// updated_at. The id and created_at fields cannot be changed.
func (s *Store) Update(ctx context.Context, collection, id string, fields Document) (Document, error) {
	patch := cloneDocument(fields)
	patch[FieldID] = id

	updated, err := s.BulkUpdate(ctx, collection, []Document{patch})
	if err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, ErrNotFound
	}
	return updated[0], nil
}

// Delete removes the document with id and reports whether it existed.
func (s *Store) Delete(ctx context.Context, collection, id string) (bool, error) {
	n, err := s.BulkDelete(ctx, collection, []string{id})
	return n > 0, err
}

// Query returns documents whose fields equal every filter value. A document
// lacking a filtered field never matches.
func (s *Store) Query(ctx context.Context, collection string, filter Document) ([]Document, error) {
	normalised, err := normalise(filter)
	if err != nil {
		return nil, fmt.Errorf("docstore: normalise filter: %w", err)
	}

	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	results := []Document{}
	for _, doc := range data[collection] {
		if matches(doc, normalised) {
			results = append(results, doc)
		}
	}
	return results, nil
}

// BulkCreate appends docs in order with a single save.
func (s *Store) BulkCreate(ctx context.Context, collection string, docs []Document) ([]Document, error) {
	if err := validCollection(collection); err != nil {
		return nil, err
	}

	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	stamp := s.timestamp()
	created := make([]Document, 0, len(docs))
	for _, doc := range docs {
		normalised, err := normalise(doc)
		if err != nil {
			return nil, fmt.Errorf("docstore: normalise document: %w", err)
		}
		if normalised.ID() == "" {
			normalised[FieldID] = s.newID()
		}
		normalised[FieldCreatedAt] = stamp
		normalised[FieldUpdatedAt] = stamp
		created = append(created, normalised)
	}

	data[collection] = append(data[collection], created...)
	if err := s.save(ctx, collection, "create", len(created), data); err != nil {
		return nil, err
	}
	return created, nil
}

// BulkUpdate merges each patch into the document named by its id field.
// Patches without an id or matching no document are skipped. Nothing is saved
// when no document changed.
func (s *Store) BulkUpdate(ctx context.Context, collection string, patches []Document) ([]Document, error) {
	data, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	stamp := s.timestamp()
	docs := data[collection]
	updated := []Document{}
	for _, patch := range patches {
		id := idString(patch[FieldID])
		if id == "" {
			continue
		}
		normalised, err := normalise(patch)
		if err != nil {
			return nil, fmt.Errorf("docstore: normalise patch: %w", err)
		}

		for _, doc := range docs {
			if doc.ID() != id {
				continue
			}
			for key, value := range normalised {
				if key == FieldID || key == FieldCreatedAt {
					continue
				}
				doc[key] = value
			}
			doc[FieldUpdatedAt] = stamp
			updated = append(updated, doc)
			break
		}
	}

	if len(updated) == 0 {
		return updated, nil
	}
	if err := s.save(ctx, collection, "update", len(updated), data); err != nil {
		return nil, err
	}
	return updated, nil
}

// BulkDelete removes every document whose id is listed and returns how many went.
func (s *Store) BulkDelete(ctx context.Context, collection string, ids []string) (int, error) {
	data, err := s.load(ctx)
	if err != nil {
		return 0, err
	}

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	docs := data[collection]
	kept := make([]Document, 0, len(docs))
	for _, doc := range docs {
		if _, ok := drop[doc.ID()]; ok {
			continue
		}
		kept = append(kept, doc)
	}

	deleted := len(docs) - len(kept)
	if deleted == 0 {
		return 0, nil
	}

	data[collection] = kept
	if err := s.save(ctx, collection, "delete", deleted, data); err != nil {
		return 0, err
	}
	return deleted, nil
}

func (s *Store) load(ctx context.Context) (Data, error) {
	data, err := s.backend.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("docstore: load: %w", err)
	}
	if data == nil {
		data = Data{}
	}
	return data, nil
}

func (s *Store) save(ctx context.Context, collection, op string, count int, data Data) error {
	if err := s.backend.Save(ctx, data); err != nil {
		s.log.Error("save failed", zap.String("collection", collection), zap.String("op", op), zap.Error(err))
		return fmt.Errorf("docstore: save: %w", err)
	}
	metrics.DocumentWrites.WithLabelValues(collection, op).Add(float64(count))
	return nil
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}

func validCollection(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("docstore: collection name is required")
	}
	return nil
}

// normalise round-trips v through JSON so in-memory values compare equal to
// values decoded from storage (all numbers become float64, times become text).
func normalise(v any) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

func matches(doc, filter Document) bool {
	for key, want := range filter {
		got, ok := doc[key]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}

func idString(v any) string {
	switch id := v.(type) {
	case nil:
		return ""
	case string:
		return id
	case float64:
		return fmt.Sprintf("%v", id)
	default:
		return fmt.Sprint(id)
	}
}

func cloneDocument(doc Document) Document {
	cpy := make(Document, len(doc)+1)
	for k, v := range doc {
		cpy[k] = v
	}
	return cpy
}
