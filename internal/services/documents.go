package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/aquaalert/aquaalert/internal/docstore"
	apperrors "github.com/aquaalert/aquaalert/pkg/errors"
	"github.com/aquaalert/aquaalert/pkg/logger"
)

// documents maps typed entities onto one document store collection. Entities
// are encoded through their JSON tags; the store owns id and timestamps.
type documents[T any] struct {
	store      *docstore.Store
	collection string
	resource   string
	log        *zap.Logger
}

func newDocuments[T any](store *docstore.Store, collection, resource string) documents[T] {
	return documents[T]{
		store:      store,
		collection: collection,
		resource:   resource,
		log:        logger.WithModule("services"),
	}
}

func (d documents[T]) all(ctx context.Context) ([]T, error) {
	docs, err := d.store.All(ensureContext(ctx), d.collection)
	if err != nil {
		return nil, d.fail(err)
	}
	return d.decodeAll(docs)
}

func (d documents[T]) query(ctx context.Context, filter docstore.Document) ([]T, error) {
	docs, err := d.store.Query(ensureContext(ctx), d.collection, filter)
	if err != nil {
		return nil, d.fail(err)
	}
	return d.decodeAll(docs)
}

func (d documents[T]) get(ctx context.Context, id string) (*T, error) {
	doc, err := d.store.Get(ensureContext(ctx), d.collection, id)
	if err != nil {
		return nil, d.fail(err)
	}
	return d.decode(doc)
}

// create stores entity and refreshes it with the assigned id and timestamps.
func (d documents[T]) create(ctx context.Context, entity *T) error {
	doc, err := d.encode(entity)
	if err != nil {
		return err
	}
	created, err := d.store.Create(ensureContext(ctx), d.collection, doc)
	if err != nil {
		return d.fail(err)
	}
	return d.into(created, entity)
}

// replace writes every field of entity over the stored document id.
func (d documents[T]) replace(ctx context.Context, id string, entity *T) (*T, error) {
	doc, err := d.encode(entity)
	if err != nil {
		return nil, err
	}
	updated, err := d.store.Update(ensureContext(ctx), d.collection, id, doc)
	if err != nil {
		return nil, d.fail(err)
	}
	return d.decode(updated)
}

func (d documents[T]) delete(ctx context.Context, id string) (bool, error) {
	ok, err := d.store.Delete(ensureContext(ctx), d.collection, id)
	if err != nil {
		return false, d.fail(err)
	}
	return ok, nil
}

func (d documents[T]) encode(entity *T) (docstore.Document, error) {
	doc, err := docstore.ToDocument(entity)
	if err != nil {
		return nil, d.fail(err)
	}
	delete(doc, docstore.FieldCreatedAt)
	delete(doc, docstore.FieldUpdatedAt)
	if doc.ID() == "" {
		delete(doc, docstore.FieldID)
	}
	return doc, nil
}

func (d documents[T]) decode(doc docstore.Document) (*T, error) {
	var entity T
	if err := d.into(doc, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

func (d documents[T]) into(doc docstore.Document, entity *T) error {
	if err := docstore.Decode(doc, entity); err != nil {
		return d.fail(err)
	}
	return nil
}

func (d documents[T]) decodeAll(docs []docstore.Document) ([]T, error) {
	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		var entity T
		if err := d.into(doc, &entity); err != nil {
			return nil, err
		}
		items = append(items, entity)
	}
	return items, nil
}

func (d documents[T]) fail(err error) error {
	if errors.Is(err, docstore.ErrNotFound) {
		return apperrors.NewNotFound(d.resource)
	}
	d.log.Error("document store failure", zap.String("collection", d.collection), zap.Error(err))
	return apperrors.NewStorage(err)
}
