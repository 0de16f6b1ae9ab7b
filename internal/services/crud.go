package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aquaalert/aquaalert/pkg/logger"
)

// relational implements the CRUD cycle shared by every gorm-backed entity.
// Writes run in a transaction; any error, including a failed prepare hook,
// rolls the transaction back before it is returned.
type relational[T any] struct {
	db        *gorm.DB
	resource  string
	columns   []string
	order     string
	duplicate string
	prepare   func(tx *gorm.DB, entity *T) error
	log       *zap.Logger
}

func newRelational[T any](db *gorm.DB, resource string) relational[T] {
	return relational[T]{
		db:        db,
		resource:  resource,
		order:     "created_at DESC",
		duplicate: resource + " already exists",
		log:       logger.WithModule("services"),
	}
}

func (r relational[T]) get(ctx context.Context, id string, preload ...string) (*T, error) {
	q := r.db.WithContext(ensureContext(ctx))
	for _, rel := range preload {
		q = q.Preload(rel)
	}

	var entity T
	if err := q.Take(&entity, "id = ?", id).Error; err != nil {
		return nil, r.read(err)
	}
	return &entity, nil
}

func (r relational[T]) list(ctx context.Context, filter Filter, preload ...string) ([]T, error) {
	q := r.db.WithContext(ensureContext(ctx))
	if where := filter.allowed(r.columns...); len(where) > 0 {
		q = q.Where(where)
	}
	for _, rel := range preload {
		q = q.Preload(rel)
	}

	items := []T{}
	if err := q.Order(r.order).Find(&items).Error; err != nil {
		return nil, r.read(err)
	}
	return items, nil
}

func (r relational[T]) create(ctx context.Context, entity *T) error {
	err := r.db.WithContext(ensureContext(ctx)).Transaction(func(tx *gorm.DB) error {
		if r.prepare != nil {
			if err := r.prepare(tx, entity); err != nil {
				return err
			}
		}
		return tx.Create(entity).Error
	})
	return r.write(err)
}

func (r relational[T]) update(ctx context.Context, id string, mutate func(*T) error) (*T, error) {
	var entity T
	err := r.db.WithContext(ensureContext(ctx)).Transaction(func(tx *gorm.DB) error {
		if err := tx.Take(&entity, "id = ?", id).Error; err != nil {
			return r.read(err)
		}
		if mutate != nil {
			if err := mutate(&entity); err != nil {
				return err
			}
		}
		if r.prepare != nil {
			if err := r.prepare(tx, &entity); err != nil {
				return err
			}
		}
		return tx.Save(&entity).Error
	})
	if err != nil {
		return nil, r.write(err)
	}
	return &entity, nil
}

func (r relational[T]) delete(ctx context.Context, id string) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ensureContext(ctx)).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(new(T), "id = ?", id)
		deleted = res.RowsAffected > 0
		return res.Error
	})
	if err != nil {
		return false, r.write(err)
	}
	return deleted, nil
}

func (r relational[T]) read(err error) error {
	out := readError(err, r.resource)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		r.log.Error("read failed", zap.String("resource", r.resource), zap.Error(err))
	}
	return out
}

func (r relational[T]) write(err error) error {
	if err == nil {
		return nil
	}
	out := writeError(err, r.duplicate)
	r.log.Warn("write rejected", zap.String("resource", r.resource), zap.Error(err))
	return out
}
