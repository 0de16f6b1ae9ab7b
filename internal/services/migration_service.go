package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/aquaalert/aquaalert/internal/docstore"
	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/pkg/logger"
)

// MigrationVersion identifies the current relational to document copy.
// Bump it when the copied collections or document shape change.
const MigrationVersion = "2024-documents-v1"

// MigrationResult describes one run of the copy job.
type MigrationResult struct {
	Version string
	// Skipped is set when a completed run of Version already exists.
	Skipped bool
	Copied  map[string]int
	Existed map[string]int
}

type migrationSource struct {
	collection string
	load       func(tx *gorm.DB) ([]any, error)
}

// MigrationService copies relational rows into the document store.
type MigrationService struct {
	db      *gorm.DB
	store   *docstore.Store
	now     func() time.Time
	sources []migrationSource
	log     *zap.Logger
}

// NewMigrationService constructs the copy job.
func NewMigrationService(db *gorm.DB, store *docstore.Store) (*MigrationService, error) {
	if db == nil {
		return nil, errors.New("migration service: db is required")
	}
	if store == nil {
		return nil, errors.New("migration service: document store is required")
	}

	return &MigrationService{
		db:    db,
		store: store,
		now:   time.Now,
		sources: []migrationSource{
			{"bowsers", rows[models.Tanker]},
			{"locations", rows[models.Location]},
			{"maintenance", rows[models.Maintenance]},
			{"deployments", rows[models.Deployment]},
			{invoicesCollection, rows[models.Invoice]},
			{"partners", rows[models.Partner]},
			{"alerts", rows[models.Alert]},
		},
		log: logger.WithModule("migration"),
	}, nil
}

func rows[T any](tx *gorm.DB) ([]any, error) {
	var items []T
	if err := tx.Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	out := make([]any, len(items))
	for i := range items {
		out[i] = &items[i]
	}
	return out, nil
}

// Run copies every collection unless a completed run of MigrationVersion is
// recorded. Documents whose id already exists in the target collection are
// left alone, so an interrupted run can be repeated safely. Failures of
// individual collections are combined; the completion marker is only written
// when every collection copied cleanly.
func (m *MigrationService) Run(ctx context.Context) (*MigrationResult, error) {
	ctx = ensureContext(ctx)
	result := &MigrationResult{
		Version: MigrationVersion,
		Copied:  map[string]int{},
		Existed: map[string]int{},
	}

	var previous models.MigrationRun
	err := m.db.WithContext(ctx).Where("version = ?", MigrationVersion).Take(&previous).Error
	switch {
	case err == nil:
		result.Skipped = true
		result.Copied = previous.Counts.Data()
		m.log.Info("migration already completed", zap.String("version", MigrationVersion), zap.Time("completed_at", previous.CompletedAt))
		return result, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, fmt.Errorf("migration: read marker: %w", err)
	}

	var errs error
	for _, src := range m.sources {
		copied, existed, err := m.copy(ctx, src)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", src.collection, err))
			continue
		}
		result.Copied[src.collection] = copied
		result.Existed[src.collection] = existed
		m.log.Info("collection copied",
			zap.String("collection", src.collection),
			zap.Int("copied", copied),
			zap.Int("existed", existed),
		)
	}
	if errs != nil {
		return result, errs
	}

	marker := &models.MigrationRun{
		Version:     MigrationVersion,
		CompletedAt: m.now().UTC(),
		Counts:      datatypes.NewJSONType(result.Copied),
	}
	if err := m.db.WithContext(ctx).Create(marker).Error; err != nil {
		return result, fmt.Errorf("migration: write marker: %w", err)
	}
	return result, nil
}

func (m *MigrationService) copy(ctx context.Context, src migrationSource) (int, int, error) {
	items, err := src.load(m.db.WithContext(ctx))
	if err != nil {
		return 0, 0, fmt.Errorf("load rows: %w", err)
	}

	existing, err := m.store.All(ctx, src.collection)
	if err != nil {
		return 0, 0, err
	}
	seen := make(map[string]struct{}, len(existing))
	for _, doc := range existing {
		seen[doc.ID()] = struct{}{}
	}

	pending := make([]docstore.Document, 0, len(items))
	var existed int
	for _, item := range items {
		doc, err := docstore.ToDocument(item)
		if err != nil {
			return 0, 0, err
		}
		if _, ok := seen[doc.ID()]; ok {
			existed++
			continue
		}
		pending = append(pending, doc)
	}

	if len(pending) == 0 {
		return 0, existed, nil
	}
	if _, err := m.store.BulkCreate(ctx, src.collection, pending); err != nil {
		return 0, existed, err
	}
	return len(pending), existed, nil
}
