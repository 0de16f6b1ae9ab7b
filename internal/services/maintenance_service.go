package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/internal/sanitizer"
	apperrors "github.com/aquaalert/aquaalert/pkg/errors"
)

// MaintenanceService records servicing work on tankers.
type MaintenanceService struct {
	repo relational[models.Maintenance]
}

// NewMaintenanceService constructs a MaintenanceService.
func NewMaintenanceService(db *gorm.DB) (*MaintenanceService, error) {
	if db == nil {
		return nil, errors.New("maintenance service: db is required")
	}

	repo := newRelational[models.Maintenance](db, "Maintenance record")
	repo.columns = []string{"status", "bowser_id", "maintenance_type"}
	repo.order = "date DESC"
	repo.prepare = func(tx *gorm.DB, m *models.Maintenance) error {
		m.Description = sanitizer.Text(m.Description)
		if m.Description == "" {
			return apperrors.NewValidation("description cannot be empty")
		}
		var count int64
		if err := tx.Model(&models.Tanker{}).Where("id = ?", m.BowserID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperrors.NewValidation("bowser_id does not reference an existing bowser")
		}
		return nil
	}
	return &MaintenanceService{repo: repo}, nil
}

func (s *MaintenanceService) Create(ctx context.Context, record *models.Maintenance) error {
	return s.repo.create(ctx, record)
}

func (s *MaintenanceService) Get(ctx context.Context, id string) (*models.Maintenance, error) {
	return s.repo.get(ctx, id, "Bowser")
}

// List filters by status, bowser_id or maintenance_type.
func (s *MaintenanceService) List(ctx context.Context, filter Filter) ([]models.Maintenance, error) {
	return s.repo.list(ctx, filter, "Bowser")
}

func (s *MaintenanceService) Update(ctx context.Context, id string, mutate func(*models.Maintenance) error) (*models.Maintenance, error) {
	return s.repo.update(ctx, id, mutate)
}

func (s *MaintenanceService) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.delete(ctx, id)
}
