package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/internal/sanitizer"
	apperrors "github.com/aquaalert/aquaalert/pkg/errors"
)

// TankerService manages the fleet of bowsers.
type TankerService struct {
	repo relational[models.Tanker]
}

// NewTankerService constructs a TankerService.
func NewTankerService(db *gorm.DB) (*TankerService, error) {
	if db == nil {
		return nil, errors.New("tanker service: db is required")
	}

	repo := newRelational[models.Tanker](db, "Bowser")
	repo.columns = []string{"status", "owner", "number"}
	repo.order = "number ASC"
	repo.duplicate = "Bowser number already exists"
	repo.prepare = func(_ *gorm.DB, t *models.Tanker) error {
		t.Owner = sanitizer.Text(t.Owner)
		t.Notes = sanitizer.Text(t.Notes)
		if err := t.Validate(); err != nil {
			return apperrors.NewValidation(err.Error())
		}
		return nil
	}
	return &TankerService{repo: repo}, nil
}

func (s *TankerService) Create(ctx context.Context, tanker *models.Tanker) error {
	return s.repo.create(ctx, tanker)
}

func (s *TankerService) Get(ctx context.Context, id string) (*models.Tanker, error) {
	return s.repo.get(ctx, id)
}

// List filters by status, owner or number.
func (s *TankerService) List(ctx context.Context, filter Filter) ([]models.Tanker, error) {
	return s.repo.list(ctx, filter)
}

func (s *TankerService) Update(ctx context.Context, id string, mutate func(*models.Tanker) error) (*models.Tanker, error) {
	return s.repo.update(ctx, id, mutate)
}

// Delete removes a tanker. Tankers with deployments or maintenance records are
// rejected with ErrTankerInUse unless cascade is set, in which case the
// dependants are removed in the same transaction.
func (s *TankerService) Delete(ctx context.Context, id string, cascade bool) (bool, error) {
	var deleted bool
	err := s.repo.db.WithContext(ensureContext(ctx)).Transaction(func(tx *gorm.DB) error {
		var deployments, maintenance int64
		if err := tx.Model(&models.Deployment{}).Where("bowser_id = ?", id).Count(&deployments).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Maintenance{}).Where("bowser_id = ?", id).Count(&maintenance).Error; err != nil {
			return err
		}

		if deployments+maintenance > 0 {
			if !cascade {
				return ErrTankerInUse
			}
			if err := tx.Where("bowser_id = ?", id).Delete(&models.Maintenance{}).Error; err != nil {
				return err
			}
			if err := tx.Where("bowser_id = ?", id).Delete(&models.Deployment{}).Error; err != nil {
				return err
			}
		}

		res := tx.Delete(&models.Tanker{}, "id = ?", id)
		deleted = res.RowsAffected > 0
		return res.Error
	})
	if err != nil {
		return false, s.repo.write(err)
	}
	return deleted, nil
}
