package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/internal/sanitizer"
	apperrors "github.com/aquaalert/aquaalert/pkg/errors"
)

// LocationService manages delivery locations.
type LocationService struct {
	repo relational[models.Location]
}

// NewLocationService constructs a LocationService.
func NewLocationService(db *gorm.DB) (*LocationService, error) {
	if db == nil {
		return nil, errors.New("location service: db is required")
	}

	repo := newRelational[models.Location](db, "Location")
	repo.columns = []string{"status", "type", "area", "postcode"}
	repo.order = "name ASC"
	repo.prepare = func(_ *gorm.DB, l *models.Location) error {
		l.Name = sanitizer.Text(l.Name)
		l.Address = sanitizer.Text(l.Address)
		if l.Name == "" {
			return apperrors.NewValidation("name cannot be empty")
		}
		if l.Latitude < -90 || l.Latitude > 90 || l.Longitude < -180 || l.Longitude > 180 {
			return apperrors.NewValidation("latitude or longitude out of range")
		}
		if l.Status == "" {
			l.Status = "active"
		}
		return nil
	}
	return &LocationService{repo: repo}, nil
}

func (s *LocationService) Create(ctx context.Context, location *models.Location) error {
	return s.repo.create(ctx, location)
}

func (s *LocationService) Get(ctx context.Context, id string) (*models.Location, error) {
	return s.repo.get(ctx, id)
}

// List filters by status, type, area or postcode.
func (s *LocationService) List(ctx context.Context, filter Filter) ([]models.Location, error) {
	return s.repo.list(ctx, filter)
}

func (s *LocationService) Update(ctx context.Context, id string, mutate func(*models.Location) error) (*models.Location, error) {
	return s.repo.update(ctx, id, mutate)
}

// Delete fails with a validation error while deployments still reference the location.
func (s *LocationService) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.delete(ctx, id)
}
