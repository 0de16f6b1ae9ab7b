package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/internal/sanitizer"
	apperrors "github.com/aquaalert/aquaalert/pkg/errors"
)

// AlertService raises and resolves operational alerts.
type AlertService struct {
	repo relational[models.Alert]
	now  func() time.Time
}

// NewAlertService constructs an AlertService.
func NewAlertService(db *gorm.DB) (*AlertService, error) {
	if db == nil {
		return nil, errors.New("alert service: db is required")
	}

	repo := newRelational[models.Alert](db, "Alert")
	repo.columns = []string{"status", "priority", "alert_type"}
	repo.prepare = func(_ *gorm.DB, a *models.Alert) error {
		a.Title = sanitizer.Text(a.Title)
		a.Message = sanitizer.Text(a.Message)
		if a.Title == "" || a.Message == "" {
			return apperrors.NewValidation("title and message cannot be empty")
		}
		if a.Status == "" {
			a.Status = models.AlertOpen
		}
		return nil
	}
	return &AlertService{repo: repo, now: time.Now}, nil
}

func (s *AlertService) Create(ctx context.Context, alert *models.Alert) error {
	return s.repo.create(ctx, alert)
}

// List filters by status, priority or alert_type, newest first.
func (s *AlertService) List(ctx context.Context, filter Filter) ([]models.Alert, error) {
	return s.repo.list(ctx, filter)
}

// Resolve marks an alert resolved. Resolving twice keeps the first timestamp.
func (s *AlertService) Resolve(ctx context.Context, id string) (*models.Alert, error) {
	return s.repo.update(ctx, id, func(a *models.Alert) error {
		if a.Status == models.AlertResolved && a.ResolvedAt != nil {
			return nil
		}
		now := s.now().UTC()
		a.Status = models.AlertResolved
		a.ResolvedAt = &now
		return nil
	})
}
