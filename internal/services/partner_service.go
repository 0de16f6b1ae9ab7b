package services

import (
	"context"
	"errors"
	"net/mail"

	"gorm.io/gorm"

	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/internal/sanitizer"
	apperrors "github.com/aquaalert/aquaalert/pkg/errors"
)

// PartnerService manages partner organisations.
type PartnerService struct {
	repo relational[models.Partner]
}

// NewPartnerService constructs a PartnerService.
func NewPartnerService(db *gorm.DB) (*PartnerService, error) {
	if db == nil {
		return nil, errors.New("partner service: db is required")
	}

	repo := newRelational[models.Partner](db, "Partner")
	repo.columns = []string{"type"}
	repo.order = "name ASC"
	repo.prepare = func(_ *gorm.DB, p *models.Partner) error {
		p.Name = sanitizer.Text(p.Name)
		p.ContactPerson = sanitizer.Text(p.ContactPerson)
		p.Address = sanitizer.Text(p.Address)
		if p.Name == "" {
			return apperrors.NewValidation("name cannot be empty")
		}
		if p.Email != "" {
			if _, err := mail.ParseAddress(p.Email); err != nil {
				return apperrors.NewValidation("email is not a valid address")
			}
		}
		return nil
	}
	return &PartnerService{repo: repo}, nil
}

func (s *PartnerService) Create(ctx context.Context, partner *models.Partner) error {
	return s.repo.create(ctx, partner)
}

func (s *PartnerService) Get(ctx context.Context, id string) (*models.Partner, error) {
	return s.repo.get(ctx, id)
}

func (s *PartnerService) List(ctx context.Context, filter Filter) ([]models.Partner, error) {
	return s.repo.list(ctx, filter)
}

func (s *PartnerService) Update(ctx context.Context, id string, mutate func(*models.Partner) error) (*models.Partner, error) {
	return s.repo.update(ctx, id, mutate)
}

func (s *PartnerService) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.delete(ctx, id)
}
