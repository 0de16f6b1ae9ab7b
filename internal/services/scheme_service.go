package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/aquaalert/aquaalert/internal/docstore"
	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/internal/sanitizer"
	apperrors "github.com/aquaalert/aquaalert/pkg/errors"
)

// Document collections holding mutual-aid data.
const (
	SchemesCollection       = "mutual_aid_schemes"
	ContributionsCollection = "mutual_aid_contributions"
)

// SchemeService manages mutual-aid schemes and their contributions in the
// document store.
type SchemeService struct {
	store         *docstore.Store
	schemes       documents[models.MutualAidScheme]
	contributions documents[models.MutualAidContribution]
}

// NewSchemeService constructs a SchemeService.
func NewSchemeService(store *docstore.Store) (*SchemeService, error) {
	if store == nil {
		return nil, errors.New("scheme service: document store is required")
	}
	return &SchemeService{
		store:         store,
		schemes:       newDocuments[models.MutualAidScheme](store, SchemesCollection, "Scheme"),
		contributions: newDocuments[models.MutualAidContribution](store, ContributionsCollection, "Contribution"),
	}, nil
}

func prepareScheme(s *models.MutualAidScheme) error {
	s.Name = sanitizer.Text(s.Name)
	s.Notes = sanitizer.Text(s.Notes)
	if s.Name == "" {
		return apperrors.NewValidation("name cannot be empty")
	}
	if s.ContributionAmount < 0 {
		return apperrors.NewValidation("contribution_amount cannot be negative")
	}
	if s.EndDate != nil && s.EndDate.Before(s.StartDate) {
		return apperrors.NewValidation("end_date must not be before start_date")
	}
	if strings.TrimSpace(s.Status) == "" {
		s.Status = "active"
	}
	return nil
}

// List returns schemes, latest start date first.
func (s *SchemeService) List(ctx context.Context) ([]models.MutualAidScheme, error) {
	items, err := s.schemes.all(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StartDate.After(items[j].StartDate)
	})
	return items, nil
}

func (s *SchemeService) Get(ctx context.Context, id string) (*models.MutualAidScheme, error) {
	return s.schemes.get(ctx, id)
}

// Create stores a new scheme. A new scheme always starts with a zero balance.
func (s *SchemeService) Create(ctx context.Context, scheme *models.MutualAidScheme) error {
	if err := prepareScheme(scheme); err != nil {
		return err
	}
	scheme.ID = ""
	scheme.Balance = 0
	return s.schemes.create(ctx, scheme)
}

// Update applies mutate to the stored scheme. The balance is only changed by
// contributions and is restored if mutate alters it.
func (s *SchemeService) Update(ctx context.Context, id string, mutate func(*models.MutualAidScheme) error) (*models.MutualAidScheme, error) {
	current, err := s.schemes.get(ctx, id)
	if err != nil {
		return nil, err
	}
	balance := current.Balance
	if mutate != nil {
		if err := mutate(current); err != nil {
			return nil, err
		}
	}
	current.Balance = balance
	if err := prepareScheme(current); err != nil {
		return nil, err
	}
	return s.schemes.replace(ctx, id, current)
}

// Delete removes a scheme together with its contributions.
func (s *SchemeService) Delete(ctx context.Context, id string) (bool, error) {
	deleted, err := s.schemes.delete(ctx, id)
	if err != nil || !deleted {
		return deleted, err
	}

	contributions, err := s.contributions.query(ctx, docstore.Document{"scheme_id": id})
	if err != nil {
		return true, err
	}
	if len(contributions) == 0 {
		return true, nil
	}
	ids := make([]string, 0, len(contributions))
	for _, c := range contributions {
		ids = append(ids, c.ID)
	}
	if _, err := s.store.BulkDelete(ensureContext(ctx), ContributionsCollection, ids); err != nil {
		return true, s.contributions.fail(err)
	}
	return true, nil
}

// Contributions lists the contributions of schemeID, latest first.
func (s *SchemeService) Contributions(ctx context.Context, schemeID string) ([]models.MutualAidContribution, error) {
	if _, err := s.schemes.get(ctx, schemeID); err != nil {
		return nil, err
	}
	items, err := s.contributions.query(ctx, docstore.Document{"scheme_id": schemeID})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].ContributionDate.After(items[j].ContributionDate)
	})
	return items, nil
}

// AddContribution records a payment into schemeID and adds its amount to the
// scheme balance. The two writes are separate document store saves.
func (s *SchemeService) AddContribution(ctx context.Context, schemeID string, contribution *models.MutualAidContribution) (*models.MutualAidScheme, error) {
	contribution.ContributorName = sanitizer.Text(contribution.ContributorName)
	contribution.Notes = sanitizer.Text(contribution.Notes)
	if contribution.ContributorName == "" {
		return nil, apperrors.NewValidation("contributor_name cannot be empty")
	}
	if contribution.Amount <= 0 {
		return nil, apperrors.NewValidation("amount must be positive")
	}

	scheme, err := s.schemes.get(ctx, schemeID)
	if err != nil {
		return nil, err
	}

	contribution.ID = ""
	contribution.SchemeID = schemeID
	if err := s.contributions.create(ctx, contribution); err != nil {
		return nil, err
	}

	updated, err := s.store.Update(ensureContext(ctx), SchemesCollection, schemeID, docstore.Document{
		"balance": scheme.Balance + contribution.Amount,
	})
	if err != nil {
		s.schemes.log.Error("contribution stored but balance not updated",
			zap.String("scheme_id", schemeID),
			zap.String("contribution_id", contribution.ID),
			zap.Error(err),
		)
		return nil, s.schemes.fail(err)
	}
	return s.schemes.decode(updated)
}
