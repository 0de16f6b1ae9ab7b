package services

import (
	"context"
	"errors"
	"sort"

	"gorm.io/gorm"

	"github.com/aquaalert/aquaalert/internal/models"
	"github.com/aquaalert/aquaalert/internal/sanitizer"
	apperrors "github.com/aquaalert/aquaalert/pkg/errors"
)

// DeploymentService schedules tankers at locations.
type DeploymentService struct {
	repo relational[models.Deployment]
}

// NewDeploymentService constructs a DeploymentService.
func NewDeploymentService(db *gorm.DB) (*DeploymentService, error) {
	if db == nil {
		return nil, errors.New("deployment service: db is required")
	}

	repo := newRelational[models.Deployment](db, "Deployment")
	repo.columns = []string{"status", "priority", "bowser_id", "location_id"}
	repo.order = "start_date DESC"
	repo.prepare = prepareDeployment
	return &DeploymentService{repo: repo}, nil
}

func prepareDeployment(tx *gorm.DB, d *models.Deployment) error {
	d.Notes = sanitizer.Text(d.Notes)
	d.EmergencyReason = sanitizer.Text(d.EmergencyReason)
	if d.Priority == "" {
		d.Priority = models.PriorityMedium
	}
	if err := d.Validate(); err != nil {
		return apperrors.NewValidation(err.Error())
	}

	var count int64
	if err := tx.Model(&models.Tanker{}).Where("id = ?", d.BowserID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperrors.NewValidation("bowser_id does not reference an existing bowser")
	}
	if err := tx.Model(&models.Location{}).Where("id = ?", d.LocationID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return apperrors.NewValidation("location_id does not reference an existing location")
	}
	return nil
}

func (s *DeploymentService) Create(ctx context.Context, deployment *models.Deployment) error {
	return s.repo.create(ctx, deployment)
}

func (s *DeploymentService) Get(ctx context.Context, id string) (*models.Deployment, error) {
	return s.repo.get(ctx, id, "Bowser", "Location")
}

// List filters by status, priority, bowser_id or location_id.
func (s *DeploymentService) List(ctx context.Context, filter Filter) ([]models.Deployment, error) {
	return s.repo.list(ctx, filter, "Bowser", "Location")
}

func (s *DeploymentService) Update(ctx context.Context, id string, mutate func(*models.Deployment) error) (*models.Deployment, error) {
	return s.repo.update(ctx, id, mutate)
}

func (s *DeploymentService) Delete(ctx context.Context, id string) (bool, error) {
	return s.repo.delete(ctx, id)
}

// PriorityUpdate carries the emergency context set from the priority screen.
type PriorityUpdate struct {
	Priority           models.Priority
	EmergencyReason    *string
	PopulationAffected *int
	VulnerabilityIndex *float64
}

// UpdatePriority changes the priority and emergency context of a deployment.
func (s *DeploymentService) UpdatePriority(ctx context.Context, id string, update PriorityUpdate) (*models.Deployment, error) {
	if !update.Priority.Valid() {
		return nil, apperrors.NewValidation("priority must be one of low, medium, high, critical")
	}
	return s.repo.update(ctx, id, func(d *models.Deployment) error {
		d.Priority = update.Priority
		if update.EmergencyReason != nil {
			d.EmergencyReason = *update.EmergencyReason
		}
		if update.PopulationAffected != nil {
			d.PopulationAffected = *update.PopulationAffected
		}
		if update.VulnerabilityIndex != nil {
			d.VulnerabilityIndex = *update.VulnerabilityIndex
		}
		return nil
	})
}

// ActiveByPriority lists active deployments, most urgent first, then by
// population affected.
func (s *DeploymentService) ActiveByPriority(ctx context.Context) ([]models.Deployment, error) {
	items, err := s.repo.list(ctx, Filter{"status": string(models.DeploymentActive)}, "Bowser", "Location")
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if ri, rj := items[i].Priority.Rank(), items[j].Priority.Rank(); ri != rj {
			return ri > rj
		}
		return items[i].PopulationAffected > items[j].PopulationAffected
	})
	return items, nil
}

// CurrentLocations maps tanker id to the location of its active deployment.
func (s *DeploymentService) CurrentLocations(ctx context.Context) (map[string]*models.Location, error) {
	active, err := s.repo.list(ctx, Filter{"status": string(models.DeploymentActive)}, "Location")
	if err != nil {
		return nil, err
	}
	out := make(map[string]*models.Location, len(active))
	for i := range active {
		if active[i].Location != nil {
			out[active[i].BowserID] = active[i].Location
		}
	}
	return out, nil
}
