package models

import (
	"errors"
	"fmt"
	"time"
)

// DeploymentStatus tracks a deployment through its lifecycle.
type DeploymentStatus string

const (
	DeploymentScheduled DeploymentStatus = "scheduled"
	DeploymentActive    DeploymentStatus = "active"
	DeploymentCompleted DeploymentStatus = "completed"
	DeploymentCancelled DeploymentStatus = "cancelled"
)

// Valid reports whether s is a known deployment status.
func (s DeploymentStatus) Valid() bool {
	switch s {
	case DeploymentScheduled, DeploymentActive, DeploymentCompleted, DeploymentCancelled:
		return true
	}
	return false
}

// Priority ranks how urgently a deployment is needed.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Rank orders priorities; unknown values rank 0.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityCritical:
		return 4
	default:
		return 0
	}
}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool { return p.Rank() > 0 }

// Deployment places a tanker at a location for a period of time.
type Deployment struct {
	BaseModel

	BowserID   string    `gorm:"size:36;not null;index" json:"bowser_id"`
	Bowser     *Tanker   `gorm:"foreignKey:BowserID;constraint:OnDelete:RESTRICT" json:"bowser,omitempty"`
	LocationID string    `gorm:"size:36;not null;index" json:"location_id"`
	Location   *Location `gorm:"foreignKey:LocationID;constraint:OnDelete:RESTRICT" json:"location,omitempty"`

	StartDate time.Time        `gorm:"not null" json:"start_date"`
	EndDate   *time.Time       `json:"end_date"`
	Status    DeploymentStatus `gorm:"size:20;not null" json:"status"`
	Priority  Priority         `gorm:"size:20;not null;default:medium" json:"priority"`

	EmergencyReason    string  `gorm:"type:text" json:"emergency_reason"`
	PopulationAffected int     `gorm:"not null;default:0" json:"population_affected"`
	ExpectedDuration   int     `gorm:"not null;default:0" json:"expected_duration"`
	AlternativeSources bool    `gorm:"not null;default:false" json:"alternative_sources"`
	VulnerabilityIndex float64 `gorm:"not null;default:0" json:"vulnerability_index"`
	Notes              string  `gorm:"type:text" json:"notes"`
}

// Validate checks the field invariants the database does not enforce.
func (d *Deployment) Validate() error {
	if !d.Status.Valid() {
		return fmt.Errorf("invalid status %q", d.Status)
	}
	if !d.Priority.Valid() {
		return fmt.Errorf("invalid priority %q", d.Priority)
	}
	if d.EndDate != nil && d.EndDate.Before(d.StartDate) {
		return errors.New("end_date must not be before start_date")
	}
	if d.PopulationAffected < 0 || d.ExpectedDuration < 0 {
		return errors.New("population_affected and expected_duration cannot be negative")
	}
	return nil
}

// Ongoing reports whether the deployment has no end date.
func (d *Deployment) Ongoing() bool { return d.EndDate == nil }
