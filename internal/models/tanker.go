package models

import (
	"errors"
	"fmt"
	"time"
)

// TankerStatus is the operational state of a tanker.
type TankerStatus string

const (
	TankerActive      TankerStatus = "active"
	TankerMaintenance TankerStatus = "maintenance"
	TankerDeployed    TankerStatus = "deployed"
	TankerInactive    TankerStatus = "inactive"
)

// Valid reports whether s is a known tanker status.
func (s TankerStatus) Valid() bool {
	switch s {
	case TankerActive, TankerMaintenance, TankerDeployed, TankerInactive:
		return true
	}
	return false
}

// Tanker is a mobile water tank (a "bowser") that can be deployed to a location.
type Tanker struct {
	BaseModel

	Number          string       `gorm:"uniqueIndex;size:20;not null" json:"number"`
	Capacity        float64      `gorm:"not null" json:"capacity"`
	CurrentLevel    float64      `gorm:"not null;default:0" json:"current_level"`
	Status          TankerStatus `gorm:"size:20;not null" json:"status"`
	Owner           string       `gorm:"size:100" json:"owner"`
	LastMaintenance *time.Time   `json:"last_maintenance"`
	Notes           string       `gorm:"type:text" json:"notes"`
}

// TableName keeps the historical table name.
func (Tanker) TableName() string { return "bowsers" }

// Validate checks the field invariants the database does not enforce.
func (t *Tanker) Validate() error {
	if t.Capacity <= 0 {
		return errors.New("capacity must be greater than zero")
	}
	if t.CurrentLevel < 0 {
		return errors.New("current_level cannot be negative")
	}
	if t.CurrentLevel > t.Capacity {
		return fmt.Errorf("current_level %.2f exceeds capacity %.2f", t.CurrentLevel, t.Capacity)
	}
	if !t.Status.Valid() {
		return fmt.Errorf("invalid status %q", t.Status)
	}
	return nil
}
