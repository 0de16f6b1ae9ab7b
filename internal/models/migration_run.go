package models

import (
	"time"

	"gorm.io/datatypes"
)

// MigrationRun marks a completed copy of relational data into the document store.
type MigrationRun struct {
	BaseModel

	Version     string                             `gorm:"uniqueIndex;size:40;not null" json:"version"`
	CompletedAt time.Time                          `gorm:"not null" json:"completed_at"`
	Counts      datatypes.JSONType[map[string]int] `json:"counts"`
}
