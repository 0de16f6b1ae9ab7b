package models

import "time"

// Maintenance records servicing work performed on a tanker.
type Maintenance struct {
	BaseModel

	BowserID        string    `gorm:"size:36;not null;index" json:"bowser_id"`
	Bowser          *Tanker   `gorm:"foreignKey:BowserID;constraint:OnDelete:RESTRICT" json:"bowser,omitempty"`
	MaintenanceType string    `gorm:"size:50;not null" json:"maintenance_type"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	Date            time.Time `gorm:"not null" json:"date"`
	Status          string    `gorm:"size:20;not null" json:"status"`
}

// TableName keeps maintenance records in a singular table.
func (Maintenance) TableName() string { return "maintenance" }
