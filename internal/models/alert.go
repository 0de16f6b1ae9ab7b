package models

import "time"

// Alert states.
const (
	AlertOpen     = "open"
	AlertResolved = "resolved"
)

// Alert is an operational notice raised by staff.
type Alert struct {
	BaseModel

	Title      string     `gorm:"size:100;not null" json:"title"`
	Message    string     `gorm:"type:text;not null" json:"message"`
	AlertType  string     `gorm:"size:50;not null" json:"alert_type"`
	Priority   string     `gorm:"size:20;not null" json:"priority"`
	Status     string     `gorm:"size:20;not null;default:open" json:"status"`
	ResolvedAt *time.Time `json:"resolved_at"`
}
