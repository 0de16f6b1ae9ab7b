package models

import (
	"errors"
	"time"
)

// Invoice bills a client, optionally for a specific deployment.
type Invoice struct {
	BaseModel

	InvoiceNumber string      `gorm:"uniqueIndex;size:50;not null" json:"invoice_number"`
	ClientName    string      `gorm:"size:100;not null" json:"client_name"`
	IssueDate     time.Time   `gorm:"not null" json:"issue_date"`
	DueDate       time.Time   `gorm:"not null" json:"due_date"`
	Amount        float64     `gorm:"not null" json:"amount"`
	Status        string      `gorm:"size:20;not null;default:pending" json:"status"`
	DeploymentID  *string     `gorm:"size:36;index" json:"deployment_id"`
	Deployment    *Deployment `gorm:"foreignKey:DeploymentID;constraint:OnDelete:SET NULL" json:"-"`
	Notes         string      `gorm:"type:text" json:"notes"`
}

// Validate checks the field invariants the database does not enforce.
func (i *Invoice) Validate() error {
	if i.Amount < 0 {
		return errors.New("amount cannot be negative")
	}
	if i.DueDate.Before(i.IssueDate) {
		return errors.New("due_date must not be before issue_date")
	}
	return nil
}
