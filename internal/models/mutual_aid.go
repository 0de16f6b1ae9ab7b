package models

import "time"

// MutualAidScheme pools contributions from members. Schemes live in the document store.
type MutualAidScheme struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	StartDate          time.Time  `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	ContributionAmount float64    `json:"contribution_amount"`
	Balance            float64    `json:"balance"`
	Status             string     `json:"status"`
	Notes              string     `json:"notes"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// MutualAidContribution is a payment into a scheme.
type MutualAidContribution struct {
	ID               string    `json:"id"`
	SchemeID         string    `json:"scheme_id"`
	ContributorName  string    `json:"contributor_name"`
	Amount           float64   `json:"amount"`
	ContributionDate time.Time `json:"contribution_date"`
	ReceiptNumber    string    `json:"receipt_number"`
	Notes            string    `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
