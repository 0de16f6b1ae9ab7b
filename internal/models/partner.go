package models

// Partner is an external organisation the service works with.
type Partner struct {
	BaseModel

	Name          string `gorm:"size:100;not null" json:"name"`
	ContactPerson string `gorm:"size:100" json:"contact_person"`
	Email         string `gorm:"size:120" json:"email"`
	Phone         string `gorm:"size:20" json:"phone"`
	Address       string `gorm:"size:200" json:"address"`
	Type          string `gorm:"size:50;not null" json:"type"`
}
