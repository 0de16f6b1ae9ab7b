package models

// Location is a delivery site tankers are deployed to.
type Location struct {
	BaseModel

	Name      string  `gorm:"size:100;not null" json:"name"`
	Address   string  `gorm:"size:200" json:"address"`
	Postcode  string  `gorm:"size:16;index" json:"postcode"`
	Area      string  `gorm:"size:100" json:"area"`
	Latitude  float64 `gorm:"not null" json:"latitude"`
	Longitude float64 `gorm:"not null" json:"longitude"`
	Type      string  `gorm:"size:50;not null" json:"type"`
	Status    string  `gorm:"size:20;not null;default:active" json:"status"`
}
