package model

// Category is seeded once and only read through the API.
type Category struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Type string `gorm:"not null" json:"type"`
}
