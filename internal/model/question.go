package model

// Question.Category is a loose reference to Category.ID; nothing enforces it.
type Question struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	Question   string `gorm:"type:text;not null" json:"question"`
	Answer     string `gorm:"type:text;not null" json:"answer"`
	Category   int    `gorm:"not null;index" json:"category"`
	Difficulty int    `gorm:"not null" json:"difficulty"` // 1-5 by convention
}
