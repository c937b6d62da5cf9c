package models

type CuisineType struct {
	BaseModel
	Name        string `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description string `gorm:"type:text" json:"description"`
	Status      bool   `gorm:"not null;index" json:"status"`
}
