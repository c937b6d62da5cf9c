package models

import (
	"gorm.io/datatypes"
)

const OwnerTypeRecipe = "recipe"

type Recipe struct {
	BaseModel
	Name          string                      `gorm:"size:255;not null;index" json:"name"`
	Description   string                      `gorm:"type:text;not null" json:"description"`
	Ingredients   datatypes.JSONSlice[string] `gorm:"not null" json:"ingredients"`
	Steps         datatypes.JSONSlice[string] `gorm:"not null" json:"steps"`
	UserID        uint                        `gorm:"not null;index" json:"user_id"`
	CuisineTypeID uint                        `gorm:"not null;index" json:"cuisine_type_id"`

	// Relations
	User        *User        `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	CuisineType *CuisineType `gorm:"constraint:OnDelete:RESTRICT" json:"cuisine_type,omitempty"`
	Attachments []Attachment `gorm:"polymorphic:Owner;polymorphicValue:recipe" json:"attachments,omitempty"`
}

func (r *Recipe) AttachmentOwner() OwnerRef {
	return OwnerRef{Type: OwnerTypeRecipe, ID: r.ID}
}

// OwnedBy - владелец фиксируется при создании и больше не меняется
func (r *Recipe) OwnedBy(userID uint) bool {
	return r.UserID == userID
}
