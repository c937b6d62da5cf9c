package dto

import (
	"time"
)

// RecipeFilters - query-параметры списка рецептов.
// Невалидные значения не отклоняются, а игнорируются при построении запроса.
type RecipeFilters struct {
	Search        string `form:"search"`
	CuisineTypeID uint   `form:"cuisine_type_id"`
	UserID        uint   `form:"user_id"` // только для view-all-recipes
	Column        string `form:"column"`  // id, name, created_at
	Dir           string `form:"dir"`     // asc, desc
	Length        int    `form:"length"`
	Page          int    `form:"page"`
}

// CreateRecipeRequest - поля формы; картинка приходит отдельно
type CreateRecipeRequest struct {
	Name          string   `json:"name" form:"name" validate:"required,not-blank,max=255"`
	Description   string   `json:"description" form:"description" validate:"required,not-blank"`
	Ingredients   []string `json:"ingredients" form:"ingredients" validate:"required,min=1,dive,not-blank,max=255"`
	Steps         []string `json:"steps" form:"steps" validate:"required,min=1,dive,not-blank"`
	CuisineTypeID uint     `json:"cuisine_type_id" form:"cuisine_type_id" validate:"required"`
}

// UpdateRecipeRequest - частичное обновление, nil = не менять
type UpdateRecipeRequest struct {
	Name          *string  `json:"name" form:"name" validate:"omitempty,not-blank,max=255"`
	Description   *string  `json:"description" form:"description" validate:"omitempty,not-blank"`
	Ingredients   []string `json:"ingredients" form:"ingredients" validate:"omitempty,min=1,dive,not-blank,max=255"`
	Steps         []string `json:"steps" form:"steps" validate:"omitempty,min=1,dive,not-blank"`
	CuisineTypeID *uint    `json:"cuisine_type_id" form:"cuisine_type_id" validate:"omitempty,min=1"`
}

type RecipeUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RecipeCuisineType struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// RecipeResponse; Image - URL первой картинки
type RecipeResponse struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Ingredients []string             `json:"ingredients"`
	Steps       []string             `json:"steps"`
	Image       *string              `json:"image"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
	User        *RecipeUser          `json:"user,omitempty"`
	CuisineType *RecipeCuisineType   `json:"cuisine_type,omitempty"`
	Attachments []AttachmentResponse `json:"attachments"`
	CanEdit     bool                 `json:"can_edit"`
	CanDelete   bool                 `json:"can_delete"`
}

type Pagination struct {
	Total       int64 `json:"total"`
	Count       int   `json:"count"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"total_pages"`
}

type RecipeListResponse struct {
	List       []RecipeResponse `json:"list"`
	Pagination Pagination       `json:"pagination"`
}
