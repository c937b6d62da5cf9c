package dto

type CreateCuisineTypeRequest struct {
	Name        string `json:"name" validate:"required,not-blank,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Status      *bool  `json:"status"` // по умолчанию активен
}

type UpdateCuisineTypeRequest struct {
	Name        *string `json:"name" validate:"omitempty,not-blank,max=100"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Status      *bool   `json:"status"`
}

// CuisineTypeOption - элемент выпадающего списка
type CuisineTypeOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}
