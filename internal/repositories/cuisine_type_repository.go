package repositories

import (
	"recipehub_backend/internal/models"

	"gorm.io/gorm"
)

type CuisineTypeRepository struct {
	BaseRepository[models.CuisineType]
}

func NewCuisineTypeRepository() *CuisineTypeRepository {
	return &CuisineTypeRepository{BaseRepository: NewBaseRepository[models.CuisineType]("cuisine type")}
}

// ActiveForDropdown - активные типы кухни по алфавиту
func (r *CuisineTypeRepository) ActiveForDropdown(db *gorm.DB) ([]models.CuisineType, error) {
	return r.List(db, Where(Criteria{"status": true}), ListOptions{OrderBy: "name", OrderDir: SortAsc})
}
