package repositories

import (
	"recipehub_backend/internal/models"

	"gorm.io/gorm"
)

// RecipeRelations - связи, которые отдаются вместе с рецептом
var RecipeRelations = []string{"User", "CuisineType", "Attachments"}

type RecipeRepository struct {
	BaseRepository[models.Recipe]
}

func NewRecipeRepository() *RecipeRepository {
	return &RecipeRepository{BaseRepository: NewBaseRepository[models.Recipe]("recipe")}
}

// IDsOwnedBy - id всех рецептов пользователя
func (r *RecipeRepository) IDsOwnedBy(db *gorm.DB, userID uint) ([]uint, error) {
	recipes, err := r.List(db, Where(Criteria{"user_id": userID}), ListOptions{OrderBy: "id", OrderDir: SortAsc})
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(recipes))
	for _, rec := range recipes {
		ids = append(ids, rec.ID)
	}
	return ids, nil
}
