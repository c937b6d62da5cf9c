package policies

import (
	"recipehub_backend/internal/auth"
	"recipehub_backend/internal/models"
	"recipehub_backend/pkg/apperrors"
)

// RecipePolicy - чистые решения доступа к рецептам.
// Смотрит только на разрешения; владение учитывается лишь вместе с *-own-* разрешением.
type RecipePolicy struct{}

func (RecipePolicy) CanViewAny(caller auth.Identity) bool {
	return caller.Can(auth.PermListRecipes)
}

// CanViewAll - видит записи всех пользователей
func (RecipePolicy) CanViewAll(caller auth.Identity) bool {
	return caller.Can(auth.PermViewAllRecipes)
}

func (p RecipePolicy) CanView(caller auth.Identity, recipe *models.Recipe) bool {
	if !p.CanViewAny(caller) {
		return false
	}
	return p.CanViewAll(caller) || recipe.OwnedBy(caller.UserID)
}

func (RecipePolicy) CanCreate(caller auth.Identity) bool {
	return caller.Can(auth.PermAddRecipe)
}

func (RecipePolicy) CanUpdate(caller auth.Identity, recipe *models.Recipe) bool {
	if caller.Can(auth.PermEditRecipe) {
		return true
	}
	return caller.Can(auth.PermEditOwnRecipe) && recipe.OwnedBy(caller.UserID)
}

func (RecipePolicy) CanDelete(caller auth.Identity, recipe *models.Recipe) bool {
	if caller.Can(auth.PermDeleteRecipe) {
		return true
	}
	return caller.Can(auth.PermDeleteOwnRecipe) && recipe.OwnedBy(caller.UserID)
}

// Authorize переводит отказ в единую ошибку Forbidden
func Authorize(allowed bool) error {
	if !allowed {
		return apperrors.ErrForbidden
	}
	return nil
}
