package services

import (
	"context"

	"recipehub_backend/internal/auth"
	"recipehub_backend/internal/logger"
	"recipehub_backend/internal/models"
	"recipehub_backend/internal/policies"
	"recipehub_backend/internal/repositories"

	"gorm.io/gorm"
)

type UserService struct {
	users   *repositories.UserRepository
	recipes *RecipeService
	policy  policies.UserPolicy
}

func NewUserService(users *repositories.UserRepository, recipes *RecipeService) *UserService {
	return &UserService{users: users, recipes: recipes}
}

// Delete удаляет пользователя. Сначала каскадом уходят его рецепты с файлами;
// если хоть один рецепт не удалился, пользователь остается.
func (s *UserService) Delete(ctx context.Context, db *gorm.DB, caller auth.Identity, userID uint) error {
	if err := policies.Authorize(s.policy.CanDelete(caller, userID)); err != nil {
		return err
	}
	db = db.WithContext(ctx)

	user, err := s.users.FindByID(db, userID)
	if err != nil {
		return err
	}

	if err := s.recipes.DeleteAllOwnedBy(ctx, db, user.ID); err != nil {
		logger.CtxWithError(ctx, "User delete aborted, recipes left", err, "user_id", user.ID)
		return err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.users.AssignRoles(tx, user, []models.Role{}); err != nil {
			return err
		}
		return s.users.Delete(tx, user.ID)
	})
	if err != nil {
		return err
	}

	logger.CtxInfo(ctx, "User deleted", "user_id", user.ID, "deleted_by", caller.UserID)
	return nil
}
