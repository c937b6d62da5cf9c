package services

import (
	"context"
	"strings"

	"recipehub_backend/internal/auth"
	"recipehub_backend/internal/logger"
	"recipehub_backend/internal/models"
	"recipehub_backend/internal/policies"
	"recipehub_backend/internal/repositories"
	"recipehub_backend/internal/services/dto"
	"recipehub_backend/pkg/apperrors"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type CuisineTypeService struct {
	cuisines *repositories.CuisineTypeRepository
	recipes  *repositories.RecipeRepository
	policy   policies.CuisineTypePolicy
}

func NewCuisineTypeService(cuisines *repositories.CuisineTypeRepository, recipes *repositories.RecipeRepository) *CuisineTypeService {
	return &CuisineTypeService{cuisines: cuisines, recipes: recipes}
}

// Dropdown - публичный список активных типов кухни
func (s *CuisineTypeService) Dropdown(ctx context.Context, db *gorm.DB) ([]dto.CuisineTypeOption, error) {
	items, err := s.cuisines.ActiveForDropdown(db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return lo.Map(items, func(ct models.CuisineType, _ int) dto.CuisineTypeOption {
		return dto.CuisineTypeOption{ID: ct.ID, Name: ct.Name}
	}), nil
}

// List - все типы кухни, включая выключенные
func (s *CuisineTypeService) List(ctx context.Context, db *gorm.DB, caller auth.Identity) ([]models.CuisineType, error) {
	if err := policies.Authorize(s.policy.CanManage(caller)); err != nil {
		return nil, err
	}
	return s.cuisines.List(db.WithContext(ctx), repositories.Filter{}, repositories.ListOptions{
		OrderBy:  "name",
		OrderDir: repositories.SortAsc,
	})
}

func (s *CuisineTypeService) Create(ctx context.Context, db *gorm.DB, caller auth.Identity, req dto.CreateCuisineTypeRequest) (*models.CuisineType, error) {
	if err := policies.Authorize(s.policy.CanManage(caller)); err != nil {
		return nil, err
	}
	db = db.WithContext(ctx)

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.ValidationError(map[string]string{"name": "Cuisine type name is required."})
	}
	if err := s.ensureNameFree(db, name, 0); err != nil {
		return nil, err
	}

	ct := &models.CuisineType{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Status:      lo.FromPtrOr(req.Status, true),
	}
	if err := s.cuisines.Create(db, repositories.WriteContext{ActorID: caller.Actor()}, ct); err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Cuisine type created", "cuisine_type_id", ct.ID, "name", ct.Name)
	return ct, nil
}

func (s *CuisineTypeService) Update(ctx context.Context, db *gorm.DB, caller auth.Identity, id uint, req dto.UpdateCuisineTypeRequest) (*models.CuisineType, error) {
	if err := policies.Authorize(s.policy.CanManage(caller)); err != nil {
		return nil, err
	}
	db = db.WithContext(ctx)

	if _, err := s.cuisines.FindByID(db, id); err != nil {
		return nil, err
	}

	attrs := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.ValidationError(map[string]string{"name": "Cuisine type name is required."})
		}
		if err := s.ensureNameFree(db, name, id); err != nil {
			return nil, err
		}
		attrs["name"] = name
	}
	if req.Description != nil {
		attrs["description"] = strings.TrimSpace(*req.Description)
	}
	if req.Status != nil {
		attrs["status"] = *req.Status
	}

	if err := s.cuisines.Update(db, repositories.WriteContext{ActorID: caller.Actor()}, id, attrs); err != nil {
		return nil, err
	}
	return s.cuisines.FindByID(db, id)
}

// Delete запрещен, пока на тип ссылается хоть один рецепт
func (s *CuisineTypeService) Delete(ctx context.Context, db *gorm.DB, caller auth.Identity, id uint) error {
	if err := policies.Authorize(s.policy.CanManage(caller)); err != nil {
		return err
	}
	db = db.WithContext(ctx)

	inUse, err := s.recipes.Exists(db, repositories.Where(repositories.Criteria{"cuisine_type_id": id}))
	if err != nil {
		return err
	}
	if inUse {
		return apperrors.ErrCuisineTypeInUse.WithDetails(map[string]any{"cuisine_type_id": id})
	}

	if err := s.cuisines.Delete(db, id); err != nil {
		return err
	}
	logger.CtxInfo(ctx, "Cuisine type deleted", "cuisine_type_id", id)
	return nil
}

func (s *CuisineTypeService) ensureNameFree(db *gorm.DB, name string, exceptID uint) error {
	filter := repositories.Where(repositories.Criteria{"name": name})
	if exceptID > 0 {
		filter.Criteria["id"] = repositories.NotEq(exceptID)
	}
	taken, err := s.cuisines.Exists(db, filter)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.ValidationError(map[string]string{"name": "The name has already been taken."})
	}
	return nil
}
