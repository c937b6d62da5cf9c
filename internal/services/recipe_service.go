package services

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"recipehub_backend/internal/auth"
	"recipehub_backend/internal/logger"
	"recipehub_backend/internal/models"
	"recipehub_backend/internal/policies"
	"recipehub_backend/internal/repositories"
	"recipehub_backend/internal/services/dto"
	"recipehub_backend/pkg/apperrors"

	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DefaultPageSize - размер страницы, если не задан ни клиентом, ни конфигом
const DefaultPageSize = 10

// recipeSortColumns - разрешенные поля сортировки
var recipeSortColumns = []string{"id", "name", "created_at"}

// ============================================
// КОНФИГУРАЦИЯ
// ============================================

type RecipeConfig struct {
	DefaultPageSize   int
	MaxImageSize      int64
	AllowedImageTypes []string
	ImageTarget       dto.StorageTarget
}

// ============================================
// RECIPE SERVICE
// ============================================

type RecipeService struct {
	recipes     *repositories.RecipeRepository
	cuisines    *repositories.CuisineTypeRepository
	attachments *AttachmentService
	policy      policies.RecipePolicy
	config      RecipeConfig
}

func NewRecipeService(
	recipes *repositories.RecipeRepository,
	cuisines *repositories.CuisineTypeRepository,
	attachments *AttachmentService,
	config RecipeConfig,
) *RecipeService {
	if config.DefaultPageSize < 1 {
		config.DefaultPageSize = DefaultPageSize
	}
	return &RecipeService{
		recipes:     recipes,
		cuisines:    cuisines,
		attachments: attachments,
		config:      config,
	}
}

// BuildRecipeQuery переводит параметры списка в фильтр с учетом уровня доступа.
// Все ограничения складываются через AND в одном Filter:
//  1. без view-all-recipes видны только свои рецепты
//  2. search - LIKE по name ИЛИ description
//  3. cuisine_type_id, если > 0
//  4. user_id - только с view-all-recipes, иначе молча игнорируется
//  5. сортировка из белого списка, иначе created_at desc
//  6. размер страницы по умолчанию defaultSize
func BuildRecipeQuery(caller auth.Identity, filters dto.RecipeFilters, defaultSize int) (repositories.Filter, repositories.PageRequest) {
	policy := policies.RecipePolicy{}
	elevated := policy.CanViewAll(caller)

	criteria := repositories.Criteria{}
	if !elevated {
		criteria["user_id"] = caller.UserID
	}

	filter := repositories.Filter{Criteria: criteria}
	if term := strings.TrimSpace(filters.Search); term != "" {
		filter.AnyOf = repositories.Criteria{
			"name":        repositories.Like(term),
			"description": repositories.Like(term),
		}
	}

	if filters.CuisineTypeID > 0 {
		criteria["cuisine_type_id"] = filters.CuisineTypeID
	}

	if filters.UserID > 0 && elevated {
		criteria["user_id"] = filters.UserID
	}

	opts := repositories.ListOptions{
		Relations: repositories.RecipeRelations,
		OrderBy:   "created_at",
		OrderDir:  repositories.SortDesc,
	}
	column := strings.ToLower(strings.TrimSpace(filters.Column))
	dir := strings.ToLower(strings.TrimSpace(filters.Dir))
	if slices.Contains(recipeSortColumns, column) && (dir == repositories.SortAsc || dir == repositories.SortDesc) {
		opts.OrderBy = column
		opts.OrderDir = dir
	}

	if defaultSize < 1 {
		defaultSize = DefaultPageSize
	}
	size := filters.Length
	if size < 1 {
		size = defaultSize
	}

	return filter, repositories.PageRequest{
		Size:        size,
		Page:        max(filters.Page, 1),
		ListOptions: opts,
	}
}

func (s *RecipeService) List(ctx context.Context, db *gorm.DB, caller auth.Identity, filters dto.RecipeFilters) (*repositories.Page[models.Recipe], error) {
	if err := policies.Authorize(s.policy.CanViewAny(caller)); err != nil {
		return nil, err
	}

	filter, req := BuildRecipeQuery(caller, filters, s.config.DefaultPageSize)
	return s.recipes.Paginate(db.WithContext(ctx), filter, req)
}

func (s *RecipeService) Get(ctx context.Context, db *gorm.DB, caller auth.Identity, id uint) (*models.Recipe, error) {
	recipe, err := s.recipes.FindByID(db.WithContext(ctx), id, repositories.RecipeRelations...)
	if err != nil {
		return nil, err
	}
	if err := policies.Authorize(s.policy.CanView(caller, recipe)); err != nil {
		return nil, err
	}
	return recipe, nil
}

// Create создает рецепт и, если передана, картинку. Все в одной транзакции.
func (s *RecipeService) Create(ctx context.Context, db *gorm.DB, caller auth.Identity, req dto.CreateRecipeRequest, image *dto.UploadFile) (*models.Recipe, error) {
	if err := policies.Authorize(s.policy.CanCreate(caller)); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	description := strings.TrimSpace(req.Description)
	// при создании списки обязательны
	ingredients := lo.Ternary(req.Ingredients == nil, []string{}, req.Ingredients)
	steps := lo.Ternary(req.Steps == nil, []string{}, req.Steps)
	if err := validateRecipeFields(&name, &description, ingredients, steps); err != nil {
		return nil, err
	}
	if err := s.validateImage(image); err != nil {
		return nil, err
	}

	db = db.WithContext(ctx)
	if err := s.checkCuisineType(db, req.CuisineTypeID); err != nil {
		return nil, err
	}

	wc := repositories.WriteContext{ActorID: caller.Actor()}
	recipe := &models.Recipe{
		Name:          name,
		Description:   description,
		Ingredients:   datatypes.JSONSlice[string](ingredients),
		Steps:         datatypes.JSONSlice[string](steps),
		UserID:        caller.UserID,
		CuisineTypeID: req.CuisineTypeID,
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := s.recipes.Create(tx, wc, recipe); err != nil {
			return err
		}
		if image == nil {
			return nil
		}
		_, err := s.attachments.Attach(ctx, tx, wc, *image, recipe, models.AttachmentTypeImage, s.config.ImageTarget)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.CtxInfo(ctx, "Recipe created", "recipe_id", recipe.ID, "user_id", caller.UserID)
	return s.recipes.FindByID(db, recipe.ID, repositories.RecipeRelations...)
}

// Update меняет только переданные поля; новая картинка заменяет старую
func (s *RecipeService) Update(ctx context.Context, db *gorm.DB, caller auth.Identity, id uint, req dto.UpdateRecipeRequest, image *dto.UploadFile) (*models.Recipe, error) {
	db = db.WithContext(ctx)

	recipe, err := s.recipes.FindByID(db, id)
	if err != nil {
		return nil, err
	}
	if err := policies.Authorize(s.policy.CanUpdate(caller, recipe)); err != nil {
		return nil, err
	}

	var name, description *string
	if req.Name != nil {
		name = lo.ToPtr(strings.TrimSpace(*req.Name))
	}
	if req.Description != nil {
		description = lo.ToPtr(strings.TrimSpace(*req.Description))
	}
	if err := validateRecipeFields(name, description, req.Ingredients, req.Steps); err != nil {
		return nil, err
	}
	if err := s.validateImage(image); err != nil {
		return nil, err
	}

	attrs := map[string]any{}
	if name != nil {
		attrs["name"] = *name
	}
	if description != nil {
		attrs["description"] = *description
	}
	if req.Ingredients != nil {
		attrs["ingredients"] = datatypes.JSONSlice[string](req.Ingredients)
	}
	if req.Steps != nil {
		attrs["steps"] = datatypes.JSONSlice[string](req.Steps)
	}
	if req.CuisineTypeID != nil && *req.CuisineTypeID != recipe.CuisineTypeID {
		if err := s.checkCuisineType(db, *req.CuisineTypeID); err != nil {
			return nil, err
		}
		attrs["cuisine_type_id"] = *req.CuisineTypeID
	}

	wc := repositories.WriteContext{ActorID: caller.Actor()}
	if err := s.recipes.Update(db, wc, recipe.ID, attrs); err != nil {
		return nil, err
	}

	if image != nil {
		if _, err := s.attachments.Replace(ctx, db, wc, recipe, models.AttachmentTypeImage, []dto.UploadFile{*image}, s.config.ImageTarget); err != nil {
			return nil, err
		}
	}

	logger.CtxInfo(ctx, "Recipe updated", "recipe_id", recipe.ID, "user_id", caller.UserID)
	return s.recipes.FindByID(db, recipe.ID, repositories.RecipeRelations...)
}

// Delete удаляет рецепт вместе с вложениями (все или ничего)
func (s *RecipeService) Delete(ctx context.Context, db *gorm.DB, caller auth.Identity, id uint) error {
	db = db.WithContext(ctx)

	recipe, err := s.recipes.FindByID(db, id)
	if err != nil {
		return err
	}
	if err := policies.Authorize(s.policy.CanDelete(caller, recipe)); err != nil {
		return err
	}

	if err := s.deleteWithAttachments(ctx, db, recipe); err != nil {
		return err
	}

	logger.CtxInfo(ctx, "Recipe deleted", "recipe_id", recipe.ID, "user_id", caller.UserID)
	return nil
}

// DeleteAllOwnedBy - каскад по всем рецептам пользователя. Права проверяет вызывающий.
func (s *RecipeService) DeleteAllOwnedBy(ctx context.Context, db *gorm.DB, userID uint) error {
	db = db.WithContext(ctx)

	recipeIDs, err := s.recipes.IDsOwnedBy(db, userID)
	if err != nil {
		return err
	}
	for _, id := range recipeIDs {
		recipe, err := s.recipes.FindByID(db, id)
		if err != nil {
			return err
		}
		if err := s.deleteWithAttachments(ctx, db, recipe); err != nil {
			return fmt.Errorf("recipe %d: %w", id, err)
		}
	}
	return nil
}

func (s *RecipeService) deleteWithAttachments(ctx context.Context, db *gorm.DB, recipe *models.Recipe) error {
	return s.attachments.DeleteOwnerCascade(ctx, db, recipe, func(tx *gorm.DB) error {
		return s.recipes.Delete(tx, recipe.ID)
	})
}

// ============================================
// ОТВЕТЫ
// ============================================

func (s *RecipeService) ToResponse(caller auth.Identity, recipe *models.Recipe) dto.RecipeResponse {
	resp := dto.RecipeResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Description: recipe.Description,
		Ingredients: lo.Ternary(recipe.Ingredients == nil, []string{}, []string(recipe.Ingredients)),
		Steps:       lo.Ternary(recipe.Steps == nil, []string{}, []string(recipe.Steps)),
		CreatedAt:   recipe.CreatedAt,
		UpdatedAt:   recipe.UpdatedAt,
		Attachments: make([]dto.AttachmentResponse, 0, len(recipe.Attachments)),
		CanEdit:     s.policy.CanUpdate(caller, recipe),
		CanDelete:   s.policy.CanDelete(caller, recipe),
	}
	if recipe.User != nil {
		resp.User = &dto.RecipeUser{ID: recipe.User.ID, Name: recipe.User.Name, Email: recipe.User.Email}
	}
	if recipe.CuisineType != nil {
		resp.CuisineType = &dto.RecipeCuisineType{ID: recipe.CuisineType.ID, Name: recipe.CuisineType.Name}
	}

	attachments := slices.Clone(recipe.Attachments)
	slices.SortFunc(attachments, func(a, b models.Attachment) int { return cmp.Compare(a.ID, b.ID) })

	for i := range attachments {
		a := &attachments[i]
		url := s.attachments.URL(a)
		if resp.Image == nil && a.Type == models.AttachmentTypeImage {
			resp.Image = lo.ToPtr(url)
		}
		resp.Attachments = append(resp.Attachments, dto.AttachmentResponse{
			ID:           a.ID,
			Type:         a.Type,
			OriginalName: a.OriginalName,
			FileName:     a.FileName,
			MimeType:     a.MimeType,
			Size:         a.Size,
			URL:          url,
			IsImage:      a.IsImage(),
			Metadata:     a.Metadata,
		})
	}
	return resp
}

func (s *RecipeService) ToListResponse(caller auth.Identity, page *repositories.Page[models.Recipe]) dto.RecipeListResponse {
	list := make([]dto.RecipeResponse, 0, len(page.Items))
	for i := range page.Items {
		list = append(list, s.ToResponse(caller, &page.Items[i]))
	}
	return dto.RecipeListResponse{
		List: list,
		Pagination: dto.Pagination{
			Total:       page.Total,
			Count:       len(page.Items),
			PerPage:     page.PerPage,
			CurrentPage: page.CurrentPage,
			TotalPages:  page.TotalPages,
		},
	}
}

// ============================================
// ВСПОМОГАТЕЛЬНЫЕ МЕТОДЫ
// ============================================

// validateRecipeFields: nil - поле не передано (update)
func validateRecipeFields(name, description *string, ingredients, steps []string) error {
	fields := map[string]string{}

	if name != nil && *name == "" {
		fields["name"] = "Recipe name is required."
	}
	if description != nil && *description == "" {
		fields["description"] = "Recipe description is required."
	}
	checkList := func(field string, items []string, empty, blank string) {
		if items == nil {
			return
		}
		if len(items) == 0 {
			fields[field] = empty
			return
		}
		for i, item := range items {
			if strings.TrimSpace(item) == "" {
				fields[fmt.Sprintf("%s[%d]", field, i)] = blank
			}
		}
	}
	checkList("ingredients", ingredients, "At least one ingredient is required.", "Ingredient cannot be empty.")
	checkList("steps", steps, "At least one step is required.", "Step cannot be empty.")

	if len(fields) > 0 {
		return apperrors.ValidationError(fields)
	}
	return nil
}

func (s *RecipeService) validateImage(image *dto.UploadFile) error {
	if image == nil {
		return nil
	}
	if s.attachments.Validate(*image, s.config.AllowedImageTypes, s.config.MaxImageSize) {
		return nil
	}
	if s.config.MaxImageSize > 0 && image.Size > s.config.MaxImageSize {
		return apperrors.ErrFileTooLarge.WithDetails(map[string]any{"max_size": s.config.MaxImageSize})
	}
	return apperrors.ErrInvalidFileType.WithDetails(map[string]any{"allowed": s.config.AllowedImageTypes})
}

func (s *RecipeService) checkCuisineType(db *gorm.DB, id uint) error {
	cuisine, err := s.cuisines.FindByID(db, id)
	if apperrors.HasCode(err, apperrors.CodeNotFound) {
		return apperrors.ValidationError(map[string]string{"cuisine_type_id": "Selected cuisine type is invalid."})
	}
	if err != nil {
		return err
	}
	if !cuisine.Status {
		return apperrors.ErrCuisineTypeInactive
	}
	return nil
}
