package handlers

import (
	"context"
	"errors"
	"net/http"

	"recipehub_backend/internal/auth"
	"recipehub_backend/internal/logger"
	"recipehub_backend/internal/models"
	"recipehub_backend/internal/repositories"
	"recipehub_backend/internal/services/dto"
	"recipehub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// поле multipart-формы с картинкой рецепта
const recipeImageField = "image"

type recipeService interface {
	List(ctx context.Context, db *gorm.DB, caller auth.Identity, filters dto.RecipeFilters) (*repositories.Page[models.Recipe], error)
	Get(ctx context.Context, db *gorm.DB, caller auth.Identity, id uint) (*models.Recipe, error)
	Create(ctx context.Context, db *gorm.DB, caller auth.Identity, req dto.CreateRecipeRequest, image *dto.UploadFile) (*models.Recipe, error)
	Update(ctx context.Context, db *gorm.DB, caller auth.Identity, id uint, req dto.UpdateRecipeRequest, image *dto.UploadFile) (*models.Recipe, error)
	Delete(ctx context.Context, db *gorm.DB, caller auth.Identity, id uint) error
	ToResponse(caller auth.Identity, recipe *models.Recipe) dto.RecipeResponse
	ToListResponse(caller auth.Identity, page *repositories.Page[models.Recipe]) dto.RecipeListResponse
}

type RecipeHandler struct {
	*BaseHandler
	recipeService recipeService
}

func NewRecipeHandler(base *BaseHandler, recipeService recipeService) *RecipeHandler {
	return &RecipeHandler{
		BaseHandler:   base,
		recipeService: recipeService,
	}
}

func (h *RecipeHandler) RegisterRoutes(_, protected *gin.RouterGroup) {
	recipes := protected.Group("/recipes")
	{
		recipes.GET("", h.Index)
		recipes.POST("", h.Store)
		recipes.GET("/:id", h.Show)
		recipes.PUT("/:id", h.Update)
		recipes.PATCH("/:id", h.Update)
		recipes.DELETE("/:id", h.Destroy)
	}
}

// Index - список с учетом уровня доступа.
// Невалидные параметры не отклоняются, а игнорируются.
func (h *RecipeHandler) Index(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	filters := dto.RecipeFilters{
		Search:        c.Query("search"),
		CuisineTypeID: ParseQueryUint(c, "cuisine_type_id"),
		UserID:        ParseQueryUint(c, "user_id"),
		Column:        c.Query("column"),
		Dir:           c.Query("dir"),
		Length:        ParseQueryInt(c, "length", 0),
		Page:          ParseQueryInt(c, "page", 1),
	}

	page, err := h.recipeService.List(c.Request.Context(), h.GetDB(c), caller, filters)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.recipeService.ToListResponse(caller, page))
}

func (h *RecipeHandler) Show(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}
	id, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	recipe, err := h.recipeService.Get(c.Request.Context(), h.GetDB(c), caller, id)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.recipeService.ToResponse(caller, recipe))
}

func (h *RecipeHandler) Store(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.CreateRecipeRequest
	if !h.BindAndValidate(c, &req) {
		return
	}
	image, ok := h.image(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), h.GetDB(c), caller, req, image)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.recipeService.ToResponse(caller, recipe))
}

func (h *RecipeHandler) Update(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}
	id, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateRecipeRequest
	if !h.BindAndValidate(c, &req) {
		return
	}
	image, ok := h.image(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.Update(c.Request.Context(), h.GetDB(c), caller, id, req, image)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.recipeService.ToResponse(caller, recipe))
}

func (h *RecipeHandler) Destroy(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}
	id, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), h.GetDB(c), caller, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}

// image - необязательный файл из multipart-формы
func (h *RecipeHandler) image(c *gin.Context) (*dto.UploadFile, bool) {
	fh, err := c.FormFile(recipeImageField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return nil, true
	}
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to read uploaded image", err)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid image upload"))
		return nil, false
	}

	file, err := dto.FromMultipart(fh)
	if err != nil {
		logger.CtxWithError(c.Request.Context(), "Failed to open uploaded image", err)
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid image upload"))
		return nil, false
	}
	return &file, true
}
