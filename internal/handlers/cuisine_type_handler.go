package handlers

import (
	"context"
	"net/http"

	"recipehub_backend/internal/auth"
	"recipehub_backend/internal/models"
	"recipehub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type cuisineTypeService interface {
	Dropdown(ctx context.Context, db *gorm.DB) ([]dto.CuisineTypeOption, error)
	List(ctx context.Context, db *gorm.DB, caller auth.Identity) ([]models.CuisineType, error)
	Create(ctx context.Context, db *gorm.DB, caller auth.Identity, req dto.CreateCuisineTypeRequest) (*models.CuisineType, error)
	Update(ctx context.Context, db *gorm.DB, caller auth.Identity, id uint, req dto.UpdateCuisineTypeRequest) (*models.CuisineType, error)
	Delete(ctx context.Context, db *gorm.DB, caller auth.Identity, id uint) error
}

type CuisineTypeHandler struct {
	*BaseHandler
	cuisineTypeService cuisineTypeService
}

func NewCuisineTypeHandler(base *BaseHandler, cuisineTypeService cuisineTypeService) *CuisineTypeHandler {
	return &CuisineTypeHandler{
		BaseHandler:        base,
		cuisineTypeService: cuisineTypeService,
	}
}

func (h *CuisineTypeHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.GET("/cuisine-types/dropdown", h.Dropdown)

	cuisineTypes := protected.Group("/cuisine-types")
	{
		cuisineTypes.GET("", h.Index)
		cuisineTypes.POST("", h.Store)
		cuisineTypes.PUT("/:id", h.Update)
		cuisineTypes.DELETE("/:id", h.Destroy)
	}
}

func (h *CuisineTypeHandler) Dropdown(c *gin.Context) {
	options, err := h.cuisineTypeService.Dropdown(c.Request.Context(), h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, options)
}

func (h *CuisineTypeHandler) Index(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	items, err := h.cuisineTypeService.List(c.Request.Context(), h.GetDB(c), caller)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *CuisineTypeHandler) Store(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}

	var req dto.CreateCuisineTypeRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	ct, err := h.cuisineTypeService.Create(c.Request.Context(), h.GetDB(c), caller, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ct)
}

func (h *CuisineTypeHandler) Update(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}
	id, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	var req dto.UpdateCuisineTypeRequest
	if !h.BindAndValidate(c, &req) {
		return
	}

	ct, err := h.cuisineTypeService.Update(c.Request.Context(), h.GetDB(c), caller, id, req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ct)
}

func (h *CuisineTypeHandler) Destroy(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}
	id, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.cuisineTypeService.Delete(c.Request.Context(), h.GetDB(c), caller, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Cuisine type deleted successfully"})
}
