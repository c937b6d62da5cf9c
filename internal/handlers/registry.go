package handlers

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar - хэндлер, который сам регистрирует свои маршруты
type RouteRegistrar interface {
	RegisterRoutes(public, protected *gin.RouterGroup)
}

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler        *AuthHandler
	RecipeHandler      *RecipeHandler
	CuisineTypeHandler *CuisineTypeHandler
	UserHandler        *UserHandler
}

// All - в порядке регистрации маршрутов
func (h *AppHandlers) All() []RouteRegistrar {
	return []RouteRegistrar{
		h.AuthHandler,
		h.CuisineTypeHandler,
		h.RecipeHandler,
		h.UserHandler,
	}
}
