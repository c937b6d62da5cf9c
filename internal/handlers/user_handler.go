package handlers

import (
	"context"
	"net/http"

	"recipehub_backend/internal/auth"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type userService interface {
	Delete(ctx context.Context, db *gorm.DB, caller auth.Identity, userID uint) error
}

type UserHandler struct {
	*BaseHandler
	userService userService
}

func NewUserHandler(base *BaseHandler, userService userService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(_, protected *gin.RouterGroup) {
	protected.DELETE("/users/:id", h.Destroy)
}

// Destroy удаляет пользователя вместе с его рецептами
func (h *UserHandler) Destroy(c *gin.Context) {
	caller, ok := h.Caller(c)
	if !ok {
		return
	}
	id, err := ParseParamID(c, "id")
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if err := h.userService.Delete(c.Request.Context(), h.GetDB(c), caller, id); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
