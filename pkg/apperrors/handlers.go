package apperrors

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// GinErrorHandler - обработчик ошибок для Gin
type GinErrorHandler struct {
	Debug bool
	Log   *zap.SugaredLogger
}

var defaultHandler = &GinErrorHandler{Debug: false, Log: zap.NewNop().Sugar()}

// Configure задает режим отладки и логгер для HandleError.
// Вызывается один раз при старте приложения.
func Configure(debug bool, log *zap.SugaredLogger) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	defaultHandler = &GinErrorHandler{Debug: debug, Log: log}
}

// HandleGinError - основная логика обработки ошибок для Gin
func (h *GinErrorHandler) HandleGinError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		// Если это не AppError, оборачиваем в InternalError
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		h.Log.Errorw("server error", "code", appErr.Code, "error", appErr.Error(), "path", c.Request.URL.Path)
		if !h.Debug {
			// В продакшене скрываем детали внутренних ошибок
			appErr = appErr.WithDetails(nil)
			if appErr.Code == CodeInternalError || appErr.Code == CodeDatabaseError {
				appErr.Message = "Internal server error"
			}
		}
	}

	c.AbortWithStatusJSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// HandleError - быстрая функция-помощник для Gin
func HandleError(c *gin.Context, err error) {
	defaultHandler.HandleGinError(c, err)
}

// AsAppError - пытается преобразовать error в *AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
