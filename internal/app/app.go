package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"recipehub_backend/database"
	"recipehub_backend/internal/auth"
	"recipehub_backend/internal/config"
	"recipehub_backend/internal/handlers"
	"recipehub_backend/internal/logger"
	"recipehub_backend/internal/metrics"
	"recipehub_backend/internal/middleware"
	"recipehub_backend/internal/routes"
	"recipehub_backend/internal/services"
	"recipehub_backend/internal/services/dto"
	"recipehub_backend/internal/storage"
	"recipehub_backend/internal/validator"
	"recipehub_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App - собранное приложение: роутер поверх сервисов
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Router   *gin.Engine
	Services *services.ServiceContainer
}

func Run() {
	cfg, err := config.Load()
	if err != nil {
		// логгер еще не настроен
		panic(err)
	}

	if err := logger.Init(logger.Config{
		Env:        cfg.Server.Env,
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}); err != nil {
		panic(err)
	}
	defer logger.Sync()
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gormDB, err := database.Open(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.Debug)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}
	logger.Info("Database connected", "driver", cfg.Database.Driver)

	disks, err := storage.NewDisks(ctx, cfg.Storage.Disks, cfg.Storage.Default)
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "default", cfg.Storage.Default, "disks", len(cfg.Storage.Disks))

	application := New(cfg, gormDB, disks)
	if err := application.Bootstrap(ctx); err != nil {
		logger.Fatal("Failed to bootstrap roles and admin", "error", err)
	}

	if err := application.Serve(ctx); err != nil {
		logger.Fatal("Server error", "error", err)
	}
}

// New собирает сервисы, хэндлеры и роутер. Ничего не пишет в БД.
func New(cfg *config.Config, gormDB *gorm.DB, disks *storage.Disks) *App {
	metrics.Init()
	apperrors.Configure(cfg.IsDevelopment(), logger.GetLogger())
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	container := services.NewServiceContainer(services.ContainerConfig{
		Recipes: services.RecipeConfig{
			DefaultPageSize:   cfg.Pagination.DefaultPageSize,
			MaxImageSize:      cfg.Upload.MaxImageSize,
			AllowedImageTypes: cfg.Upload.AllowedImageTypes,
			ImageTarget:       dto.StorageTarget{Disk: cfg.Storage.Default, Directory: cfg.Upload.RecipeDirectory},
		},
		Hasher: auth.NewPasswordHasher(bcrypt.DefaultCost),
		Tokens: auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Issuer, time.Duration(cfg.JWT.TTL)*time.Minute),
		Disks:  disks,
	})

	appHandlers := initializeHandlers(container)
	ginRouter := initializeGinRouter(gormDB)
	serveDisks(ginRouter, cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, middleware.AuthMiddleware(container.AuthService))

	return &App{Config: cfg, DB: gormDB, Router: ginRouter, Services: container}
}

// Bootstrap синхронизирует роли и создает первого администратора
func (a *App) Bootstrap(ctx context.Context) error {
	if err := a.Services.AuthService.SyncRoles(ctx, a.DB); err != nil {
		return fmt.Errorf("sync roles: %w", err)
	}

	admin := a.Config.FirstAdmin
	if admin.Email == "" || admin.Password == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}
	return a.Services.AuthService.EnsureFirstAdmin(ctx, a.DB, services.FirstAdmin{
		Name:     admin.Name,
		Email:    admin.Email,
		Password: admin.Password,
	})
}

// Serve слушает до отмены ctx, затем гасит сервер
func (a *App) Serve(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", a.Config.Server.Host, a.Config.Server.Port)
	srv := &http.Server{
		Addr:              address,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", "address", address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func initializeHandlers(container *services.ServiceContainer) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New())

	return &handlers.AppHandlers{
		AuthHandler:        handlers.NewAuthHandler(baseHandler, container.AuthService),
		RecipeHandler:      handlers.NewRecipeHandler(baseHandler, container.RecipeService),
		CuisineTypeHandler: handlers.NewCuisineTypeHandler(baseHandler, container.CuisineTypeService),
		UserHandler:        handlers.NewUserHandler(baseHandler, container.UserService),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(metrics.GinMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// serveDisks раздает файлы локальных дисков с относительным base_url
func serveDisks(router *gin.Engine, cfg *config.Config) {
	for name, diskCfg := range cfg.Storage.Disks {
		if diskCfg.Type != storage.TypeLocal || !strings.HasPrefix(diskCfg.BaseURL, "/") {
			continue
		}
		router.Static(diskCfg.BaseURL, diskCfg.BasePath)
		logger.Info("Serving disk", "disk", name, "url", diskCfg.BaseURL)
	}
}
