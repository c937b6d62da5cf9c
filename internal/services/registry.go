package services

import (
	"recipehub_backend/internal/auth"
	"recipehub_backend/internal/repositories"
	"recipehub_backend/internal/storage"
)

// ServiceContainer содержит все сервисы приложения.
type ServiceContainer struct {
	AuthService        *AuthService
	AttachmentService  *AttachmentService
	RecipeService      *RecipeService
	CuisineTypeService *CuisineTypeService
	UserService        *UserService
}

// ContainerConfig - все, что сервисам нужно из конфигурации
type ContainerConfig struct {
	Recipes RecipeConfig
	Hasher  auth.PasswordHasher
	Tokens  *auth.TokenManager
	Disks   *storage.Disks
}

// NewServiceContainer собирает репозитории и сервисы
func NewServiceContainer(cfg ContainerConfig) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	roleRepo := repositories.NewRoleRepository()
	permissionRepo := repositories.NewPermissionRepository()
	recipeRepo := repositories.NewRecipeRepository()
	cuisineRepo := repositories.NewCuisineTypeRepository()
	attachmentRepo := repositories.NewAttachmentRepository()

	attachmentService := NewAttachmentService(attachmentRepo, cfg.Disks)
	recipeService := NewRecipeService(recipeRepo, cuisineRepo, attachmentService, cfg.Recipes)

	return &ServiceContainer{
		AuthService:        NewAuthService(userRepo, roleRepo, permissionRepo, cfg.Hasher, cfg.Tokens),
		AttachmentService:  attachmentService,
		RecipeService:      recipeService,
		CuisineTypeService: NewCuisineTypeService(cuisineRepo, recipeRepo),
		UserService:        NewUserService(userRepo, recipeService),
	}
}
