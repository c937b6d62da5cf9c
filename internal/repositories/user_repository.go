package repositories

import (
	"strings"

	"recipehub_backend/internal/models"
	"recipehub_backend/pkg/apperrors"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type UserRepository struct {
	BaseRepository[models.User]
}

func NewUserRepository() *UserRepository {
	return &UserRepository{BaseRepository: NewBaseRepository[models.User]("user")}
}

// FindByEmail - (nil, nil) если пользователя нет
func (r *UserRepository) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	return r.FindOne(db, Where(Criteria{"email": normalizeEmail(email)}), "Roles.Permissions")
}

// WithPermissions загружает пользователя вместе с ролями и разрешениями
func (r *UserRepository) WithPermissions(db *gorm.DB, id uint) (*models.User, error) {
	return r.FindByID(db, id, "Roles.Permissions")
}

// AssignRoles заменяет набор ролей пользователя
func (r *UserRepository) AssignRoles(db *gorm.DB, user *models.User, roles []models.Role) error {
	if err := db.Model(user).Association("Roles").Replace(roles); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type RoleRepository struct {
	BaseRepository[models.Role]
}

func NewRoleRepository() *RoleRepository {
	return &RoleRepository{BaseRepository: NewBaseRepository[models.Role]("role")}
}

func (r *RoleRepository) FindByName(db *gorm.DB, name string) (*models.Role, error) {
	return r.FindOne(db, Where(Criteria{"name": name}), "Permissions")
}

// SyncPermissions заменяет разрешения роли
func (r *RoleRepository) SyncPermissions(db *gorm.DB, role *models.Role, perms []models.Permission) error {
	if err := db.Model(role).Association("Permissions").Replace(perms); err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

type PermissionRepository struct {
	BaseRepository[models.Permission]
}

func NewPermissionRepository() *PermissionRepository {
	return &PermissionRepository{BaseRepository: NewBaseRepository[models.Permission]("permission")}
}

func (r *PermissionRepository) FindByNames(db *gorm.DB, names []string) ([]models.Permission, error) {
	return r.List(db, Filter{InSets: InSets{"name": lo.ToAnySlice(names)}}, ListOptions{OrderBy: "name", OrderDir: SortAsc})
}
