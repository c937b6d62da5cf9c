package auth

import (
	"slices"

	"recipehub_backend/internal/models"

	"github.com/samber/lo"
)

// Permission - токен разрешения
type Permission string

const (
	PermListRecipes        Permission = "list-recipes"
	PermViewAllRecipes     Permission = "view-all-recipes"
	PermAddRecipe          Permission = "add-recipe"
	PermEditRecipe         Permission = "edit-recipe"
	PermEditOwnRecipe      Permission = "edit-own-recipe"
	PermDeleteRecipe       Permission = "delete-recipe"
	PermDeleteOwnRecipe    Permission = "delete-own-recipe"
	PermManageUsers        Permission = "manage-users"
	PermManageCuisineTypes Permission = "manage-cuisine-types"
)

// RBAC роли
const (
	RoleAdmin    = "admin"
	RoleSubAdmin = "sub-admin"
	RoleOwner    = "owner"
)

// AllPermissions - полный список токенов
var AllPermissions = []Permission{
	PermListRecipes,
	PermViewAllRecipes,
	PermAddRecipe,
	PermEditRecipe,
	PermEditOwnRecipe,
	PermDeleteRecipe,
	PermDeleteOwnRecipe,
	PermManageUsers,
	PermManageCuisineTypes,
}

// DefaultRoles - наборы разрешений ролей, синхронизируются в БД при старте
var DefaultRoles = map[string][]Permission{
	RoleAdmin: AllPermissions,
	RoleSubAdmin: {
		PermListRecipes,
		PermViewAllRecipes,
	},
	RoleOwner: {
		PermListRecipes,
		PermAddRecipe,
		PermEditOwnRecipe,
		PermDeleteOwnRecipe,
	},
}

// PermissionSet - разрешения, вычисленные из ролей один раз
type PermissionSet map[Permission]struct{}

func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// List - отсортированный список, для ответа клиенту
func (s PermissionSet) List() []Permission {
	out := lo.Keys(s)
	slices.Sort(out)
	return out
}

// ResolvePermissions собирает разрешения из загруженных ролей пользователя.
// Это единственное место, где имя роли влияет на доступ.
func ResolvePermissions(roles []models.Role) PermissionSet {
	set := make(PermissionSet)
	for _, role := range roles {
		for _, p := range role.Permissions {
			set[Permission(p.Name)] = struct{}{}
		}
	}
	return set
}

// ValidateRole проверяет, что роль известна
func ValidateRole(role string) bool {
	_, ok := DefaultRoles[role]
	return ok
}
