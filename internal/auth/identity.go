package auth

import (
	"recipehub_backend/internal/models"
)

// Tier - уровень видимости строк
type Tier int

const (
	TierOwner    Tier = iota // только свои записи
	TierElevated             // все записи
)

// Identity - вызывающий пользователь с готовым набором разрешений
type Identity struct {
	UserID      uint
	Name        string
	Email       string
	Roles       []string
	Permissions PermissionSet
}

// NewIdentity строит Identity из пользователя с загруженными Roles.Permissions
func NewIdentity(user *models.User) Identity {
	return Identity{
		UserID:      user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Roles:       user.RoleNames(),
		Permissions: ResolvePermissions(user.Roles),
	}
}

func (i Identity) Can(p Permission) bool {
	return i.Permissions.Has(p)
}

// Tier: elevated только при наличии view-all-recipes
func (i Identity) Tier() Tier {
	if i.Can(PermViewAllRecipes) {
		return TierElevated
	}
	return TierOwner
}

// Actor - id для аудита записи
func (i Identity) Actor() *uint {
	id := i.UserID
	return &id
}
