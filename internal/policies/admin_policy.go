package policies

import (
	"recipehub_backend/internal/auth"
)

type CuisineTypePolicy struct{}

func (CuisineTypePolicy) CanManage(caller auth.Identity) bool {
	return caller.Can(auth.PermManageCuisineTypes)
}

type UserPolicy struct{}

// CanDelete: нужен manage-users, удалить себя нельзя
func (UserPolicy) CanDelete(caller auth.Identity, userID uint) bool {
	return caller.Can(auth.PermManageUsers) && caller.UserID != userID
}
