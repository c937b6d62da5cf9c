package auth

import (
	"testing"
	"time"

	"recipehub_backend/internal/models"
	"recipehub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func roleWith(name string, perms ...Permission) models.Role {
	role := models.Role{Name: name}
	for _, p := range perms {
		role.Permissions = append(role.Permissions, models.Permission{Name: string(p)})
	}
	return role
}

func TestResolvePermissionsMergesRoles(t *testing.T) {
	set := ResolvePermissions([]models.Role{
		roleWith(RoleOwner, DefaultRoles[RoleOwner]...),
		roleWith(RoleSubAdmin, DefaultRoles[RoleSubAdmin]...),
	})

	assert.True(t, set.Has(PermViewAllRecipes))
	assert.True(t, set.Has(PermEditOwnRecipe))
	assert.False(t, set.Has(PermEditRecipe))
	assert.Len(t, set.List(), 5)
}

func TestIdentityTier(t *testing.T) {
	owner := NewIdentity(&models.User{
		BaseModel: models.BaseModel{ID: 1},
		Roles:     []models.Role{roleWith(RoleOwner, DefaultRoles[RoleOwner]...)},
	})
	admin := NewIdentity(&models.User{
		BaseModel: models.BaseModel{ID: 2},
		Roles:     []models.Role{roleWith(RoleAdmin, DefaultRoles[RoleAdmin]...)},
	})

	assert.Equal(t, TierOwner, owner.Tier())
	assert.Equal(t, TierElevated, admin.Tier())
	assert.Equal(t, []string{RoleOwner}, owner.Roles)
	assert.Equal(t, uint(2), *admin.Actor())
}

func TestDefaultRolesUseKnownPermissions(t *testing.T) {
	known := NewPermissionSet(AllPermissions...)
	for role, perms := range DefaultRoles {
		for _, p := range perms {
			assert.True(t, known.Has(p), "role %s: unknown permission %s", role, p)
		}
	}
	assert.True(t, ValidateRole(RoleSubAdmin))
	assert.False(t, ValidateRole("root"))
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.True(t, h.Check("correct horse", hash))
	assert.False(t, h.Check("wrong horse", hash))

	_, err = h.Hash("short")
	assert.Error(t, err)

	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(99).Cost)
}

func TestTokenManagerRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", "recipehub", time.Hour)

	token, expires, err := m.Issue(42, "cook@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "cook@example.com", claims.Email)
}

func TestTokenManagerRejectsBadTokens(t *testing.T) {
	m := NewTokenManager("secret", "recipehub", time.Hour)
	token, _, err := m.Issue(1, "a@example.com")
	require.NoError(t, err)

	_, err = NewTokenManager("other", "recipehub", time.Hour).Parse(token)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidToken))

	_, err = NewTokenManager("secret", "someone-else", time.Hour).Parse(token)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidToken))

	expired := NewTokenManager("secret", "recipehub", time.Minute)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Issue(1, "a@example.com")
	require.NoError(t, err)
	_, err = m.Parse(old)
	assert.True(t, apperrors.Is(err, apperrors.ErrTokenExpired))

	_, err = m.Parse("not-a-token")
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidToken))
}
