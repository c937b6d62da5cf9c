package services

import (
	"context"
	"testing"

	"recipehub_backend/internal/auth"
	"recipehub_backend/internal/repositories"
	"recipehub_backend/internal/services/dto"
	"recipehub_backend/internal/testutil"
	"recipehub_backend/pkg/apperrors"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCuisineTypeService() *CuisineTypeService {
	return NewCuisineTypeService(repositories.NewCuisineTypeRepository(), repositories.NewRecipeRepository())
}

func TestCuisineTypeDropdown(t *testing.T) {
	db := testutil.NewTestDB(t)
	testutil.CreateCuisineType(t, db, "Thai", true)
	testutil.CreateCuisineType(t, db, "Retired", false)
	testutil.CreateCuisineType(t, db, "Italian", true)

	options, err := newCuisineTypeService().Dropdown(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, []string{"Italian", "Thai"}, lo.Map(options, func(o dto.CuisineTypeOption, _ int) string { return o.Name }))
}

func TestCuisineTypeManagementRequiresPermission(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newCuisineTypeService()
	ctx := context.Background()
	owner := identityAs(1, auth.RoleOwner)

	_, err := svc.List(ctx, db, owner)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

	_, err = svc.Create(ctx, db, identityAs(1, auth.RoleSubAdmin), dto.CreateCuisineTypeRequest{Name: "Thai"})
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

	assert.True(t, apperrors.Is(svc.Delete(ctx, db, owner, 1), apperrors.ErrForbidden))
}

func TestCuisineTypeCreateUpdate(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newCuisineTypeService()
	ctx := context.Background()
	admin := identityAs(1, auth.RoleAdmin)

	ct, err := svc.Create(ctx, db, admin, dto.CreateCuisineTypeRequest{Name: " Thai ", Description: "Spicy"})
	require.NoError(t, err)
	assert.Equal(t, "Thai", ct.Name)
	assert.True(t, ct.Status)

	hidden, err := svc.Create(ctx, db, admin, dto.CreateCuisineTypeRequest{Name: "Hidden", Status: lo.ToPtr(false)})
	require.NoError(t, err)
	assert.False(t, hidden.Status)

	_, err = svc.Create(ctx, db, admin, dto.CreateCuisineTypeRequest{Name: "Thai"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))

	// переименование в свое же имя допустимо
	updated, err := svc.Update(ctx, db, admin, ct.ID, dto.UpdateCuisineTypeRequest{Name: lo.ToPtr("Thai"), Status: lo.ToPtr(false)})
	require.NoError(t, err)
	assert.False(t, updated.Status)
	assert.Equal(t, "Spicy", updated.Description)

	_, err = svc.Update(ctx, db, admin, hidden.ID, dto.UpdateCuisineTypeRequest{Name: lo.ToPtr("Thai")})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))

	_, err = svc.Update(ctx, db, admin, 4242, dto.UpdateCuisineTypeRequest{})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))

	all, err := svc.List(ctx, db, admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCuisineTypeDeleteInUse(t *testing.T) {
	db := testutil.NewTestDB(t)
	svc := newCuisineTypeService()
	ctx := context.Background()
	admin := identityAs(1, auth.RoleAdmin)

	user := testutil.CreateUser(t, db, "Cook", "cook@example.com", "secret123")
	used := testutil.CreateCuisineType(t, db, "Italian", true)
	free := testutil.CreateCuisineType(t, db, "Thai", true)
	testutil.CreateRecipe(t, db, user.ID, used.ID, "Pasta", "Fresh pasta")

	err := svc.Delete(ctx, db, admin, used.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrCuisineTypeInUse))

	require.NoError(t, svc.Delete(ctx, db, admin, free.ID))
	err = svc.Delete(ctx, db, admin, free.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}
