package services

import (
	"context"
	"fmt"
	"testing"

	"recipehub_backend/internal/auth"
	"recipehub_backend/internal/models"
	"recipehub_backend/internal/repositories"
	"recipehub_backend/internal/services/dto"
	"recipehub_backend/internal/storage"
	"recipehub_backend/internal/testutil"
	"recipehub_backend/pkg/apperrors"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recipeFixture struct {
	ctx     context.Context
	db      *gorm.DB
	disk    *flakyStorage
	svc     *RecipeService
	cuisine *models.CuisineType
	alice   *models.User
	bob     *models.User
}

func newRecipeFixture(t *testing.T) *recipeFixture {
	db := testutil.NewTestDB(t)
	disk := newFlakyStorage()
	disks := storage.NewDisksFrom("public", map[string]storage.Storage{"public": disk})

	svc := NewRecipeService(
		repositories.NewRecipeRepository(),
		repositories.NewCuisineTypeRepository(),
		NewAttachmentService(repositories.NewAttachmentRepository(), disks),
		RecipeConfig{
			DefaultPageSize:   10,
			MaxImageSize:      2048 * 1024,
			AllowedImageTypes: []string{"image/jpeg", "image/png", "image/gif"},
			ImageTarget:       dto.StorageTarget{Disk: "public", Directory: "recipes"},
		},
	)

	return &recipeFixture{
		ctx:     context.Background(),
		db:      db,
		disk:    disk,
		svc:     svc,
		cuisine: testutil.CreateCuisineType(t, db, "Italian", true),
		alice:   testutil.CreateUser(t, db, "Alice", "alice@example.com", "secret123"),
		bob:     testutil.CreateUser(t, db, "Bob", "bob@example.com", "secret123"),
	}
}

func identityAs(userID uint, role string) auth.Identity {
	return auth.Identity{UserID: userID, Roles: []string{role}, Permissions: auth.NewPermissionSet(auth.DefaultRoles[role]...)}
}

func recipeNames(page *repositories.Page[models.Recipe]) []string {
	return lo.Map(page.Items, func(r models.Recipe, _ int) string { return r.Name })
}

func validCreateRequest(cuisineID uint) dto.CreateRecipeRequest {
	return dto.CreateRecipeRequest{
		Name:          "Carbonara",
		Description:   "Roman classic",
		Ingredients:   []string{"spaghetti", "guanciale"},
		Steps:         []string{"boil", "mix"},
		CuisineTypeID: cuisineID,
	}
}

// ============================================
// BUILD RECIPE QUERY
// ============================================

func TestBuildRecipeQueryScopesOwnerTier(t *testing.T) {
	owner := identityAs(7, auth.RoleOwner)

	cases := []dto.RecipeFilters{
		{},
		{UserID: 99},
		{Search: "pasta", UserID: 99},
		{CuisineTypeID: 3, UserID: 99, Column: "name", Dir: "asc"},
	}
	for _, filters := range cases {
		f, _ := BuildRecipeQuery(owner, filters, 10)
		assert.Equal(t, uint(7), f.Criteria["user_id"], "filters %+v", filters)
	}
}

func TestBuildRecipeQueryElevated(t *testing.T) {
	admin := identityAs(1, auth.RoleAdmin)

	f, req := BuildRecipeQuery(admin, dto.RecipeFilters{}, 0)
	assert.NotContains(t, f.Criteria, "user_id")
	assert.Equal(t, DefaultPageSize, req.Size)
	assert.Equal(t, 1, req.Page)
	assert.Equal(t, "created_at", req.OrderBy)
	assert.Equal(t, repositories.SortDesc, req.OrderDir)
	assert.Equal(t, repositories.RecipeRelations, req.Relations)

	f, req = BuildRecipeQuery(admin, dto.RecipeFilters{
		Search:        "  soup ",
		CuisineTypeID: 4,
		UserID:        9,
		Column:        "NAME",
		Dir:           "ASC",
		Length:        25,
		Page:          3,
	}, 10)
	assert.Equal(t, uint(9), f.Criteria["user_id"])
	assert.Equal(t, uint(4), f.Criteria["cuisine_type_id"])
	assert.Equal(t, repositories.Like("soup"), f.AnyOf["name"])
	assert.Equal(t, repositories.Like("soup"), f.AnyOf["description"])
	assert.Equal(t, "name", req.OrderBy)
	assert.Equal(t, repositories.SortAsc, req.OrderDir)
	assert.Equal(t, 25, req.Size)
	assert.Equal(t, 3, req.Page)
}

func TestBuildRecipeQueryIgnoresUnknownSort(t *testing.T) {
	admin := identityAs(1, auth.RoleAdmin)

	for _, filters := range []dto.RecipeFilters{
		{Column: "secret", Dir: "asc"},
		{Column: "name", Dir: "sideways"},
		{Column: "password_hash", Dir: "desc"},
	} {
		_, req := BuildRecipeQuery(admin, filters, 10)
		assert.Equal(t, "created_at", req.OrderBy)
		assert.Equal(t, repositories.SortDesc, req.OrderDir)
	}

	f, _ := BuildRecipeQuery(admin, dto.RecipeFilters{Search: "   "}, 10)
	assert.Empty(t, f.AnyOf)
}

// ============================================
// LIST
// ============================================

func TestListOwnerSeesOnlyOwnRecipes(t *testing.T) {
	f := newRecipeFixture(t)
	other := testutil.CreateCuisineType(t, f.db, "Thai", true)

	testutil.CreateRecipe(t, f.db, f.alice.ID, f.cuisine.ID, "Pasta", "Fresh pasta")
	testutil.CreateRecipe(t, f.db, f.alice.ID, other.ID, "Curry", "Green curry")
	testutil.CreateRecipe(t, f.db, f.bob.ID, f.cuisine.ID, "Pizza", "Margherita")
	testutil.CreateRecipe(t, f.db, f.bob.ID, other.ID, "Pad thai", "Noodles")

	alice := identityAs(f.alice.ID, auth.RoleOwner)
	for _, filters := range []dto.RecipeFilters{
		{},
		{UserID: f.bob.ID},
		{CuisineTypeID: f.cuisine.ID, UserID: f.bob.ID},
		{Search: "p", UserID: f.bob.ID},
	} {
		page, err := f.svc.List(f.ctx, f.db, alice, filters)
		require.NoError(t, err)
		for _, r := range page.Items {
			assert.Equal(t, f.alice.ID, r.UserID, "filters %+v", filters)
		}
	}

	page, err := f.svc.List(f.ctx, f.db, alice, dto.RecipeFilters{CuisineTypeID: f.cuisine.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Pasta"}, recipeNames(page))
}

func TestListElevatedFiltersByUser(t *testing.T) {
	f := newRecipeFixture(t)
	testutil.CreateRecipe(t, f.db, f.alice.ID, f.cuisine.ID, "Pasta", "Fresh pasta")
	testutil.CreateRecipe(t, f.db, f.bob.ID, f.cuisine.ID, "Pizza", "Margherita")
	testutil.CreateRecipe(t, f.db, f.bob.ID, f.cuisine.ID, "Risotto", "Creamy rice")

	sub := identityAs(999, auth.RoleSubAdmin)

	page, err := f.svc.List(f.ctx, f.db, sub, dto.RecipeFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)

	page, err = f.svc.List(f.ctx, f.db, sub, dto.RecipeFilters{UserID: f.bob.ID, Column: "name", Dir: "asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Pizza", "Risotto"}, recipeNames(page))

	// связи подгружаются
	require.NotEmpty(t, page.Items)
	require.NotNil(t, page.Items[0].User)
	assert.Equal(t, "Bob", page.Items[0].User.Name)
	require.NotNil(t, page.Items[0].CuisineType)
}

func TestListSorting(t *testing.T) {
	f := newRecipeFixture(t)
	testutil.CreateRecipe(t, f.db, f.alice.ID, f.cuisine.ID, "B", "second")
	testutil.CreateRecipe(t, f.db, f.alice.ID, f.cuisine.ID, "C", "third")
	testutil.CreateRecipe(t, f.db, f.alice.ID, f.cuisine.ID, "A", "first")

	admin := identityAs(f.bob.ID, auth.RoleAdmin)

	page, err := f.svc.List(f.ctx, f.db, admin, dto.RecipeFilters{Column: "name", Dir: "asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, recipeNames(page))

	// неизвестная колонка: created_at desc, последний созданный первым
	page, err = f.svc.List(f.ctx, f.db, admin, dto.RecipeFilters{Column: "secret", Dir: "asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "B"}, recipeNames(page))
}

func TestListPagination(t *testing.T) {
	f := newRecipeFixture(t)
	for i := 1; i <= 25; i++ {
		testutil.CreateRecipe(t, f.db, f.alice.ID, f.cuisine.ID, fmt.Sprintf("R%02d", i), "generated")
	}
	alice := identityAs(f.alice.ID, auth.RoleOwner)

	page, err := f.svc.List(f.ctx, f.db, alice, dto.RecipeFilters{Length: 5, Page: 3, Column: "id", Dir: "asc"})
	require.NoError(t, err)
	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 5, page.TotalPages)
	assert.Equal(t, 3, page.CurrentPage)
	assert.Equal(t, 5, page.PerPage)
	assert.Equal(t, []string{"R11", "R12", "R13", "R14", "R15"}, recipeNames(page))

	// размер по умолчанию из конфига
	page, err = f.svc.List(f.ctx, f.db, alice, dto.RecipeFilters{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 3, page.TotalPages)

	// страница за пределами - пустой список, total сохраняется
	page, err = f.svc.List(f.ctx, f.db, alice, dto.RecipeFilters{Length: 5, Page: 9})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Equal(t, int64(25), page.Total)
}

func TestListSearchMatchesNameOrDescription(t *testing.T) {
	f := newRecipeFixture(t)
	testutil.CreateRecipe(t, f.db, f.alice.ID, f.cuisine.ID, "Pasta al forno", "Baked")
	testutil.CreateRecipe(t, f.db, f.alice.ID, f.cuisine.ID, "Minestrone", "Serve with PASTA shells")
	testutil.CreateRecipe(t, f.db, f.alice.ID, f.cuisine.ID, "Salad", "Greens only")

	alice := identityAs(f.alice.ID, auth.RoleOwner)
	page, err := f.svc.List(f.ctx, f.db, alice, dto.RecipeFilters{Search: "past", Column: "name", Dir: "asc"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Minestrone", "Pasta al forno"}, recipeNames(page))

	// поиск не расширяет область видимости
	bob := identityAs(f.bob.ID, auth.RoleOwner)
	page, err = f.svc.List(f.ctx, f.db, bob, dto.RecipeFilters{Search: "past"})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestListWithoutPermissionIsForbidden(t *testing.T) {
	f := newRecipeFixture(t)

	_, err := f.svc.List(f.ctx, f.db, auth.Identity{UserID: f.alice.ID, Permissions: auth.NewPermissionSet()}, dto.RecipeFilters{})
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))
}

// ============================================
// GET / CREATE / UPDATE / DELETE
// ============================================

func TestGetChecksVisibility(t *testing.T) {
	f := newRecipeFixture(t)
	r := testutil.CreateRecipe(t, f.db, f.alice.ID, f.cuisine.ID, "Pasta", "Fresh pasta")

	got, err := f.svc.Get(f.ctx, f.db, identityAs(f.alice.ID, auth.RoleOwner), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Pasta", got.Name)

	_, err = f.svc.Get(f.ctx, f.db, identityAs(f.bob.ID, auth.RoleOwner), r.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

	_, err = f.svc.Get(f.ctx, f.db, identityAs(f.bob.ID, auth.RoleSubAdmin), r.ID)
	assert.NoError(t, err)

	_, err = f.svc.Get(f.ctx, f.db, identityAs(f.alice.ID, auth.RoleOwner), 4242)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestCreateRecipe(t *testing.T) {
	f := newRecipeFixture(t)
	alice := identityAs(f.alice.ID, auth.RoleOwner)

	recipe, err := f.svc.Create(f.ctx, f.db, alice, validCreateRequest(f.cuisine.ID), nil)
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, recipe.UserID)
	assert.Equal(t, []string{"spaghetti", "guanciale"}, []string(recipe.Ingredients))
	require.NotNil(t, recipe.CreatedBy)
	assert.Equal(t, f.alice.ID, *recipe.CreatedBy)
	require.NotNil(t, recipe.CuisineType)
	assert.Empty(t, recipe.Attachments)
}

func TestCreateRecipeWithImage(t *testing.T) {
	f := newRecipeFixture(t)
	alice := identityAs(f.alice.ID, auth.RoleOwner)

	image := pngFile(t, "carbonara.png", 40, 20)
	recipe, err := f.svc.Create(f.ctx, f.db, alice, validCreateRequest(f.cuisine.ID), &image)
	require.NoError(t, err)

	require.Len(t, recipe.Attachments, 1)
	a := recipe.Attachments[0]
	assert.Equal(t, models.AttachmentTypeImage, a.Type)
	assert.True(t, f.disk.has(t, a.Path))

	resp := f.svc.ToResponse(alice, recipe)
	require.NotNil(t, resp.Image)
	assert.Equal(t, "/storage/"+a.Path, *resp.Image)
}

func TestCreateRecipeStorageFailureRollsBack(t *testing.T) {
	f := newRecipeFixture(t)
	f.disk.failPut = true
	alice := identityAs(f.alice.ID, auth.RoleOwner)

	image := pngFile(t, "carbonara.png", 4, 4)
	_, err := f.svc.Create(f.ctx, f.db, alice, validCreateRequest(f.cuisine.ID), &image)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeStorageFailure))

	var count int64
	require.NoError(t, f.db.Model(&models.Recipe{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateRecipeRejections(t *testing.T) {
	f := newRecipeFixture(t)
	alice := identityAs(f.alice.ID, auth.RoleOwner)

	_, err := f.svc.Create(f.ctx, f.db, identityAs(f.bob.ID, auth.RoleSubAdmin), validCreateRequest(f.cuisine.ID), nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

	req := validCreateRequest(f.cuisine.ID)
	req.Name = "   "
	req.Ingredients = []string{"egg", " "}
	req.Steps = nil
	_, err = f.svc.Create(f.ctx, f.db, alice, req, nil)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
	details := appErr.Details.(map[string]string)
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "ingredients[1]")
	assert.Contains(t, details, "steps")

	_, err = f.svc.Create(f.ctx, f.db, alice, validCreateRequest(4242), nil)
	appErr, ok = apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Contains(t, appErr.Details, "cuisine_type_id")

	inactive := testutil.CreateCuisineType(t, f.db, "Retired", false)
	_, err = f.svc.Create(f.ctx, f.db, alice, validCreateRequest(inactive.ID), nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrCuisineTypeInactive))

	tooBig := pngFile(t, "big.png", 4, 4)
	tooBig.Size = 3 * 1024 * 1024
	_, err = f.svc.Create(f.ctx, f.db, alice, validCreateRequest(f.cuisine.ID), &tooBig)
	assert.True(t, apperrors.Is(err, apperrors.ErrFileTooLarge))

	text := dto.FromBytes("notes.txt", "", []byte("plain"))
	_, err = f.svc.Create(f.ctx, f.db, alice, validCreateRequest(f.cuisine.ID), &text)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidFileType))
}

func TestUpdateRecipe(t *testing.T) {
	f := newRecipeFixture(t)
	alice := identityAs(f.alice.ID, auth.RoleOwner)
	r := testutil.CreateRecipe(t, f.db, f.alice.ID, f.cuisine.ID, "Pasta", "Fresh pasta")

	updated, err := f.svc.Update(f.ctx, f.db, alice, r.ID, dto.UpdateRecipeRequest{Name: lo.ToPtr(" Pasta fresca ")}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Pasta fresca", updated.Name)
	assert.Equal(t, "Fresh pasta", updated.Description)
	assert.Equal(t, []string{"salt"}, []string(updated.Ingredients))
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, f.alice.ID, *updated.UpdatedBy)

	_, err = f.svc.Update(f.ctx, f.db, identityAs(f.bob.ID, auth.RoleOwner), r.ID, dto.UpdateRecipeRequest{Name: lo.ToPtr("Mine")}, nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

	_, err = f.svc.Update(f.ctx, f.db, identityAs(f.bob.ID, auth.RoleAdmin), r.ID, dto.UpdateRecipeRequest{Steps: []string{"boil", "serve"}}, nil)
	require.NoError(t, err)

	_, err = f.svc.Update(f.ctx, f.db, alice, r.ID, dto.UpdateRecipeRequest{Ingredients: []string{}}, nil)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidationFailed))
}

func TestUpdateRecipeReplacesImage(t *testing.T) {
	f := newRecipeFixture(t)
	alice := identityAs(f.alice.ID, auth.RoleOwner)

	first := pngFile(t, "first.png", 10, 10)
	recipe, err := f.svc.Create(f.ctx, f.db, alice, validCreateRequest(f.cuisine.ID), &first)
	require.NoError(t, err)
	require.Len(t, recipe.Attachments, 1)
	oldPath := recipe.Attachments[0].Path

	second := pngFile(t, "second.png", 20, 10)
	recipe, err = f.svc.Update(f.ctx, f.db, alice, recipe.ID, dto.UpdateRecipeRequest{}, &second)
	require.NoError(t, err)

	require.Len(t, recipe.Attachments, 1)
	assert.Equal(t, "second.png", recipe.Attachments[0].OriginalName)
	assert.False(t, f.disk.has(t, oldPath))
	assert.True(t, f.disk.has(t, recipe.Attachments[0].Path))
}

func TestUpdateRecipeRejectsInactiveCuisine(t *testing.T) {
	f := newRecipeFixture(t)
	alice := identityAs(f.alice.ID, auth.RoleOwner)
	r := testutil.CreateRecipe(t, f.db, f.alice.ID, f.cuisine.ID, "Pasta", "Fresh pasta")
	inactive := testutil.CreateCuisineType(t, f.db, "Retired", false)

	_, err := f.svc.Update(f.ctx, f.db, alice, r.ID, dto.UpdateRecipeRequest{CuisineTypeID: &inactive.ID}, nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrCuisineTypeInactive))

	// тот же тип кухни не перепроверяется
	require.NoError(t, f.db.Model(f.cuisine).Update("status", false).Error)
	_, err = f.svc.Update(f.ctx, f.db, alice, r.ID, dto.UpdateRecipeRequest{CuisineTypeID: &f.cuisine.ID, Name: lo.ToPtr("Still pasta")}, nil)
	assert.NoError(t, err)
}

func TestDeleteRecipeCascadesAttachments(t *testing.T) {
	f := newRecipeFixture(t)
	alice := identityAs(f.alice.ID, auth.RoleOwner)

	image := pngFile(t, "dish.png", 8, 8)
	recipe, err := f.svc.Create(f.ctx, f.db, alice, validCreateRequest(f.cuisine.ID), &image)
	require.NoError(t, err)
	path := recipe.Attachments[0].Path

	err = f.svc.Delete(f.ctx, f.db, identityAs(f.bob.ID, auth.RoleOwner), recipe.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrForbidden))

	require.NoError(t, f.svc.Delete(f.ctx, f.db, alice, recipe.ID))
	assert.False(t, f.disk.has(t, path))

	var count int64
	require.NoError(t, f.db.Model(&models.Attachment{}).Count(&count).Error)
	assert.Zero(t, count)

	_, err = f.svc.Get(f.ctx, f.db, alice, recipe.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestDeleteRecipeKeepsOwnerWhenStorageFails(t *testing.T) {
	f := newRecipeFixture(t)
	alice := identityAs(f.alice.ID, auth.RoleOwner)

	image := pngFile(t, "dish.png", 8, 8)
	recipe, err := f.svc.Create(f.ctx, f.db, alice, validCreateRequest(f.cuisine.ID), &image)
	require.NoError(t, err)
	f.disk.failMove[recipe.Attachments[0].Path] = true

	err = f.svc.Delete(f.ctx, f.db, alice, recipe.ID)
	assert.True(t, apperrors.HasCode(err, apperrors.CodePartialCascadeFailure))

	_, err = f.svc.Get(f.ctx, f.db, alice, recipe.ID)
	assert.NoError(t, err)
}

func TestDeleteAllOwnedBy(t *testing.T) {
	f := newRecipeFixture(t)
	testutil.CreateRecipe(t, f.db, f.alice.ID, f.cuisine.ID, "Pasta", "Fresh pasta")
	testutil.CreateRecipe(t, f.db, f.alice.ID, f.cuisine.ID, "Pizza", "Margherita")
	testutil.CreateRecipe(t, f.db, f.bob.ID, f.cuisine.ID, "Risotto", "Creamy rice")

	require.NoError(t, f.svc.DeleteAllOwnedBy(f.ctx, f.db, f.alice.ID))

	page, err := f.svc.List(f.ctx, f.db, identityAs(f.bob.ID, auth.RoleAdmin), dto.RecipeFilters{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Risotto"}, recipeNames(page))
}

// ============================================
// ОТВЕТЫ
// ============================================

func TestToResponseFlags(t *testing.T) {
	f := newRecipeFixture(t)
	r := testutil.CreateRecipe(t, f.db, f.alice.ID, f.cuisine.ID, "Pasta", "Fresh pasta")

	owner := f.svc.ToResponse(identityAs(f.alice.ID, auth.RoleOwner), r)
	assert.True(t, owner.CanEdit)
	assert.True(t, owner.CanDelete)
	assert.Nil(t, owner.Image)
	assert.NotNil(t, owner.Attachments)

	stranger := f.svc.ToResponse(identityAs(f.bob.ID, auth.RoleOwner), r)
	assert.False(t, stranger.CanEdit)
	assert.False(t, stranger.CanDelete)

	sub := f.svc.ToResponse(identityAs(f.bob.ID, auth.RoleSubAdmin), r)
	assert.False(t, sub.CanEdit)

	admin := f.svc.ToResponse(identityAs(f.bob.ID, auth.RoleAdmin), r)
	assert.True(t, admin.CanEdit)
	assert.True(t, admin.CanDelete)
}

func TestToListResponse(t *testing.T) {
	f := newRecipeFixture(t)
	for i := 0; i < 3; i++ {
		testutil.CreateRecipe(t, f.db, f.alice.ID, f.cuisine.ID, fmt.Sprintf("R%d", i), "generated")
	}
	alice := identityAs(f.alice.ID, auth.RoleOwner)

	page, err := f.svc.List(f.ctx, f.db, alice, dto.RecipeFilters{Length: 2})
	require.NoError(t, err)

	resp := f.svc.ToListResponse(alice, page)
	assert.Len(t, resp.List, 2)
	assert.Equal(t, dto.Pagination{Total: 3, Count: 2, PerPage: 2, CurrentPage: 1, TotalPages: 2}, resp.Pagination)
}
