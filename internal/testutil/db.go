package testutil

import (
	"testing"

	"recipehub_backend/database"
	"recipehub_backend/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// NewTestDB - чистая sqlite-база в памяти с примененными миграциями
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", ":memory:", false)
	require.NoError(t, err, "не удалось открыть sqlite")
	require.NoError(t, database.AutoMigrate(db), "миграция не должна падать")

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// CreateUser создает пользователя с bcrypt-хешем пароля
func CreateUser(t *testing.T, db *gorm.DB, name, email, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{Name: name, Email: email, PasswordHash: string(hash)}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateCuisineType создает тип кухни
func CreateCuisineType(t *testing.T, db *gorm.DB, name string, active bool) *models.CuisineType {
	t.Helper()

	ct := &models.CuisineType{Name: name, Description: name + " cuisine", Status: active}
	require.NoError(t, db.Create(ct).Error)
	return ct
}

// CreateRecipe создает рецепт с минимальными валидными полями
func CreateRecipe(t *testing.T, db *gorm.DB, ownerID, cuisineID uint, name, description string) *models.Recipe {
	t.Helper()

	recipe := &models.Recipe{
		Name:          name,
		Description:   description,
		Ingredients:   datatypes.JSONSlice[string]{"salt"},
		Steps:         datatypes.JSONSlice[string]{"mix"},
		UserID:        ownerID,
		CuisineTypeID: cuisineID,
	}
	require.NoError(t, db.Omit("User", "CuisineType", "Attachments").Create(recipe).Error)
	return recipe
}
