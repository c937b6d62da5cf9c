package validator

import (
	"testing"

	"recipehub_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name        string   `json:"name" validate:"required,not-blank"`
	Email       string   `json:"email" validate:"omitempty,email"`
	Ingredients []string `json:"ingredients" validate:"required,min=1,dive,not-blank"`
	Role        string   `form:"role" validate:"omitempty,is-role"`
}

func TestValidateOK(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(sample{Name: "Soup", Ingredients: []string{"water"}, Role: "owner"}))
}

func TestValidateCollectsFieldMessages(t *testing.T) {
	v := New()
	err := v.Validate(sample{Name: "   ", Email: "nope", Ingredients: []string{"salt", " "}, Role: "root"})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)

	fields, ok := appErr.Details.(map[string]string)
	require.True(t, ok)
	assert.Equal(t, "Must not be blank", fields["name"])
	assert.Equal(t, "Must be a valid email address", fields["email"])
	assert.Equal(t, "Must not be blank", fields["ingredients[1]"])
	assert.Equal(t, "Unknown role", fields["role"])
}

func TestValidateEmptySlice(t *testing.T) {
	v := New()
	err := v.Validate(sample{Name: "Soup", Ingredients: []string{}})
	require.Error(t, err)

	appErr, _ := apperrors.AsAppError(err)
	fields := appErr.Details.(map[string]string)
	assert.Contains(t, fields["ingredients"], "at least 1")
}
