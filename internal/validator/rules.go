package validator

import (
	"log"
	"strings"

	"recipehub_backend/internal/auth"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules регистрирует кастомные правила.
// Ошибка регистрации - ошибка запуска, приложение не стартует.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'not-blank': строка не пустая после trim
	mustRegister("not-blank", validateNotBlank)

	// 'is-role': роль из auth.DefaultRoles
	mustRegister("is-role", validateRole)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateRole(fl validator.FieldLevel) bool {
	return auth.ValidateRole(fl.Field().String())
}
