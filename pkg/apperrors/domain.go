package apperrors

import (
	"fmt"
	"net/http"
)

/*
Этот файл содержит фабрики и предопределенные переменные
для общих ошибок бизнес-логики и домена.
*/

// =========================================================================
// Фабричные ФУНКЦИИ (Используются для оборачивания ошибок, напр. из репозитория)
// =========================================================================

// ErrNotFound - фабрика для ошибки "не найдено" (404)
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// NotFound - "не найдено" с указанием сущности и идентификатора
func NotFound(entity string, id any) *AppError {
	return New(CodeNotFound, "resource", fmt.Sprintf("%s %v not found", entity, id), http.StatusNotFound).
		WithDetails(map[string]any{"entity": entity, "id": id})
}

// ErrAlreadyExists - фабрика для ошибки "уже существует" (409)
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict - общая фабрика для конфликтов (409)
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// InvalidCriteria - неизвестное поле, оператор или направление сортировки (400)
func InvalidCriteria(message string) *AppError {
	return New(CodeInvalidCriteria, "query", message, http.StatusBadRequest)
}

// StorageFailure - блоб-хранилище отказало при записи/чтении (502)
func StorageFailure(err error, op string) *AppError {
	return Wrap(err, CodeStorageFailure, "storage", "Storage operation failed", http.StatusBadGateway).
		WithDetails(map[string]any{"op": op})
}

// PartialCascadeFailure - каскадное удаление вложений не удалось, владелец сохранен (500)
func PartialCascadeFailure(err error, total, failed int) *AppError {
	return Wrap(err, CodePartialCascadeFailure, "attachments",
		"Attachment cascade failed, owner was left untouched", http.StatusInternalServerError).
		WithDetails(map[string]any{"total": total, "failed": failed})
}

// =========================================================================
// Предопределенные ПЕРЕМЕННЫЕ (Для частых, статичных ошибок)
// =========================================================================

// ErrForbidden - единственная ошибка отказа политики доступа.
var ErrForbidden = New(
	CodeForbidden,
	"auth",
	"This action is unauthorized",
	http.StatusForbidden,
)

// --- Uploads & Files ---

// ErrFileTooLarge - файл превышает максимальный размер.
var ErrFileTooLarge = New(
	CodeValidationFailed,
	"validation",
	"File size exceeds the allowed limit",
	http.StatusUnprocessableEntity,
)

// ErrInvalidFileType - MIME-тип файла не разрешен.
var ErrInvalidFileType = New(
	CodeValidationFailed,
	"validation",
	"The provided file type is not allowed",
	http.StatusUnprocessableEntity,
)

// --- Cuisine types ---

// ErrCuisineTypeInactive - выбранный тип кухни выключен.
var ErrCuisineTypeInactive = New(
	CodeValidationFailed,
	"validation",
	"The selected cuisine type is not active",
	http.StatusUnprocessableEntity,
)

// ErrCuisineTypeInUse - тип кухни используется рецептами, удаление запрещено.
var ErrCuisineTypeInUse = New(
	CodeConflict,
	"cuisine_types",
	"Cuisine type is referenced by recipes",
	http.StatusConflict,
)

// --- Auth ---

// ErrEmailAlreadyExists - email уже зарегистрирован.
var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"User with this email already exists",
	http.StatusConflict,
)

// ErrInvalidCredentials - неверный email или пароль.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

// ErrInvalidToken - токен невалиден или подпись не совпала.
var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid token",
	http.StatusUnauthorized,
)

// ErrTokenExpired - срок действия токена истек.
var ErrTokenExpired = New(
	CodeTokenExpired,
	"auth",
	"Token expired",
	http.StatusUnauthorized,
)
