package repositories

import (
	"fmt"
	"strings"
)

// Operator - оператор условия в Criteria
type Operator string

const (
	OpEq    Operator = "="
	OpNotEq Operator = "!="
	OpGt    Operator = ">"
	OpGte   Operator = ">="
	OpLt    Operator = "<"
	OpLte   Operator = "<="
	OpLike  Operator = "like" // подстрока, без учета регистра
)

func (o Operator) valid() bool {
	switch o {
	case OpEq, OpNotEq, OpGt, OpGte, OpLt, OpLte, OpLike:
		return true
	}
	return false
}

// Condition - пара (оператор, значение). Значение без Condition означает равенство.
type Condition struct {
	Op    Operator
	Value any
}

func Eq(v any) Condition    { return Condition{Op: OpEq, Value: v} }
func NotEq(v any) Condition { return Condition{Op: OpNotEq, Value: v} }
func Gt(v any) Condition    { return Condition{Op: OpGt, Value: v} }
func Gte(v any) Condition   { return Condition{Op: OpGte, Value: v} }
func Lt(v any) Condition    { return Condition{Op: OpLt, Value: v} }
func Lte(v any) Condition   { return Condition{Op: OpLte, Value: v} }
func Like(v string) Condition {
	return Condition{Op: OpLike, Value: v}
}

// Criteria: поле -> значение или Condition, все условия через AND
type Criteria map[string]any

// InSets: поле -> множество допустимых значений. Пустое множество не совпадает ни с чем.
type InSets map[string][]any

// Filter - полный набор условий запроса.
// AnyOf - группа условий через OR, которая целиком добавляется через AND к остальным.
type Filter struct {
	Criteria Criteria
	InSets   InSets
	AnyOf    Criteria
}

// Where - короткий конструктор фильтра только из Criteria
func Where(c Criteria) Filter {
	return Filter{Criteria: c}
}

func (f Filter) IsEmpty() bool {
	return len(f.Criteria) == 0 && len(f.InSets) == 0 && len(f.AnyOf) == 0
}

const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListOptions - связи для eager load и сортировка
type ListOptions struct {
	Relations []string
	OrderBy   string // пусто => created_at
	OrderDir  string // пусто => desc
}

// PageRequest - параметры страницы
type PageRequest struct {
	Size int
	Page int // < 1 => 1
	ListOptions
}

// Page - результат пагинации
type Page[T any] struct {
	Items       []T   `json:"data"`
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	TotalPages  int   `json:"last_page"`
}

// WriteContext - кто выполняет запись (для created_by / updated_by)
type WriteContext struct {
	ActorID *uint
}

// Actor - WriteContext для известного пользователя
func Actor(userID uint) WriteContext {
	return WriteContext{ActorID: &userID}
}

// System - запись без пользователя (сиды, фоновые задачи)
func System() WriteContext {
	return WriteContext{}
}

func normalizeDir(dir string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", SortDesc:
		return SortDesc, true
	case SortAsc:
		return SortAsc, true
	}
	return "", false
}

func asCondition(v any) Condition {
	switch c := v.(type) {
	case Condition:
		return c
	case *Condition:
		if c != nil {
			return *c
		}
	}
	return Condition{Op: OpEq, Value: v}
}

// escapeLike экранирует спецсимволы LIKE символом '!'
func escapeLike(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(s)
}

func likePattern(v any) string {
	return "%" + escapeLike(strings.ToLower(fmt.Sprint(v))) + "%"
}
