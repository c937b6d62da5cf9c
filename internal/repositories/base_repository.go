package repositories

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"recipehub_backend/internal/models"
	"recipehub_backend/pkg/apperrors"

	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// ============================================
// УНИВЕРСАЛЬНЫЙ РЕПОЗИТОРИЙ
// ============================================

// BaseRepository реализует criteria-запросы для любой модели.
// Все методы принимают db (пул или транзакцию) первым аргументом.
type BaseRepository[T any] struct {
	entity string
}

func NewBaseRepository[T any](entity string) BaseRepository[T] {
	return BaseRepository[T]{entity: entity}
}

// серверные поля, которые нельзя менять через Update
var protectedColumns = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"created_by": true,
	"updated_by": true,
}

// ============================================
// ЧТЕНИЕ
// ============================================

func (r BaseRepository[T]) FindByID(db *gorm.DB, id uint, relations ...string) (*T, error) {
	sch, err := r.schemaOf(db)
	if err != nil {
		return nil, err
	}

	q, err := r.withRelations(db.Model(new(T)), sch, relations)
	if err != nil {
		return nil, err
	}

	var entity T
	if err := q.Where(r.pkEq(id)).Take(&entity).Error; err != nil {
		return nil, r.mapError(err, id)
	}
	return &entity, nil
}

// FindOne возвращает (nil, nil), если ничего не найдено
func (r BaseRepository[T]) FindOne(db *gorm.DB, f Filter, relations ...string) (*T, error) {
	items, err := r.query(db, f, ListOptions{Relations: relations}, 1, 0)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

func (r BaseRepository[T]) List(db *gorm.DB, f Filter, opts ListOptions) ([]T, error) {
	return r.query(db, f, opts, 0, 0)
}

func (r BaseRepository[T]) Paginate(db *gorm.DB, f Filter, req PageRequest) (*Page[T], error) {
	if req.Size < 1 {
		return nil, apperrors.InvalidCriteria("page size must be at least 1")
	}
	page := max(req.Page, 1)

	total, err := r.Count(db, f)
	if err != nil {
		return nil, err
	}

	items, err := r.query(db, f, req.ListOptions, req.Size, (page-1)*req.Size)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(req.Size) - 1) / int64(req.Size))
	if totalPages < 1 {
		totalPages = 1
	}

	return &Page[T]{
		Items:       items,
		Total:       total,
		PerPage:     req.Size,
		CurrentPage: page,
		TotalPages:  totalPages,
	}, nil
}

func (r BaseRepository[T]) Count(db *gorm.DB, f Filter) (int64, error) {
	q, err := r.scope(db, f)
	if err != nil {
		return 0, err
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return 0, apperrors.DatabaseError(err)
	}
	return total, nil
}

func (r BaseRepository[T]) Exists(db *gorm.DB, f Filter) (bool, error) {
	total, err := r.Count(db, f)
	return total > 0, err
}

// ============================================
// ЗАПИСЬ
// ============================================

// Create вставляет сущность без связей и проставляет аудит из WriteContext
func (r BaseRepository[T]) Create(db *gorm.DB, wc WriteContext, entity *T) error {
	if a, ok := any(entity).(models.Auditable); ok {
		a.SetCreatedBy(wc.ActorID)
		a.SetUpdatedBy(wc.ActorID)
	}
	if err := db.Omit(clause.Associations).Create(entity).Error; err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

// Update применяет attrs к записи id. Серверные поля игнорируются, updated_by берется из wc.
func (r BaseRepository[T]) Update(db *gorm.DB, wc WriteContext, id uint, attrs map[string]any) error {
	sch, err := r.schemaOf(db)
	if err != nil {
		return err
	}

	var existing T
	if err := db.Model(new(T)).Where(r.pkEq(id)).Take(&existing).Error; err != nil {
		return r.mapError(err, id)
	}

	columns := make(map[string]any, len(attrs)+1)
	for name, value := range attrs {
		col, err := r.column(sch, name)
		if err != nil {
			return err
		}
		if protectedColumns[col] {
			continue
		}
		columns[col] = value
	}
	if len(columns) == 0 {
		return nil
	}
	if sch.LookUpField("updated_by") != nil {
		columns["updated_by"] = wc.ActorID
	}

	if err := db.Model(&existing).Omit(clause.Associations).Updates(columns).Error; err != nil {
		return apperrors.DatabaseError(err)
	}
	return nil
}

func (r BaseRepository[T]) Delete(db *gorm.DB, id uint) error {
	res := db.Where(r.pkEq(id)).Delete(new(T))
	if res.Error != nil {
		return apperrors.DatabaseError(res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.NotFound(r.entity, id)
	}
	return nil
}

// DeleteWhereIDIn возвращает количество реально удаленных строк
func (r BaseRepository[T]) DeleteWhereIDIn(db *gorm.DB, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := db.Where(clause.IN{Column: r.pkColumn(), Values: lo.ToAnySlice(ids)}).Delete(new(T))
	if res.Error != nil {
		return 0, apperrors.DatabaseError(res.Error)
	}
	return res.RowsAffected, nil
}

// ============================================
// ПОСТРОЕНИЕ ЗАПРОСА
// ============================================

func (r BaseRepository[T]) query(db *gorm.DB, f Filter, opts ListOptions, limit, offset int) ([]T, error) {
	q, err := r.scope(db, f)
	if err != nil {
		return nil, err
	}

	sch, err := r.schemaOf(db)
	if err != nil {
		return nil, err
	}
	if q, err = r.withRelations(q, sch, opts.Relations); err != nil {
		return nil, err
	}

	order, err := r.order(sch, opts)
	if err != nil {
		return nil, err
	}
	q = q.Clauses(order)

	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}

	var items []T
	if err := q.Find(&items).Error; err != nil {
		return nil, apperrors.DatabaseError(err)
	}
	return items, nil
}

// scope - единственное место, где Filter превращается в WHERE
func (r BaseRepository[T]) scope(db *gorm.DB, f Filter) (*gorm.DB, error) {
	sch, err := r.schemaOf(db)
	if err != nil {
		return nil, err
	}

	var exprs []clause.Expression

	for _, name := range sortedKeys(f.Criteria) {
		expr, err := r.condition(sch, name, f.Criteria[name])
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}

	for _, name := range sortedKeys(f.InSets) {
		col, err := r.column(sch, name)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, clause.IN{Column: currentColumn(col), Values: f.InSets[name]})
	}

	if len(f.AnyOf) > 0 {
		var group []clause.Expression
		for _, name := range sortedKeys(f.AnyOf) {
			expr, err := r.condition(sch, name, f.AnyOf[name])
			if err != nil {
				return nil, err
			}
			group = append(group, expr)
		}
		// одиночный OrConditions gorm склеивает через OR с соседями
		if len(group) == 1 {
			exprs = append(exprs, group[0])
		} else {
			exprs = append(exprs, clause.Or(group...))
		}
	}

	q := db.Model(new(T))
	if len(exprs) > 0 {
		q = q.Clauses(clause.Where{Exprs: exprs})
	}
	return q, nil
}

func (r BaseRepository[T]) condition(sch *schema.Schema, name string, raw any) (clause.Expression, error) {
	col, err := r.column(sch, name)
	if err != nil {
		return nil, err
	}
	c := asCondition(raw)
	column := currentColumn(col)

	switch c.Op {
	case OpEq:
		return clause.Eq{Column: column, Value: c.Value}, nil
	case OpNotEq:
		return clause.Neq{Column: column, Value: c.Value}, nil
	case OpGt:
		return clause.Gt{Column: column, Value: c.Value}, nil
	case OpGte:
		return clause.Gte{Column: column, Value: c.Value}, nil
	case OpLt:
		return clause.Lt{Column: column, Value: c.Value}, nil
	case OpLte:
		return clause.Lte{Column: column, Value: c.Value}, nil
	case OpLike:
		return clause.Expr{
			SQL:  "LOWER(?) LIKE ? ESCAPE '!'",
			Vars: []any{column, likePattern(c.Value)},
		}, nil
	}
	return nil, apperrors.InvalidCriteria(fmt.Sprintf("unknown operator %q for field %q", c.Op, name))
}

func (r BaseRepository[T]) order(sch *schema.Schema, opts ListOptions) (clause.OrderBy, error) {
	field := opts.OrderBy
	if field == "" {
		field = "created_at"
	}
	col, err := r.column(sch, field)
	if err != nil {
		return clause.OrderBy{}, err
	}
	dir, ok := normalizeDir(opts.OrderDir)
	if !ok {
		return clause.OrderBy{}, apperrors.InvalidCriteria(fmt.Sprintf("unknown sort direction %q", opts.OrderDir))
	}
	desc := dir == SortDesc

	columns := []clause.OrderByColumn{{Column: currentColumn(col), Desc: desc}}
	// tie-breaker по первичному ключу, чтобы страницы не пересекались
	if pk := sch.PrioritizedPrimaryField; pk != nil && pk.DBName != col {
		columns = append(columns, clause.OrderByColumn{Column: currentColumn(pk.DBName), Desc: desc})
	}
	return clause.OrderBy{Columns: columns}, nil
}

func (r BaseRepository[T]) withRelations(q *gorm.DB, sch *schema.Schema, relations []string) (*gorm.DB, error) {
	for _, rel := range relations {
		root, _, _ := strings.Cut(rel, ".")
		if _, ok := sch.Relationships.Relations[root]; !ok {
			return nil, apperrors.InvalidCriteria(fmt.Sprintf("unknown relation %q on %s", rel, r.entity))
		}
		q = q.Preload(rel)
	}
	return q, nil
}

// column проверяет имя поля по схеме модели и возвращает имя колонки
func (r BaseRepository[T]) column(sch *schema.Schema, name string) (string, error) {
	field := sch.LookUpField(name)
	if field == nil || field.DBName == "" {
		return "", apperrors.InvalidCriteria(fmt.Sprintf("unknown field %q on %s", name, r.entity))
	}
	return field.DBName, nil
}

func (r BaseRepository[T]) schemaOf(db *gorm.DB) (*schema.Schema, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return stmt.Schema, nil
}

func (r BaseRepository[T]) pkColumn() clause.Column {
	return clause.Column{Table: clause.CurrentTable, Name: clause.PrimaryKey}
}

func (r BaseRepository[T]) pkEq(id uint) clause.Expression {
	return clause.Eq{Column: r.pkColumn(), Value: id}
}

func (r BaseRepository[T]) mapError(err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(r.entity, id)
	}
	return apperrors.DatabaseError(err)
}

func currentColumn(name string) clause.Column {
	return clause.Column{Table: clause.CurrentTable, Name: name}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := lo.Keys(m)
	slices.Sort(keys)
	return keys
}
