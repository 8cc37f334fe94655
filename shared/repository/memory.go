package repository

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"todoapp/infras/otel"
	"todoapp/shared/constant"
	"todoapp/shared/dto"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const duplicateKeyCode = 11000

// MemoryRepository keeps documents in process, in insertion order. Documents
// go through a bson round trip on the way in and out so values compare the
// same way they would once stored.
type MemoryRepository[T any] struct {
	otel    otel.Otel
	entitas string
	unique  []string

	mu   sync.RWMutex
	docs []bson.M
}

// NewMemoryRepository creates an empty in-process collection. uniqueFields
// behave like unique indexes and reject duplicate inserts.
func NewMemoryRepository[T any](entitasName string, otl otel.Otel, uniqueFields ...string) *MemoryRepository[T] {
	return &MemoryRepository[T]{
		otel:    otl,
		entitas: entitasName,
		unique:  uniqueFields,
	}
}

func (repo *MemoryRepository[T]) Insert(ctx context.Context, model T) (bson.ObjectID, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.memory.Insert", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	if err := ctx.Err(); err != nil {
		return bson.NilObjectID, fmt.Errorf("failed to insert data (%s): %w", repo.entitas, err)
	}

	doc, err := toDocument(model)
	if err != nil {
		scope.TraceError(err)

		return bson.NilObjectID, fmt.Errorf("failed to insert data (%s): %w", repo.entitas, err)
	}

	id, ok := doc[constant.FieldID].(bson.ObjectID)
	if !ok || id.IsZero() {
		id = bson.NewObjectID()
		doc[constant.FieldID] = id
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if err = repo.checkUnique(doc); err != nil {
		scope.TraceError(err)

		return bson.NilObjectID, fmt.Errorf("failed to insert data (%s): %w", repo.entitas, err)
	}

	repo.docs = append(repo.docs, doc)

	return id, nil
}

func (repo *MemoryRepository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (bool, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.memory.Exist", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	query := filter.ToBSON()
	if len(query) == 0 {
		return false, errRequiredFilter
	}

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("failed to check exist data (%s): %w", repo.entitas, err)
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	return slices.ContainsFunc(repo.docs, func(doc bson.M) bool {
		return matches(doc, query)
	}), nil
}

func (repo *MemoryRepository[T]) Get(ctx context.Context, filter dto.FilterGroup) (T, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.memory.Get", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	var model T

	if err := ctx.Err(); err != nil {
		return model, fmt.Errorf("failed to get data (%s): %w", repo.entitas, err)
	}

	query := filter.ToBSON()

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	for _, doc := range repo.docs {
		if matches(doc, query) {
			return fromDocument[T](doc)
		}
	}

	return model, nil
}

func (repo *MemoryRepository[T]) GetAll(ctx context.Context, filter dto.FilterGroup, sort dto.Sort) ([]T, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.memory.GetAll", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	models := []T{}

	if err := ctx.Err(); err != nil {
		return models, fmt.Errorf("failed to get all data (%s): %w", repo.entitas, err)
	}

	query := filter.ToBSON()

	repo.mu.RLock()

	selected := []bson.M{}
	for _, doc := range repo.docs {
		if matches(doc, query) {
			selected = append(selected, doc)
		}
	}

	repo.mu.RUnlock()

	if sort.Field != "" {
		desc := sort.Dir == dto.SortDirDesc
		if desc {
			slices.Reverse(selected)
		}

		slices.SortStableFunc(selected, func(a, b bson.M) int {
			order := compareForSort(a[sort.Field], b[sort.Field])
			if desc {
				return -order
			}

			return order
		})
	}

	for _, doc := range selected {
		model, err := fromDocument[T](doc)
		if err != nil {
			scope.TraceError(err)

			return []T{}, err
		}

		models = append(models, model)
	}

	return models, nil
}

func (repo *MemoryRepository[T]) Update(ctx context.Context, fields map[string]any, filter dto.FilterGroup) (T, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.memory.Update", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	var model T

	query := filter.ToBSON()
	if len(query) == 0 {
		return model, errRequiredFilter
	}

	if err := ctx.Err(); err != nil {
		return model, fmt.Errorf("failed to update data (%s): %w", repo.entitas, err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	for _, doc := range repo.docs {
		if !matches(doc, query) {
			continue
		}

		for key, value := range fields {
			stored := normalize(value)
			if key == constant.FieldUpdatedAt {
				stored = advance(doc[key], stored)
			}

			doc[key] = stored
		}

		return fromDocument[T](doc)
	}

	return model, nil
}

func (repo *MemoryRepository[T]) Delete(ctx context.Context, filter dto.FilterGroup) (int64, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.memory.Delete", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	query := filter.ToBSON()
	if len(query) == 0 {
		return 0, errRequiredFilter
	}

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("failed to delete data (%s): %w", repo.entitas, err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	for idx, doc := range repo.docs {
		if matches(doc, query) {
			repo.docs = slices.Delete(repo.docs, idx, idx+1)

			return 1, nil
		}
	}

	return 0, nil
}

func (repo *MemoryRepository[T]) DeleteMany(ctx context.Context, filter dto.FilterGroup) (int64, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.memory.DeleteMany", constant.OtelRepositoryScopeName, repo.entitas))
	defer scope.End()

	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("failed to delete all data (%s): %w", repo.entitas, err)
	}

	query := filter.ToBSON()

	repo.mu.Lock()
	defer repo.mu.Unlock()

	before := len(repo.docs)
	repo.docs = slices.DeleteFunc(repo.docs, func(doc bson.M) bool {
		return matches(doc, query)
	})

	return int64(before - len(repo.docs)), nil
}

func (repo *MemoryRepository[T]) checkUnique(doc bson.M) error {
	for _, field := range repo.unique {
		value, ok := doc[field]
		if !ok || value == nil {
			continue
		}

		for _, existing := range repo.docs {
			if equal(existing[field], value) {
				return mongo.WriteException{
					WriteErrors: []mongo.WriteError{{
						Code:    duplicateKeyCode,
						Message: fmt.Sprintf("E11000 duplicate key error: %s %v", field, value),
					}},
				}
			}
		}
	}

	return nil
}

func toDocument(model any) (bson.M, error) {
	raw, err := bson.Marshal(model)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	doc := bson.M{}
	if err = bson.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	return doc, nil
}

func fromDocument[T any](doc bson.M) (T, error) {
	var model T

	raw, err := bson.Marshal(doc)
	if err != nil {
		return model, fmt.Errorf("failed to marshal document: %w", err)
	}

	if err = bson.Unmarshal(raw, &model); err != nil {
		return model, fmt.Errorf("failed to decode document: %w", err)
	}

	return model, nil
}

// normalize converts a Go value into the representation it has after being
// stored, e.g. time.Time becomes bson.DateTime.
func normalize(value any) any {
	raw, err := bson.Marshal(bson.D{{Key: "v", Value: value}})
	if err != nil {
		return value
	}

	doc := bson.M{}
	if err = bson.Unmarshal(raw, &doc); err != nil {
		return value
	}

	return doc["v"]
}

// advance returns next, moved one millisecond past prev when it would not
// otherwise be later, so every update moves updatedAt forward.
func advance(prev, next any) any {
	prevTime, ok := prev.(bson.DateTime)
	if !ok {
		return next
	}

	nextTime, ok := next.(bson.DateTime)
	if !ok || nextTime > prevTime {
		return next
	}

	return prevTime + 1
}

// matches evaluates the equality and $and queries built by dto.FilterGroup.
func matches(doc bson.M, query bson.D) bool {
	for _, elem := range query {
		if elem.Key != "$and" {
			if !equal(doc[elem.Key], normalize(elem.Value)) {
				return false
			}

			continue
		}

		clauses, _ := elem.Value.(bson.A)
		for _, clause := range clauses {
			sub, _ := clause.(bson.D)
			if !matches(doc, sub) {
				return false
			}
		}
	}

	return true
}

func equal(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if order, ok := compare(a, b); ok {
		return order == 0
	}

	return false
}

func compareForSort(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	order, _ := compare(a, b)

	return order
}

func compare(a, b any) (int, bool) {
	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			return cmp.Compare(x, y), true
		}

		return 0, false
	}

	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), true
		}
	case bool:
		if y, ok := b.(bool); ok {
			return cmpBool(x, y), true
		}
	case bson.DateTime:
		if y, ok := b.(bson.DateTime); ok {
			return cmp.Compare(x, y), true
		}
	case bson.ObjectID:
		if y, ok := b.(bson.ObjectID); ok {
			return bytes.Compare(x[:], y[:]), true
		}
	}

	return 0, false
}

func toFloat(value any) (float64, bool) {
	switch num := value.(type) {
	case int32:
		return float64(num), true
	case int64:
		return float64(num), true
	case float64:
		return num, true
	default:
		return 0, false
	}
}

func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}
