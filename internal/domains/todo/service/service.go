package service

import (
	"context"
	"fmt"

	"todoapp/config"
	"todoapp/infras/otel"
	"todoapp/internal/domains/todo/model/dto"
	"todoapp/internal/domains/todo/repository"
	"todoapp/shared"
	"todoapp/shared/constant"
	gDto "todoapp/shared/dto"
	"todoapp/shared/failure"
	"todoapp/shared/timezone"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	errInvalidTodoID   = "Invalid todo ID"
	errTodoNotFound    = "Todo not found"
	errEmptyTitle      = "Title cannot be empty"
	errFetchTodos      = "Failed to fetch todos"
	errCreateTodo      = "Failed to create todo"
	errUpdateTodo      = "Failed to update todo"
	errDeleteTodo      = "Failed to delete todo"
	errDeleteAllTodos  = "Failed to delete all todos"
	errReadCreatedTodo = "created todo could not be read back"
)

type Todo interface {
	GetAll(ctx context.Context) ([]dto.TodoResponse, error)
	Create(ctx context.Context, req dto.CreateTodoRequest) (dto.TodoResponse, error)
	Update(ctx context.Context, req dto.UpdateTodoRequest, id string) (dto.TodoResponse, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

type serviceImpl struct {
	repo repository.Todo
	cfg  *config.Config
	otel otel.Otel
}

func New(repo repository.Todo, cfg *config.Config, otel otel.Otel) Todo {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

// GetAll lists every todo, newest first.
func (s *serviceImpl) GetAll(ctx context.Context) (res []dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	models, err := s.repo.GetAll(ctx, gDto.FilterGroup{}, gDto.Sort{Field: constant.FieldCreatedAt, Dir: gDto.SortDirDesc})
	if err != nil {
		log.Error().Err(err).Msg("failed to get todos")

		return []dto.TodoResponse{}, failure.Internal(errFetchTodos, fmt.Errorf("failed to get todos: %w", err)) // nolint:wrapcheck
	}

	return dto.FromModels(models), nil
}

// Create stores a new todo and returns it as read back from the store.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTodoRequest) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Normalize()

	if req.Title == "" {
		return res, failure.BadRequestFromString("Title is required") // nolint:wrapcheck
	}

	id, err := s.repo.Insert(ctx, req.ToModel(timezone.Now()))
	if err != nil {
		log.Error().Err(err).Msg("failed to create todo")

		return res, failure.Internal(errCreateTodo, fmt.Errorf("failed to create todo: %w", err)) // nolint:wrapcheck
	}

	todo, err := s.repo.Get(ctx, shared.FilterByID(id))
	if err != nil {
		log.Error().Err(err).Str("id", id.Hex()).Msg("failed to read created todo")

		return res, failure.Internal(errCreateTodo, fmt.Errorf("failed to read created todo: %w", err)) // nolint:wrapcheck
	}

	if todo.ID.IsZero() {
		log.Error().Str("id", id.Hex()).Msg(errReadCreatedTodo)

		return res, failure.Internal(errCreateTodo, fmt.Errorf("%s: %s", errReadCreatedTodo, id.Hex())) // nolint:wrapcheck
	}

	res.FromModel(todo)

	return res, nil
}

// Update applies the set fields of req in a single find-and-update and
// returns the todo as it is afterwards.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTodoRequest, id string) (res dto.TodoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return res, failure.InvalidID(errInvalidTodoID) // nolint:wrapcheck
	}

	req.Normalize()

	if req.Title != nil && *req.Title == "" {
		return res, failure.BadRequestFromString(errEmptyTitle) // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req)

	todo, err := s.repo.Update(ctx, updatedFields, shared.FilterByID(oid))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update todo")

		return res, failure.Internal(errUpdateTodo, fmt.Errorf("failed to update todo: %w", err)) // nolint:wrapcheck
	}

	if todo.ID.IsZero() {
		return res, failure.NotFound(errTodoNotFound) // nolint:wrapcheck
	}

	res.FromModel(todo)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return failure.InvalidID(errInvalidTodoID) // nolint:wrapcheck
	}

	deleted, err := s.repo.Delete(ctx, shared.FilterByID(oid))
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete todo")

		return failure.Internal(errDeleteTodo, fmt.Errorf("failed to delete todo: %w", err)) // nolint:wrapcheck
	}

	if deleted == 0 {
		return failure.NotFound(errTodoNotFound) // nolint:wrapcheck
	}

	return nil
}

// DeleteAll empties the collection and reports how many todos were removed.
func (s *serviceImpl) DeleteAll(ctx context.Context) (deleted int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	deleted, err = s.repo.DeleteMany(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete all todos")

		return 0, failure.Internal(errDeleteAllTodos, fmt.Errorf("failed to delete all todos: %w", err)) // nolint:wrapcheck
	}

	return deleted, nil
}
