package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"todoapp/config"
	"todoapp/infras/otel/mocks"
	todoMocks "todoapp/internal/domains/todo/mocks"
	"todoapp/internal/domains/todo/model"
	"todoapp/internal/domains/todo/model/dto"
	"todoapp/internal/domains/todo/service"
	"todoapp/shared/constant"
	gDto "todoapp/shared/dto"
	"todoapp/shared/failure"
	gModel "todoapp/shared/model"
	"todoapp/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.uber.org/mock/gomock"
)

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

func newTodo(title string, completed bool) model.Todo {
	now := timezone.Now()

	return model.Todo{
		ID:        bson.NewObjectID(),
		Title:     title,
		Completed: completed,
		Timestamps: gModel.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func TestTodoService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := todoMocks.NewMockTodo(ctrl)
	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel())

	newest := newTodo("newest", false)
	oldest := newTodo("oldest", true)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
		wantIDs   []string
	}{
		{
			name: "sorted by createdAt descending",
			setupMock: func() {
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gDto.FilterGroup{}, gDto.Sort{Field: constant.FieldCreatedAt, Dir: gDto.SortDirDesc}).
					Return([]model.Todo{newest, oldest}, nil)
			},
			wantIDs: []string{newest.ID.Hex(), oldest.ID.Hex()},
		},
		{
			name: "empty collection",
			setupMock: func() {
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Todo{}, nil)
			},
			wantIDs: []string{},
		},
		{
			name: "repository error",
			setupMock: func() {
				mockRepo.EXPECT().
					GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, errors.New("connection refused"))
			},
			wantErr:  true,
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.GetAll(context.Background())

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.NotContains(t, failure.GetMessage(err), "connection refused")

				return
			}

			require.NoError(t, err)
			require.NotNil(t, result)

			ids := make([]string, len(result))
			for i, todo := range result {
				ids[i] = todo.ID
			}

			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestTodoService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := todoMocks.NewMockTodo(ctrl)
	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel())

	stored := newTodo("Buy milk", false)

	tests := []struct {
		name      string
		req       dto.CreateTodoRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful creation trims the title",
			req:  dto.CreateTodoRequest{Title: "  Buy milk  "},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, todo model.Todo) (bson.ObjectID, error) {
						assert.Equal(t, "Buy milk", todo.Title)
						assert.False(t, todo.Completed)
						assert.False(t, todo.CreatedAt.IsZero())
						assert.Equal(t, todo.CreatedAt, todo.UpdatedAt)

						return stored.ID, nil
					})

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)
			},
		},
		{
			name:      "blank title",
			req:       dto.CreateTodoRequest{Title: "   "},
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "insert error",
			req:  dto.CreateTodoRequest{Title: "Buy milk"},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(bson.NilObjectID, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "read back error",
			req:  dto.CreateTodoRequest{Title: "Buy milk"},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(stored.ID, nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Todo{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "created todo vanished",
			req:  dto.CreateTodoRequest{Title: "Buy milk"},
			setupMock: func() {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(stored.ID, nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Todo{}, nil)
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Create(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, stored.ID.Hex(), result.ID)
			assert.Equal(t, "Buy milk", result.Title)
			assert.False(t, result.Completed)
			assert.Equal(t, result.CreatedAt, result.UpdatedAt)
		})
	}
}

func TestTodoService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := todoMocks.NewMockTodo(ctrl)
	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel())

	existing := newTodo("Buy milk", false)
	updated := existing
	updated.Completed = true
	updated.UpdatedAt = existing.UpdatedAt.Add(time.Second)

	tests := []struct {
		name      string
		id        string
		req       dto.UpdateTodoRequest
		setupMock func()
		wantCode  int
		wantMsg   string
	}{
		{
			name: "toggle completed",
			id:   existing.ID.Hex(),
			req:  dto.UpdateTodoRequest{Completed: boolPtr(true)},
			setupMock: func() {
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) (model.Todo, error) {
						assert.Equal(t, true, fields[model.FieldCompleted])
						assert.NotContains(t, fields, model.FieldTitle)
						assert.Contains(t, fields, constant.FieldUpdatedAt)
						assert.Equal(t, bson.D{{Key: constant.FieldID, Value: existing.ID}}, filter.ToBSON())

						return updated, nil
					})
			},
		},
		{
			name: "title is trimmed",
			id:   existing.ID.Hex(),
			req:  dto.UpdateTodoRequest{Title: strPtr("  Buy milk  ")},
			setupMock: func() {
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (model.Todo, error) {
						assert.Equal(t, "Buy milk", fields[model.FieldTitle])

						return updated, nil
					})
			},
		},
		{
			name: "empty body only refreshes updatedAt",
			id:   existing.ID.Hex(),
			req:  dto.UpdateTodoRequest{},
			setupMock: func() {
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) (model.Todo, error) {
						assert.Len(t, fields, 1)
						assert.Contains(t, fields, constant.FieldUpdatedAt)

						return existing, nil
					})
			},
		},
		{
			name:      "malformed id is rejected before querying",
			id:        "not-an-id",
			req:       dto.UpdateTodoRequest{Completed: boolPtr(true)},
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "Invalid todo ID",
		},
		{
			name:      "blank title is rejected without mutation",
			id:        existing.ID.Hex(),
			req:       dto.UpdateTodoRequest{Title: strPtr("   ")},
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
			wantMsg:   "Title cannot be empty",
		},
		{
			name: "not found",
			id:   bson.NewObjectID().Hex(),
			req:  dto.UpdateTodoRequest{Completed: boolPtr(true)},
			setupMock: func() {
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Todo{}, nil)
			},
			wantCode: http.StatusNotFound,
			wantMsg:  "Todo not found",
		},
		{
			name: "repository error",
			id:   existing.ID.Hex(),
			req:  dto.UpdateTodoRequest{Completed: boolPtr(true)},
			setupMock: func() {
				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(model.Todo{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Failed to update todo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Update(context.Background(), tt.req, tt.id)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Equal(t, tt.wantMsg, failure.GetMessage(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, existing.ID.Hex(), result.ID)
			assert.Equal(t, "Buy milk", result.Title)
		})
	}
}

func TestTodoService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := todoMocks.NewMockTodo(ctrl)
	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel())

	id := bson.NewObjectID()

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful delete",
			id:   id.Hex(),
			setupMock: func() {
				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int64, error) {
						assert.Equal(t, bson.D{{Key: constant.FieldID, Value: id}}, filter.ToBSON())

						return 1, nil
					})
			},
		},
		{
			name:      "malformed id",
			id:        "123",
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "not found",
			id:   id.Hex(),
			setupMock: func() {
				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(int64(0), nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "repository error",
			id:   id.Hex(),
			setupMock: func() {
				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(int64(0), errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(context.Background(), tt.id)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestTodoService_DeleteAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := todoMocks.NewMockTodo(ctrl)
	svc := service.New(mockRepo, &config.Config{}, mocks.NewOtel())

	t.Run("returns deleted count", func(t *testing.T) {
		mockRepo.EXPECT().
			DeleteMany(gomock.Any(), gDto.FilterGroup{}).
			Return(int64(3), nil)

		deleted, err := svc.DeleteAll(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(3), deleted)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo.EXPECT().
			DeleteMany(gomock.Any(), gomock.Any()).
			Return(int64(0), errors.New("database error"))

		_, err := svc.DeleteAll(context.Background())

		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
		assert.Equal(t, "Failed to delete all todos", failure.GetMessage(err))
	})
}

func TestTodoService_TracesReturnedErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := todoMocks.NewMockTodo(ctrl)
	recorder := mocks.NewRecorder()
	svc := service.New(mockRepo, &config.Config{}, recorder)

	_, err := svc.Update(context.Background(), dto.UpdateTodoRequest{Completed: boolPtr(true)}, "not-an-id")
	require.Error(t, err)

	mockRepo.EXPECT().
		DeleteMany(gomock.Any(), gomock.Any()).
		Return(int64(0), errors.New("connection refused"))

	_, err = svc.DeleteAll(context.Background())
	require.Error(t, err)

	traced := recorder.Errors()
	require.Len(t, traced, 2)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(traced[0]))
	assert.Equal(t, http.StatusInternalServerError, failure.GetCode(traced[1]))
}

func TestTodoService_SuccessTracesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := todoMocks.NewMockTodo(ctrl)
	recorder := mocks.NewRecorder()
	svc := service.New(mockRepo, &config.Config{}, recorder)

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Todo{}, nil)

	_, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, recorder.Errors())
}
