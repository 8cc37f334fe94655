package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"todoapp/config"
	"todoapp/infras/otel/mocks"
	"todoapp/internal/domains/auth/model/dto"
	"todoapp/internal/domains/auth/service"
	userMocks "todoapp/internal/domains/user/mocks"
	userModel "todoapp/internal/domains/user/model"
	gDto "todoapp/shared/dto"
	"todoapp/shared/failure"
	"todoapp/shared/password"
	"todoapp/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/mock/gomock"
)

func emailFilter(email string) bson.D {
	return bson.D{{Key: userModel.FieldEmail, Value: email}}
}

func TestAuthService_Signup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel())

	newID := bson.NewObjectID()

	tests := []struct {
		name      string
		req       dto.SignupRequest
		setupMock func()
		wantCode  int
		wantMsg   string
	}{
		{
			name: "successful signup normalizes and hashes",
			req:  dto.SignupRequest{Name: "  Ada  ", Email: " Ada@Example.com ", Password: "secret1"},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
						assert.Equal(t, emailFilter("ada@example.com"), filter.ToBSON())

						return false, nil
					})

				mockUserRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, user userModel.User) (bson.ObjectID, error) {
						assert.Equal(t, "Ada", user.Name)
						assert.Equal(t, "ada@example.com", user.Email)
						assert.NotEqual(t, "secret1", user.Password)
						assert.NoError(t, password.Verify("secret1", user.Password))
						assert.False(t, user.CreatedAt.IsZero())

						return newID, nil
					})
			},
		},
		{
			name: "email already registered in another case",
			req:  dto.SignupRequest{Name: "Ada", Email: "ADA@example.com", Password: "secret1"},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
						assert.Equal(t, emailFilter("ada@example.com"), filter.ToBSON())

						return true, nil
					})
			},
			wantCode: http.StatusConflict,
			wantMsg:  "Email already registered",
		},
		{
			name: "unique index rejects a concurrent signup",
			req:  dto.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockUserRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(bson.NilObjectID, mongo.WriteException{
						WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}},
					})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "password longer than bcrypt accepts",
			req:  dto.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: strings.Repeat("p", password.MaxLength+1)},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "exist check fails",
			req:  dto.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, errors.New("connection refused"))
			},
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Signup failed",
		},
		{
			name: "insert fails",
			req:  dto.SignupRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockUserRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(bson.NilObjectID, errors.New("connection refused"))
			},
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Signup failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Signup(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				if tt.wantMsg != "" {
					assert.Equal(t, tt.wantMsg, failure.GetMessage(err))
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, newID.Hex(), res.ID)
			assert.Equal(t, "Ada", res.Name)
			assert.Equal(t, "ada@example.com", res.Email)
			assert.NotEmpty(t, res.CreatedAt)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	svc := service.New(mockUserRepo, &config.Config{}, mocks.NewOtel())

	hashed, err := password.Hash("secret1")
	require.NoError(t, err)

	validUser := userModel.User{
		ID:        bson.NewObjectID(),
		Name:      "Ada",
		Email:     "ada@example.com",
		Password:  hashed,
		CreatedAt: timezone.Now(),
	}

	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func()
		wantCode  int
	}{
		{
			name: "successful login with differently cased email",
			req:  dto.LoginRequest{Email: " ADA@example.com", Password: "secret1"},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (userModel.User, error) {
						assert.Equal(t, emailFilter("ada@example.com"), filter.ToBSON())

						return validUser, nil
					})
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "ada@example.com", Password: "secret2"},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(validUser, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "corrupt stored hash",
			req:  dto.LoginRequest{Email: "ada@example.com", Password: "secret1"},
			setupMock: func() {
				broken := validUser
				broken.Password = "not-a-hash"

				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(broken, nil)
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "repository error",
			req:  dto.LoginRequest{Email: "ada@example.com", Password: "secret1"},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(userModel.User{}, errors.New("connection refused"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Login(context.Background(), tt.req)

			if tt.wantCode != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, dto.LoginResponse{Name: "Ada", Email: "ada@example.com"}, res)
		})
	}
}

func TestAuthService_LoginTracesUnauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := userMocks.NewMockUser(ctrl)
	recorder := mocks.NewRecorder()
	svc := service.New(mockUserRepo, &config.Config{}, recorder)

	mockUserRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(userModel.User{}, nil)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	require.Error(t, err)

	traced := recorder.Errors()
	require.Len(t, traced, 1)
	assert.Equal(t, http.StatusUnauthorized, failure.GetCode(traced[0]))
}
