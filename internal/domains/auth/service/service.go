package service

import (
	"context"
	"errors"
	"fmt"

	"todoapp/config"
	"todoapp/infras/otel"
	"todoapp/internal/domains/auth/model/dto"
	userModel "todoapp/internal/domains/user/model"
	userDto "todoapp/internal/domains/user/model/dto"
	userRepo "todoapp/internal/domains/user/repository"
	"todoapp/shared"
	"todoapp/shared/constant"
	"todoapp/shared/failure"
	"todoapp/shared/password"
	"todoapp/shared/timezone"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const (
	errEmailRegistered    = "Email already registered"
	errInvalidCredentials = "Invalid email or password"
	errPasswordTooLong    = "password must be at most 72 bytes"
	errSignupFailed       = "Signup failed"
	errLoginFailed        = "Login failed"
)

type Auth interface {
	Signup(ctx context.Context, req dto.SignupRequest) (userDto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
}

type serviceImpl struct {
	repo userRepo.User
	cfg  *config.Config
	otel otel.Otel
}

func New(repo userRepo.User, cfg *config.Config, otel otel.Otel) Auth {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
		otel: otel,
	}
}

// Signup registers a new user. The existence check and the insert are not
// atomic; the unique index on email settles concurrent signups.
func (s *serviceImpl) Signup(ctx context.Context, req dto.SignupRequest) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Signup")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Normalize()

	exist, err := s.repo.Exist(ctx, shared.FilterByField(userModel.FieldEmail, req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, failure.Internal(errSignupFailed, fmt.Errorf("failed to check if user exists: %w", err)) // nolint:wrapcheck
	}

	if exist {
		return res, failure.Conflict(errEmailRegistered) // nolint:wrapcheck
	}

	hashedPassword, err := password.Hash(req.Password)
	if errors.Is(err, password.ErrPasswordTooLong) {
		return res, failure.BadRequestFromString(errPasswordTooLong) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, failure.Internal(errSignupFailed, fmt.Errorf("failed to hash password: %w", err)) // nolint:wrapcheck
	}

	user := req.ToUserModel(hashedPassword, timezone.Now())

	user.ID, err = s.repo.Insert(ctx, user)
	if mongo.IsDuplicateKeyError(err) {
		return res, failure.Conflict(errEmailRegistered) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return res, failure.Internal(errSignupFailed, fmt.Errorf("failed to create user: %w", err)) // nolint:wrapcheck
	}

	res.FromModel(user)

	return res, nil
}

// Login checks the credentials and returns the user's identity. No token or
// session is issued.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Normalize()

	user, err := s.repo.Get(ctx, shared.FilterByField(userModel.FieldEmail, req.Email))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, failure.Internal(errLoginFailed, fmt.Errorf("failed to get user: %w", err)) // nolint:wrapcheck
	}

	if user.ID.IsZero() {
		return res, failure.Unauthorized(errInvalidCredentials) // nolint:wrapcheck
	}

	err = password.Verify(req.Password, user.Password)
	if errors.Is(err, password.ErrInvalidPassword) {
		return res, failure.Unauthorized(errInvalidCredentials) // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("user", user.ID.Hex()).Msg("failed to verify password")

		return res, failure.Internal(errLoginFailed, fmt.Errorf("failed to verify password: %w", err)) // nolint:wrapcheck
	}

	res.FromModel(user)

	return res, nil
}
