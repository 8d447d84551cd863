// Package service contains the business logic layer of the application.
//
// Handlers parse requests and write responses; services enforce the rules
// (parent-existence checks, duplicate email, membership, like counters);
// repositories read and write storage. Each service receives a repository
// INTERFACE, not the sqlite implementation — tests inject in-memory mocks
// and the wiring in internal/server picks the real storage.
//
// Services return domain errors from internal/apperror, never HTTP status
// codes: the handler layer translates ErrNotFound to 404 and so on. The
// one exception is infrastructure failure (storage unreachable), which
// propagates as a plain wrapped error and surfaces as a 500.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/seongmin/studyhub/internal/apperror"
	"github.com/seongmin/studyhub/internal/model"
	"github.com/seongmin/studyhub/internal/repository"
)

// UserService handles business logic for user accounts.
type UserService struct {
	repo   repository.UserRepository
	logger *slog.Logger
}

func NewUserService(repo repository.UserRepository, logger *slog.Logger) *UserService {
	return &UserService{
		repo:   repo,
		logger: logger,
	}
}

// Create registers a user on first sign-in. The user id is the auth
// provider name concatenated with the provider-assigned id, so the same
// person signing in through the same provider always lands on the same
// record. A second account with an already-registered email is rejected
// before any write happens.
//
// The email check is lookup-then-insert, not a storage constraint: two
// truly simultaneous sign-ups with the same email can both pass the check.
// That window is accepted — the upstream sign-in flow serializes per user.
func (s *UserService) Create(ctx context.Context, provider, providerID, nickname, email, profileImage string, isPremium bool) (*model.User, error) {
	provider = strings.TrimSpace(provider)
	providerID = strings.TrimSpace(providerID)
	if provider == "" {
		return nil, apperror.ValidationFailed("provider", "provider is required")
	}
	if providerID == "" {
		return nil, apperror.ValidationFailed("id", "provider-assigned id is required")
	}

	_, err := s.repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, apperror.Conflict(apperror.CodeUserAlreadyExists,
			fmt.Sprintf("a user with email %s already exists", email))
	case !errors.Is(err, apperror.ErrNotFound):
		s.logger.Error("failed to check email uniqueness",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("checking email uniqueness: %w", err)
	}

	user := &model.User{
		ID:           provider + providerID,
		Nickname:     nickname,
		Email:        email,
		ProfileImage: profileImage,
		IsPremium:    isPremium,
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("id", user.ID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user created", slog.String("id", user.ID))
	return user, nil
}

// GetByID retrieves a user by id.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "user id is required")
	}
	return s.repo.GetUserByID(ctx, id)
}

// List returns all users.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// Update replaces the user's profile fields. Every field is written — an
// update is a full replacement of the mutable profile, matching the PUT
// semantics of the API.
func (s *UserService) Update(ctx context.Context, id, nickname, email, profileImage string, isPremium bool) (*model.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "user id is required")
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Nickname = nickname
	user.Email = email
	user.ProfileImage = profileImage
	user.IsPremium = isPremium

	if err := s.repo.UpdateUser(ctx, user); err != nil {
		s.logger.Error("failed to update user",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating user: %w", err)
	}

	s.logger.Info("user updated", slog.String("id", id))
	return user, nil
}

// Delete removes a user and returns the deleted record, so the caller can
// echo it back the way every delete endpoint here does.
func (s *UserService) Delete(ctx context.Context, id string) (*model.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "user id is required")
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return nil, err
	}

	s.logger.Info("user deleted", slog.String("id", id))
	return user, nil
}
