package service

import (
	"context"
	"errors"
	"os"

	"blog-service/internal/common"
	"blog-service/internal/entity"
	"blog-service/internal/events"
	"blog-service/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

type UserService struct {
	users      repository.UserRepository
	posts      repository.PostRepository
	publisher  events.Publisher
	bcryptCost int
}

// NewUserService creates a new instance of UserService.
func NewUserService(users repository.UserRepository, posts repository.PostRepository, publisher events.Publisher, bcryptCost int) *UserService {
	return &UserService{users: users, posts: posts, publisher: publisher, bcryptCost: bcryptCost}
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Age      *int
}

type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
	Age      *int
	IsActive *bool
}

// CreateUser hashes the password and stores the user. The plaintext is
// never persisted and the stored hash is never serialized back.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, common.Conflict("Email already exists")
	} else if !errors.Is(err, common.ErrNotFound) {
		logger.Error().Err(err).Msg("Error checking email uniqueness")
		return nil, common.Internal(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		logger.Error().Err(err).Msg("Error hashing password")
		return nil, common.Internal(err)
	}

	user := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
		Age:      in.Age,
		IsActive: true,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating user")
		return nil, common.Internal(err)
	}

	s.publisher.Publish(ctx, events.TypeUserCreated, map[string]any{"id": created.ID, "email": created.Email})
	return created, nil
}

func (s *UserService) ListUsers(ctx context.Context, filter repository.UserFilter) ([]entity.User, entity.Pagination, error) {
	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing users")
		return nil, entity.Pagination{}, common.Internal(err)
	}

	return users, entity.NewPagination(filter.Page, filter.Limit, total), nil
}

// GetUser returns the user with their posts, newest first.
func (s *UserService) GetUser(ctx context.Context, id int) (*entity.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("User not found")
		}
		logger.Error().Err(err).Msgf("Error getting user by ID %d", id)
		return nil, common.Internal(err)
	}

	posts, err := s.posts.ListByUser(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error listing posts for user %d", id)
		return nil, common.Internal(err)
	}
	user.Posts = posts

	return user, nil
}

// UpdateUser merges only the supplied fields into the stored record. The
// identifier is never mutable; a supplied password is re-hashed before
// storage.
func (s *UserService) UpdateUser(ctx context.Context, id int, in UpdateUserInput) (*entity.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("User not found")
		}
		logger.Error().Err(err).Msgf("Error getting user by ID %d", id)
		return nil, common.Internal(err)
	}

	if in.Email != nil && *in.Email != user.Email {
		if _, err := s.users.GetByEmail(ctx, *in.Email); err == nil {
			return nil, common.Conflict("Email already exists")
		} else if !errors.Is(err, common.ErrNotFound) {
			logger.Error().Err(err).Msg("Error checking email uniqueness")
			return nil, common.Internal(err)
		}
		user.Email = *in.Email
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Age != nil {
		user.Age = in.Age
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}
	if in.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), s.bcryptCost)
		if err != nil {
			logger.Error().Err(err).Msg("Error hashing password")
			return nil, common.Internal(err)
		}
		user.Password = string(hash)
	}

	user.Posts = nil
	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("User not found")
		}
		logger.Error().Err(err).Msgf("Error updating user %d", id)
		return nil, common.Internal(err)
	}

	return user, nil
}

// DeleteUser removes the row. Owned posts go with it.
func (s *UserService) DeleteUser(ctx context.Context, id int) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NotFound("User not found")
		}
		logger.Error().Err(err).Msgf("Error deleting user %d", id)
		return common.Internal(err)
	}

	s.publisher.Publish(ctx, events.TypeUserDeleted, map[string]any{"id": id})
	return nil
}
