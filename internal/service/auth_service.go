package service

import (
	"context"
	"errors"

	"blog-service/internal/auth"
	"blog-service/internal/common"
	"blog-service/internal/entity"
	"blog-service/internal/events"
	"blog-service/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	users      repository.UserRepository
	posts      repository.PostRepository
	tokens     *auth.Service
	publisher  events.Publisher
	bcryptCost int
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(users repository.UserRepository, posts repository.PostRepository, tokens *auth.Service, publisher events.Publisher, bcryptCost int) *AuthService {
	return &AuthService{users: users, posts: posts, tokens: tokens, publisher: publisher, bcryptCost: bcryptCost}
}

// AuthResult bundles the user and the issued bearer token.
type AuthResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

func (s *AuthService) Register(ctx context.Context, in CreateUserInput) (*AuthResult, error) {
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

	user, err := s.users.Create(ctx, &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: string(hash),
		Age:      in.Age,
		IsActive: true,
	})
	if err != nil {
		logger.Error().Err(err).Msg("Error registering user")
		return nil, common.Internal(err)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		logger.Error().Err(err).Msg("Error issuing token")
		return nil, common.Internal(err)
	}

	s.publisher.Publish(ctx, events.TypeUserCreated, map[string]any{"id": user.ID, "email": user.Email})
	return &AuthResult{User: user, Token: token}, nil
}

// Login verifies credentials against the stored hash. Unknown email and
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Unauthorized("Invalid credentials")
		}
		logger.Error().Err(err).Msg("Error looking up user by email")
		return nil, common.Internal(err)
	}

	if !user.IsActive {
		return nil, common.Unauthorized("User account is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, common.Unauthorized("Invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		logger.Error().Err(err).Msg("Error issuing token")
		return nil, common.Internal(err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Refresh reissues a token for a still-live user.
func (s *AuthService) Refresh(ctx context.Context, userID int) (*AuthResult, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("User not found or inactive")
		}
		logger.Error().Err(err).Msgf("Error getting user by ID %d", userID)
		return nil, common.Internal(err)
	}
	if !user.IsActive {
		return nil, common.NotFound("User not found or inactive")
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		logger.Error().Err(err).Msg("Error issuing token")
		return nil, common.Internal(err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Profile returns the authenticated user with their posts, newest first.
func (s *AuthService) Profile(ctx context.Context, userID int) (*entity.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("User not found")
		}
		logger.Error().Err(err).Msgf("Error getting user by ID %d", userID)
		return nil, common.Internal(err)
	}

	posts, err := s.posts.ListByUser(ctx, userID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error listing posts for user %d", userID)
		return nil, common.Internal(err)
	}
	user.Posts = posts

	return user, nil
}
