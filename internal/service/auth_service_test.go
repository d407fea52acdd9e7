package service

import (
	"context"
	"testing"
	"time"

	"blog-service/internal/auth"
	"blog-service/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService() (*AuthService, *UserService, *auth.Service) {
	users, posts := newTestRepos()
	pub := &recordingPublisher{}
	tokens := auth.NewService("test-secret", time.Hour)
	return NewAuthService(users, posts, tokens, pub, bcrypt.MinCost),
		NewUserService(users, posts, pub, bcrypt.MinCost),
		tokens
}

func TestRegister_IssuesVerifiableToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _, tokens := newAuthService()

	result, err := s.Register(ctx, CreateUserInput{Name: "Jo", Email: "jo@x.com", Password: "secret1"})
	require.NoError(t, err)

	assert.NotEmpty(t, result.Token)
	claims, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "jo@x.com", claims.Email)
	assert.NotEqual(t, "secret1", result.User.Password)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _, _ := newAuthService()

	_, err := s.Register(ctx, CreateUserInput{Name: "Jo", Email: "jo@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = s.Register(ctx, CreateUserInput{Name: "Bo", Email: "jo@x.com", Password: "secret2"})
	require.Error(t, err)
	assert.Equal(t, common.KindConflict, common.KindOf(err))
}

func TestLogin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _, _ := newAuthService()

	_, err := s.Register(ctx, CreateUserInput{Name: "Jo", Email: "jo@x.com", Password: "secret1"})
	require.NoError(t, err)

	result, err := s.Login(ctx, "jo@x.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)

	_, err = s.Login(ctx, "jo@x.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, common.KindUnauthorized, common.KindOf(err))
	assert.Equal(t, "Invalid credentials", err.Error())

	_, err = s.Login(ctx, "nobody@x.com", "secret1")
	require.Error(t, err)
	assert.Equal(t, common.KindUnauthorized, common.KindOf(err))
	assert.Equal(t, "Invalid credentials", err.Error(), "unknown email and wrong password are indistinguishable")
}

func TestLogin_InactiveUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, userService, _ := newAuthService()

	result, err := s.Register(ctx, CreateUserInput{Name: "Jo", Email: "jo@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = userService.UpdateUser(ctx, result.User.ID, UpdateUserInput{IsActive: boolPtr(false)})
	require.NoError(t, err)

	_, err = s.Login(ctx, "jo@x.com", "secret1")
	require.Error(t, err)
	assert.Equal(t, common.KindUnauthorized, common.KindOf(err))
	assert.Equal(t, "User account is inactive", err.Error())
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, userService, tokens := newAuthService()

	registered, err := s.Register(ctx, CreateUserInput{Name: "Jo", Email: "jo@x.com", Password: "secret1"})
	require.NoError(t, err)

	result, err := s.Refresh(ctx, registered.User.ID)
	require.NoError(t, err)
	claims, err := tokens.Verify(result.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.User.ID, claims.UserID)

	_, err = userService.UpdateUser(ctx, registered.User.ID, UpdateUserInput{IsActive: boolPtr(false)})
	require.NoError(t, err)

	_, err = s.Refresh(ctx, registered.User.ID)
	require.Error(t, err)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))

	_, err = s.Refresh(ctx, 999)
	require.Error(t, err)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))
}

func TestProfile_IncludesPosts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	users, posts := newTestRepos()
	pub := &recordingPublisher{}
	tokens := auth.NewService("test-secret", time.Hour)
	authService := NewAuthService(users, posts, tokens, pub, bcrypt.MinCost)
	postService := NewPostService(posts, users, pub)

	registered, err := authService.Register(ctx, CreateUserInput{Name: "Jo", Email: "jo@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = postService.CreatePost(ctx, CreatePostInput{Title: "Hello", Content: "World", UserID: registered.User.ID})
	require.NoError(t, err)

	profile, err := authService.Profile(ctx, registered.User.ID)
	require.NoError(t, err)
	require.Len(t, profile.Posts, 1)
	assert.Equal(t, "Hello", profile.Posts[0].Title)
}
