package service

import (
	"context"
	"testing"

	"blog-service/internal/common"
	"blog-service/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

func newUserService() (*UserService, *recordingPublisher) {
	users, posts := newTestRepos()
	pub := &recordingPublisher{}
	return NewUserService(users, posts, pub, bcrypt.MinCost), pub
}

func TestCreateUser_HashesPassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, pub := newUserService()

	user, err := s.CreateUser(ctx, CreateUserInput{Name: "Jo", Email: "jo@x.com", Password: "secret1"})
	require.NoError(t, err)

	assert.NotEqual(t, "secret1", user.Password, "plaintext must never be stored")
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret1")))
	assert.True(t, user.IsActive)
	assert.Equal(t, []string{events.TypeUserCreated}, pub.emitted())
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newUserService()

	_, err := s.CreateUser(ctx, CreateUserInput{Name: "Jo", Email: "jo@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = s.CreateUser(ctx, CreateUserInput{Name: "Another", Email: "jo@x.com", Password: "secret2"})
	require.Error(t, err)
	assert.Equal(t, common.KindConflict, common.KindOf(err))
}

func TestUpdateUser_PartialMerge(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newUserService()

	created, err := s.CreateUser(ctx, CreateUserInput{Name: "Jo", Email: "jo@x.com", Password: "secret1", Age: intPtr(30)})
	require.NoError(t, err)

	updated, err := s.UpdateUser(ctx, created.ID, UpdateUserInput{Name: strPtr("Joana")})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID, "identifier never changes")
	assert.Equal(t, "Joana", updated.Name)
	assert.Equal(t, "jo@x.com", updated.Email, "omitted fields retain their prior value")
	require.NotNil(t, updated.Age)
	assert.Equal(t, 30, *updated.Age)
}

func TestUpdateUser_RehashesPassword(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newUserService()

	created, err := s.CreateUser(ctx, CreateUserInput{Name: "Jo", Email: "jo@x.com", Password: "secret1"})
	require.NoError(t, err)
	oldHash := created.Password

	updated, err := s.UpdateUser(ctx, created.ID, UpdateUserInput{Password: strPtr("newsecret")})
	require.NoError(t, err)

	assert.NotEqual(t, "newsecret", updated.Password)
	assert.NotEqual(t, oldHash, updated.Password)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.Password), []byte("newsecret")))
}

func TestUpdateUser_DuplicateEmailRejected(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newUserService()

	_, err := s.CreateUser(ctx, CreateUserInput{Name: "Jo", Email: "jo@x.com", Password: "secret1"})
	require.NoError(t, err)
	second, err := s.CreateUser(ctx, CreateUserInput{Name: "Bo", Email: "bo@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = s.UpdateUser(ctx, second.ID, UpdateUserInput{Email: strPtr("jo@x.com")})
	require.Error(t, err)
	assert.Equal(t, common.KindConflict, common.KindOf(err))
}

func TestDeleteUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, pub := newUserService()

	created, err := s.CreateUser(ctx, CreateUserInput{Name: "Jo", Email: "jo@x.com", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteUser(ctx, created.ID))

	_, err = s.GetUser(ctx, created.ID)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))

	err = s.DeleteUser(ctx, created.ID)
	assert.Equal(t, common.KindNotFound, common.KindOf(err))

	assert.Equal(t, []string{events.TypeUserCreated, events.TypeUserDeleted}, pub.emitted())
}

func TestListUsers_Pagination(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newUserService()

	_, err := s.CreateUser(ctx, CreateUserInput{Name: "Jo", Email: "jo@x.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = s.CreateUser(ctx, CreateUserInput{Name: "Bo", Email: "bo@x.com", Password: "secret1"})
	require.NoError(t, err)

	users, pagination, err := s.ListUsers(ctx, listFilter(1, 1))
	require.NoError(t, err)

	assert.Len(t, users, 1)
	assert.Equal(t, 1, pagination.CurrentPage)
	assert.Equal(t, 2, pagination.TotalPages)
	assert.Equal(t, 2, pagination.TotalItems)
	assert.Equal(t, 1, pagination.ItemsPerPage)
}

func TestListUsers_ActiveFilter(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s, _ := newUserService()

	first, err := s.CreateUser(ctx, CreateUserInput{Name: "Jo", Email: "jo@x.com", Password: "secret1"})
	require.NoError(t, err)
	_, err = s.CreateUser(ctx, CreateUserInput{Name: "Bo", Email: "bo@x.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = s.UpdateUser(ctx, first.ID, UpdateUserInput{IsActive: boolPtr(false)})
	require.NoError(t, err)

	filter := listFilter(1, 10)
	filter.IsActive = boolPtr(true)
	users, pagination, err := s.ListUsers(ctx, filter)
	require.NoError(t, err)

	require.Len(t, users, 1)
	assert.Equal(t, "bo@x.com", users[0].Email)
	assert.Equal(t, 1, pagination.TotalItems)
}
