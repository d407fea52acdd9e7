package repository

import (
	"context"
	"database/sql"
	"testing"

	"blog-service/internal/common"
	"blog-service/internal/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestMySQLUserRepository_CreateAssignsID(t *testing.T) {
	t.Parallel()

	db, mock := newSQLMockDB(t)
	defer db.Close()
	repo := NewMySQLUserRepository(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("Jo", "jo@x.com", sqlmock.AnyArg(), nil, true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))

	in := entity.User{Name: "Jo", Email: "jo@x.com", Password: "hash", IsActive: true}
	user, err := repo.Create(context.Background(), &in)
	require.NoError(t, err)
	assert.Equal(t, 7, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLUserRepository_GetByEmailNotFound(t *testing.T) {
	t.Parallel()

	db, mock := newSQLMockDB(t)
	defer db.Close()
	repo := NewMySQLUserRepository(db)

	mock.ExpectQuery("SELECT id, name, email, password, age, is_active, created_at, updated_at FROM users WHERE email").
		WithArgs("nobody@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "nobody@x.com")
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLUserRepository_UpdateIdenticalValues(t *testing.T) {
	t.Parallel()

	db, mock := newSQLMockDB(t)
	defer db.Close()
	repo := NewMySQLUserRepository(db)

	// identical-value writes report 0 affected rows under the default
	// protocol; that is not a missing row
	mock.ExpectExec("UPDATE users").
		WithArgs("Jo", "jo@x.com", "hash", nil, true, sqlmock.AnyArg(), 7).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &entity.User{
		ID: 7, Name: "Jo", Email: "jo@x.com", Password: "hash", IsActive: true,
	})
	assert.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMySQLUserRepository_DeleteMissingRow(t *testing.T) {
	t.Parallel()

	db, mock := newSQLMockDB(t)
	defer db.Close()
	repo := NewMySQLUserRepository(db)

	mock.ExpectExec("DELETE FROM users").
		WithArgs(99).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}
