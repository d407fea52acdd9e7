package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blog-service/internal/common"
	"blog-service/internal/entity"
)

type MySQLUserRepository struct {
	db *sql.DB
}

func NewMySQLUserRepository(db *sql.DB) *MySQLUserRepository {
	return &MySQLUserRepository{db}
}

func (r *MySQLUserRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	now := time.Now().UTC().Truncate(time.Second)
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `INSERT INTO users (name, email, password, age, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, user.Name, user.Email, user.Password, user.Age, user.IsActive, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	user.ID = int(id)
	return user, nil
}

func (r *MySQLUserRepository) GetByID(ctx context.Context, id int) (*entity.User, error) {
	query := `SELECT id, name, email, password, age, is_active, created_at, updated_at FROM users WHERE id = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *MySQLUserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT id, name, email, password, age, is_active, created_at, updated_at FROM users WHERE email = ?`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *MySQLUserRepository) List(ctx context.Context, filter UserFilter) ([]entity.User, int, error) {
	where := ""
	args := []any{}
	if filter.IsActive != nil {
		where = " WHERE is_active = ?"
		args = append(args, *filter.IsActive)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT id, name, email, password, age, is_active, created_at, updated_at FROM users%s ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?",
		where)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := []entity.User{}
	for rows.Next() {
		user := entity.User{}
		if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Age, &user.IsActive, &user.CreatedAt, &user.UpdatedAt); err != nil {
			return nil, 0, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *MySQLUserRepository) Update(ctx context.Context, user *entity.User) error {
	user.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	// RowsAffected is 0 for identical-value writes under the default
	// protocol, so it cannot distinguish a missing row; existence is
	// checked by the caller.
	query := `UPDATE users SET name = ?, email = ?, password = ?, age = ?, is_active = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, user.Name, user.Email, user.Password, user.Age, user.IsActive, user.UpdatedAt, user.ID)
	return err
}

func (r *MySQLUserRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *MySQLUserRepository) scanOne(row *sql.Row) (*entity.User, error) {
	user := &entity.User{}
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.Password, &user.Age, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
