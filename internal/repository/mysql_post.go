package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"blog-service/internal/common"
	"blog-service/internal/entity"
)

type MySQLPostRepository struct {
	db *sql.DB
}

func NewMySQLPostRepository(db *sql.DB) *MySQLPostRepository {
	return &MySQLPostRepository{db}
}

const postColumns = `p.id, p.title, p.content, p.tags, p.user_id, p.is_published, p.created_at, p.updated_at, u.name, u.email`

func (r *MySQLPostRepository) Create(ctx context.Context, post *entity.Post) (*entity.Post, error) {
	now := time.Now().UTC().Truncate(time.Second)
	post.CreatedAt = now
	post.UpdatedAt = now

	tags, err := marshalTags(post.Tags)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO posts (title, content, tags, user_id, is_published, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, post.Title, post.Content, tags, post.UserID, post.IsPublished, post.CreatedAt, post.UpdatedAt)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	// re-read through the join so the result carries the owner summary
	return r.GetByID(ctx, int(id))
}

func (r *MySQLPostRepository) GetByID(ctx context.Context, id int) (*entity.Post, error) {
	query := fmt.Sprintf(`SELECT %s FROM posts p JOIN users u ON u.id = p.user_id WHERE p.id = ?`, postColumns)

	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, common.ErrNotFound
	}

	return scanPost(rows)
}

func (r *MySQLPostRepository) List(ctx context.Context, filter PostFilter) ([]entity.Post, int, error) {
	where := ""
	args := []any{}
	if filter.IsPublished != nil {
		where += " AND p.is_published = ?"
		args = append(args, *filter.IsPublished)
	}
	if filter.UserID != nil {
		where += " AND p.user_id = ?"
		args = append(args, *filter.UserID)
	}
	if where != "" {
		where = " WHERE" + where[4:]
	}

	var total int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts p"+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(
		"SELECT %s FROM posts p JOIN users u ON u.id = p.user_id%s ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?",
		postColumns, where)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	posts, err := r.queryPosts(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *MySQLPostRepository) ListByUser(ctx context.Context, userID int) ([]entity.Post, error) {
	query := fmt.Sprintf(
		"SELECT %s FROM posts p JOIN users u ON u.id = p.user_id WHERE p.user_id = ? ORDER BY p.created_at DESC, p.id DESC",
		postColumns)
	return r.queryPosts(ctx, query, userID)
}

func (r *MySQLPostRepository) Update(ctx context.Context, post *entity.Post) error {
	post.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	tags, err := marshalTags(post.Tags)
	if err != nil {
		return err
	}

	query := `UPDATE posts SET title = ?, content = ?, tags = ?, is_published = ?, updated_at = ? WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query, post.Title, post.Content, tags, post.IsPublished, post.UpdatedAt, post.ID)
	return err
}

func (r *MySQLPostRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
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

func (r *MySQLPostRepository) queryPosts(ctx context.Context, query string, args ...any) ([]entity.Post, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []entity.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return posts, nil
}

func scanPost(rows *sql.Rows) (*entity.Post, error) {
	post := &entity.Post{}
	ref := entity.UserRef{}
	var tags sql.NullString
	err := rows.Scan(&post.ID, &post.Title, &post.Content, &tags, &post.UserID, &post.IsPublished, &post.CreatedAt, &post.UpdatedAt, &ref.Name, &ref.Email)
	if err != nil {
		return nil, err
	}

	post.Tags = []string{}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &post.Tags); err != nil {
			return nil, err
		}
	}

	ref.ID = post.UserID
	post.User = &ref
	return post, nil
}

// Tags are stored as a JSON string in a TEXT column.
func marshalTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
