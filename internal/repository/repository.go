// Package repository is the persistence gateway: narrow CRUD interfaces
// over the relational store, with MySQL and in-memory implementations.
package repository

import (
	"context"

	"blog-service/internal/entity"
)

// UserFilter carries pagination plus the optional equality filters of a
// user listing. Page and Limit are assumed validated by the caller.
type UserFilter struct {
	Page     int
	Limit    int
	IsActive *bool
}

type PostFilter struct {
	Page        int
	Limit       int
	IsPublished *bool
	UserID      *int
}

// UserRepository reports common.ErrNotFound for absent rows.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	GetByID(ctx context.Context, id int) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context, filter UserFilter) ([]entity.User, int, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id int) error
}

type PostRepository interface {
	Create(ctx context.Context, post *entity.Post) (*entity.Post, error)
	GetByID(ctx context.Context, id int) (*entity.Post, error)
	List(ctx context.Context, filter PostFilter) ([]entity.Post, int, error)
	ListByUser(ctx context.Context, userID int) ([]entity.Post, error)
	Update(ctx context.Context, post *entity.Post) error
	Delete(ctx context.Context, id int) error
}
