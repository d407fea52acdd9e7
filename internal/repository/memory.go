package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"blog-service/internal/common"
	"blog-service/internal/entity"
)

// MemoryUserRepository implements UserRepository over a map, for tests and
// storage-free runs. Safe for concurrent use.
type MemoryUserRepository struct {
	mu     sync.RWMutex
	users  map[int]entity.User
	nextID int
	posts  *MemoryPostRepository
}

// NewMemoryUserRepository wires an optional post repository so user
// deletion cascades the way the relational schema does.
func NewMemoryUserRepository(posts *MemoryPostRepository) *MemoryUserRepository {
	return &MemoryUserRepository{users: map[int]entity.User{}, nextID: 1, posts: posts}
}

func (r *MemoryUserRepository) Create(_ context.Context, user *entity.User) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	user.ID = r.nextID
	user.CreatedAt = now
	user.UpdatedAt = now
	r.nextID++
	r.users[user.ID] = *user
	return user, nil
}

func (r *MemoryUserRepository) GetByID(_ context.Context, id int) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &user, nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.Email == email {
			u := user
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *MemoryUserRepository) List(_ context.Context, filter UserFilter) ([]entity.User, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := []entity.User{}
	for _, user := range r.users {
		if filter.IsActive != nil && user.IsActive != *filter.IsActive {
			continue
		}
		all = append(all, user)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})

	return page(all, filter.Page, filter.Limit), len(all), nil
}

func (r *MemoryUserRepository) Update(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return common.ErrNotFound
	}
	user.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	if _, ok := r.users[id]; !ok {
		r.mu.Unlock()
		return common.ErrNotFound
	}
	delete(r.users, id)
	r.mu.Unlock()

	if r.posts != nil {
		r.posts.deleteByUser(id)
	}
	return nil
}

type MemoryPostRepository struct {
	mu     sync.RWMutex
	posts  map[int]entity.Post
	nextID int
	users  *MemoryUserRepository
}

func NewMemoryPostRepository() *MemoryPostRepository {
	return &MemoryPostRepository{posts: map[int]entity.Post{}, nextID: 1}
}

// AttachUsers lets post reads embed the owning user summary.
func (r *MemoryPostRepository) AttachUsers(users *MemoryUserRepository) {
	r.users = users
}

func (r *MemoryPostRepository) Create(_ context.Context, post *entity.Post) (*entity.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	post.ID = r.nextID
	post.CreatedAt = now
	post.UpdatedAt = now
	if post.Tags == nil {
		post.Tags = []string{}
	}
	r.nextID++
	r.posts[post.ID] = *post

	p := *post
	r.embedUser(&p)
	return &p, nil
}

func (r *MemoryPostRepository) GetByID(_ context.Context, id int) (*entity.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	post, ok := r.posts[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	r.embedUser(&post)
	return &post, nil
}

func (r *MemoryPostRepository) List(_ context.Context, filter PostFilter) ([]entity.Post, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := []entity.Post{}
	for _, post := range r.posts {
		if filter.IsPublished != nil && post.IsPublished != *filter.IsPublished {
			continue
		}
		if filter.UserID != nil && post.UserID != *filter.UserID {
			continue
		}
		r.embedUser(&post)
		all = append(all, post)
	}
	sortPosts(all)

	return page(all, filter.Page, filter.Limit), len(all), nil
}

func (r *MemoryPostRepository) ListByUser(_ context.Context, userID int) ([]entity.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []entity.Post{}
	for _, post := range r.posts {
		if post.UserID == userID {
			out = append(out, post)
		}
	}
	sortPosts(out)
	return out, nil
}

func (r *MemoryPostRepository) Update(_ context.Context, post *entity.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[post.ID]; !ok {
		return common.ErrNotFound
	}
	post.UpdatedAt = time.Now().UTC()
	stored := *post
	stored.User = nil
	r.posts[post.ID] = stored
	return nil
}

func (r *MemoryPostRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *MemoryPostRepository) deleteByUser(userID int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, post := range r.posts {
		if post.UserID == userID {
			delete(r.posts, id)
		}
	}
}

func (r *MemoryPostRepository) embedUser(post *entity.Post) {
	if r.users == nil {
		return
	}
	r.users.mu.RLock()
	defer r.users.mu.RUnlock()

	if user, ok := r.users.users[post.UserID]; ok {
		post.User = &entity.UserRef{ID: user.ID, Name: user.Name, Email: user.Email}
	}
}

func sortPosts(posts []entity.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
}

func page[T any](items []T, pageNum, limit int) []T {
	start := (pageNum - 1) * limit
	if start >= len(items) {
		return []T{}
	}
	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
