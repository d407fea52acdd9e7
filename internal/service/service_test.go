package service

import (
	"context"
	"sync"

	"blog-service/internal/repository"
)

// recordingPublisher captures emitted event types for assertions.
type recordingPublisher struct {
	mu    sync.Mutex
	types []string
}

func (p *recordingPublisher) Publish(_ context.Context, eventType string, _ any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.types = append(p.types, eventType)
}

func (p *recordingPublisher) emitted() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string{}, p.types...)
}

func newTestRepos() (*repository.MemoryUserRepository, *repository.MemoryPostRepository) {
	posts := repository.NewMemoryPostRepository()
	users := repository.NewMemoryUserRepository(posts)
	posts.AttachUsers(users)
	return users, posts
}

func listFilter(page, limit int) repository.UserFilter {
	return repository.UserFilter{Page: page, Limit: limit}
}
