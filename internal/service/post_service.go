package service

import (
	"context"
	"errors"

	"blog-service/internal/common"
	"blog-service/internal/entity"
	"blog-service/internal/events"
	"blog-service/internal/repository"
)

type PostService struct {
	posts     repository.PostRepository
	users     repository.UserRepository
	publisher events.Publisher
}

// NewPostService creates a new instance of PostService.
func NewPostService(posts repository.PostRepository, users repository.UserRepository, publisher events.Publisher) *PostService {
	return &PostService{posts: posts, users: users, publisher: publisher}
}

type CreatePostInput struct {
	Title   string
	Content string
	Tags    []string
	UserID  int
}

type UpdatePostInput struct {
	Title       *string
	Content     *string
	Tags        *[]string
	IsPublished *bool
}

// CreatePost checks the owning user exists before inserting. New posts
// start as drafts and tags default to an empty list.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*entity.Post, error) {
	if _, err := s.users.GetByID(ctx, in.UserID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("User not found")
		}
		logger.Error().Err(err).Msgf("Error getting user by ID %d", in.UserID)
		return nil, common.Internal(err)
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	post := &entity.Post{
		Title:       in.Title,
		Content:     in.Content,
		Tags:        tags,
		UserID:      in.UserID,
		IsPublished: false,
	}

	created, err := s.posts.Create(ctx, post)
	if err != nil {
		logger.Error().Err(err).Msg("Error creating post")
		return nil, common.Internal(err)
	}

	s.publisher.Publish(ctx, events.TypePostCreated, map[string]any{"id": created.ID, "userId": created.UserID})
	return created, nil
}

func (s *PostService) ListPosts(ctx context.Context, filter repository.PostFilter) ([]entity.Post, entity.Pagination, error) {
	posts, total, err := s.posts.List(ctx, filter)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing posts")
		return nil, entity.Pagination{}, common.Internal(err)
	}

	return posts, entity.NewPagination(filter.Page, filter.Limit, total), nil
}

func (s *PostService) GetPost(ctx context.Context, id int) (*entity.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("Post not found")
		}
		logger.Error().Err(err).Msgf("Error getting post by ID %d", id)
		return nil, common.Internal(err)
	}
	return post, nil
}

// UpdatePost merges only the supplied fields; the identifier and owner
// are never mutable.
func (s *PostService) UpdatePost(ctx context.Context, id int, in UpdatePostInput) (*entity.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NotFound("Post not found")
		}
		logger.Error().Err(err).Msgf("Error getting post by ID %d", id)
		return nil, common.Internal(err)
	}

	if in.Title != nil {
		post.Title = *in.Title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.Tags != nil {
		post.Tags = *in.Tags
	}
	if in.IsPublished != nil {
		post.IsPublished = *in.IsPublished
	}

	if err := s.posts.Update(ctx, post); err != nil {
		logger.Error().Err(err).Msgf("Error updating post %d", id)
		return nil, common.Internal(err)
	}

	return post, nil
}

func (s *PostService) DeletePost(ctx context.Context, id int) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NotFound("Post not found")
		}
		logger.Error().Err(err).Msgf("Error deleting post %d", id)
		return common.Internal(err)
	}

	s.publisher.Publish(ctx, events.TypePostDeleted, map[string]any{"id": id})
	return nil
}

// TogglePublish flips the draft/published flag and reports the new state.
func (s *PostService) TogglePublish(ctx context.Context, id int) (*entity.Post, string, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.NotFound("Post not found")
		}
		logger.Error().Err(err).Msgf("Error getting post by ID %d", id)
		return nil, "", common.Internal(err)
	}

	post.IsPublished = !post.IsPublished
	if err := s.posts.Update(ctx, post); err != nil {
		logger.Error().Err(err).Msgf("Error toggling post %d", id)
		return nil, "", common.Internal(err)
	}

	if post.IsPublished {
		s.publisher.Publish(ctx, events.TypePostPublished, map[string]any{"id": post.ID})
		return post, "Post published successfully", nil
	}
	s.publisher.Publish(ctx, events.TypePostUnpublished, map[string]any{"id": post.ID})
	return post, "Post unpublished successfully", nil
}
