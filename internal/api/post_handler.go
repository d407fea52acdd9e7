package api

import (
	"net/http"

	"blog-service/internal/repository"
	"blog-service/internal/service"

	"github.com/labstack/echo/v4"
)

type PostHandler struct {
	postService *service.PostService
}

// NewPostHandler creates a new instance of PostHandler.
func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

// CreatePost creates a post for an existing user --> POST /api/posts
func (h *PostHandler) CreatePost(c echo.Context) error {
	body, err := bindBody(c)
	if err != nil {
		return respondError(c, err)
	}

	vals, ferrs := createPostSchema.Validate(schemaInput(c, body))
	if len(ferrs) > 0 {
		return respondValidation(c, ferrs)
	}

	post, err := h.postService.CreatePost(c.Request().Context(), service.CreatePostInput{
		Title:   vals.String("title"),
		Content: vals.String("content"),
		Tags:    vals.StringSlice("tags"),
		UserID:  vals.Int("userId"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusCreated, "Post created successfully", post)
}

// GetAllPosts lists posts with pagination and filters --> GET /api/posts
func (h *PostHandler) GetAllPosts(c echo.Context) error {
	vals, ferrs := listPostsSchema.Validate(schemaInput(c, nil))
	if len(ferrs) > 0 {
		return respondValidation(c, ferrs)
	}

	filter := repository.PostFilter{
		Page:        vals.IntOr("page", 1),
		Limit:       vals.IntOr("limit", 10),
		IsPublished: vals.OptBool("isPublished"),
		UserID:      vals.OptInt("userId"),
	}

	posts, pagination, err := h.postService.ListPosts(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, "Posts retrieved successfully", map[string]any{
		"posts":      posts,
		"pagination": pagination,
	})
}

// GetPostByID retrieves a single post --> GET /api/posts/:id
func (h *PostHandler) GetPostByID(c echo.Context) error {
	vals, ferrs := getByIDSchema.Validate(schemaInput(c, nil))
	if len(ferrs) > 0 {
		return respondValidation(c, ferrs)
	}

	post, err := h.postService.GetPost(c.Request().Context(), vals.Int("id"))
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, "Post retrieved successfully", post)
}

// UpdatePost merges supplied fields into a post --> PUT /api/posts/:id
func (h *PostHandler) UpdatePost(c echo.Context) error {
	body, err := bindBody(c)
	if err != nil {
		return respondError(c, err)
	}

	vals, ferrs := updatePostSchema.Validate(schemaInput(c, body))
	if len(ferrs) > 0 {
		return respondValidation(c, ferrs)
	}

	var tags *[]string
	if vals.Has("tags") {
		t := vals.StringSlice("tags")
		tags = &t
	}

	post, err := h.postService.UpdatePost(c.Request().Context(), vals.Int("id"), service.UpdatePostInput{
		Title:       vals.OptString("title"),
		Content:     vals.OptString("content"),
		Tags:        tags,
		IsPublished: vals.OptBool("isPublished"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, "Post updated successfully", post)
}

// DeletePost removes a post --> DELETE /api/posts/:id
func (h *PostHandler) DeletePost(c echo.Context) error {
	vals, ferrs := getByIDSchema.Validate(schemaInput(c, nil))
	if len(ferrs) > 0 {
		return respondValidation(c, ferrs)
	}

	if err := h.postService.DeletePost(c.Request().Context(), vals.Int("id")); err != nil {
		return respondError(c, err)
	}

	return respondMessage(c, http.StatusOK, true, "Post deleted successfully")
}

// TogglePublish flips the publish flag --> PATCH /api/posts/:id/toggle-publish
func (h *PostHandler) TogglePublish(c echo.Context) error {
	vals, ferrs := getByIDSchema.Validate(schemaInput(c, nil))
	if len(ferrs) > 0 {
		return respondValidation(c, ferrs)
	}

	post, message, err := h.postService.TogglePublish(c.Request().Context(), vals.Int("id"))
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, message, post)
}
