package api

import (
	"net/http"
	"time"

	"blog-service/internal/auth"
	"blog-service/internal/ratelimit"
	"blog-service/internal/repository"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Deps bundles everything the router needs.
type Deps struct {
	Users       *UserHandler
	Posts       *PostHandler
	Auth        *AuthHandler
	Tokens      *auth.Service
	UserRepo    repository.UserRepository
	Limiter     *ratelimit.Limiter
	Environment string
}

// NewRouter wires middleware and routes onto a fresh echo instance.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(RateLimit(d.Limiter))

	authRequired := RequireAuth(d.Tokens, d.UserRepo)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"success":     true,
			"message":     "API is running",
			"timestamp":   time.Now().Format(time.RFC3339),
			"environment": d.Environment,
		})
	})

	e.GET("/api", apiIndex)

	e.POST("/api/auth/register", d.Auth.Register)
	e.POST("/api/auth/login", d.Auth.Login)
	e.POST("/api/auth/refresh", d.Auth.Refresh, authRequired)
	e.GET("/api/auth/profile", d.Auth.Profile, authRequired)

	e.POST("/api/users", d.Users.CreateUser)
	e.GET("/api/users", d.Users.GetAllUsers)
	e.GET("/api/users/:id", d.Users.GetUserByID)
	e.PUT("/api/users/:id", d.Users.UpdateUser)
	e.DELETE("/api/users/:id", d.Users.DeleteUser)

	e.POST("/api/posts", d.Posts.CreatePost, authRequired)
	e.GET("/api/posts", d.Posts.GetAllPosts, authRequired)
	e.GET("/api/posts/:id", d.Posts.GetPostByID, authRequired)
	e.PUT("/api/posts/:id", d.Posts.UpdatePost, authRequired)
	e.DELETE("/api/posts/:id", d.Posts.DeletePost, authRequired)
	e.PATCH("/api/posts/:id/toggle-publish", d.Posts.TogglePublish, authRequired)

	return e
}

func apiIndex(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"message": "Blog service API",
		"version": "1.0.0",
		"endpoints": map[string]any{
			"auth": map[string]string{
				"POST /api/auth/register": "Register new user",
				"POST /api/auth/login":    "Login user",
				"POST /api/auth/refresh":  "Refresh token (requires auth)",
				"GET /api/auth/profile":   "Get user profile (requires auth)",
			},
			"users": map[string]string{
				"POST /api/users":       "Create user",
				"GET /api/users":        "Get all users (paginated)",
				"GET /api/users/:id":    "Get user by ID",
				"PUT /api/users/:id":    "Update user",
				"DELETE /api/users/:id": "Delete user",
			},
			"posts": map[string]string{
				"POST /api/posts":                      "Create post (requires auth)",
				"GET /api/posts":                       "Get all posts (paginated, requires auth)",
				"GET /api/posts/:id":                   "Get post by ID (requires auth)",
				"PUT /api/posts/:id":                   "Update post (requires auth)",
				"DELETE /api/posts/:id":                "Delete post (requires auth)",
				"PATCH /api/posts/:id/toggle-publish": "Toggle post publish status (requires auth)",
			},
		},
	})
}
