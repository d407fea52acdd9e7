package api

import (
	"net/http"

	"blog-service/internal/service"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a user and issues a token --> POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	body, err := bindBody(c)
	if err != nil {
		return respondError(c, err)
	}

	vals, ferrs := createUserSchema.Validate(schemaInput(c, body))
	if len(ferrs) > 0 {
		return respondValidation(c, ferrs)
	}

	result, err := h.authService.Register(c.Request().Context(), service.CreateUserInput{
		Name:     vals.String("name"),
		Email:    vals.String("email"),
		Password: vals.String("password"),
		Age:      vals.OptInt("age"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusCreated, "User registered successfully", result)
}

// Login verifies credentials and issues a token --> POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	body, err := bindBody(c)
	if err != nil {
		return respondError(c, err)
	}

	vals, ferrs := loginSchema.Validate(schemaInput(c, body))
	if len(ferrs) > 0 {
		return respondValidation(c, ferrs)
	}

	result, err := h.authService.Login(c.Request().Context(), vals.String("email"), vals.String("password"))
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, "Login successful", result)
}

// Refresh reissues a token for the authenticated user --> POST /api/auth/refresh
func (h *AuthHandler) Refresh(c echo.Context) error {
	user := currentUser(c)

	result, err := h.authService.Refresh(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, "Token refreshed successfully", result)
}

// Profile returns the authenticated user with posts --> GET /api/auth/profile
func (h *AuthHandler) Profile(c echo.Context) error {
	user := currentUser(c)

	profile, err := h.authService.Profile(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, "", profile)
}
