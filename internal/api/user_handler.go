package api

import (
	"net/http"

	"blog-service/internal/repository"
	"blog-service/internal/service"
	"blog-service/internal/validation"

	"github.com/labstack/echo/v4"
)

type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func schemaInput(c echo.Context, body map[string]any) validation.Input {
	params := map[string]string{}
	for _, name := range c.ParamNames() {
		params[name] = c.Param(name)
	}
	return validation.Input{Body: body, Params: params, Query: c.QueryParams()}
}

// CreateUser creates a new user --> POST /api/users
func (h *UserHandler) CreateUser(c echo.Context) error {
	body, err := bindBody(c)
	if err != nil {
		return respondError(c, err)
	}

	vals, ferrs := createUserSchema.Validate(schemaInput(c, body))
	if len(ferrs) > 0 {
		return respondValidation(c, ferrs)
	}

	user, err := h.userService.CreateUser(c.Request().Context(), service.CreateUserInput{
		Name:     vals.String("name"),
		Email:    vals.String("email"),
		Password: vals.String("password"),
		Age:      vals.OptInt("age"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusCreated, "User created successfully", user)
}

// GetAllUsers lists users with pagination --> GET /api/users
func (h *UserHandler) GetAllUsers(c echo.Context) error {
	vals, ferrs := listUsersSchema.Validate(schemaInput(c, nil))
	if len(ferrs) > 0 {
		return respondValidation(c, ferrs)
	}

	filter := repository.UserFilter{
		Page:     vals.IntOr("page", 1),
		Limit:    vals.IntOr("limit", 10),
		IsActive: vals.OptBool("isActive"),
	}

	users, pagination, err := h.userService.ListUsers(c.Request().Context(), filter)
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, "Users retrieved successfully", map[string]any{
		"users":      users,
		"pagination": pagination,
	})
}

// GetUserByID retrieves a user with their posts --> GET /api/users/:id
func (h *UserHandler) GetUserByID(c echo.Context) error {
	vals, ferrs := getByIDSchema.Validate(schemaInput(c, nil))
	if len(ferrs) > 0 {
		return respondValidation(c, ferrs)
	}

	user, err := h.userService.GetUser(c.Request().Context(), vals.Int("id"))
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, "User retrieved successfully", user)
}

// UpdateUser merges supplied fields into a user --> PUT /api/users/:id
func (h *UserHandler) UpdateUser(c echo.Context) error {
	body, err := bindBody(c)
	if err != nil {
		return respondError(c, err)
	}

	vals, ferrs := updateUserSchema.Validate(schemaInput(c, body))
	if len(ferrs) > 0 {
		return respondValidation(c, ferrs)
	}

	user, err := h.userService.UpdateUser(c.Request().Context(), vals.Int("id"), service.UpdateUserInput{
		Name:     vals.OptString("name"),
		Email:    vals.OptString("email"),
		Password: vals.OptString("password"),
		Age:      vals.OptInt("age"),
		IsActive: vals.OptBool("isActive"),
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondData(c, http.StatusOK, "User updated successfully", user)
}

// DeleteUser removes a user --> DELETE /api/users/:id
func (h *UserHandler) DeleteUser(c echo.Context) error {
	vals, ferrs := getByIDSchema.Validate(schemaInput(c, nil))
	if len(ferrs) > 0 {
		return respondValidation(c, ferrs)
	}

	if err := h.userService.DeleteUser(c.Request().Context(), vals.Int("id")); err != nil {
		return respondError(c, err)
	}

	return respondMessage(c, http.StatusOK, true, "User deleted successfully")
}
