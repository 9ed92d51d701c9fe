package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"userdir/internal/api"
	apperrors "userdir/internal/errors"
	"userdir/internal/service"
)

// UserHandler bundles the user CRUD endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates the handler layer.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ListUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10, max 100)"
// @Param search query string false "Substring filter on name or email"
// @Success 200 {object} api.UsersResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 500 {object} api.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	var q api.ListUsersQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, invalidInput(api.CodeQueryValidationError, "Query validation error", "query", "query parameters must be numeric where applicable"))
	}
	// omitempty skips a pointer to zero, so explicit zeros need their own check
	if q.Page != nil && *q.Page == 0 {
		return c.JSON(http.StatusBadRequest, invalidInput(api.CodeQueryValidationError, "Query validation error", "page", "Page must be at least 1"))
	}
	if q.Limit != nil && *q.Limit == 0 {
		return c.JSON(http.StatusBadRequest, invalidInput(api.CodeQueryValidationError, "Query validation error", "limit", "Limit must be between 1 and 100"))
	}
	if err := c.Validate(&q); err != nil {
		return c.JSON(http.StatusBadRequest, validationFailure(api.CodeQueryValidationError, "Query validation error", err))
	}

	page, limit := defaultPage, defaultLimit
	if q.Page != nil {
		page = *q.Page
	}
	if q.Limit != nil {
		limit = *q.Limit
	}

	users, pagination, err := h.svc.ListUsers(c.Request().Context(), page, limit, q.Search)
	if err != nil {
		return h.fail(c, err, "Failed to fetch users", api.CodeFetchUsersError)
	}

	return c.JSON(http.StatusOK, api.UsersResponse{
		Success:    true,
		Data:       toAPIUsers(users),
		Pagination: pagination,
		Message:    "Users retrieved successfully",
	})
}

// GetUser godoc
// @Summary Get user by id
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} api.UserResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 500 {object} api.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, ok := userID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, invalidInput(api.CodeParamValidationError, "Parameter validation error", "id", "ID must be a positive number"))
	}

	user, err := h.svc.GetUser(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "Failed to fetch user", api.CodeFetchUserError)
	}

	return c.JSON(http.StatusOK, api.UserResponse{
		Success: true,
		Data:    toAPIUser(*user),
		Message: "User retrieved successfully",
	})
}

// CreateUser godoc
// @Summary Create user
// @Tags users
// @Accept json
// @Produce json
// @Param request body api.CreateUserRequest true "User payload"
// @Success 201 {object} api.UserResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse
// @Failure 500 {object} api.ErrorResponse
// @Router /users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req api.CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, invalidInput(api.CodeValidationError, "Validation error", "body", "invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validationFailure(api.CodeValidationError, "Validation error", err))
	}

	user, err := h.svc.CreateUser(c.Request().Context(), req.Name, req.Email)
	if err != nil {
		return h.fail(c, err, "Failed to create user", api.CodeCreateUserError)
	}

	return c.JSON(http.StatusCreated, api.UserResponse{
		Success: true,
		Data:    toAPIUser(*user),
		Message: "User created successfully",
	})
}

// UpdateUser godoc
// @Summary Update user
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body api.UpdateUserRequest true "Fields to update"
// @Success 200 {object} api.UserResponse
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 409 {object} api.ErrorResponse
// @Failure 500 {object} api.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, ok := userID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, invalidInput(api.CodeParamValidationError, "Parameter validation error", "id", "ID must be a positive number"))
	}

	var req api.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, invalidInput(api.CodeValidationError, "Validation error", "body", "invalid request body"))
	}
	if req.Name == nil && req.Email == nil {
		return c.JSON(http.StatusBadRequest, invalidInput(api.CodeValidationError, "Validation error", "body", "at least one field (name or email) must be provided"))
	}
	// omitempty skips a pointer to the empty string, so that case is explicit
	if req.Name != nil && *req.Name == "" {
		return c.JSON(http.StatusBadRequest, invalidInput(api.CodeValidationError, "Validation error", "name", "Name is required"))
	}
	if req.Email != nil && *req.Email == "" {
		return c.JSON(http.StatusBadRequest, invalidInput(api.CodeValidationError, "Validation error", "email", "Invalid email format"))
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, validationFailure(api.CodeValidationError, "Validation error", err))
	}

	user, err := h.svc.UpdateUser(c.Request().Context(), id, req.Name, req.Email)
	if err != nil {
		return h.fail(c, err, "Failed to update user", api.CodeUpdateUserError)
	}

	return c.JSON(http.StatusOK, api.UserResponse{
		Success: true,
		Data:    toAPIUser(*user),
		Message: "User updated successfully",
	})
}

// DeleteUser godoc
// @Summary Delete user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 204 "No Content"
// @Failure 400 {object} api.ErrorResponse
// @Failure 404 {object} api.ErrorResponse
// @Failure 500 {object} api.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, ok := userID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, invalidInput(api.CodeParamValidationError, "Parameter validation error", "id", "ID must be a positive number"))
	}

	if err := h.svc.DeleteUser(c.Request().Context(), id); err != nil {
		return h.fail(c, err, "Failed to delete user", api.CodeDeleteUserError)
	}

	return c.NoContent(http.StatusNoContent)
}

// fail translates a service error into the envelope, logging unexpected
// failures with request context before they surface as the operation's 500.
func (h *UserHandler) fail(c echo.Context, err error, fallbackMessage, fallbackCode string) error {
	he := apperrors.MapError(err, fallbackMessage, fallbackCode)
	if he.StatusCode == http.StatusInternalServerError {
		log.Printf("%s %s %s: %v", fallbackCode, c.Request().Method, c.Request().RequestURI, err)
	}
	return c.JSON(he.StatusCode, he.Envelope())
}

// userID parses the :id path param as a positive integer.
func userID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// invalidInput builds a structural validation failure for a single field.
func invalidInput(code, message, field, reason string) api.ErrorResponse {
	return api.ErrorResponse{
		Success: false,
		Error: api.ErrorDetail{
			Message: message,
			Code:    code,
			Details: map[string]any{"field": field, "reason": reason},
		},
	}
}

// validationFailure shapes a validator error into the envelope, reporting
// only the first violated field.
func validationFailure(code, message string, err error) api.ErrorResponse {
	field, reason := "request", err.Error()
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field = verrs[0].Field()
		reason = verrs[0].Error()
	}
	return invalidInput(code, message, field, reason)
}
