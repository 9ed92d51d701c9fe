// Package api declares the shared API contract: every request, response and
// error shape exchanged over the wire. Server handlers and the Go client both
// compile against this single package, and the swagger document in docs/ is
// structurally checked against it (see schema_check.go).
package api

import "time"

// User is the wire representation of a user.
type User struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUserRequest is the body of POST /api/users.
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Email string `json:"email" validate:"required,email,max=255"`
}

// UpdateUserRequest is the body of PUT /api/users/:id. Both fields are
// optional but at least one must be present; the handler enforces that.
type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Email *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
}

// ListUsersQuery carries the query parameters of GET /api/users. Page and
// limit are pointers so an explicit 0 is rejected by validation instead of
// being mistaken for "not supplied"; the handler applies defaults after
// validation.
type ListUsersQuery struct {
	Page   *int   `query:"page" validate:"omitempty,min=1"`
	Limit  *int   `query:"limit" validate:"omitempty,min=1,max=100"`
	Search string `query:"search" validate:"omitempty,min=1,max=100"`
}

// PaginationInfo describes the page window of a list response.
type PaginationInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// UserResponse is the envelope around a single user.
type UserResponse struct {
	Success bool   `json:"success"`
	Data    User   `json:"data"`
	Message string `json:"message,omitempty"`
}

// UsersResponse is the envelope around a page of users.
type UsersResponse struct {
	Success    bool           `json:"success"`
	Data       []User         `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
	Message    string         `json:"message,omitempty"`
}

// ErrorDetail is the machine-readable error payload inside ErrorResponse.
type ErrorDetail struct {
	Message string         `json:"message"`
	Code    string         `json:"code"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the envelope for every non-2xx result.
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   ErrorDetail `json:"error"`
}

// HealthResponse is the payload of GET /health.
type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp string  `json:"timestamp"`
	Version   string  `json:"version"`
	Uptime    float64 `json:"uptime"`
}

// Stable machine-readable error codes. The client maps these to
// human-readable messages; see client.ErrorMessage.
const (
	CodeValidationError      = "VALIDATION_ERROR"
	CodeQueryValidationError = "QUERY_VALIDATION_ERROR"
	CodeParamValidationError = "PARAM_VALIDATION_ERROR"
	CodeUserNotFound         = "USER_NOT_FOUND"
	CodeUserAlreadyExists    = "USER_ALREADY_EXISTS"
	CodeEmailAlreadyExists   = "EMAIL_ALREADY_EXISTS"
	CodeFetchUsersError      = "FETCH_USERS_ERROR"
	CodeFetchUserError       = "FETCH_USER_ERROR"
	CodeCreateUserError      = "CREATE_USER_ERROR"
	CodeUpdateUserError      = "UPDATE_USER_ERROR"
	CodeDeleteUserError      = "DELETE_USER_ERROR"
	CodeRouteNotFound        = "ROUTE_NOT_FOUND"
	CodeInternalError        = "INTERNAL_SERVER_ERROR"
	CodeUnknownError         = "UNKNOWN_ERROR"
)
