package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userdir/internal/api"
)

func newStubServer(t *testing.T, wantMethod, wantPath string, status int, body any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wantMethod, r.Method)
		assert.Equal(t, wantPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	}))
}

func TestClient_CreateUser(t *testing.T) {
	srv := newStubServer(t, http.MethodPost, "/api/users", http.StatusCreated, api.UserResponse{
		Success: true,
		Data:    api.User{ID: 1, Name: "Ada", Email: "ada@x.com"},
		Message: "User created successfully",
	})
	defer srv.Close()

	c := New(srv.URL + "/api")
	resp, err := c.CreateUser(context.Background(), api.CreateUserRequest{Name: "Ada", Email: "ada@x.com"})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, uint(1), resp.Data.ID)
	assert.Equal(t, "Ada", resp.Data.Name)
}

func TestClient_ListUsersQueryParameters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "ada", r.URL.Query().Get("search"))
		_ = json.NewEncoder(w).Encode(api.UsersResponse{
			Success:    true,
			Data:       []api.User{{ID: 2, Name: "Ada", Email: "ada@x.com"}},
			Pagination: api.PaginationInfo{Page: 2, Limit: 1, Total: 2, TotalPages: 2},
		})
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	resp, err := c.ListUsers(context.Background(), ListUsersParams{Page: 2, Limit: 1, Search: "ada"})

	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, api.PaginationInfo{Page: 2, Limit: 1, Total: 2, TotalPages: 2}, resp.Pagination)
}

func TestClient_ErrorEnvelopeBecomesAPIError(t *testing.T) {
	srv := newStubServer(t, http.MethodGet, "/api/users/999999", http.StatusNotFound, api.ErrorResponse{
		Success: false,
		Error:   api.ErrorDetail{Message: "User not found", Code: api.CodeUserNotFound},
	})
	defer srv.Close()

	c := New(srv.URL + "/api")
	_, err := c.GetUser(context.Background(), 999999)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, api.CodeUserNotFound, apiErr.Code)
	assert.Equal(t, "User not found", apiErr.Message)
	assert.Equal(t, "The requested user was not found.", apiErr.UserMessage())
}

func TestClient_TransportFailure(t *testing.T) {
	// nothing listens on port 1
	c := New("http://127.0.0.1:1/api")
	_, err := c.GetUser(context.Background(), 1)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.Status)
	assert.Equal(t, api.CodeUnknownError, apiErr.Code)
}

func TestClient_DeleteUserAcceptsNoContent(t *testing.T) {
	srv := newStubServer(t, http.MethodDelete, "/api/users/1", http.StatusNoContent, nil)
	defer srv.Close()

	c := New(srv.URL + "/api")
	assert.NoError(t, c.DeleteUser(context.Background(), 1))
}

func TestClient_MalformedErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL + "/api")
	_, err := c.GetUser(context.Background(), 1)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, api.CodeUnknownError, apiErr.Code)
}

func TestErrorMessage_Fallbacks(t *testing.T) {
	assert.Equal(t, "raw message", ErrorMessage("SOME_NEW_CODE", "raw message"))
	assert.Equal(t, "An unexpected error occurred.", ErrorMessage("SOME_NEW_CODE", ""))
}
