package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user_backend/internal/feature/users/usecase"
	"user_backend/internal/shared/domainerr"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// Mock use cases. Each one records the last input it received.

type mockSignUp struct {
	got usecase.SignUpInput
	out usecase.UserOutput
	err error
}

func (m *mockSignUp) Execute(_ context.Context, in usecase.SignUpInput) (usecase.UserOutput, error) {
	m.got = in
	return m.out, m.err
}

type mockSignIn struct {
	out usecase.UserOutput
	err error
}

func (m *mockSignIn) Execute(context.Context, usecase.SignInInput) (usecase.UserOutput, error) {
	return m.out, m.err
}

type mockListUsers struct {
	got usecase.ListUsersInput
	out usecase.PaginationOutput[usecase.UserOutput]
	err error
}

func (m *mockListUsers) Execute(_ context.Context, in usecase.ListUsersInput) (usecase.PaginationOutput[usecase.UserOutput], error) {
	m.got = in
	return m.out, m.err
}

type mockGetUser struct {
	out usecase.UserOutput
	err error
}

func (m *mockGetUser) Execute(context.Context, usecase.GetUserInput) (usecase.UserOutput, error) {
	return m.out, m.err
}

type mockUpdateUser struct {
	got usecase.UpdateUserInput
	out usecase.UserOutput
	err error
}

func (m *mockUpdateUser) Execute(_ context.Context, in usecase.UpdateUserInput) (usecase.UserOutput, error) {
	m.got = in
	return m.out, m.err
}

type mockUpdatePassword struct {
	out usecase.UserOutput
	err error
}

func (m *mockUpdatePassword) Execute(context.Context, usecase.UpdatePasswordInput) (usecase.UserOutput, error) {
	return m.out, m.err
}

type mockDeleteUser struct {
	err error
}

func (m *mockDeleteUser) Execute(context.Context, usecase.DeleteUserInput) error {
	return m.err
}

type mockTokens struct {
	token string
	err   error
}

func (m mockTokens) GenerateToken(string) (string, error) { return m.token, m.err }

type mockRevoker struct {
	revoked []string
	err     error
}

func (m *mockRevoker) Revoke(_ context.Context, userID string, _ time.Time) error {
	if m.err != nil {
		return m.err
	}
	m.revoked = append(m.revoked, userID)
	return nil
}

var sampleUser = usecase.UserOutput{
	ID:        "11111111-1111-1111-1111-111111111111",
	Name:      "Jane",
	Email:     "jane@x.com",
	Password:  "$2a$10$hash",
	CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
}

func setupRouter(h *UserHandler) *gin.Engine {
	r := gin.New()
	r.POST("/users", h.SignUp)
	r.POST("/users/auth", h.SignIn)
	r.GET("/users", h.List)
	r.GET("/users/:id", h.Get)
	r.PUT("/users/:id", h.Update)
	r.PATCH("/users/password/:id", h.UpdatePassword)
	r.DELETE("/users/:id", h.Delete)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestUserHandler_SignUp(t *testing.T) {
	tests := []struct {
		name           string
		body           any
		err            error
		expectedStatus int
		expectedMsg    any
	}{
		{
			name:           "success: user created",
			body:           gin.H{"name": "Jane", "email": "jane@x.com", "password": "secret123"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "failure: missing fields",
			body:           gin.H{"email": "jane@x.com"},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    []any{"name should not be empty", "password should not be empty"},
		},
		{
			name:           "failure: invalid email",
			body:           gin.H{"name": "Jane", "email": "nope", "password": "secret123"},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedMsg:    []any{"email must be an email"},
		},
		{
			name:           "failure: duplicate email",
			body:           gin.H{"name": "Jane", "email": "jane@x.com", "password": "secret123"},
			err:            domainerr.NewConflict("User with email %s already exists", "jane@x.com"),
			expectedStatus: http.StatusConflict,
			expectedMsg:    "User with email jane@x.com already exists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockSignUp{out: sampleUser, err: tt.err}
			h := NewUserHandler(Usecases{SignUp: uc}, nil, nil, nil)

			w, body := do(t, setupRouter(h), http.MethodPost, "/users", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedMsg != nil {
				assert.Equal(t, tt.expectedMsg, body["message"])
				return
			}
			assert.Equal(t, sampleUser.ID, body["id"])
			assert.Equal(t, "2024-01-02T03:04:05Z", body["createdAt"])
			assert.NotContains(t, body, "password")
		})
	}
}

func TestUserHandler_SignUp_SanitizesName(t *testing.T) {
	uc := &mockSignUp{out: sampleUser}
	h := NewUserHandler(Usecases{SignUp: uc}, nil, nil, nil)

	w, _ := do(t, setupRouter(h), http.MethodPost, "/users",
		gin.H{"name": "<b>Jane</b><script>alert(1)</script>", "email": "jane@x.com", "password": "secret123"})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Jane", uc.got.Name)
}

func TestUserHandler_SignUp_KeepsPlainTextEntities(t *testing.T) {
	uc := &mockSignUp{out: sampleUser}
	h := NewUserHandler(Usecases{SignUp: uc}, nil, nil, nil)

	do(t, setupRouter(h), http.MethodPost, "/users",
		gin.H{"name": "  Tom & Jerry ", "email": "tom@x.com", "password": "secret123"})

	assert.Equal(t, "Tom & Jerry", uc.got.Name)
}

func TestUserHandler_SignUp_MalformedJSON(t *testing.T) {
	h := NewUserHandler(Usecases{SignUp: &mockSignUp{}}, nil, nil, nil)
	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	setupRouter(h).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_SignIn(t *testing.T) {
	tests := []struct {
		name           string
		ucErr          error
		tokenErr       error
		expectedStatus int
	}{
		{name: "success: token issued", expectedStatus: http.StatusOK},
		{name: "failure: unknown email", ucErr: domainerr.NewNotFound("Could not found user with email %s", "jane@x.com"), expectedStatus: http.StatusNotFound},
		{name: "failure: wrong password", ucErr: domainerr.NewAuthentication("Password does not match"), expectedStatus: http.StatusUnauthorized},
		{name: "failure: token generation", tokenErr: errors.New("signing failed"), expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUserHandler(
				Usecases{SignIn: &mockSignIn{out: sampleUser, err: tt.ucErr}},
				mockTokens{token: "jwt-token", err: tt.tokenErr}, nil, nil,
			)

			w, body := do(t, setupRouter(h), http.MethodPost, "/users/auth",
				gin.H{"email": "jane@x.com", "password": "secret123"})

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, map[string]any{"token": "jwt-token"}, body)
			}
		})
	}
}

func TestUserHandler_List(t *testing.T) {
	t.Run("defaults page and perPage", func(t *testing.T) {
		uc := &mockListUsers{out: usecase.PaginationOutput[usecase.UserOutput]{
			Items: []usecase.UserOutput{sampleUser}, Total: 1, CurrentPage: 1, LastPage: 1, PerPage: 10,
		}}
		h := NewUserHandler(Usecases{ListUsers: uc}, nil, nil, nil)

		w, body := do(t, setupRouter(h), http.MethodGet, "/users", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, usecase.ListUsersInput{Page: 1, PerPage: 10}, uc.got)
		assert.Equal(t, float64(1), body["total"])
		items, ok := body["items"].([]any)
		require.True(t, ok)
		assert.Len(t, items, 1)
	})

	t.Run("passes query through", func(t *testing.T) {
		uc := &mockListUsers{}
		h := NewUserHandler(Usecases{ListUsers: uc}, nil, nil, nil)

		w, _ := do(t, setupRouter(h), http.MethodGet, "/users?page=2&perPage=5&sort=name&sortDir=asc&filter=jan", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, usecase.ListUsersInput{Page: 2, PerPage: 5, Sort: "name", SortDir: "asc", Filter: "jan"}, uc.got)
	})

	t.Run("rejects invalid sortDir", func(t *testing.T) {
		h := NewUserHandler(Usecases{ListUsers: &mockListUsers{}}, nil, nil, nil)

		w, _ := do(t, setupRouter(h), http.MethodGet, "/users?sortDir=sideways", nil)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("rejects out of range paging", func(t *testing.T) {
		for _, query := range []string{"perPage=101", "page=1000001", "page=922337203685477582"} {
			uc := &mockListUsers{}
			h := NewUserHandler(Usecases{ListUsers: uc}, nil, nil, nil)

			w, _ := do(t, setupRouter(h), http.MethodGet, "/users?"+query, nil)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, query)
			assert.Equal(t, usecase.ListUsersInput{}, uc.got, query)
		}
	})
}

func TestUserHandler_Get(t *testing.T) {
	h := NewUserHandler(Usecases{GetUser: &mockGetUser{err: domainerr.NewNotFound("UserModel not found using ID %s", "x")}}, nil, nil, nil)

	w, body := do(t, setupRouter(h), http.MethodGet, "/users/x", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "UserModel not found using ID x", body["message"])
	assert.Equal(t, "Not Found", body["error"])
}

func TestUserHandler_Update(t *testing.T) {
	uc := &mockUpdateUser{out: sampleUser}
	h := NewUserHandler(Usecases{UpdateUser: uc}, nil, nil, nil)

	w, body := do(t, setupRouter(h), http.MethodPut, "/users/"+sampleUser.ID, gin.H{"name": "Jane"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, usecase.UpdateUserInput{ID: sampleUser.ID, Name: "Jane"}, uc.got)
	assert.Equal(t, "Jane", body["name"])
}

func TestUserHandler_UpdatePassword(t *testing.T) {
	tests := []struct {
		name           string
		ucErr          error
		revokeErr      error
		expectedStatus int
		expectRevoked  bool
	}{
		{name: "success: revokes tokens", expectedStatus: http.StatusOK, expectRevoked: true},
		{name: "failure: old password mismatch", ucErr: domainerr.NewInvalidPassword("Old password does not match"), expectedStatus: http.StatusUnauthorized},
		{name: "success: revocation store down is not fatal", revokeErr: errors.New("redis down"), expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rev := &mockRevoker{err: tt.revokeErr}
			h := NewUserHandler(Usecases{UpdatePassword: &mockUpdatePassword{out: sampleUser, err: tt.ucErr}}, nil, rev, nil)

			w, _ := do(t, setupRouter(h), http.MethodPatch, "/users/password/"+sampleUser.ID,
				gin.H{"oldPassword": "secret123", "newPassword": "secret456"})

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectRevoked {
				assert.Equal(t, []string{sampleUser.ID}, rev.revoked)
			} else {
				assert.Empty(t, rev.revoked)
			}
		})
	}
}

func TestUserHandler_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		rev := &mockRevoker{}
		h := NewUserHandler(Usecases{DeleteUser: &mockDeleteUser{}}, nil, rev, nil)

		w, _ := do(t, setupRouter(h), http.MethodDelete, "/users/"+sampleUser.ID, nil)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
		assert.Equal(t, []string{sampleUser.ID}, rev.revoked)
	})

	t.Run("not found", func(t *testing.T) {
		h := NewUserHandler(Usecases{DeleteUser: &mockDeleteUser{err: domainerr.NewNotFound("Entity not found")}}, nil, nil, nil)

		w, _ := do(t, setupRouter(h), http.MethodDelete, "/users/missing", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("unexpected error is hidden", func(t *testing.T) {
		h := NewUserHandler(Usecases{DeleteUser: &mockDeleteUser{err: errors.New("connection reset")}}, nil, nil, nil)

		w, body := do(t, setupRouter(h), http.MethodDelete, "/users/"+sampleUser.ID, nil)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "internal server error", body["message"])
	})
}
