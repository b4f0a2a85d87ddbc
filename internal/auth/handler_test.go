package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestMux(svc *Service) http.Handler {
	h := NewHandler(svc, zap.NewNop().Sugar())
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/register", h.Register)
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("GET /api/auth/verify", h.Verify)
	return mux
}

func postJSON(t *testing.T, mux http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestRegisterEndpoint(t *testing.T) {
	t.Parallel()

	mux := newTestMux(newTestService(newFakeStore()))

	rec := postJSON(t, mux, "/api/auth/register", `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "User registered successfully", resp["message"])
	assert.NotEmpty(t, resp["token"])
}

func TestRegisterEndpoint_Conflict(t *testing.T) {
	t.Parallel()

	mux := newTestMux(newTestService(newFakeStore()))

	rec := postJSON(t, mux, "/api/auth/register", `{"email":"A@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, mux, "/api/auth/register", `{"email":"a@x.com","password":"other12"}`)
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"Conflict","message":"User already exists"}`, rec.Body.String())
}

func TestRegisterEndpoint_Validation(t *testing.T) {
	t.Parallel()

	mux := newTestMux(newTestService(newFakeStore()))

	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"not json", `{garbage`, "Email and password are required"},
		{"missing fields", `{}`, "Email and password are required"},
		{"bad email", `{"email":"nope","password":"secret1"}`, "Invalid email format"},
		{"short password", `{"email":"a@x.com","password":"12345"}`, "Password must be at least 6 characters long"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, mux, "/api/auth/register", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			var resp struct {
				Error   string `json:"error"`
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, "Validation Error", resp.Error)
			assert.Equal(t, tt.message, resp.Message)
		})
	}
}

func TestRegisterEndpoint_MissingFieldDetails(t *testing.T) {
	t.Parallel()

	mux := newTestMux(newTestService(newFakeStore()))

	rec := postJSON(t, mux, "/api/auth/register", `{"email":"a@x.com"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Details map[string]string `json:"details"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Password is required", resp.Details["password"])
	assert.NotContains(t, resp.Details, "email")
}

func TestLoginEndpoint(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeStore())
	mux := newTestMux(svc)

	rec := postJSON(t, mux, "/api/auth/register", `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = postJSON(t, mux, "/api/auth/login", `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string `json:"message"`
		Token   string `json:"token"`
		User    struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Login successful", resp.Message)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "a@x.com", resp.User.Email)

	// round-trip: the token's subject is the user that authenticated
	identity, err := svc.Verify(context.Background(), resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, identity.UserID)
}

func TestLoginEndpoint_InvalidCredentials(t *testing.T) {
	t.Parallel()

	mux := newTestMux(newTestService(newFakeStore()))

	rec := postJSON(t, mux, "/api/auth/register", `{"email":"a@x.com","password":"secret1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	for _, body := range []string{
		`{"email":"a@x.com","password":"wrong"}`,
		`{"email":"other@x.com","password":"secret1"}`,
	} {
		rec = postJSON(t, mux, "/api/auth/login", body)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Authentication Error","message":"Invalid credentials"}`, rec.Body.String())
	}
}

func TestVerifyEndpoint(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeStore())
	mux := newTestMux(svc)

	token, err := svc.Register(context.Background(), "v@x.com", "secret1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Message string `json:"message"`
		User    struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Token is valid", resp.Message)
	assert.Equal(t, "v@x.com", resp.User.Email)
}

func TestVerifyEndpoint_Failures(t *testing.T) {
	t.Parallel()

	mux := newTestMux(newTestService(newFakeStore()))

	// no header
	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Authentication Error","message":"No token provided"}`, rec.Body.String())

	// bad token
	req = httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"Authentication Error","message":"Invalid token"}`, rec.Body.String())
}
