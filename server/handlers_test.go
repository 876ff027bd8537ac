package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/quickqueue/member-auth/auth"
	"github.com/quickqueue/member-auth/internal/config"
	"github.com/quickqueue/member-auth/members"
	memberrepofake "github.com/quickqueue/member-auth/members/repofake"
	"github.com/quickqueue/member-auth/server"
	"github.com/quickqueue/member-auth/session"
	"github.com/quickqueue/member-auth/token"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "test@test.com"
	testPassword = "test1234"
)

func setupTestServer(t *testing.T) *server.Server {
	t.Helper()

	issuer := token.NewIssuer(token.NewHMACSigner("test-signing-secret"), 30*time.Minute, 14*24*time.Hour)
	service, err := auth.NewService(
		memberrepofake.NewFakeMemberRepo(),
		session.NewMemoryStore(),
		issuer,
		members.NewBcryptHasher(4),
	)
	require.NoError(t, err)

	return server.New(config.New(), service)
}

func postJSON(t *testing.T, srv *server.Server, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	for key, value := range headers {
		req.Header.Set(key, value)
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Message
}

func signupBody(email string) map[string]any {
	return map[string]any{
		"email":        email,
		"password":     testPassword,
		"name":         "tester",
		"gender":       "FEMALE",
		"birth":        "1990-05-01T00:00:00Z",
		"phone_number": "010-123-1234",
	}
}

func loginAndGetToken(t *testing.T, srv *server.Server) string {
	t.Helper()

	rec := postJSON(t, srv, server.RouteLogin, map[string]any{"email": testEmail, "password": testPassword}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	accessToken := rec.Header().Get("ACCESS-TOKEN")
	require.True(t, strings.HasPrefix(accessToken, "Bearer "))
	return accessToken
}

func TestSignupHandler(t *testing.T) {
	srv := setupTestServer(t)

	rec := postJSON(t, srv, server.RouteSignup, signupBody(testEmail), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "signup success", decodeMessage(t, rec))

	rec = postJSON(t, srv, server.RouteSignup, signupBody(testEmail), nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "email already registered: "+testEmail, decodeMessage(t, rec))
}

func TestLoginHandler(t *testing.T) {
	srv := setupTestServer(t)
	rec := postJSON(t, srv, server.RouteSignup, signupBody(testEmail), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("success delivers tokens in headers", func(t *testing.T) {
		rec := postJSON(t, srv, server.RouteLogin, map[string]any{"email": testEmail, "password": testPassword}, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "login success", decodeMessage(t, rec))
		require.True(t, strings.HasPrefix(rec.Header().Get("ACCESS-TOKEN"), "Bearer "))
		require.True(t, strings.HasPrefix(rec.Header().Get("REFRESH-TOKEN"), "Bearer "))
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := postJSON(t, srv, server.RouteLogin, map[string]any{"email": testEmail, "password": "test123"}, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "incorrect password", decodeMessage(t, rec))
	})

	t.Run("unknown email", func(t *testing.T) {
		rec := postJSON(t, srv, server.RouteLogin, map[string]any{"email": "test1@test.com", "password": testPassword}, nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "account not found: test1@test.com", decodeMessage(t, rec))
	})
}

func TestLogoutHandler(t *testing.T) {
	srv := setupTestServer(t)
	rec := postJSON(t, srv, server.RouteSignup, signupBody(testEmail), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	t.Run("missing token", func(t *testing.T) {
		rec := postJSON(t, srv, server.RouteLogout, nil, nil)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "missing access token", decodeMessage(t, rec))
	})

	t.Run("logout then token reuse is rejected", func(t *testing.T) {
		accessToken := loginAndGetToken(t, srv)
		headers := map[string]string{"ACCESS-TOKEN": accessToken}

		rec := postJSON(t, srv, server.RouteLogout, nil, headers)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "logout success", decodeMessage(t, rec))

		// The blacklisted token no longer passes request authentication
		rec = postJSON(t, srv, server.RouteLogout, nil, headers)
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, "token invalidated", decodeMessage(t, rec))
	})

	t.Run("no live session", func(t *testing.T) {
		// The second login overwrites the first session, so after logging
		// out with the second token the first one still authenticates but
		// finds no session to end.
		firstToken := loginAndGetToken(t, srv)
		secondToken := loginAndGetToken(t, srv)

		rec := postJSON(t, srv, server.RouteLogout, nil, map[string]string{"ACCESS-TOKEN": secondToken})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = postJSON(t, srv, server.RouteLogout, nil, map[string]string{"ACCESS-TOKEN": firstToken})
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.Equal(t, "account not found: "+testEmail, decodeMessage(t, rec))
	})
}

func TestWithdrawHandler(t *testing.T) {
	srv := setupTestServer(t)
	rec := postJSON(t, srv, server.RouteSignup, signupBody(testEmail), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	accessToken := loginAndGetToken(t, srv)
	rec = postJSON(t, srv, server.RouteWithdraw, nil, map[string]string{"ACCESS-TOKEN": accessToken})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "withdrawal success", decodeMessage(t, rec))

	rec = postJSON(t, srv, server.RouteSignup, signupBody(testEmail), nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "email previously withdrawn: "+testEmail, decodeMessage(t, rec))
}
