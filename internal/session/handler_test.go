package session_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userdeck/userdeck/internal/session"
	"github.com/userdeck/userdeck/internal/shared"
	_ "github.com/userdeck/userdeck/testing"
)

func newAuthRouter(handler *session.Handler) http.Handler {
	r := chi.NewRouter()
	r.Route("/auth", handler.MountRoutes)
	return r
}

func newSessionRequest(t *testing.T, sm *shared.SessionManager, method, target, body string) (*http.Request, *shared.Session) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	sess, err := sm.Load(context.Background(), req)
	require.NoError(t, err)
	return req.WithContext(shared.ContextWithSession(req.Context(), sess)), sess
}

func decodeSession(t *testing.T, res *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &payload))
	return payload
}

func TestLoginDeclaredRoleIsAccepted(t *testing.T) {
	sm := newManager(t)
	handler := session.NewHandler(slog.Default(), shared.NewCSRFManager("csrfsecret"), sm)

	req, sess := newSessionRequest(t, sm, http.MethodPost, "/auth/login", `{"role":"Viewer"}`)
	res := httptest.NewRecorder()
	router := newAuthRouter(handler)
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	payload := decodeSession(t, res)
	assert.Equal(t, "Viewer", payload["role"])
	assert.Equal(t, true, payload["authenticated"])

	raw, ok := payload["expires_at"].(string)
	require.True(t, ok)
	expiresAt, err := time.Parse(time.RFC3339Nano, raw)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(sm.TTL()), expiresAt, time.Minute)

	restored := session.StateFrom(roundTrip(t, sm, sess))
	assert.Equal(t, shared.RoleViewer, restored.Role)
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	sm := newManager(t)
	handler := session.NewHandler(slog.Default(), shared.NewCSRFManager("csrfsecret"), sm)

	req, _ := newSessionRequest(t, sm, http.MethodPost, "/auth/login", `{"role":"Root"}`)
	res := httptest.NewRecorder()
	newAuthRouter(handler).ServeHTTP(res, req)

	assert.Equal(t, http.StatusBadRequest, res.Code)
}

func TestThemeToggleEndpoint(t *testing.T) {
	sm := newManager(t)
	handler := session.NewHandler(slog.Default(), shared.NewCSRFManager("csrfsecret"), sm)

	req, sess := newSessionRequest(t, sm, http.MethodPost, "/auth/theme/toggle", "")
	res := httptest.NewRecorder()
	newAuthRouter(handler).ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	payload := decodeSession(t, res)
	assert.Equal(t, "dark", payload["theme"])

	restored := session.StateFrom(roundTrip(t, sm, sess))
	assert.Equal(t, session.ThemeDark, restored.Theme)
}

func TestLogoutEndpoint(t *testing.T) {
	sm := newManager(t)
	handler := session.NewHandler(slog.Default(), shared.NewCSRFManager("csrfsecret"), sm)

	req, sess := newSessionRequest(t, sm, http.MethodPost, "/auth/login", `{"role":"Admin"}`)
	res := httptest.NewRecorder()
	newAuthRouter(handler).ServeHTTP(res, req)
	require.Equal(t, http.StatusOK, res.Code)

	logoutReq := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	logoutReq = logoutReq.WithContext(shared.ContextWithSession(logoutReq.Context(), sess))
	logoutRes := httptest.NewRecorder()
	newAuthRouter(handler).ServeHTTP(logoutRes, logoutReq)

	require.Equal(t, http.StatusOK, logoutRes.Code)
	payload := decodeSession(t, logoutRes)
	assert.Equal(t, false, payload["authenticated"])

	restored := session.StateFrom(roundTrip(t, sm, sess))
	assert.False(t, restored.Authenticated())
}
