package session

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/userdeck/userdeck/internal/platform/httpx"
	"github.com/userdeck/userdeck/internal/shared"
)

// Handler wires HTTP endpoints for the mock login flow and theme preference.
type Handler struct {
	logger      *slog.Logger
	csrfManager *shared.CSRFManager
	sessions    *shared.SessionManager
	validator   *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, csrf *shared.CSRFManager, sessions *shared.SessionManager) *Handler {
	return &Handler{
		logger:      logger,
		csrfManager: csrf,
		sessions:    sessions,
		validator:   validator.New(),
	}
}

// MountRoutes registers session routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/session", h.showSession)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
	r.Post("/theme/toggle", h.handleToggleTheme)
}

type loginRequest struct {
	Role string `json:"role" validate:"required,oneof=Admin Editor Viewer"`
}

type sessionResponse struct {
	Role          shared.Role `json:"role"`
	Theme         Theme       `json:"theme"`
	Authenticated bool        `json:"authenticated"`
	CSRFToken     string      `json:"csrf_token,omitempty"`
	ExpiresAt     *time.Time  `json:"expires_at,omitempty"`
}

// expiry reports when the session cookie lapses, counted from now.
func (h *Handler) expiry() *time.Time {
	if h.sessions == nil {
		return nil
	}
	at := time.Now().Add(h.sessions.TTL())
	return &at
}

func (h *Handler) showSession(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	state := StateFrom(sess)
	token, err := h.csrfManager.EnsureToken(r.Context(), sess)
	if err != nil {
		h.logger.Error("ensure csrf token", slog.Any("error", err))
	}
	httpx.JSON(w, http.StatusOK, sessionResponse{
		Role:          state.Role,
		Theme:         state.Theme,
		Authenticated: state.Authenticated(),
		CSRFToken:     token,
	})
}

// handleLogin accepts any self-declared role. There is no credential check;
// the login screen is a role picker and the service mirrors that contract.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("decode login: %w", httpx.ErrValidation))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("role must be one of Admin, Editor, Viewer: %w", httpx.ErrValidation))
		return
	}

	sess := shared.SessionFromContext(r.Context())
	role, _ := shared.ParseRole(req.Role)
	state := Dispatch(sess, StateFrom(sess), Login{Role: role})

	h.logger.Info("session login", slog.String("role", string(state.Role)))
	httpx.JSON(w, http.StatusOK, sessionResponse{
		Role:          state.Role,
		Theme:         state.Theme,
		Authenticated: state.Authenticated(),
		ExpiresAt:     h.expiry(),
	})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	state := Dispatch(sess, StateFrom(sess), Logout{})

	h.logger.Info("session logout")
	httpx.JSON(w, http.StatusOK, sessionResponse{
		Role:          state.Role,
		Theme:         state.Theme,
		Authenticated: false,
	})
}

func (h *Handler) handleToggleTheme(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	state := StateFrom(sess)
	state = Dispatch(sess, state, SetTheme{Theme: state.Theme.Toggle()})

	httpx.JSON(w, http.StatusOK, sessionResponse{
		Role:          state.Role,
		Theme:         state.Theme,
		Authenticated: state.Authenticated(),
	})
}
