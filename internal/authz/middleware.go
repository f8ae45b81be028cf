package authz

import (
	"log/slog"
	"net/http"

	"github.com/userdeck/userdeck/internal/platform/httpx"
	"github.com/userdeck/userdeck/internal/session"
	"github.com/userdeck/userdeck/internal/shared"
)

// Check is a capability predicate over a role.
type Check func(shared.Role) bool

// Middleware wires role checks for HTTP handlers.
type Middleware struct {
	Logger *slog.Logger
}

// RequireAuthenticated rejects requests without a declared role.
func (m Middleware) RequireAuthenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := session.StateFrom(shared.SessionFromContext(r.Context()))
		if !state.Authenticated() {
			httpx.RespondError(w, httpx.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Require ensures the session role passes the given capability check.
func (m Middleware) Require(check Check) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := session.StateFrom(shared.SessionFromContext(r.Context()))
			if !state.Authenticated() {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			if !check(state.Role) {
				if m.Logger != nil {
					m.Logger.Warn("capability denied",
						slog.String("role", string(state.Role)),
						slog.String("path", r.URL.Path))
				}
				httpx.RespondError(w, httpx.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
