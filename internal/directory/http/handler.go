// Package directoryhttp exposes the directory listing and the role-gated
// mutations over JSON.
package directoryhttp

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/userdeck/userdeck/internal/authz"
	"github.com/userdeck/userdeck/internal/directory"
	"github.com/userdeck/userdeck/internal/platform/httpx"
	"github.com/userdeck/userdeck/internal/query"
	"github.com/userdeck/userdeck/internal/session"
	"github.com/userdeck/userdeck/internal/shared"
)

// filterStateKey retains the last listing state for the lifetime of the
// session only; it is never written to durable storage.
const filterStateKey = "filter_state"

// Handler manages the /users endpoints.
type Handler struct {
	logger  *slog.Logger
	service *directory.Service
	authz   authz.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *directory.Service, mw authz.Middleware) *Handler {
	return &Handler{logger: logger, service: service, authz: mw}
}

// MountRoutes registers directory routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.authz.RequireAuthenticated)
		r.Get("/", h.listUsers)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.CanAdd))
		r.Post("/", h.createUser)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.CanEdit))
		r.Put("/{id}", h.updateUser)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.authz.Require(authz.CanDelete))
		r.Delete("/{id}", h.deleteUser)
	})
}

type userPayload struct {
	Name struct {
		First string `json:"first"`
		Last  string `json:"last"`
	} `json:"name"`
	Email  string `json:"email"`
	Gender string `json:"gender"`
	Role   string `json:"role"`
}

func (p userPayload) toInput() directory.Input {
	return directory.Input{
		Name:   directory.Name{First: p.Name.First, Last: p.Name.Last},
		Email:  p.Email,
		Gender: directory.Gender(p.Gender),
		Role:   shared.Role(p.Role),
	}
}

type listResponse struct {
	Users      []directory.User  `json:"users"`
	Pagination shared.Pagination `json:"pagination"`
	Params     query.Params      `json:"params"`
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.Load(r.Context())
	if err != nil {
		h.logger.Error("load directory", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	params := h.resolveParams(r, sess)
	result := query.Apply(users, params)

	httpx.JSON(w, http.StatusOK, listResponse{
		Users:      result.Users,
		Pagination: result.Pagination,
		Params:     params,
	})
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var payload userPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, fmt.Errorf("decode user: %w", httpx.ErrValidation))
		return
	}

	actor := session.StateFrom(shared.SessionFromContext(r.Context())).Role
	user, err := h.service.Add(r.Context(), actor, payload.toInput())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, user)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var payload userPayload
	if err := httpx.DecodeJSON(r, &payload); err != nil {
		httpx.RespondError(w, fmt.Errorf("decode user: %w", httpx.ErrValidation))
		return
	}

	actor := session.StateFrom(shared.SessionFromContext(r.Context())).Role
	user, err := h.service.Update(r.Context(), actor, chi.URLParam(r, "id"), payload.toInput())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	actor := session.StateFrom(shared.SessionFromContext(r.Context())).Role
	if err := h.service.Remove(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// resolveParams builds the query params from the URL, falling back to the
// state retained in the session when the request carries none, and retains
// the resolved state for the next request.
func (h *Handler) resolveParams(r *http.Request, sess *shared.Session) query.Params {
	params := query.Params{Page: 1, PerPage: shared.DefaultPageSize}

	if sess != nil {
		if stored := sess.Get(filterStateKey); stored != "" {
			if err := json.Unmarshal([]byte(stored), &params); err != nil {
				sess.Delete(filterStateKey)
				params = query.Params{Page: 1, PerPage: shared.DefaultPageSize}
			}
		}
	}

	q := r.URL.Query()
	if q.Has("search") {
		params.Search = q.Get("search")
	}
	if q.Has("gender") {
		params.Gender = directory.Gender(q.Get("gender"))
	}
	if q.Has("role") {
		params.Role = shared.Role(q.Get("role"))
	}
	if q.Has("sort") {
		params.SortKey, params.SortDir = query.NextSort(params.SortKey, params.SortDir, query.SortKey(q.Get("sort")))
	}
	if q.Has("dir") {
		params.SortDir = query.ParseDirection(q.Get("dir"))
	}
	if q.Has("page") {
		if page, err := strconv.Atoi(q.Get("page")); err == nil {
			params.Page = page
		}
	}
	if q.Has("per_page") {
		if size, err := strconv.Atoi(q.Get("per_page")); err == nil {
			params.PerPage = size
		}
	}

	if sess != nil {
		if encoded, err := json.Marshal(params); err == nil {
			sess.Set(filterStateKey, string(encoded))
		}
	}
	return params
}
