package jobs_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userdeck/userdeck/internal/authz"
	"github.com/userdeck/userdeck/internal/session"
	"github.com/userdeck/userdeck/internal/shared"
	"github.com/userdeck/userdeck/jobs"
	_ "github.com/userdeck/userdeck/testing"
)

type stubEnqueuer struct {
	calls int
	count int
	err   error
}

func (s *stubEnqueuer) EnqueueSeedWarmup(ctx context.Context, count int) (*asynq.TaskInfo, error) {
	s.calls++
	s.count = count
	if s.err != nil {
		return nil, s.err
	}
	return &asynq.TaskInfo{ID: "task-1", Queue: jobs.QueueDefault}, nil
}

func newJobsRouter(h *jobs.Handler) http.Handler {
	r := chi.NewRouter()
	r.Route("/jobs", h.MountRoutes)
	return r
}

func warmupRequestAs(role shared.Role) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/jobs/seed-warmup", nil)
	sess := &shared.Session{}
	if role != shared.RoleNone {
		session.Dispatch(sess, session.Initial(), session.Login{Role: role})
	}
	return req.WithContext(shared.ContextWithSession(req.Context(), sess))
}

func TestSeedWarmupTriggerEnqueuesForAdmin(t *testing.T) {
	enq := &stubEnqueuer{}
	handler := jobs.NewHandler(nil, enq, 100, authz.Middleware{Logger: slog.Default()}, slog.Default())

	res := httptest.NewRecorder()
	newJobsRouter(handler).ServeHTTP(res, warmupRequestAs(shared.RoleAdmin))

	require.Equal(t, http.StatusAccepted, res.Code)
	assert.Equal(t, 1, enq.calls)
	assert.Equal(t, 100, enq.count)
	assert.Contains(t, res.Body.String(), "task-1")
}

func TestSeedWarmupTriggerDeniedForNonAdmins(t *testing.T) {
	for _, role := range []shared.Role{shared.RoleEditor, shared.RoleViewer} {
		enq := &stubEnqueuer{}
		handler := jobs.NewHandler(nil, enq, 100, authz.Middleware{Logger: slog.Default()}, slog.Default())

		res := httptest.NewRecorder()
		newJobsRouter(handler).ServeHTTP(res, warmupRequestAs(role))

		assert.Equal(t, http.StatusForbidden, res.Code, string(role))
		assert.Zero(t, enq.calls, string(role))
	}
}

func TestSeedWarmupTriggerRequiresSession(t *testing.T) {
	enq := &stubEnqueuer{}
	handler := jobs.NewHandler(nil, enq, 100, authz.Middleware{Logger: slog.Default()}, slog.Default())

	res := httptest.NewRecorder()
	newJobsRouter(handler).ServeHTTP(res, warmupRequestAs(shared.RoleNone))

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Zero(t, enq.calls)
}

func TestSeedWarmupTriggerReportsEnqueueFailure(t *testing.T) {
	enq := &stubEnqueuer{err: errors.New("queue down")}
	handler := jobs.NewHandler(nil, enq, 100, authz.Middleware{Logger: slog.Default()}, slog.Default())

	res := httptest.NewRecorder()
	newJobsRouter(handler).ServeHTTP(res, warmupRequestAs(shared.RoleAdmin))

	assert.Equal(t, http.StatusServiceUnavailable, res.Code)
}
