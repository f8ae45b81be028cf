package directory

import (
	"fmt"

	"github.com/userdeck/userdeck/internal/platform/httpx"
)

// Domain errors. Each wraps an httpx sentinel so handlers can map them onto
// problem responses without knowing the concrete cause.
var (
	// ErrFetch indicates the remote seed fetch failed with no persisted list
	// to fall back on. It is surfaced, never retried.
	ErrFetch = fmt.Errorf("directory: seed fetch failed: %w", httpx.ErrUnavailable)
	// ErrPermission indicates the acting role lacks the required capability.
	// The attempted mutation is discarded entirely.
	ErrPermission = fmt.Errorf("directory: operation not permitted for role: %w", httpx.ErrForbidden)
	// ErrNotFound indicates no record carries the requested ID.
	ErrNotFound = fmt.Errorf("directory: user not found: %w", httpx.ErrNotFound)
	// ErrLoading indicates the initial load is still in flight; mutations are
	// refused until it settles.
	ErrLoading = fmt.Errorf("directory: store is loading: %w", httpx.ErrUnavailable)
)
