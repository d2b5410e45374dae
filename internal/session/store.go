// Package session implements the dashboard session lifecycle: a durable
// token + profile pair held in an injected key-value store, with change
// notifications so every subscriber converges on the same session state.
package session

import (
	"context"

	"github.com/asadlib11/arbolitics-dashboard/internal/shared/errors"
)

// ErrNotInContext is returned when a handler asks for the session manager
// outside the scope that installs it. This is a programming contract
// violation, not a user-facing condition; the wire sees a generic 500.
var ErrNotInContext = errors.NewInternalError("Internal server error", "session manager not found in context")

// Store is the durable key-value channel holding the session pair. Get
// returns empty values, not an error, when no session is stored. Watch
// delivers a notification for every change made through any writer of the
// same store; implementations may coalesce bursts.
type Store interface {
	Get(ctx context.Context) (token string, userData []byte, err error)
	Set(ctx context.Context, token string, userData []byte) error
	Clear(ctx context.Context) error
	Watch(ctx context.Context) (<-chan struct{}, error)
}
