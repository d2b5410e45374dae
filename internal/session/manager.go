package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/asadlib11/arbolitics-dashboard/internal/domain/auth"
	"github.com/asadlib11/arbolitics-dashboard/internal/shared/logger"
)

// Manager owns the two-state session lifecycle: LoggedOut and LoggedIn.
// Login and a successful Restore enter LoggedIn; Logout and a failed
// Restore enter LoggedOut. There is no pending state: an in-flight login
// request belongs to its caller.
type Manager struct {
	store  Store
	logger logger.Interface

	mu            sync.RWMutex
	authenticated bool
	token         string
	user          *auth.User
}

func NewManager(store Store, log logger.Interface) *Manager {
	return &Manager{
		store:  store,
		logger: log,
	}
}

// Login persists the token and serialized profile as a pair and flips the
// manager to LoggedIn. The store write is what other subscribers observe.
func (m *Manager) Login(ctx context.Context, token string, user *auth.User) error {
	userData, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to serialize user profile: %w", err)
	}

	if err := m.store.Set(ctx, token, userData); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}

	m.mu.Lock()
	m.authenticated = true
	m.token = token
	m.user = user
	m.mu.Unlock()

	m.logger.Infow("session established", "user_id", user.ID, "email", user.Email)
	return nil
}

// Logout clears both stored entries and flips the manager to LoggedOut,
// regardless of prior state.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	m.mu.Lock()
	m.authenticated = false
	m.token = ""
	m.user = nil
	m.mu.Unlock()

	m.logger.Infow("session cleared")
	return nil
}

// Restore re-derives the session state from the store. Both entries present
// and a parseable profile yield LoggedIn; a corrupt profile tears the whole
// session down so no half-valid session survives; anything else leaves the
// manager LoggedOut without touching the store.
func (m *Manager) Restore(ctx context.Context) error {
	token, userData, err := m.store.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}

	if token == "" || len(userData) == 0 {
		m.mu.Lock()
		m.authenticated = false
		m.token = ""
		m.user = nil
		m.mu.Unlock()
		return nil
	}

	var user auth.User
	if err := json.Unmarshal(userData, &user); err != nil {
		m.logger.Warnw("stored user profile is corrupt, forcing logout", "error", err)
		if logoutErr := m.Logout(ctx); logoutErr != nil {
			return logoutErr
		}
		return nil
	}

	m.mu.Lock()
	m.authenticated = true
	m.token = token
	m.user = &user
	m.mu.Unlock()
	return nil
}

// Run subscribes to store change notifications and re-runs Restore for each
// one until ctx is cancelled, so every manager sharing the store converges
// within one notification cycle.
func (m *Manager) Run(ctx context.Context) error {
	ch, err := m.store.Watch(ctx)
	if err != nil {
		return fmt.Errorf("failed to watch session store: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			if err := m.Restore(ctx); err != nil {
				m.logger.Errorw("session resync failed", "error", err)
			}
		}
	}
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authenticated
}

// Token returns the current session token, or "" when logged out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// User returns a copy of the cached profile, or nil when logged out.
func (m *Manager) User() *auth.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}
