// ABOUTME: Session manager owning the capability token and user profile
// ABOUTME: Clears both together on sign-out or on any 401/403 from the backend

// Package session stores the auth token and user profile under separate
// namespaced keys in the durable store. The curation core treats auth as
// an external signal: a 401/403 on any non-auth endpoint means the
// session expired, so both keys are cleared and a persistent banner is
// raised, without retrying the failed request.
package session

import (
	"context"
	"encoding/json"
	"sync"

	coreerrors "github.com/jbpiacentino/lumen-digest/core/errors"
	"github.com/jbpiacentino/lumen-digest/core/interfaces"
	"github.com/jbpiacentino/lumen-digest/core/notify"
)

const (
	tokenKey   = "lumen:auth:token"
	profileKey = "lumen:auth:profile"
)

// Profile is the signed-in operator's identity as returned by the auth
// endpoint. Opaque to the curation core beyond display.
type Profile struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name,omitempty"`
	Role        string `json:"role,omitempty"`
}

// Manager owns the in-memory token and its durable copies
type Manager struct {
	store    interfaces.Cache
	notifier notify.Notifier

	mu    sync.RWMutex
	token string
}

// NewManager creates a session manager. A nil store keeps the session
// purely in memory.
func NewManager(store interfaces.Cache, notifier notify.Notifier) *Manager {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Manager{store: store, notifier: notifier}
}

// Load restores the token from the durable store, if present
func (m *Manager) Load(ctx context.Context) {
	if m.store == nil {
		return
	}
	data, err := m.store.Get(ctx, tokenKey)
	if err != nil || len(data) == 0 {
		return
	}
	m.mu.Lock()
	m.token = string(data)
	m.mu.Unlock()
}

// SignIn stores a new token and profile
func (m *Manager) SignIn(ctx context.Context, token string, profile Profile) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()

	if m.store == nil {
		return nil
	}
	if err := m.store.Set(ctx, tokenKey, []byte(token), 0); err != nil {
		return err
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return m.store.Set(ctx, profileKey, data, 0)
}

// Token returns the current capability token, empty when signed out.
// Suitable as the HTTP client's token provider.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// SignedIn reports whether a token is present
func (m *Manager) SignedIn() bool {
	return m.Token() != ""
}

// Profile reads the stored profile, if any
func (m *Manager) Profile(ctx context.Context) (Profile, bool) {
	if m.store == nil {
		return Profile{}, false
	}
	data, err := m.store.Get(ctx, profileKey)
	if err != nil || len(data) == 0 {
		return Profile{}, false
	}
	var p Profile
	if err := json.Unmarshal(data, &p); err != nil {
		return Profile{}, false
	}
	return p, true
}

// SignOut clears the token and profile together
func (m *Manager) SignOut(ctx context.Context) {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()

	if m.store == nil {
		return
	}
	_ = m.store.Delete(ctx, tokenKey)
	_ = m.store.Delete(ctx, profileKey)
}

// HandleError inspects an error from any backend call. A session expiry
// clears auth state and raises the persistent banner; the return value
// reports whether the error was consumed as an auth failure.
func (m *Manager) HandleError(ctx context.Context, err error) bool {
	if !coreerrors.IsSessionExpired(err) {
		return false
	}
	m.SignOut(ctx)
	m.notifier.Banner("Your session has expired. Please sign in again.")
	return true
}
