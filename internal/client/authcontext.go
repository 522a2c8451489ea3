package client

import (
	"context"
	"sync"

	"jotter/internal/database/models"
)

// AuthContext mirrors the session state for the UI: current user (nil when
// anonymous), a loading flag for the initial fetch, and change notifications.
// Subscribers are called with the new user on every sign-in, sign-out, and
// session load; a cancelled subscription is never called again.
type AuthContext struct {
	client *Client

	mu      sync.Mutex
	user    *models.User
	loading bool
	subs    map[int]func(*models.User)
	nextSub int
}

func NewAuthContext(c *Client) *AuthContext {
	return &AuthContext{
		client:  c,
		loading: true,
		subs:    make(map[int]func(*models.User)),
	}
}

// Load fetches the session once. A failed fetch means anonymous, not an
// error: the UI treats both the same way.
func (a *AuthContext) Load(ctx context.Context) {
	user, err := a.client.Session(ctx)
	if err != nil {
		user = nil
	}
	a.set(user, false)
}

// User returns the current identity and whether the initial load is still
// pending. Protected views must not render while loading is true.
func (a *AuthContext) User() (*models.User, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user, a.loading
}

// Subscribe registers a session-change callback and returns its cancel
// function. Cancel is idempotent and guarantees no callback after return.
func (a *AuthContext) Subscribe(fn func(*models.User)) func() {
	a.mu.Lock()
	id := a.nextSub
	a.nextSub++
	a.subs[id] = fn
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		delete(a.subs, id)
		a.mu.Unlock()
	}
}

func (a *AuthContext) SignIn(ctx context.Context, email, password string) (*models.User, error) {
	user, err := a.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	a.set(user, false)
	return user, nil
}

// SignOut invalidates the server session and notifies subscribers with a nil
// user. A failed server call still clears local state; the cookie may linger
// but the UI returns to the login view either way.
func (a *AuthContext) SignOut(ctx context.Context) {
	_ = a.client.Logout(ctx)
	a.set(nil, false)
}

// set updates state and notifies under the lock, so a cancelled subscription
// can never observe a late callback. Callbacks must not call back into the
// context.
func (a *AuthContext) set(user *models.User, loading bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user = user
	a.loading = loading
	for _, fn := range a.subs {
		fn(user)
	}
}
