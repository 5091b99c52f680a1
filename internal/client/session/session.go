// Package session owns the authenticated-user state of the client. A single
// Controller funnels every state change through three transitions: the
// startup check, login, and logout. Nothing else mutates the session.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mkazymov/dealerdesk/internal/client/tokenstore"
	"github.com/mkazymov/dealerdesk/internal/logging"
	"github.com/mkazymov/dealerdesk/internal/models"
)

// State of the session controller.
type State string

const (
	StateUnknown         State = "unknown"
	StateChecking        State = "checking"
	StateAuthenticated   State = "authenticated"
	StateUnauthenticated State = "unauthenticated"
)

// DefaultCheckBound is how long the startup identity check may run before
// it is treated as failed.
const DefaultCheckBound = 10 * time.Second

// API is what the controller needs from the backend client.
type API interface {
	Login(ctx context.Context, identifier, password string) (models.User, string, error)
	Me(ctx context.Context) (models.User, error)
}

// Controller revalidates a stored credential on startup and tracks the
// current user. All methods are safe for concurrent use.
type Controller struct {
	api    API
	tokens tokenstore.Store
	bound  time.Duration
	secret []byte
	log    logging.Logger

	mu    sync.Mutex
	state State
	user  models.User
}

type Option func(*Controller)

// WithCheckBound overrides the identity-check time bound.
func WithCheckBound(d time.Duration) Option {
	return func(c *Controller) { c.bound = d }
}

// WithSigningSecret enables a local signature/expiry check of the stored
// credential before any network call. An obviously unusable credential goes
// straight to Unauthenticated.
func WithSigningSecret(secret []byte) Option {
	return func(c *Controller) { c.secret = secret }
}

func WithLogger(log logging.Logger) Option {
	return func(c *Controller) { c.log = log }
}

func New(api API, tokens tokenstore.Store, opts ...Option) *Controller {
	c := &Controller{
		api:    api,
		tokens: tokens,
		bound:  DefaultCheckBound,
		log:    logging.NewNop(),
		state:  StateUnknown,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current session state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// CurrentUser returns the authenticated user, if any.
func (c *Controller) CurrentUser() (models.User, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user, c.state == StateAuthenticated
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Controller) setAuthenticated(u models.User) {
	c.mu.Lock()
	c.state = StateAuthenticated
	c.user = u
	c.mu.Unlock()
}

func (c *Controller) setUnauthenticated() {
	c.mu.Lock()
	c.state = StateUnauthenticated
	c.user = models.User{}
	c.mu.Unlock()
}

// Check resolves the session from the stored credential. Without a
// credential it goes straight to Unauthenticated. With one, it races the
// identity call against the configured bound: whichever settles first wins,
// and the loser's eventual result is discarded, not cancelled. Every
// outcome except a confirmed identity clears the credential, so the check
// always lands in exactly one terminal state and never hangs.
func (c *Controller) Check(ctx context.Context) State {
	token, err := c.tokens.Load()
	if err != nil {
		c.setUnauthenticated()
		return StateUnauthenticated
	}

	c.setState(StateChecking)

	if len(c.secret) > 0 && !c.credentialUsable(token) {
		c.log.Info(ctx, "stored credential invalid or expired, skipping identity check")
		c.discardCredential(ctx)
		return StateUnauthenticated
	}

	type outcome struct {
		user models.User
		err  error
	}
	// buffered so a late identity result never blocks the goroutine
	done := make(chan outcome, 1)
	go func() {
		u, err := c.api.Me(ctx)
		done <- outcome{user: u, err: err}
	}()

	timer := time.NewTimer(c.bound)
	defer timer.Stop()

	select {
	case o := <-done:
		if o.err != nil {
			c.log.Warn(ctx, "identity check failed", "error", o.err)
			c.discardCredential(ctx)
			return StateUnauthenticated
		}
		c.setAuthenticated(o.user)
		return StateAuthenticated

	case <-timer.C:
		c.log.Warn(ctx, "identity check timed out", "bound", c.bound)
		c.discardCredential(ctx)
		return StateUnauthenticated

	case <-ctx.Done():
		c.discardCredential(ctx)
		return StateUnauthenticated
	}
}

// Login authenticates, persists the fresh credential and transitions to
// Authenticated. On failure the state and stored credential are untouched.
func (c *Controller) Login(ctx context.Context, identifier, password string) (models.User, error) {
	user, token, err := c.api.Login(ctx, identifier, password)
	if err != nil {
		return models.User{}, err
	}

	if err := c.tokens.Save(token); err != nil {
		return models.User{}, err
	}

	c.setAuthenticated(user)
	c.log.Info(ctx, "logged in", "user", user.Username, "role", user.Role)
	return user, nil
}

// Logout clears the credential and transitions to Unauthenticated from any
// state.
func (c *Controller) Logout(ctx context.Context) {
	c.discardCredential(ctx)
	c.log.Info(ctx, "logged out")
}

// HandleUnauthorized is the target of the HTTP client's 401 hook. The
// interceptor has already cleared the store; this forces the session into
// Unauthenticated regardless of prior state.
func (c *Controller) HandleUnauthorized() {
	c.setUnauthenticated()
}

func (c *Controller) discardCredential(ctx context.Context) {
	if err := c.tokens.Clear(); err != nil {
		c.log.Error(ctx, "clearing credential failed", "error", err)
	}
	c.setUnauthenticated()
}

// credentialUsable verifies signature and expiry locally. Any parse or
// validation failure means the network check would be pointless.
func (c *Controller) credentialUsable(token string) bool {
	_, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	return err == nil
}
