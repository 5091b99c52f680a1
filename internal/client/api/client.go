// Package api implements the authenticated HTTP pipeline to the dealership
// backend: bearer-credential attachment, unauthorized interception,
// diagnostic logging, and the error taxonomy shared by all callers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mkazymov/dealerdesk/internal/client/tokenstore"
	"github.com/mkazymov/dealerdesk/internal/common"
	"github.com/mkazymov/dealerdesk/internal/logging"
	"github.com/mkazymov/dealerdesk/internal/models"
)

// Client is the configured request/response pipeline. All backend traffic
// of the application flows through a single Client, so credential handling
// and 401 interception are uniform.
type Client struct {
	baseURL        *url.URL
	http           *http.Client
	tokens         tokenstore.Store
	log            logging.Logger
	apiToken       string
	onUnauthorized func()
}

type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. Its Transport is still
// wrapped by the auth and logging round-trippers.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithLogger(log logging.Logger) Option {
	return func(c *Client) { c.log = log }
}

// WithAPIToken sets a static token used when no user credential is stored.
func WithAPIToken(token string) Option {
	return func(c *Client) { c.apiToken = token }
}

// WithUnauthorizedHook registers a callback fired on any 401 response,
// after the stored credential has been cleared.
func WithUnauthorizedHook(f func()) Option {
	return func(c *Client) { c.onUnauthorized = f }
}

// New builds a Client for the given backend base URL.
func New(baseURL string, tokens tokenstore.Store, opts ...Option) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}

	c := &Client{
		baseURL: u,
		tokens:  tokens,
		log:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.http == nil {
		c.http = &http.Client{}
	}
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = &loggingTransport{
		log: c.log.With("component", "api"),
		base: &authTransport{
			base:           base,
			tokens:         c.tokens,
			apiToken:       c.apiToken,
			onUnauthorized: c.onUnauthorized,
		},
	}

	return c, nil
}

// Do performs one JSON round trip. A non-nil body is marshalled as the
// request body; a non-nil out receives the decoded response body. Status
// codes map onto the error taxonomy: 401 to common.ErrUnauthorized, 404 to
// common.ErrNotFound, other 4xx with an error envelope to *ValidationError,
// 5xx to common.ErrInternal. Transport failures become *NetworkError and a
// hit deadline becomes common.ErrTimeout.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%s %s: %w", method, path, common.ErrTimeout)
		}
		return &NetworkError{URL: u.Redacted(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.errorFromResponse(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response from %s %s: %w", method, path, err)
	}
	return nil
}

// Raw fetches a non-JSON resource, such as a generated order document,
// with the same status-code mapping as Do.
func (c *Client) Raw(ctx context.Context, path string) ([]byte, error) {
	u := c.baseURL.JoinPath(path)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("GET %s: %w", path, common.ErrTimeout)
		}
		return nil, &NetworkError{URL: u.Redacted(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, c.errorFromResponse(resp)
	}
	return io.ReadAll(resp.Body)
}

func (c *Client) errorFromResponse(resp *http.Response) error {
	status := resp.StatusCode

	if status == http.StatusUnauthorized || status == http.StatusNotFound || status >= 500 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return statusError(status)
	}

	var we wireError
	if err := json.NewDecoder(resp.Body).Decode(&we); err == nil && we.Error.Message != "" {
		return we.toValidationError(status)
	}
	return statusError(status)
}

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type loginResponse struct {
	JWT  string      `json:"jwt"`
	User models.User `json:"user"`
}

// Login exchanges credentials for a bearer token and the authenticated
// user. The token is returned, not persisted; credential persistence is the
// session controller's decision.
func (c *Client) Login(ctx context.Context, identifier, password string) (models.User, string, error) {
	var lr loginResponse
	err := c.Do(ctx, http.MethodPost, "/api/auth/local", nil, loginRequest{
		Identifier: identifier,
		Password:   password,
	}, &lr)
	if err != nil {
		return models.User{}, "", err
	}
	return lr.User, lr.JWT, nil
}

// Me verifies the stored credential against the identity endpoint and
// returns the current user.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	var u models.User
	if err := c.Do(ctx, http.MethodGet, "/api/users/me", nil, nil, &u); err != nil {
		return models.User{}, err
	}
	return u, nil
}
