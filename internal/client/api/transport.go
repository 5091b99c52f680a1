package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkazymov/dealerdesk/internal/client/tokenstore"
	"github.com/mkazymov/dealerdesk/internal/common"
	"github.com/mkazymov/dealerdesk/internal/logging"
)

// authTransport attaches the bearer credential to every outgoing request
// except the authentication endpoints, and reacts to 401 responses by
// clearing the store and firing the unauthorized hook. The hook is the
// redirect-to-login analog: it runs before the caller sees the response,
// from any request on any code path.
type authTransport struct {
	base           http.RoundTripper
	tokens         tokenstore.Store
	apiToken       string
	onUnauthorized func()
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	authEndpoint := isAuthPath(req.URL.Path)

	if !authEndpoint {
		out := req.Clone(req.Context())
		if token, err := t.tokens.Load(); err == nil {
			out.Header.Set(common.AuthHeaderName, common.BearerPrefix+token)
		} else if errors.Is(err, tokenstore.ErrNoCredential) && t.apiToken != "" {
			out.Header.Set(common.AuthHeaderName, common.BearerPrefix+t.apiToken)
		}
		req = out
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !authEndpoint {
		_ = t.tokens.Clear()
		if t.onUnauthorized != nil {
			t.onUnauthorized()
		}
	}

	return resp, nil
}

// isAuthPath reports whether the request targets a login/registration
// endpoint, which must go out unauthenticated.
func isAuthPath(path string) bool {
	return strings.Contains(path, "/auth/")
}

// loggingTransport tags each request with a UUID and records
// request/response pairs. Diagnostics only: it never alters control flow.
type loggingTransport struct {
	base http.RoundTripper
	log  logging.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	requestID := uuid.NewString()

	out := req.Clone(req.Context())
	out.Header.Set(common.RequestIDHeaderName, requestID)

	log := t.log.With("request_id", requestID, "method", req.Method, "url", req.URL.Redacted())
	log.Debug(req.Context(), "request started")

	start := time.Now()
	resp, err := t.base.RoundTrip(out)
	elapsed := time.Since(start)

	if err != nil {
		log.Error(req.Context(), "request failed", "error", err, "duration", elapsed)
		return nil, err
	}

	log.Debug(req.Context(), "request finished", "status", resp.StatusCode, "duration", elapsed)
	return resp, nil
}
