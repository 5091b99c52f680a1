package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkazymov/dealerdesk/internal/client/tokenstore"
	"github.com/mkazymov/dealerdesk/internal/common"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *tokenstore.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tokens := tokenstore.NewMemoryStore()
	c, err := New(srv.URL, tokens, opts...)
	require.NoError(t, err)
	return c, tokens
}

func TestDo_AttachesBearerCredential(t *testing.T) {
	var gotAuth, gotRequestID string
	c, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	}))
	require.NoError(t, tokens.Save("tok-123"))

	var out map[string]any
	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/api/branches", nil, nil, &out))

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID, "every request carries a request id")
}

func TestDo_NoCredentialSendsUnauthenticated(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))

	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/api/branches", nil, nil, nil))
	assert.Empty(t, gotAuth)
}

func TestDo_FallsBackToAPIToken(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}), WithAPIToken("static-token"))

	require.NoError(t, c.Do(context.Background(), http.MethodGet, "/api/branches", nil, nil, nil))
	assert.Equal(t, "Bearer static-token", gotAuth)
}

func TestDo_AuthEndpointsGoOutUnauthenticated(t *testing.T) {
	var gotAuth string
	c, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"jwt":"t","user":{"id":1}}`))
	}))
	require.NoError(t, tokens.Save("stale"))

	_, _, err := c.Login(context.Background(), "admin", "pw")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestDo_UnauthorizedClearsStoreAndFiresHook(t *testing.T) {
	hookCalls := 0
	c, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), WithUnauthorizedHook(func() { hookCalls++ }))
	require.NoError(t, tokens.Save("expired"))

	err := c.Do(context.Background(), http.MethodGet, "/api/branches", nil, nil, nil)

	require.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Equal(t, 1, hookCalls)
	_, err = tokens.Load()
	assert.ErrorIs(t, err, tokenstore.ErrNoCredential)
}

func TestDo_UnauthorizedOnAuthEndpointDoesNotFireHook(t *testing.T) {
	hookCalls := 0
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), WithUnauthorizedHook(func() { hookCalls++ }))

	_, _, err := c.Login(context.Background(), "admin", "bad")

	require.ErrorIs(t, err, common.ErrUnauthorized)
	assert.Zero(t, hookCalls)
}

func TestDo_NotFound(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	err := c.Do(context.Background(), http.MethodGet, "/api/branches/999", nil, nil, nil)
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestDo_ValidationErrorCarriesFieldMessages(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{
			"data": null,
			"error": {
				"status": 400,
				"name": "ValidationError",
				"message": "invalid payload",
				"details": {"errors": [
					{"path": ["vin"], "message": "vin must be 17 characters"},
					{"path": ["price"], "message": "price must be positive"}
				]}
			}
		}`))
	}))

	err := c.Do(context.Background(), http.MethodPost, "/api/vehicles", nil, map[string]any{}, nil)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "invalid payload", ve.Message)
	assert.Equal(t, []string{"vin must be 17 characters"}, ve.Fields["vin"])
	assert.Equal(t, []string{"price must be positive"}, ve.Fields["price"])
}

func TestDo_ServerError(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	err := c.Do(context.Background(), http.MethodGet, "/api/branches", nil, nil, nil)
	require.ErrorIs(t, err, common.ErrInternal)
}

func TestDo_NetworkError(t *testing.T) {
	tokens := tokenstore.NewMemoryStore()
	c, err := New("http://127.0.0.1:1", tokens)
	require.NoError(t, err)

	err = c.Do(context.Background(), http.MethodGet, "/api/branches", nil, nil, nil)

	var ne *NetworkError
	require.ErrorAs(t, err, &ne)
}

func TestDo_DeadlineMapsToTimeout(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := c.Do(ctx, http.MethodGet, "/api/branches", nil, nil, nil)
	require.ErrorIs(t, err, common.ErrTimeout)
}

func TestLogin_ReturnsUserAndToken(t *testing.T) {
	c, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/local", r.URL.Path)
		w.Write([]byte(`{"jwt":"fresh-token","user":{"id":7,"username":"anna","role":"SALES"}}`))
	}))

	user, token, err := c.Login(context.Background(), "anna", "pw")

	require.NoError(t, err)
	assert.Equal(t, 7, user.ID)
	assert.Equal(t, "fresh-token", token)

	// login must not persist the credential itself
	_, err = tokens.Load()
	assert.ErrorIs(t, err, tokenstore.ErrNoCredential)
}

func TestMe_ReturnsIdentity(t *testing.T) {
	c, tokens := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/users/me", r.URL.Path)
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":1,"username":"admin","role":"ADMIN"}`))
	}))
	require.NoError(t, tokens.Save("tok"))

	user, err := c.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ADMIN", string(user.Role))
}

func TestRaw_FetchesBytes(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("%PDF-1.7 fake"))
	}))

	data, err := c.Raw(context.Background(), "/api/orders/3/document")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 fake", string(data))
}
