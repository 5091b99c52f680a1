// Package resource provides the generic CRUD accessor factory. One
// Collection is built per backend resource; every collection unwraps the
// uniform data/meta envelope the same way, keeps list/get results in the
// query cache, and invalidates the whole resource on any mutation.
// Resource-specific behavior, such as default relation population, is
// supplied as configuration, never by branching on the resource name.
package resource

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mkazymov/dealerdesk/internal/client/api"
	"github.com/mkazymov/dealerdesk/internal/client/cache"
	"github.com/mkazymov/dealerdesk/internal/common"
)

// Doer is the request pipeline a collection needs. Satisfied by *api.Client.
type Doer interface {
	Do(ctx context.Context, method, path string, query url.Values, body, out any) error
}

// Page is one page of a listed collection. Total is the collection-wide
// count reported by the backend, not the page length.
type Page[T any] struct {
	Items []T
	Total int
}

// envelope mirrors the backend wire shape {data, meta:{pagination}}.
type envelope[T any] struct {
	Data T `json:"data"`
	Meta struct {
		Pagination struct {
			Page     int `json:"page"`
			PageSize int `json:"pageSize"`
			Total    int `json:"total"`
		} `json:"pagination"`
	} `json:"meta"`
}

// writeBody wraps mutation payloads the way the backend expects.
type writeBody struct {
	Data any `json:"data"`
}

type Option func(*settings)

type settings struct {
	populate []api.Populate
}

// WithPopulate sets the relations populated by default on List and Get when
// the caller's params do not specify their own population.
func WithPopulate(relation string, fields ...string) Option {
	return func(s *settings) {
		s.populate = append(s.populate, api.Populate{Relation: relation, Fields: fields})
	}
}

// Collection is the fixed set of operations over one backend resource.
type Collection[T any] struct {
	client   Doer
	cache    *cache.Cache
	name     string
	populate []api.Populate
}

// New builds the accessor for the named resource collection.
func New[T any](client Doer, qc *cache.Cache, name string, opts ...Option) *Collection[T] {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}
	return &Collection[T]{
		client:   client,
		cache:    qc,
		name:     name,
		populate: s.populate,
	}
}

// Name returns the backend collection name.
func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) collectionPath() string {
	return "/api/" + c.name
}

func (c *Collection[T]) entityPath(id int) string {
	return fmt.Sprintf("/api/%s/%d", c.name, id)
}

func (c *Collection[T]) withDefaults(p api.Params) api.Params {
	if len(p.Populate) == 0 {
		p.Populate = c.populate
	}
	return p
}

// List fetches one page of the collection. A repeated call with an equal
// parameter set returns the cached page without a network round trip until
// a mutation on this resource invalidates it.
func (c *Collection[T]) List(ctx context.Context, p api.Params) (Page[T], error) {
	p = c.withDefaults(p)
	key := cache.Key{Resource: c.name, Query: "list?" + p.CacheKey()}

	if v, ok := c.cache.Get(key); ok {
		return v.(Page[T]), nil
	}

	var env envelope[[]T]
	if err := c.client.Do(ctx, http.MethodGet, c.collectionPath(), p.Values(), nil, &env); err != nil {
		return Page[T]{}, err
	}

	page := Page[T]{Items: env.Data, Total: env.Meta.Pagination.Total}
	c.cache.Set(key, page)
	return page, nil
}

// Get fetches a single entity. A missing id yields common.ErrNotFound,
// whether the backend answers 404 or a success envelope with null data.
func (c *Collection[T]) Get(ctx context.Context, id int) (T, error) {
	var zero T

	p := c.withDefaults(api.Params{})
	key := cache.Key{Resource: c.name, Query: fmt.Sprintf("get?id=%d&%s", id, p.CacheKey())}

	if v, ok := c.cache.Get(key); ok {
		return v.(T), nil
	}

	var env envelope[*T]
	if err := c.client.Do(ctx, http.MethodGet, c.entityPath(id), p.Values(), nil, &env); err != nil {
		return zero, err
	}
	if env.Data == nil {
		return zero, fmt.Errorf("%s id %d: %w", c.name, id, common.ErrNotFound)
	}

	c.cache.Set(key, *env.Data)
	return *env.Data, nil
}

// Create adds an entity and returns the stored result. Every cached entry
// of this resource is invalidated before Create returns.
func (c *Collection[T]) Create(ctx context.Context, payload any) (T, error) {
	var zero T

	var env envelope[T]
	if err := c.client.Do(ctx, http.MethodPost, c.collectionPath(), nil, writeBody{Data: payload}, &env); err != nil {
		return zero, err
	}

	c.cache.InvalidateResource(c.name)
	return env.Data, nil
}

// Update replaces fields of an existing entity and returns the stored
// result. Invalidates the resource like Create.
func (c *Collection[T]) Update(ctx context.Context, id int, payload any) (T, error) {
	var zero T

	var env envelope[T]
	if err := c.client.Do(ctx, http.MethodPut, c.entityPath(id), nil, writeBody{Data: payload}, &env); err != nil {
		return zero, err
	}

	c.cache.InvalidateResource(c.name)
	return env.Data, nil
}

// Remove deletes an entity. Invalidates the resource like Create.
func (c *Collection[T]) Remove(ctx context.Context, id int) error {
	if err := c.client.Do(ctx, http.MethodDelete, c.entityPath(id), nil, nil, nil); err != nil {
		return err
	}

	c.cache.InvalidateResource(c.name)
	return nil
}
