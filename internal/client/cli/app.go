// Package cli is the terminal front end of dealerdesk: an interactive
// shell over the dealership backend with the same session, guard and
// caching behavior the web dashboard had.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/mkazymov/dealerdesk/internal/client/api"
	"github.com/mkazymov/dealerdesk/internal/client/cache"
	"github.com/mkazymov/dealerdesk/internal/client/config"
	"github.com/mkazymov/dealerdesk/internal/client/resource"
	"github.com/mkazymov/dealerdesk/internal/client/session"
	"github.com/mkazymov/dealerdesk/internal/client/tokenstore"
	"github.com/mkazymov/dealerdesk/internal/logging"
	"github.com/mkazymov/dealerdesk/internal/models"
)

type App struct {
	config  *config.Config
	log     logging.Logger
	api     *api.Client
	session *session.Controller
	cache   *cache.Cache

	branches  *resource.Collection[models.Branch]
	vehicles  *resource.Collection[models.Vehicle]
	customers *resource.Collection[models.Customer]
	orders    *resource.Collection[models.Order]

	views map[string]view

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logging.New(os.Stderr, cfg.LogLevel)

	tokenFile := cfg.TokenFile
	if tokenFile == "" {
		path, err := tokenstore.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("resolving credential path: %w", err)
		}
		tokenFile = path
	}
	tokens := tokenstore.NewFileStore(tokenFile)

	a := &App{
		config: cfg,
		log:    log,
		cache:  cache.New(),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}

	client, err := api.New(cfg.APIBaseURL, tokens,
		api.WithLogger(log),
		api.WithAPIToken(cfg.APIToken),
		api.WithUnauthorizedHook(a.onUnauthorized),
	)
	if err != nil {
		return nil, err
	}
	a.api = client

	sessionOpts := []session.Option{
		session.WithCheckBound(cfg.CheckBound),
		session.WithLogger(log),
	}
	if cfg.SigningSecret != "" {
		sessionOpts = append(sessionOpts, session.WithSigningSecret([]byte(cfg.SigningSecret)))
	}
	a.session = session.New(client, tokens, sessionOpts...)

	a.branches = resource.New[models.Branch](client, a.cache, "branches")
	a.vehicles = resource.New[models.Vehicle](client, a.cache, "vehicles",
		resource.WithPopulate("branch"))
	a.customers = resource.New[models.Customer](client, a.cache, "customers")
	a.orders = resource.New[models.Order](client, a.cache, "orders",
		resource.WithPopulate("customer"),
		resource.WithPopulate("vehicle", "vin", "make", "model"),
		resource.WithPopulate("branch"))

	a.registerViews()

	return a, nil
}

// onUnauthorized is wired into the HTTP client's 401 hook. The credential
// is already gone; this is the redirect-to-login analog.
func (a *App) onUnauthorized() {
	if a.session != nil {
		a.session.HandleUnauthorized()
	}
	fmt.Fprintln(a.out, "Session expired, please log in again.")
}

func (a *App) status() string {
	user, ok := a.session.CurrentUser()
	if !ok {
		return ""
	}
	return fmt.Sprintf("(%s %s)", user.Username, user.Role)
}
