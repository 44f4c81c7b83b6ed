package server

import (
	"context"
	"errors"
	"sync"

	"github.com/taskdeck/taskdeck/internal/api"
	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/tokenstore"
)

// ErrNotLoggedIn is returned when a tool needs the API but no token has been
// saved yet.
var ErrNotLoggedIn = errors.New("not logged in, run 'taskdeck auth login' first")

// ServerContext holds the state shared by all registered tools.
type ServerContext struct {
	ctx    context.Context
	cancel context.CancelFunc

	cfg   config.Config
	store *tokenstore.Store

	mu       sync.RWMutex
	client   *api.Client
	shutdown bool
}

// NewServerContext creates a server context. The API client is not built
// here: the token is read lazily so the server can start before login and
// pick up a token saved while it runs.
func NewServerContext(ctx context.Context, cfg config.Config, store *tokenstore.Store) *ServerContext {
	shutdownCtx, cancel := context.WithCancel(ctx)
	return &ServerContext{
		ctx:    shutdownCtx,
		cancel: cancel,
		cfg:    cfg,
		store:  store,
	}
}

// Context returns the server's lifetime context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Config returns the loaded configuration.
func (sc *ServerContext) Config() config.Config {
	return sc.cfg
}

// APIClient returns the cached API client, building it from the saved token
// on first use. Returns ErrNotLoggedIn when no token is stored.
func (sc *ServerContext) APIClient() (*api.Client, error) {
	sc.mu.RLock()
	client := sc.client
	sc.mu.RUnlock()
	if client != nil {
		return client, nil
	}

	sc.mu.Lock()
	defer sc.mu.Unlock()
	if sc.client != nil {
		return sc.client, nil
	}

	token, ok, err := sc.store.Load()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotLoggedIn
	}

	sc.client = api.NewClient(sc.cfg.APIBaseURL, token)
	return sc.client, nil
}

// Invalidate drops the cached client so the next call rebuilds it from the
// stored token. Called after logout or re-login.
func (sc *ServerContext) Invalidate() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.client = nil
}

// IsShutdown returns whether Shutdown has been called.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context. Safe to call more than once.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}
	sc.shutdown = true
	sc.cancel()
	return nil
}
