package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck/internal/config"
	"github.com/taskdeck/taskdeck/internal/tokenstore"
)

func newTestContext(t *testing.T) (*ServerContext, *tokenstore.Store) {
	t.Helper()
	store := tokenstore.NewAt(t.TempDir())
	sc := NewServerContext(context.Background(), config.Default(), store)
	t.Cleanup(func() { sc.Shutdown() })
	return sc, store
}

func TestAPIClientRequiresLogin(t *testing.T) {
	sc, _ := newTestContext(t)

	_, err := sc.APIClient()
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestAPIClientCachedAfterLogin(t *testing.T) {
	sc, store := newTestContext(t)
	require.NoError(t, store.Save("tok_1"))

	first, err := sc.APIClient()
	require.NoError(t, err)
	second, err := sc.APIClient()
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestInvalidateRebuildsClient(t *testing.T) {
	sc, store := newTestContext(t)
	require.NoError(t, store.Save("tok_1"))

	first, err := sc.APIClient()
	require.NoError(t, err)

	sc.Invalidate()
	require.NoError(t, store.Save("tok_2"))

	second, err := sc.APIClient()
	require.NoError(t, err)
	assert.NotSame(t, first, second)
}

func TestShutdown(t *testing.T) {
	sc, _ := newTestContext(t)

	require.NoError(t, sc.Shutdown())
	assert.True(t, sc.IsShutdown())
	require.NoError(t, sc.Shutdown())

	select {
	case <-sc.Context().Done():
	default:
		t.Fatal("context must be cancelled after shutdown")
	}
}
