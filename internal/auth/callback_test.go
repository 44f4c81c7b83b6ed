package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startListener binds an ephemeral-port listener and returns it with a GET
// helper against its callback endpoint.
func startListener(t *testing.T, state string) (*CallbackListener, func(params url.Values) *http.Response) {
	t.Helper()

	l := NewCallbackListener(0, state)
	require.NoError(t, l.Start())
	t.Cleanup(func() { l.Close() })

	get := func(params url.Values) *http.Response {
		u := fmt.Sprintf("http://127.0.0.1:%d/callback?%s", l.Port(), params.Encode())
		resp, err := http.Get(u)
		require.NoError(t, err)
		t.Cleanup(func() { resp.Body.Close() })
		return resp
	}
	return l, get
}

func TestCallbackSuccess(t *testing.T) {
	l, get := startListener(t, "s123")

	resp := get(url.Values{"code": {"XYZ"}, "state": {"s123"}})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Login complete")

	code, err := l.Wait(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "XYZ", code)
}

func TestCallbackStateMismatch(t *testing.T) {
	l, get := startListener(t, "expected")

	resp := get(url.Values{"code": {"XYZ"}, "state": {"forged"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, err := l.Wait(context.Background(), time.Second)
	require.Error(t, err)
	assert.Equal(t, KindSecurity, KindOf(err))
}

func TestCallbackMissingParameters(t *testing.T) {
	tests := []struct {
		name   string
		params url.Values
	}{
		{name: "no code", params: url.Values{"state": {"s123"}}},
		{name: "no state", params: url.Values{"code": {"XYZ"}}},
		{name: "empty", params: url.Values{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, get := startListener(t, "s123")

			resp := get(tt.params)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			_, err := l.Wait(context.Background(), time.Second)
			assert.Equal(t, KindMissingParameters, KindOf(err))
		})
	}
}

func TestCallbackProviderError(t *testing.T) {
	l, get := startListener(t, "s123")

	resp := get(url.Values{
		"error":             {"access_denied"},
		"error_description": {"user declined"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, err := l.Wait(context.Background(), time.Second)
	require.Error(t, err)
	assert.Equal(t, KindProviderError, KindOf(err))
	assert.Contains(t, err.Error(), "access_denied")
}

func TestCallbackTimeout(t *testing.T) {
	l := NewCallbackListener(0, "s123")
	require.NoError(t, l.Start())

	_, err := l.Wait(context.Background(), 50*time.Millisecond)
	assert.Equal(t, KindTimeout, KindOf(err))

	port := l.Port()
	require.NoError(t, l.Close())

	// The socket must be released so a later attempt can rebind it.
	retry := NewCallbackListener(port, "s456")
	require.NoError(t, retry.Start())
	require.NoError(t, retry.Close())
}

func TestCallbackContextCancel(t *testing.T) {
	l, _ := startListener(t, "s123")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := l.Wait(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCallbackResolvesOnce(t *testing.T) {
	l, get := startListener(t, "s123")

	get(url.Values{"code": {"first"}, "state": {"s123"}})
	get(url.Values{"code": {"second"}, "state": {"s123"}})

	code, err := l.Wait(context.Background(), time.Second)
	require.NoError(t, err)
	assert.Equal(t, "first", code, "only the first callback counts")
}

func TestCallbackOtherPaths(t *testing.T) {
	l, _ := startListener(t, "s123")

	resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/favicon.ico", l.Port()))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRedirectURI(t *testing.T) {
	l, _ := startListener(t, "s123")
	assert.Equal(t, fmt.Sprintf("http://127.0.0.1:%d/callback", l.Port()), l.RedirectURI())
}
