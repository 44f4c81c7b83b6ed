package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type recordingStore struct {
	saves []string
	err   error
}

func (s *recordingStore) Save(token string) error {
	s.saves = append(s.saves, token)
	return s.err
}

// freePort reserves an ephemeral port and releases it for the flow to rebind.
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())
	return port
}

func TestLoginFlowEndToEnd(t *testing.T) {
	var exchangedCode, exchangedVerifier string
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		exchangedCode = r.PostForm.Get("code")
		exchangedVerifier = r.PostForm.Get("code_verifier")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok_789",
			"token_type":   "Bearer",
		})
	}))
	t.Cleanup(tokenSrv.Close)

	port := freePort(t)
	store := &recordingStore{}
	var out bytes.Buffer

	flow := &LoginFlow{
		OAuth: &oauth2.Config{
			ClientID: "client_1",
			Endpoint: oauth2.Endpoint{
				AuthURL:  "https://auth.example/authorize",
				TokenURL: tokenSrv.URL,
			},
			RedirectURL: fmt.Sprintf("http://127.0.0.1:%d/callback", port),
			Scopes:      []string{"data:read_write"},
		},
		Store: store,
		Port:  port,
		Out:   &out,
		OpenBrowser: func(authURL string) error {
			// Play the authorization server: read the request parameters
			// and redirect back with a code.
			u, err := url.Parse(authURL)
			require.NoError(t, err)
			q := u.Query()

			assert.Equal(t, "client_1", q.Get("client_id"))
			assert.Equal(t, "S256", q.Get("code_challenge_method"))
			assert.NotEmpty(t, q.Get("code_challenge"))
			state := q.Get("state")
			require.NotEmpty(t, state)

			go func() {
				callback := fmt.Sprintf("http://127.0.0.1:%d/callback?code=XYZ&state=%s",
					port, url.QueryEscape(state))
				resp, err := http.Get(callback)
				if err == nil {
					resp.Body.Close()
				}
			}()
			return nil
		},
	}

	require.NoError(t, flow.Run(context.Background()))

	assert.Equal(t, "XYZ", exchangedCode)
	assert.Len(t, exchangedVerifier, 64)
	assert.Equal(t, []string{"tok_789"}, store.saves, "exactly one token save")
	assert.Contains(t, out.String(), "https://auth.example/authorize")
}

func TestLoginFlowVerifierMatchesChallenge(t *testing.T) {
	var challenge, verifier string
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		verifier = r.PostForm.Get("code_verifier")

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok_1", "token_type": "Bearer"})
	}))
	t.Cleanup(tokenSrv.Close)

	port := freePort(t)
	flow := &LoginFlow{
		OAuth: &oauth2.Config{
			ClientID:    "client_1",
			Endpoint:    oauth2.Endpoint{AuthURL: "https://auth.example/authorize", TokenURL: tokenSrv.URL},
			RedirectURL: fmt.Sprintf("http://127.0.0.1:%d/callback", port),
		},
		Store: &recordingStore{},
		Port:  port,
		OpenBrowser: func(authURL string) error {
			u, _ := url.Parse(authURL)
			challenge = u.Query().Get("code_challenge")
			state := u.Query().Get("state")
			go func() {
				resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/callback?code=c&state=%s",
					port, url.QueryEscape(state)))
				if err == nil {
					resp.Body.Close()
				}
			}()
			return nil
		},
	}

	require.NoError(t, flow.Run(context.Background()))
	assert.Equal(t, challenge, GenerateCodeChallenge(verifier),
		"challenge sent to the authorization server must be derived from the exchanged verifier")
}

func TestLoginFlowBrowserFailureIsNotFatal(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"access_token": "tok_2", "token_type": "Bearer"})
	}))
	t.Cleanup(tokenSrv.Close)

	port := freePort(t)
	store := &recordingStore{}
	var out bytes.Buffer

	flow := &LoginFlow{
		OAuth: &oauth2.Config{
			ClientID:    "client_1",
			Endpoint:    oauth2.Endpoint{AuthURL: "https://auth.example/authorize", TokenURL: tokenSrv.URL},
			RedirectURL: fmt.Sprintf("http://127.0.0.1:%d/callback", port),
		},
		Store: store,
		Port:  port,
		Out:   &out,
		OpenBrowser: func(authURL string) error {
			u, _ := url.Parse(authURL)
			state := u.Query().Get("state")
			go func() {
				resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/callback?code=c&state=%s",
					port, url.QueryEscape(state)))
				if err == nil {
					resp.Body.Close()
				}
			}()
			return errors.New("no display")
		},
	}

	require.NoError(t, flow.Run(context.Background()))
	assert.Equal(t, []string{"tok_2"}, store.saves)
	assert.Contains(t, out.String(), "Could not open your browser")
}

func TestLoginFlowTimeout(t *testing.T) {
	port := freePort(t)
	store := &recordingStore{}

	flow := &LoginFlow{
		OAuth: &oauth2.Config{
			ClientID:    "client_1",
			Endpoint:    oauth2.Endpoint{AuthURL: "https://auth.example/authorize", TokenURL: "https://auth.example/token"},
			RedirectURL: fmt.Sprintf("http://127.0.0.1:%d/callback", port),
		},
		Store:       store,
		Port:        port,
		Timeout:     50 * time.Millisecond,
		OpenBrowser: func(string) error { return nil },
	}

	err := flow.Run(context.Background())
	assert.Equal(t, KindTimeout, KindOf(err))
	assert.Empty(t, store.saves)
}

func TestLoginFlowEmptyToken(t *testing.T) {
	tokenSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"access_token": "", "token_type": "Bearer"})
	}))
	t.Cleanup(tokenSrv.Close)

	port := freePort(t)
	store := &recordingStore{}

	flow := &LoginFlow{
		OAuth: &oauth2.Config{
			ClientID:    "client_1",
			Endpoint:    oauth2.Endpoint{AuthURL: "https://auth.example/authorize", TokenURL: tokenSrv.URL},
			RedirectURL: fmt.Sprintf("http://127.0.0.1:%d/callback", port),
		},
		Store: store,
		Port:  port,
		OpenBrowser: func(authURL string) error {
			u, _ := url.Parse(authURL)
			state := u.Query().Get("state")
			go func() {
				resp, err := http.Get(fmt.Sprintf("http://127.0.0.1:%d/callback?code=c&state=%s",
					port, url.QueryEscape(state)))
				if err == nil {
					resp.Body.Close()
				}
			}()
			return nil
		},
	}

	err := flow.Run(context.Background())
	require.Error(t, err)
	assert.Empty(t, store.saves)
}

func TestLoginFlowUnconfigured(t *testing.T) {
	err := (&LoginFlow{}).Run(context.Background())
	assert.Error(t, err)
}
