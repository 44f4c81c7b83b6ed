package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/oauth2"

	"github.com/taskdeck/taskdeck/internal/logging"
)

// TokenStore persists the access token obtained by a completed login. The
// flow hands the token off and never retains it.
type TokenStore interface {
	Save(token string) error
}

// LoginFlow orchestrates one browser-based login attempt.
type LoginFlow struct {
	// OAuth carries the client id, endpoints, scopes and redirect URI.
	OAuth *oauth2.Config

	// Store receives the access token after a successful exchange.
	Store TokenStore

	// OpenBrowser launches the user's browser. A launch failure is
	// reported but does not abort the flow; the URL is printed so the
	// user can open it manually.
	OpenBrowser func(url string) error

	// Port for the loopback callback listener. Zero means
	// DefaultCallbackPort.
	Port int

	// Timeout for the callback. Zero means DefaultCallbackTimeout.
	Timeout time.Duration

	// Out receives user-facing progress messages.
	Out io.Writer

	Logger *slog.Logger
}

// Run executes the login sequence: generate PKCE parameters, open the
// authorization URL, await the callback, exchange the code, persist the
// token. Every failure is surfaced with its specific kind and message; no
// step is retried.
func (f *LoginFlow) Run(ctx context.Context) error {
	if f.OAuth == nil || f.Store == nil {
		return errors.New("login flow is not fully configured")
	}
	log := logging.WithOperation(f.logger(), "login")

	verifier := GenerateCodeVerifier()
	challenge := GenerateCodeChallenge(verifier)
	state := GenerateState()

	port := f.Port
	if port == 0 {
		port = DefaultCallbackPort
	}
	listener := NewCallbackListener(port, state)
	if err := listener.Start(); err != nil {
		return err
	}
	defer listener.Close()

	authURL := f.OAuth.AuthCodeURL(state,
		oauth2.SetAuthURLParam("code_challenge", challenge),
		oauth2.SetAuthURLParam("code_challenge_method", "S256"),
	)

	if f.OpenBrowser != nil {
		if err := f.OpenBrowser(authURL); err != nil {
			log.Warn("could not open browser", logging.Err(err))
			fmt.Fprintf(f.out(), "Could not open your browser: %v\n", err)
		}
	}
	fmt.Fprintf(f.out(), "If your browser did not open, visit:\n\n  %s\n\n", authURL)

	code, err := listener.Wait(ctx, f.Timeout)
	if err != nil {
		log.Error("authorization callback failed",
			slog.String("kind", string(KindOf(err))), logging.Err(err))
		return err
	}
	log.Debug("authorization code received")

	// The token endpoint verifies that this verifier matches the challenge
	// sent with the authorization request; the service is the verifier of
	// that binding, not us.
	token, err := f.OAuth.Exchange(ctx, code,
		oauth2.SetAuthURLParam("code_verifier", verifier),
	)
	if err != nil {
		return fmt.Errorf("token exchange failed: %w", err)
	}
	if token.AccessToken == "" {
		return errors.New("token endpoint returned an empty access token")
	}

	if err := f.Store.Save(token.AccessToken); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	log.Info("login complete", slog.String("token", logging.SanitizeToken(token.AccessToken)))
	return nil
}

func (f *LoginFlow) out() io.Writer {
	if f.Out != nil {
		return f.Out
	}
	return io.Discard
}

func (f *LoginFlow) logger() *slog.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return slog.Default()
}
