package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"html"
	"net"
	"net/http"
	"sync"
	"time"
)

// DefaultCallbackPort is the fixed loopback port the Taskdeck authorization
// server redirects to. It must match the redirect URI registered for the CLI.
const DefaultCallbackPort = 8976

// DefaultCallbackTimeout is how long the listener waits for the user to
// complete authorization in the browser.
const DefaultCallbackTimeout = 3 * time.Minute

// CallbackListener receives a single OAuth redirect on a loopback HTTP
// endpoint. It resolves exactly once: with the authorization code on a valid
// callback, or with a FlowError on a rejected callback, a timeout, or a
// listener fault. Further requests after resolution are answered but ignored.
type CallbackListener struct {
	port          int
	expectedState string

	server   *http.Server
	listener net.Listener

	once    sync.Once
	outcome chan callbackOutcome
}

type callbackOutcome struct {
	code string
	err  error
}

// NewCallbackListener creates a listener that accepts only callbacks carrying
// expectedState. Port 0 binds an ephemeral port (used by tests).
func NewCallbackListener(port int, expectedState string) *CallbackListener {
	return &CallbackListener{
		port:          port,
		expectedState: expectedState,
		outcome:       make(chan callbackOutcome, 1),
	}
}

// Start binds the loopback endpoint and begins serving. A bind failure is
// returned as a FlowError of kind KindListenerFailure.
func (l *CallbackListener) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/callback", l.handleCallback)

	l.server = &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	addr := fmt.Sprintf("127.0.0.1:%d", l.port)
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return &FlowError{
			Kind:    KindListenerFailure,
			Message: fmt.Sprintf("cannot listen on %s", addr),
			Err:     err,
		}
	}
	l.listener = listener

	// Record the actual port when an ephemeral one was requested.
	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		l.port = tcpAddr.Port
	}

	go func() {
		if err := l.server.Serve(listener); err != nil && err != http.ErrServerClosed {
			l.resolve(callbackOutcome{err: &FlowError{
				Kind:    KindListenerFailure,
				Message: "callback listener stopped unexpectedly",
				Err:     err,
			}})
		}
	}()

	return nil
}

// Wait blocks until the callback resolves, the timeout elapses, or ctx is
// cancelled. On success it returns the authorization code.
func (l *CallbackListener) Wait(ctx context.Context, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = DefaultCallbackTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case o := <-l.outcome:
		return o.code, o.err
	case <-timer.C:
		return "", &FlowError{
			Kind:    KindTimeout,
			Message: fmt.Sprintf("no authorization callback within %s", timeout),
		}
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close releases the listening socket. It is safe to call on every exit path,
// including after Wait has returned.
func (l *CallbackListener) Close() error {
	if l.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return l.server.Shutdown(ctx)
}

// Port returns the bound port. Meaningful after Start.
func (l *CallbackListener) Port() int {
	return l.port
}

// RedirectURI returns the redirect URI served by this listener.
func (l *CallbackListener) RedirectURI() string {
	return fmt.Sprintf("http://127.0.0.1:%d/callback", l.port)
}

func (l *CallbackListener) handleCallback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	if errParam := q.Get("error"); errParam != "" {
		desc := q.Get("error_description")
		l.reject(w, fmt.Sprintf("The authorization server reported: %s", html.EscapeString(errParam)), &FlowError{
			Kind:    KindProviderError,
			Message: fmt.Sprintf("authorization server reported %q: %s", errParam, desc),
		})
		return
	}

	code := q.Get("code")
	state := q.Get("state")
	if code == "" || state == "" {
		l.reject(w, "The authorization response was incomplete.", &FlowError{
			Kind:    KindMissingParameters,
			Message: "callback missing code or state parameter",
		})
		return
	}

	// Exact byte equality, constant time. A mismatch may be a forged
	// redirect, so it gets its own kind rather than a generic failure.
	if subtle.ConstantTimeCompare([]byte(state), []byte(l.expectedState)) != 1 {
		l.reject(w, "The authorization response could not be verified.", &FlowError{
			Kind:    KindSecurity,
			Message: "callback state does not match the state sent to the authorization server",
		})
		return
	}

	writePage(w, http.StatusOK, "Login complete",
		"You can close this window and return to the terminal.")
	l.resolve(callbackOutcome{code: code})
}

func (l *CallbackListener) reject(w http.ResponseWriter, userMessage string, err *FlowError) {
	writePage(w, http.StatusBadRequest, "Login failed", userMessage)
	l.resolve(callbackOutcome{err: err})
}

// resolve records the terminal outcome exactly once. Late callbacks hit the
// sync.Once and are dropped.
func (l *CallbackListener) resolve(o callbackOutcome) {
	l.once.Do(func() {
		l.outcome <- o
	})
}

func writePage(w http.ResponseWriter, status int, title, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<!DOCTYPE html>
<html>
<head>
    <title>Taskdeck - %[1]s</title>
    <style>
        body {
            font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
            display: flex;
            justify-content: center;
            align-items: center;
            height: 100vh;
            margin: 0;
            background: #F7F7F5;
        }
        .card {
            text-align: center;
            background: white;
            padding: 40px 56px;
            border-radius: 12px;
            border: 1px solid #DDD;
        }
        h1 { color: #2F3437; font-size: 22px; margin: 0 0 8px 0; }
        p  { color: #787F85; font-size: 15px; margin: 0; }
    </style>
</head>
<body>
    <div class="card">
        <h1>%[1]s</h1>
        <p>%[2]s</p>
    </div>
</body>
</html>`, title, message)
}
