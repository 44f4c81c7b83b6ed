// Package auth implements the browser-based login flow for the Taskdeck CLI.
//
// The flow is OAuth 2.0 Authorization Code with PKCE (RFC 7636): a code
// verifier and anti-CSRF state are generated, the user's browser is sent to
// the Taskdeck authorization page, and a short-lived loopback HTTP listener
// receives the redirect carrying the authorization code. The code and the
// original verifier are then exchanged for an access token, which is handed
// to the token store.
package auth
