// Package auth implements the Spotify OAuth 2.0 Authorization Code + PKCE
// flow and the session lifecycle built on top of it.
//
// # Components
//
// [GenerateVerifier] and [DeriveChallenge] produce the PKCE proof pair
// (RFC 7636). [BuildAuthorizationURL] composes the provider authorization
// URL. [OAuthExchanger] performs the code-for-token exchange. [Session]
// orchestrates the whole flow as a small state machine
// (unauthenticated → authenticating → authenticated) persisting its
// credential through a [Store].
//
// # Redirect as a process boundary
//
// [Session.Login] does not block until the user authorizes: it stores the
// verifier and a one-shot nonce, then returns the URL the caller must
// navigate to. The flow resumes when the redirect lands and the caller
// invokes [Session.HandleCallback] with the authorization code, possibly
// in a later process. [Session.Initialize] restores a still-valid
// credential at startup without a new redirect.
//
// # Single-use guarantees
//
// Authorization codes are single-use by the provider's contract, so a
// failed exchange is terminal for the current code and is never retried.
// HandleCallback claims the stored nonce before exchanging, which makes
// duplicate invocations for the same redirect harmless. The verifier is
// deleted once the callback completes, success or failure.
package auth
