package auth

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/enunanota/enunanota/internal/shared"
)

// Status is the authentication state exposed to the UI.
type Status int

const (
	StatusUnauthenticated Status = iota
	StatusAuthenticating
	StatusAuthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticating:
		return "authenticating"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// Credential is a stored bearer token with its validity metadata.
type Credential struct {
	AccessToken   string
	ExpiresAt     time.Time
	GrantedScopes string
}

// Valid reports whether the credential can be used right now: the token is
// non-empty, now is strictly before expiry, and the granted scopes equal
// the scopes the application currently requires. A token issued under an
// older scope set is invalid even before it expires, otherwise the app
// would silently run with insufficient permissions.
func (c Credential) Valid(requiredScopes string, now time.Time) bool {
	return c.AccessToken != "" && now.Before(c.ExpiresAt) && c.GrantedScopes == requiredScopes
}

// SessionOpts configures a [Session].
type SessionOpts struct {
	Store       Store
	Exchanger   Exchanger
	ClientID    string
	RedirectURI string
	Scopes      string           // defaults to RequiredScopes
	Logger      *log.Logger      // defaults to shared.NewLogger(nil)
	Now         func() time.Time // defaults to time.Now, override in tests
}

// Session owns the authenticated/unauthenticated state machine for the
// single live Spotify session. Exactly one credential is live at a time.
//
// All authentication failures resolve the same way: storage is cleared and
// the state returns to unauthenticated. The session never rests in a
// half-authenticated state.
type Session struct {
	store       Store
	exchanger   Exchanger
	clientID    string
	redirectURI string
	scopes      string
	logger      *log.Logger
	now         func() time.Time

	mu           sync.Mutex
	status       Status
	cred         Credential
	callbackDone bool
}

// NewSession creates a Session in the unauthenticated state. Call
// [Session.Initialize] once at startup to restore a persisted credential.
func NewSession(opts SessionOpts) *Session {
	if opts.Scopes == "" {
		opts.Scopes = RequiredScopes
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Session{
		store:       opts.Store,
		exchanger:   opts.Exchanger,
		clientID:    opts.ClientID,
		redirectURI: opts.RedirectURI,
		scopes:      opts.Scopes,
		logger:      opts.Logger,
		now:         opts.Now,
	}
}

// Initialize restores a persisted session credential, once per process
// start. A present-but-invalid credential is cleared on the spot, not
// merely skipped at read time, and the session stays unauthenticated.
func (s *Session) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cred, err := s.readCredential()
	if err != nil {
		return fmt.Errorf("failed to read stored credential: %w", err)
	}

	if cred.AccessToken == "" {
		return nil
	}

	if cred.Valid(s.scopes, s.now()) {
		s.cred = cred
		s.status = StatusAuthenticated
		s.logger.Info("restored spotify session", "expires_at", cred.ExpiresAt)
		return nil
	}

	if cred.GrantedScopes != s.scopes {
		s.logger.Warn("granted permissions changed, log in again",
			"granted", cred.GrantedScopes, "required", s.scopes)
	} else {
		s.logger.Info("stored session expired, log in again")
	}

	s.clearLocked()
	return nil
}

// Login begins a fresh authorization attempt: generates a new proof pair
// and callback nonce, persists the verifier, and returns the URL the
// caller must navigate to. Control leaves the application at that point;
// the flow resumes in [Session.HandleCallback].
func (s *Session) Login() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	verifier, err := GenerateVerifier(DefaultVerifierLength)
	if err != nil {
		return "", err
	}
	nonce, err := GenerateNonce()
	if err != nil {
		return "", err
	}

	authURL, err := BuildAuthorizationURL(DeriveChallenge(verifier), s.clientID, s.redirectURI, s.scopes)
	if err != nil {
		return "", err
	}

	if err := s.store.SetMany(map[string]string{
		KeyCodeVerifier: verifier,
		KeyAuthNonce:    nonce,
	}); err != nil {
		return "", fmt.Errorf("failed to persist code verifier: %w", err)
	}

	s.status = StatusAuthenticating
	s.callbackDone = false

	return authURL, nil
}

// HandleCallback consumes the authorization code from the redirect exactly
// once. Duplicate invocations for the same redirect are harmless: the
// stored nonce is claimed before the exchange begins, and a second call
// finds it gone and returns without touching the network or the stored
// credential.
//
// On success the full credential (token, expiry, granted scopes) is
// persisted as one unit and the session becomes authenticated. On any
// failure the session is fully logged out. Either way the verifier is
// deleted so the code cannot be replayed.
func (s *Session) HandleCallback(ctx context.Context, code string) error {
	s.mu.Lock()
	if s.callbackDone {
		s.mu.Unlock()
		return nil
	}
	s.callbackDone = true
	s.mu.Unlock()

	nonce, err := s.store.Get(KeyAuthNonce)
	if err != nil {
		return s.failCallback(fmt.Errorf("failed to read callback nonce: %w", err))
	}
	if nonce == "" {
		// Another process already consumed this redirect.
		s.mu.Lock()
		done := s.status == StatusAuthenticated
		s.mu.Unlock()
		if done {
			return nil
		}
		return s.failCallback(fmt.Errorf("%w: no login attempt on record", shared.ErrMissingVerifier))
	}
	if err := s.store.Remove(KeyAuthNonce); err != nil {
		return s.failCallback(fmt.Errorf("failed to claim callback nonce: %w", err))
	}

	verifier, err := s.store.Get(KeyCodeVerifier)
	if err != nil {
		return s.failCallback(fmt.Errorf("failed to read code verifier: %w", err))
	}
	if verifier == "" {
		return s.failCallback(shared.ErrMissingVerifier)
	}

	s.mu.Lock()
	s.status = StatusAuthenticating
	s.mu.Unlock()

	result, err := s.exchanger.Exchange(ctx, code, verifier)
	if err != nil {
		return s.failCallback(err)
	}

	now := s.now()
	expiresAt := now.Add(time.Duration(result.ExpiresIn) * time.Second)

	// Token, expiry, and scopes are written together with the verifier and
	// nonce removal so a crash cannot leave a token without its metadata.
	if err := s.store.SetMany(map[string]string{
		KeyAccessToken:   result.AccessToken,
		KeyExpiresAt:     strconv.FormatInt(expiresAt.UnixMilli(), 10),
		KeyGrantedScopes: result.Scope,
	}); err != nil {
		return s.failCallback(fmt.Errorf("failed to persist credential: %w", err))
	}
	if err := s.store.Clear(KeyCodeVerifier, KeyAuthNonce); err != nil {
		s.logger.Warn("failed to remove code verifier", "error", err)
	}

	s.mu.Lock()
	s.cred = Credential{
		AccessToken:   result.AccessToken,
		ExpiresAt:     expiresAt,
		GrantedScopes: result.Scope,
	}
	s.status = StatusAuthenticated
	s.mu.Unlock()

	s.logger.Info("spotify session established", "expires_at", expiresAt)
	return nil
}

// HandleCallbackError handles a redirect that carried a provider error
// (for example the user denied consent) instead of a code. It is an
// explicit failure transition: storage is cleared and the session returns
// to unauthenticated.
func (s *Session) HandleCallbackError(providerErr, description string) error {
	detail := providerErr
	if description != "" {
		detail = fmt.Sprintf("%s: %s", providerErr, description)
	}
	return s.failCallback(fmt.Errorf("%w: %s", shared.ErrAuthFailed, detail))
}

// Logout clears the credential store and returns the session to the
// unauthenticated state. Side-effect only; storage errors are logged, not
// surfaced.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// IsTokenValid is a pure predicate over the live credential; it does not
// mutate state. Callers use it to decide whether to re-login before an
// API call.
func (s *Session) IsTokenValid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred.Valid(s.scopes, s.now())
}

// IsAuthenticated reports whether the session holds a credential.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status == StatusAuthenticated
}

// Status returns the current state machine state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// AccessToken returns the live bearer token, or "" when unauthenticated.
func (s *Session) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred.AccessToken
}

// Credential returns a copy of the live credential.
func (s *Session) Credential() Credential {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cred
}

// failCallback is the single failure path for callback handling: log,
// clear everything, transition to unauthenticated, surface the error.
func (s *Session) failCallback(err error) error {
	s.logger.Error("authentication failed", "error", err)
	s.mu.Lock()
	s.clearLocked()
	s.mu.Unlock()
	return err
}

// clearLocked wipes storage and resets in-memory state. Callers hold s.mu.
func (s *Session) clearLocked() {
	if err := s.store.Clear(CredentialKeys...); err != nil {
		s.logger.Warn("failed to clear credential store", "error", err)
	}
	s.cred = Credential{}
	s.status = StatusUnauthenticated
}

// readCredential loads the persisted credential fields. Callers hold s.mu.
func (s *Session) readCredential() (Credential, error) {
	token, err := s.store.Get(KeyAccessToken)
	if err != nil {
		return Credential{}, err
	}
	expiresAt, err := s.store.Get(KeyExpiresAt)
	if err != nil {
		return Credential{}, err
	}
	scopes, err := s.store.Get(KeyGrantedScopes)
	if err != nil {
		return Credential{}, err
	}

	cred := Credential{AccessToken: token, GrantedScopes: scopes}
	if expiresAt != "" {
		millis, err := strconv.ParseInt(expiresAt, 10, 64)
		if err != nil {
			// Partial or corrupt write; validity reconstructs defensively.
			return cred, nil
		}
		cred.ExpiresAt = time.UnixMilli(millis)
	}

	return cred, nil
}
