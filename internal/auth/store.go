package auth

// Credential store keys. All of them are cleared together on logout or
// invalidation; the verifier and nonce additionally live only for a single
// login attempt.
const (
	KeyCodeVerifier  = "code_verifier"
	KeyAuthNonce     = "auth_nonce"
	KeyAccessToken   = "access_token"
	KeyExpiresAt     = "expires_at"
	KeyGrantedScopes = "granted_scopes"
)

// CredentialKeys lists every key the session writes, in no particular order.
var CredentialKeys = []string{
	KeyCodeVerifier,
	KeyAuthNonce,
	KeyAccessToken,
	KeyExpiresAt,
	KeyGrantedScopes,
}

// Store is durable key/value persistence for the OAuth session. It must
// survive process restarts: the login redirect leaves the application, so
// the verifier has to be on disk when the callback arrives, and a stored
// token restores a session at the next start without a new redirect.
//
// [github.com/enunanota/enunanota/internal/repositories.CredentialRepository]
// is the SQLite-backed implementation.
type Store interface {
	// Get returns the value for key, or "" with a nil error when absent.
	Get(key string) (string, error)

	// Set stores value under key, replacing any previous value.
	Set(key, value string) error

	// SetMany stores all pairs as one atomic unit, so a crash cannot leave
	// a token without its matching expiry or scopes.
	SetMany(values map[string]string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(key string) error

	// Clear deletes all given keys atomically.
	Clear(keys ...string) error
}
