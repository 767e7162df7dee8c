// Package repositories provides the SQLite persistence layer.
//
// [CredentialRepository] is the durable credential store backing the OAuth
// session: a plain key/value table whose multi-key writes and clears run
// in a single transaction, so the token never lands without its expiry and
// scope metadata. It implements
// [github.com/enunanota/enunanota/internal/auth.Store].
//
// [ScoreRepository] records finished game rounds for the score history.
package repositories
