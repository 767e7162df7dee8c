package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/enunanota/enunanota/internal/shared"
)

// PKCE verifier alphabet per RFC 7636 §4.1.
const verifierAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-._~"

const (
	// VerifierMinLength and VerifierMaxLength bound the code verifier size (RFC 7636 §4.1).
	VerifierMinLength = 43
	VerifierMaxLength = 128

	// DefaultVerifierLength is the longest verifier RFC 7636 allows.
	DefaultVerifierLength = 128
)

// GenerateVerifier produces a cryptographically random PKCE code verifier
// of exactly length characters drawn from the RFC 7636 alphabet.
//
// Bytes are drawn with rejection sampling so every alphabet character is
// equally likely.
func GenerateVerifier(length int) (string, error) {
	if length < VerifierMinLength || length > VerifierMaxLength {
		return "", fmt.Errorf("%w: verifier length %d outside [%d, %d]",
			shared.ErrInvalidArgument, length, VerifierMinLength, VerifierMaxLength)
	}

	// Largest multiple of len(verifierAlphabet) below 256; bytes at or
	// above it would bias the modulo mapping and are redrawn.
	limit := byte(256 - (256 % len(verifierAlphabet)))

	out := make([]byte, 0, length)
	buf := make([]byte, length)

	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			out = append(out, verifierAlphabet[int(b)%len(verifierAlphabet)])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}

// DeriveChallenge computes the S256 code challenge for a verifier:
// base64url(SHA-256(verifier)) without padding. Deterministic.
func DeriveChallenge(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// GenerateNonce returns a random token used to latch the OAuth callback so
// a redirect is processed at most once.
func GenerateNonce() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
