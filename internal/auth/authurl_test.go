package auth

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/enunanota/enunanota/internal/shared"
)

func TestBuildAuthorizationURL(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		challenge := DeriveChallenge("some-verifier-some-verifier-some-verifier-1")
		redirectURI := "http://localhost:3000/callback"

		rawURL, err := BuildAuthorizationURL(challenge, "client123", redirectURI, RequiredScopes)
		if err != nil {
			t.Fatalf("BuildAuthorizationURL failed: %v", err)
		}

		if !strings.HasPrefix(rawURL, SpotifyAuthURL+"?") {
			t.Errorf("expected URL rooted at %s, got %s", SpotifyAuthURL, rawURL)
		}

		parsed, err := url.Parse(rawURL)
		if err != nil {
			t.Fatalf("failed to parse built URL: %v", err)
		}

		query := parsed.Query()
		expectations := map[string]string{
			"client_id":             "client123",
			"response_type":         "code",
			"redirect_uri":          redirectURI,
			"scope":                 RequiredScopes,
			"code_challenge_method": "S256",
			"code_challenge":        challenge,
		}
		for key, want := range expectations {
			if got := query.Get(key); got != want {
				t.Errorf("parameter %s: expected %q, got %q", key, want, got)
			}
		}
	})

	t.Run("MissingClientID", func(t *testing.T) {
		_, err := BuildAuthorizationURL("challenge", "", "http://localhost/callback", RequiredScopes)
		if !errors.Is(err, shared.ErrConfiguration) {
			t.Errorf("expected ErrConfiguration, got %v", err)
		}
	})

	t.Run("MissingRedirectURI", func(t *testing.T) {
		_, err := BuildAuthorizationURL("challenge", "client123", "", RequiredScopes)
		if !errors.Is(err, shared.ErrConfiguration) {
			t.Errorf("expected ErrConfiguration, got %v", err)
		}
	})
}
