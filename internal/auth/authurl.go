package auth

import (
	"fmt"
	"net/url"

	"github.com/enunanota/enunanota/internal/shared"
)

const (
	// SpotifyAuthURL is the provider authorization endpoint.
	SpotifyAuthURL = "https://accounts.spotify.com/authorize"
	// SpotifyTokenURL is the provider token endpoint.
	SpotifyTokenURL = "https://accounts.spotify.com/api/token"
)

// RequiredScopes is the exact space-separated scope set the game needs:
// profile reads for the player card, top tracks for round material, and
// playback control for playing the mystery track.
const RequiredScopes = "user-top-read user-read-email user-read-private streaming user-read-playback-state user-modify-playback-state"

// BuildAuthorizationURL composes the provider authorization URL for an
// S256 PKCE authorization-code request. Pure; all parameters are
// percent-encoded by [url.Values].
//
// Returns [shared.ErrConfiguration] when clientID or redirectURI is empty
// rather than building an invalid URL.
func BuildAuthorizationURL(challenge, clientID, redirectURI, scopes string) (string, error) {
	if clientID == "" {
		return "", fmt.Errorf("%w: spotify client_id is not set", shared.ErrConfiguration)
	}
	if redirectURI == "" {
		return "", fmt.Errorf("%w: spotify redirect_uri is not set", shared.ErrConfiguration)
	}

	params := url.Values{}
	params.Set("client_id", clientID)
	params.Set("response_type", "code")
	params.Set("redirect_uri", redirectURI)
	params.Set("scope", scopes)
	params.Set("code_challenge_method", "S256")
	params.Set("code_challenge", challenge)

	return SpotifyAuthURL + "?" + params.Encode(), nil
}
