package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/enunanota/enunanota/internal/shared"
	"golang.org/x/oauth2"
)

// DefaultExchangeTimeout bounds the token endpoint call so a dead network
// cannot hang the authenticating state indefinitely.
const DefaultExchangeTimeout = 30 * time.Second

// TokenResult is the outcome of a successful authorization-code exchange.
type TokenResult struct {
	AccessToken string
	ExpiresIn   int64  // seconds until expiry, from the provider
	Scope       string // space-separated scopes the token was issued for
}

// Exchanger swaps an authorization code plus its PKCE verifier for a token.
//
// Implementations must never retry: an authorization code is single-use,
// so any failure is terminal for that code and the login flow has to be
// restarted from scratch.
type Exchanger interface {
	Exchange(ctx context.Context, code, verifier string) (*TokenResult, error)
}

// OAuthExchanger implements [Exchanger] against the provider token
// endpoint using [oauth2.Config.Exchange] with the S256 verifier option.
type OAuthExchanger struct {
	config     *oauth2.Config
	httpClient *http.Client
	timeout    time.Duration
}

// NewOAuthExchanger creates an exchanger for a public PKCE client (no
// client secret). tokenURL defaults to [SpotifyTokenURL], httpClient to
// [http.DefaultClient].
func NewOAuthExchanger(clientID, redirectURI, tokenURL string, httpClient *http.Client) *OAuthExchanger {
	if tokenURL == "" {
		tokenURL = SpotifyTokenURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &OAuthExchanger{
		config: &oauth2.Config{
			ClientID:    clientID,
			RedirectURL: redirectURI,
			// Public client: client_id travels in the form body, never a
			// Basic auth header, and the style is pinned so the oauth2
			// package cannot probe the endpoint with a second request.
			Endpoint: oauth2.Endpoint{
				AuthURL:   SpotifyAuthURL,
				TokenURL:  tokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: httpClient,
		timeout:    DefaultExchangeTimeout,
	}
}

// Exchange performs the form-encoded POST (grant_type=authorization_code)
// exactly once.
//
// Provider rejections map to [shared.ErrTokenExchange] carrying the
// provider error code and description when available. Transport failures
// map to [shared.ErrTimeout] or [shared.ErrNetwork].
func (e *OAuthExchanger) Exchange(ctx context.Context, code, verifier string) (*TokenResult, error) {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, e.httpClient)

	token, err := e.config.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, mapExchangeError(err)
	}

	result := &TokenResult{AccessToken: token.AccessToken, ExpiresIn: token.ExpiresIn}
	if result.ExpiresIn == 0 && !token.Expiry.IsZero() {
		result.ExpiresIn = int64(time.Until(token.Expiry).Seconds())
	}
	if scope, ok := token.Extra("scope").(string); ok {
		result.Scope = scope
	}

	return result, nil
}

// mapExchangeError converts oauth2 transport errors into the shared error
// taxonomy.
func mapExchangeError(err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		detail := strings.TrimSpace(retrieveErr.ErrorCode)
		if retrieveErr.ErrorDescription != "" {
			detail = fmt.Sprintf("%s: %s", detail, retrieveErr.ErrorDescription)
		}
		if detail == "" {
			detail = fmt.Sprintf("provider returned status %d", retrieveErr.Response.StatusCode)
		}
		return fmt.Errorf("%w: %s", shared.ErrTokenExchange, detail)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: token exchange did not complete in time", shared.ErrTimeout)
	}

	return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
}
