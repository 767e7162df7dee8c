package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")
	ErrConfiguration = fmt.Errorf("missing required configuration")

	// Authentication errors
	ErrAuthFailed        = fmt.Errorf("authentication failed")
	ErrNotAuthenticated  = fmt.Errorf("not authenticated")
	ErrMissingVerifier   = fmt.Errorf("login session lost, restart login")
	ErrTokenExchange     = fmt.Errorf("token exchange failed")
	ErrInvalidCredential = fmt.Errorf("stored credential invalid")
	ErrTokenExpired      = fmt.Errorf("access token expired")
	ErrScopeMismatch     = fmt.Errorf("granted permissions changed")
	ErrNetwork           = fmt.Errorf("network request failed")
	ErrTimeout           = fmt.Errorf("operation timed out")

	// API and service errors
	ErrAPIRequest         = fmt.Errorf("API request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrTrackNotFound      = fmt.Errorf("track not found")
	ErrNoActiveDevice     = fmt.Errorf("no active playback device")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
