// package services defines interface Service for the Spotify Web API
package services

import "context"

// Service is the surface of a music provider the game plays against.
type Service interface {
	// UserProfile retrieves the authenticated user's profile.
	UserProfile(ctx context.Context) (*User, error)

	// TopTracks retrieves the user's recent top tracks, the round material
	// for the game.
	TopTracks(ctx context.Context, limit int) ([]Track, error)

	// SearchTracks searches the catalog for tracks matching query.
	SearchTracks(ctx context.Context, query string, limit int) ([]Track, error)

	// Devices lists the user's available playback devices.
	Devices(ctx context.Context) ([]Device, error)

	// Play starts playback of the given track URIs on a device.
	Play(ctx context.Context, deviceID string, uris []string) error

	// Pause pauses playback on a device.
	Pause(ctx context.Context, deviceID string) error

	// Name returns the provider name (e.g. "Spotify").
	Name() string
}

// User is a provider user profile.
type User struct {
	ID          string
	DisplayName string
	Email       string
	Country     string
	Product     string // premium, free, etc.
}

// Track is a playable song.
type Track struct {
	ID          string
	Title       string
	Artist      string
	Album       string
	AlbumArtURL string
	URI         string
	DurationMS  int
}

// Device is a playback target registered with the provider.
type Device struct {
	ID     string
	Name   string
	Type   string
	Active bool
}
