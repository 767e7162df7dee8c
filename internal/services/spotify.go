// Spotify Web API implementation of [Service]
//
// Response types based on https://developer.spotify.com/documentation/web-api/reference/
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/enunanota/enunanota/internal/shared"
	"golang.org/x/time/rate"
)

const spotifyBaseURL = "https://api.spotify.com/v1"

// TokenFunc supplies the current bearer token for each request, so the
// client always uses the live session credential.
type TokenFunc func() string

// SpotifyImage represents an image resource.
type SpotifyImage struct {
	URL    string `json:"url"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// SpotifyUser represents a Spotify user profile.
type SpotifyUser struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"display_name"`
	Email       string         `json:"email"`
	Country     string         `json:"country"`
	Product     string         `json:"product"`
	Images      []SpotifyImage `json:"images"`
}

// SpotifyArtist represents a Spotify artist.
type SpotifyArtist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URI  string `json:"uri"`
}

// SpotifyAlbum represents a Spotify album.
type SpotifyAlbum struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Images []SpotifyImage `json:"images"`
	URI    string         `json:"uri"`
}

// SpotifyTrack represents a Spotify track.
type SpotifyTrack struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Artists    []SpotifyArtist `json:"artists"`
	Album      SpotifyAlbum    `json:"album"`
	DurationMS int             `json:"duration_ms"`
	URI        string          `json:"uri"`
}

// SpotifyDevice represents a playback device.
type SpotifyDevice struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	IsActive bool   `json:"is_active"`
}

type spotifyErrorBody struct {
	Error struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	} `json:"error"`
}

// SpotifyService implements [Service] against the Spotify Web API.
type SpotifyService struct {
	token      TokenFunc
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// NewSpotifyService creates a Spotify client. token must be non-nil;
// httpClient defaults to [http.DefaultClient].
func NewSpotifyService(token TokenFunc, httpClient *http.Client) *SpotifyService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SpotifyService{
		token:      token,
		httpClient: httpClient,
		// Spotify rate limits per rolling 30s window; 10 req/s with small
		// bursts keeps the game comfortably under it.
		limiter: rate.NewLimiter(rate.Limit(10), 20),
		baseURL: spotifyBaseURL,
	}
}

func (s *SpotifyService) Name() string {
	return "Spotify"
}

// doRequest performs an authenticated request to the Spotify API.
//
// A 401 maps to [shared.ErrTokenExpired] so the caller invalidates the
// session instead of retrying blindly.
func (s *SpotifyService) doRequest(ctx context.Context, method, endpoint string, body any, result any) error {
	token := s.token()
	if token == "" {
		return shared.ErrNotAuthenticated
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%w: spotify returned 401", shared.ErrTokenExpired)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody spotifyErrorBody
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil && errBody.Error.Message != "" {
			return fmt.Errorf("%w: status %d: %s", shared.ErrAPIRequest, resp.StatusCode, errBody.Error.Message)
		}
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// UserProfile retrieves the current authenticated user's profile.
func (s *SpotifyService) UserProfile(ctx context.Context) (*User, error) {
	var user SpotifyUser
	if err := s.doRequest(ctx, http.MethodGet, "/me", nil, &user); err != nil {
		return nil, err
	}

	return &User{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
		Country:     user.Country,
		Product:     user.Product,
	}, nil
}

// TopTracks retrieves the user's short-term top tracks.
func (s *SpotifyService) TopTracks(ctx context.Context, limit int) ([]Track, error) {
	if limit <= 0 {
		limit = 5
	}
	if limit > 50 {
		limit = 50
	}

	endpoint := fmt.Sprintf("/me/top/tracks?limit=%d&time_range=short_term", limit)

	var response struct {
		Items []SpotifyTrack `json:"items"`
	}
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(response.Items))
	for _, item := range response.Items {
		tracks = append(tracks, toTrack(item))
	}
	return tracks, nil
}

// SearchTracks searches the catalog for tracks matching query.
func (s *SpotifyService) SearchTracks(ctx context.Context, query string, limit int) ([]Track, error) {
	if query == "" {
		return nil, fmt.Errorf("%w: search query is empty", shared.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = 10
	}

	endpoint := fmt.Sprintf("/search?q=%s&type=track&limit=%d", url.QueryEscape(query), limit)

	var response struct {
		Tracks struct {
			Items []SpotifyTrack `json:"items"`
		} `json:"tracks"`
	}
	if err := s.doRequest(ctx, http.MethodGet, endpoint, nil, &response); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(response.Tracks.Items))
	for _, item := range response.Tracks.Items {
		tracks = append(tracks, toTrack(item))
	}
	return tracks, nil
}

// Devices lists the user's available playback devices.
func (s *SpotifyService) Devices(ctx context.Context) ([]Device, error) {
	var response struct {
		Devices []SpotifyDevice `json:"devices"`
	}
	if err := s.doRequest(ctx, http.MethodGet, "/me/player/devices", nil, &response); err != nil {
		return nil, err
	}

	devices := make([]Device, 0, len(response.Devices))
	for _, d := range response.Devices {
		devices = append(devices, Device{ID: d.ID, Name: d.Name, Type: d.Type, Active: d.IsActive})
	}
	return devices, nil
}

// Play starts playback of uris on the given device.
func (s *SpotifyService) Play(ctx context.Context, deviceID string, uris []string) error {
	if deviceID == "" {
		return shared.ErrNoActiveDevice
	}
	if len(uris) == 0 {
		return fmt.Errorf("%w: no track URIs to play", shared.ErrInvalidInput)
	}

	endpoint := fmt.Sprintf("/me/player/play?device_id=%s", url.QueryEscape(deviceID))
	body := map[string]any{"uris": uris}
	return s.doRequest(ctx, http.MethodPut, endpoint, body, nil)
}

// Pause pauses playback on the given device.
func (s *SpotifyService) Pause(ctx context.Context, deviceID string) error {
	endpoint := "/me/player/pause"
	if deviceID != "" {
		endpoint += "?device_id=" + url.QueryEscape(deviceID)
	}
	return s.doRequest(ctx, http.MethodPut, endpoint, nil, nil)
}

// toTrack flattens a Spotify track into the game's [Track].
func toTrack(t SpotifyTrack) Track {
	track := Track{
		ID:         t.ID,
		Title:      t.Name,
		Album:      t.Album.Name,
		URI:        t.URI,
		DurationMS: t.DurationMS,
	}
	if len(t.Artists) > 0 {
		track.Artist = t.Artists[0].Name
	}
	if len(t.Album.Images) > 0 {
		track.AlbumArtURL = t.Album.Images[0].URL
	}
	return track
}
