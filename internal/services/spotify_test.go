package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/enunanota/enunanota/internal/shared"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *SpotifyService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc := NewSpotifyService(func() string { return "tok" }, srv.Client())
	svc.baseURL = srv.URL
	return svc
}

func TestSpotifyService(t *testing.T) {
	t.Run("TopTracks", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/me/top/tracks" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if got := r.URL.Query().Get("time_range"); got != "short_term" {
				t.Errorf("expected time_range short_term, got %s", got)
			}
			if got := r.Header.Get("Authorization"); got != "Bearer tok" {
				t.Errorf("expected bearer header, got %q", got)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{
						"id":      "t1",
						"name":    "Song One",
						"uri":     "spotify:track:t1",
						"artists": []map[string]any{{"name": "Artist A"}},
						"album": map[string]any{
							"name":   "Album A",
							"images": []map[string]any{{"url": "http://img/a.jpg"}},
						},
						"duration_ms": 180000,
					},
				},
			})
		})

		tracks, err := svc.TopTracks(context.Background(), 5)
		if err != nil {
			t.Fatalf("TopTracks failed: %v", err)
		}
		if len(tracks) != 1 {
			t.Fatalf("expected 1 track, got %d", len(tracks))
		}

		track := tracks[0]
		if track.Title != "Song One" || track.Artist != "Artist A" || track.Album != "Album A" {
			t.Errorf("unexpected track mapping: %+v", track)
		}
		if track.AlbumArtURL != "http://img/a.jpg" {
			t.Errorf("expected album art URL, got %s", track.AlbumArtURL)
		}
	})

	t.Run("SearchTracks", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			if got := r.URL.Query().Get("q"); got != "gato negro" {
				t.Errorf("expected query gato negro, got %q", got)
			}
			if got := r.URL.Query().Get("type"); got != "track" {
				t.Errorf("expected type track, got %q", got)
			}
			json.NewEncoder(w).Encode(map[string]any{
				"tracks": map[string]any{
					"items": []map[string]any{
						{"id": "t2", "name": "Gato Negro", "artists": []map[string]any{{"name": "B"}}},
					},
				},
			})
		})

		tracks, err := svc.SearchTracks(context.Background(), "gato negro", 10)
		if err != nil {
			t.Fatalf("SearchTracks failed: %v", err)
		}
		if len(tracks) != 1 || tracks[0].ID != "t2" {
			t.Errorf("unexpected search result: %+v", tracks)
		}
	})

	t.Run("UnauthorizedMapsToTokenExpired", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := svc.TopTracks(context.Background(), 5)
		if !errors.Is(err, shared.ErrTokenExpired) {
			t.Errorf("expected ErrTokenExpired on 401, got %v", err)
		}
	})

	t.Run("APIErrorCarriesMessage", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":{"status":404,"message":"Device not found"}}`))
		})

		err := svc.Play(context.Background(), "dev1", []string{"spotify:track:t1"})
		if !errors.Is(err, shared.ErrAPIRequest) {
			t.Fatalf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("PlayRequiresDevice", func(t *testing.T) {
		svc := NewSpotifyService(func() string { return "tok" }, nil)
		if err := svc.Play(context.Background(), "", []string{"uri"}); !errors.Is(err, shared.ErrNoActiveDevice) {
			t.Errorf("expected ErrNoActiveDevice, got %v", err)
		}
	})

	t.Run("EmptyTokenIsNotAuthenticated", func(t *testing.T) {
		svc := NewSpotifyService(func() string { return "" }, nil)
		if _, err := svc.TopTracks(context.Background(), 5); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("PlaySendsURIs", func(t *testing.T) {
		svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPut {
				t.Errorf("expected PUT, got %s", r.Method)
			}
			if got := r.URL.Query().Get("device_id"); got != "dev1" {
				t.Errorf("expected device_id dev1, got %q", got)
			}
			var body struct {
				URIs []string `json:"uris"`
			}
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if len(body.URIs) != 1 || body.URIs[0] != "spotify:track:t1" {
				t.Errorf("unexpected uris: %v", body.URIs)
			}
			w.WriteHeader(http.StatusNoContent)
		})

		if err := svc.Play(context.Background(), "dev1", []string{"spotify:track:t1"}); err != nil {
			t.Fatalf("Play failed: %v", err)
		}
	})
}
