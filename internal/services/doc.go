// Package services implements the Spotify Web API client the game runs on.
//
// [SpotifyService] talks to api.spotify.com with the session's bearer
// token, rate limited client-side. It deliberately does not refresh or
// retry on a 401: an unauthorized response means the stored credential is
// stale, and the caller is expected to invalidate the session and prompt a
// fresh login (shared.ErrTokenExpired is the signal).
//
// Endpoints used: /me, /me/top/tracks, /search, /me/player/devices,
// /me/player/play, /me/player/pause.
package services
