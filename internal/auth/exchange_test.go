package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/enunanota/enunanota/internal/shared"
)

func TestOAuthExchanger(t *testing.T) {
	t.Run("SuccessfulExchange", func(t *testing.T) {
		var gotForm url.Values
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			gotForm, _ = url.ParseQuery(string(body))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"access_token":"tok","token_type":"Bearer","expires_in":3600,"scope":"user-top-read"}`))
		}))
		defer srv.Close()

		exchanger := NewOAuthExchanger("client123", "http://localhost:3000/callback", srv.URL, srv.Client())
		result, err := exchanger.Exchange(context.Background(), "code1", "verifier1")
		if err != nil {
			t.Fatalf("Exchange failed: %v", err)
		}

		if result.AccessToken != "tok" {
			t.Errorf("expected access token tok, got %s", result.AccessToken)
		}
		if result.ExpiresIn != 3600 {
			t.Errorf("expected expires_in 3600, got %d", result.ExpiresIn)
		}
		if result.Scope != "user-top-read" {
			t.Errorf("expected scope user-top-read, got %s", result.Scope)
		}

		for key, want := range map[string]string{
			"grant_type":    "authorization_code",
			"code":          "code1",
			"code_verifier": "verifier1",
			"redirect_uri":  "http://localhost:3000/callback",
			"client_id":     "client123",
		} {
			if got := gotForm.Get(key); got != want {
				t.Errorf("form field %s: expected %q, got %q", key, want, got)
			}
		}
	})

	t.Run("ProviderRejection", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid authorization code"}`))
		}))
		defer srv.Close()

		exchanger := NewOAuthExchanger("client123", "http://localhost:3000/callback", srv.URL, srv.Client())
		_, err := exchanger.Exchange(context.Background(), "bad", "verifier1")
		if !errors.Is(err, shared.ErrTokenExchange) {
			t.Fatalf("expected ErrTokenExchange, got %v", err)
		}
		if got := err.Error(); !strings.Contains(got, "invalid_grant") || !strings.Contains(got, "Invalid authorization code") {
			t.Errorf("expected provider detail in error, got %q", got)
		}
	})

	t.Run("Timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		exchanger := NewOAuthExchanger("client123", "http://localhost:3000/callback", srv.URL, srv.Client())
		exchanger.timeout = 20 * time.Millisecond

		_, err := exchanger.Exchange(context.Background(), "code1", "verifier1")
		if !errors.Is(err, shared.ErrTimeout) {
			t.Errorf("expected ErrTimeout, got %v", err)
		}
	})

	t.Run("NetworkFailure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close() // connection refused from here on

		exchanger := NewOAuthExchanger("client123", "http://localhost:3000/callback", srv.URL, nil)
		_, err := exchanger.Exchange(context.Background(), "code1", "verifier1")
		if !errors.Is(err, shared.ErrNetwork) {
			t.Errorf("expected ErrNetwork, got %v", err)
		}
	})
}
