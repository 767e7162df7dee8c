package shared_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/enunanota/enunanota/internal/shared"
	tu "github.com/enunanota/enunanota/internal/testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := shared.DefaultConfig()

		if config.Database.Path != "./enunanota.db" {
			t.Errorf("expected default database path, got %s", config.Database.Path)
		}
		if config.Server.Host != "127.0.0.1" {
			t.Errorf("expected default host, got %s", config.Server.Host)
		}
		if config.Server.Port != 3000 {
			t.Errorf("expected default port 3000, got %d", config.Server.Port)
		}
		if config.Game.TrackLimit != 5 {
			t.Errorf("expected default track limit 5, got %d", config.Game.TrackLimit)
		}
		if config.Game.MaxAttempts != 3 {
			t.Errorf("expected default max attempts 3, got %d", config.Game.MaxAttempts)
		}
		if !strings.HasSuffix(config.Credentials.Spotify.RedirectURI, "/callback") {
			t.Errorf("expected redirect URI ending in /callback, got %s", config.Credentials.Spotify.RedirectURI)
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Run("parses a valid file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			content := `
[credentials.spotify]
client_id = "abc123"
redirect_uri = "http://127.0.0.1:9000/callback"

[database]
path = "/tmp/test.db"

[server]
host = "0.0.0.0"
port = 9000

[game]
track_limit = 7
max_attempts = 2
player_name = "Ana"
`
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			config, err := shared.LoadConfig(path)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if config.Credentials.Spotify.ClientID != "abc123" {
				t.Errorf("expected client_id abc123, got %s", config.Credentials.Spotify.ClientID)
			}
			if config.Server.Port != 9000 {
				t.Errorf("expected port 9000, got %d", config.Server.Port)
			}
			if config.Game.TrackLimit != 7 {
				t.Errorf("expected track limit 7, got %d", config.Game.TrackLimit)
			}
			if config.Game.PlayerName != "Ana" {
				t.Errorf("expected player name Ana, got %s", config.Game.PlayerName)
			}
		})

		t.Run("missing file returns error", func(t *testing.T) {
			_, err := shared.LoadConfig("/nonexistent/config.toml")
			if err == nil {
				t.Fatal("expected error for missing file")
			}
		})

		t.Run("invalid TOML returns error", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
				t.Fatalf("failed to write test config: %v", err)
			}

			_, err := shared.LoadConfig(path)
			if err == nil {
				t.Fatal("expected error for invalid TOML")
			}
		})
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		t.Run("writes the template", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")

			if err := shared.CreateConfigFile(path); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			tu.AssertFileExists(t, path)

			content := tu.MustReadFile(t, path)
			if !strings.Contains(content, "[credentials.spotify]") {
				t.Errorf("expected spotify credentials section in template, got %s", content)
			}

			config, err := shared.LoadConfig(path)
			if err != nil {
				t.Fatalf("created config does not parse: %v", err)
			}
			if config.Server.Port != 3000 {
				t.Errorf("expected template port 3000, got %d", config.Server.Port)
			}
		})

		t.Run("refuses to overwrite", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := shared.CreateConfigFile(path); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			err := shared.CreateConfigFile(path)
			if err == nil {
				t.Fatal("expected error for existing file")
			}
			if !strings.Contains(err.Error(), "already exists") {
				t.Errorf("expected already-exists error, got %v", err)
			}
		})
	})
}
