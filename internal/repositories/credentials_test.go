package repositories

import (
	"database/sql"
	"testing"

	"github.com/enunanota/enunanota/internal/auth"
	"github.com/enunanota/enunanota/internal/shared"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return db
}

func TestCredentialRepository(t *testing.T) {
	t.Run("GetAbsentKeyReturnsEmpty", func(t *testing.T) {
		repo := NewCredentialRepository(newTestDB(t))
		value, err := repo.Get(auth.KeyAccessToken)
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if value != "" {
			t.Errorf("expected empty value for absent key, got %q", value)
		}
	})

	t.Run("SetGetRemove", func(t *testing.T) {
		repo := NewCredentialRepository(newTestDB(t))

		if err := repo.Set(auth.KeyCodeVerifier, "verifier1"); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		if v, _ := repo.Get(auth.KeyCodeVerifier); v != "verifier1" {
			t.Errorf("expected verifier1, got %q", v)
		}

		// Overwrite
		if err := repo.Set(auth.KeyCodeVerifier, "verifier2"); err != nil {
			t.Fatalf("Set overwrite failed: %v", err)
		}
		if v, _ := repo.Get(auth.KeyCodeVerifier); v != "verifier2" {
			t.Errorf("expected verifier2 after overwrite, got %q", v)
		}

		if err := repo.Remove(auth.KeyCodeVerifier); err != nil {
			t.Fatalf("Remove failed: %v", err)
		}
		if v, _ := repo.Get(auth.KeyCodeVerifier); v != "" {
			t.Errorf("expected key removed, got %q", v)
		}

		// Removing an absent key is not an error
		if err := repo.Remove(auth.KeyCodeVerifier); err != nil {
			t.Errorf("removing absent key should succeed, got %v", err)
		}
	})

	t.Run("SetManyWritesAllKeys", func(t *testing.T) {
		repo := NewCredentialRepository(newTestDB(t))

		values := map[string]string{
			auth.KeyAccessToken:   "tok",
			auth.KeyExpiresAt:     "1770000000000",
			auth.KeyGrantedScopes: auth.RequiredScopes,
		}
		if err := repo.SetMany(values); err != nil {
			t.Fatalf("SetMany failed: %v", err)
		}

		for key, want := range values {
			if got, _ := repo.Get(key); got != want {
				t.Errorf("key %s: expected %q, got %q", key, want, got)
			}
		}
	})

	t.Run("ClearRemovesAllGivenKeys", func(t *testing.T) {
		repo := NewCredentialRepository(newTestDB(t))

		for _, key := range auth.CredentialKeys {
			if err := repo.Set(key, "value"); err != nil {
				t.Fatalf("Set failed: %v", err)
			}
		}

		if err := repo.Clear(auth.CredentialKeys...); err != nil {
			t.Fatalf("Clear failed: %v", err)
		}

		for _, key := range auth.CredentialKeys {
			if v, _ := repo.Get(key); v != "" {
				t.Errorf("key %s should be cleared, got %q", key, v)
			}
		}
	})
}

func TestScoreRepository(t *testing.T) {
	t.Run("CreateAndRecent", func(t *testing.T) {
		repo := NewScoreRepository(newTestDB(t))

		scores := []*Score{
			{PlayerName: "Tigre", TrackID: "t1", TrackTitle: "Song One", TrackArtist: "Artist A", Attempts: 1, Reveals: 0, Points: 100, Won: true},
			{PlayerName: "Tigre", TrackID: "t2", TrackTitle: "Song Two", TrackArtist: "Artist B", Attempts: 3, Reveals: 2, Points: 0, Won: false},
		}
		for _, s := range scores {
			if err := repo.Create(s); err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			if s.ID == "" {
				t.Error("Create should assign an ID")
			}
		}

		recent, err := repo.Recent(10)
		if err != nil {
			t.Fatalf("Recent failed: %v", err)
		}
		if len(recent) != 2 {
			t.Fatalf("expected 2 scores, got %d", len(recent))
		}

		total, err := repo.TotalPoints("Tigre")
		if err != nil {
			t.Fatalf("TotalPoints failed: %v", err)
		}
		if total != 100 {
			t.Errorf("expected total 100, got %d", total)
		}
	})

	t.Run("CreateValidatesInput", func(t *testing.T) {
		repo := NewScoreRepository(newTestDB(t))
		if err := repo.Create(&Score{TrackID: "t1"}); err == nil {
			t.Error("expected error for missing player name")
		}
		if err := repo.Create(&Score{PlayerName: "Tigre"}); err == nil {
			t.Error("expected error for missing track id")
		}
	})
}
