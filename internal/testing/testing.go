// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/enunanota/enunanota/internal/auth"
	"github.com/enunanota/enunanota/internal/services"
)

// MockService is a test double for [services.Service].
type MockService struct {
	Tracks    []services.Track
	DeviceSet []services.Device
	PlayErr   error
	PlayCalls int
}

func (m *MockService) UserProfile(ctx context.Context) (*services.User, error) {
	return &services.User{ID: "user1", DisplayName: "Test User", Product: "premium"}, nil
}

func (m *MockService) TopTracks(ctx context.Context, limit int) ([]services.Track, error) {
	return m.Tracks, nil
}

func (m *MockService) SearchTracks(ctx context.Context, query string, limit int) ([]services.Track, error) {
	return m.Tracks, nil
}

func (m *MockService) Devices(ctx context.Context) ([]services.Device, error) {
	return m.DeviceSet, nil
}

func (m *MockService) Play(ctx context.Context, deviceID string, uris []string) error {
	m.PlayCalls++
	return m.PlayErr
}

func (m *MockService) Pause(ctx context.Context, deviceID string) error {
	return nil
}

func (m *MockService) Name() string { return "mock" }

// MemoryStore is an in-memory [auth.Store] for tests that do not need
// SQLite durability.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStore) SetMany(values map[string]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k, v := range values {
		m.values[k] = v
	}
	return nil
}

func (m *MemoryStore) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *MemoryStore) Clear(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

var _ auth.Store = (*MemoryStore)(nil)

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
