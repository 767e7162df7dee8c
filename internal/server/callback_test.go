package server

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// recordingConsumer counts calls and returns configured errors.
type recordingConsumer struct {
	mu            sync.Mutex
	codes         []string
	providerErrs  []string
	callbackErr   error
	callbackCalls int
}

func (r *recordingConsumer) HandleCallback(ctx context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.callbackCalls++
	r.codes = append(r.codes, code)
	return r.callbackErr
}

func (r *recordingConsumer) HandleCallbackError(providerErr, description string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providerErrs = append(r.providerErrs, providerErr)
	return fmt.Errorf("authorization failed: %s - %s", providerErr, description)
}

func TestCallbackHandler(t *testing.T) {
	t.Run("SuccessfulCallback", func(t *testing.T) {
		consumer := &recordingConsumer{}
		handler := NewCallbackHandler(consumer)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?code=code1", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if len(consumer.codes) != 1 || consumer.codes[0] != "code1" {
			t.Errorf("expected code1 forwarded, got %v", consumer.codes)
		}

		result := <-handler.Result()
		if result.Error() != nil {
			t.Errorf("expected nil result error, got %v", result.Error())
		}
	})

	t.Run("ProviderErrorParam", func(t *testing.T) {
		consumer := &recordingConsumer{}
		handler := NewCallbackHandler(consumer)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet,
			"/callback?error=access_denied&error_description=User+denied", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		if consumer.callbackCalls != 0 {
			t.Error("provider error must not reach HandleCallback")
		}
		if len(consumer.providerErrs) != 1 || consumer.providerErrs[0] != "access_denied" {
			t.Errorf("expected access_denied forwarded, got %v", consumer.providerErrs)
		}

		result := <-handler.Result()
		if result.Error() == nil {
			t.Error("expected error result for denied consent")
		}
	})

	t.Run("MissingCode", func(t *testing.T) {
		consumer := &recordingConsumer{}
		handler := NewCallbackHandler(consumer)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback", nil))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
		if consumer.callbackCalls != 0 {
			t.Error("missing code must not reach HandleCallback")
		}
	})

	t.Run("SecondHitRejected", func(t *testing.T) {
		consumer := &recordingConsumer{}
		handler := NewCallbackHandler(consumer)

		first := httptest.NewRecorder()
		handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/callback?code=code1", nil))

		second := httptest.NewRecorder()
		handler.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/callback?code=code1", nil))

		if second.Code != http.StatusBadRequest {
			t.Errorf("expected 400 for replayed callback, got %d", second.Code)
		}
		if consumer.callbackCalls != 1 {
			t.Errorf("expected exactly one HandleCallback call, got %d", consumer.callbackCalls)
		}
	})

	t.Run("RouterDispatch", func(t *testing.T) {
		consumer := &recordingConsumer{}
		handler := NewCallbackHandler(consumer)

		router := NewBasicRouter()
		router.Handler(handler)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/callback?code=code1", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200 through router, got %d", rec.Code)
		}
	})
}
