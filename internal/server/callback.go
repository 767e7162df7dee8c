package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
)

// CodeConsumer handles the authorization code (or provider error) carried
// by the OAuth redirect. Implemented by auth.Session.
type CodeConsumer interface {
	HandleCallback(ctx context.Context, code string) error
	HandleCallbackError(providerErr, description string) error
}

// CallbackResult is delivered once per login attempt.
type CallbackResult struct {
	err error
}

func (c CallbackResult) Error() error {
	return c.err
}

// CallbackHandler serves the OAuth redirect endpoint. It forwards the
// authorization code to the session exactly once; later hits for the same
// login attempt are rejected so a replayed redirect cannot re-enter the
// exchange.
type CallbackHandler struct {
	consumer   CodeConsumer
	resultChan chan CallbackResult
	once       sync.Once
	mu         sync.Mutex
	hit        bool
}

// NewCallbackHandler creates a handler that feeds codes to consumer.
func NewCallbackHandler(consumer CodeConsumer) *CallbackHandler {
	return &CallbackHandler{
		consumer:   consumer,
		resultChan: make(chan CallbackResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *CallbackHandler) Routes() []string {
	return []string{"/callback"}
}

// ServeHTTP processes the redirect request.
//
// A provider error parameter (e.g. the user denied consent) is an explicit
// failure, not an ignored case.
func (h *CallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	if h.hit {
		h.mu.Unlock()
		http.Error(w, "Callback already processed", http.StatusBadRequest)
		return
	}
	h.hit = true
	h.mu.Unlock()

	query := r.URL.Query()

	if errParam := query.Get("error"); errParam != "" {
		err := h.consumer.HandleCallbackError(errParam, query.Get("error_description"))
		h.send(CallbackResult{err: err})
		h.renderFailure(w, "Spotify did not authorize the application.")
		return
	}

	code := query.Get("code")
	if code == "" {
		err := h.consumer.HandleCallbackError("invalid_callback", "redirect carried no authorization code")
		h.send(CallbackResult{err: err})
		h.renderFailure(w, "The redirect carried no authorization code.")
		return
	}

	if err := h.consumer.HandleCallback(r.Context(), code); err != nil {
		h.send(CallbackResult{err: err})
		h.renderFailure(w, "Signing in failed. Return to the terminal and try again.")
		return
	}

	h.send(CallbackResult{})
	h.renderSuccess(w)
}

// Result returns the channel carrying the single outcome of this login
// attempt. The channel is closed after the result is delivered.
func (h *CallbackHandler) Result() <-chan CallbackResult {
	return h.resultChan
}

func (h *CallbackHandler) send(result CallbackResult) {
	h.once.Do(func() {
		h.resultChan <- result
		close(h.resultChan)
	})
}

func (h *CallbackHandler) renderSuccess(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, callbackPage("#1DB954", "✓ ¡Listo!", "You are signed in. Close this window and return to the terminal."))
}

func (h *CallbackHandler) renderFailure(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprint(w, callbackPage("#E22134", "✗ Sign-in failed", message))
}

func callbackPage(accent, title, message string) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <title>En Una Nota</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
               display: flex; align-items: center; justify-content: center; height: 100vh;
               margin: 0; background: #f5f5f5; }
        .container { text-align: center; background: white; padding: 2rem;
                     border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
        h1 { color: %s; margin: 0 0 1rem 0; }
        p { color: #666; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <h1>%s</h1>
        <p>%s</p>
    </div>
</body>
</html>
`, accent, title, message)
}
