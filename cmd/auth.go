package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/enunanota/enunanota/internal/auth"
	"github.com/enunanota/enunanota/internal/server"
	"github.com/enunanota/enunanota/internal/shared"
	"github.com/urfave/cli/v3"
)

// loginTimeout bounds how long the CLI waits for the user to finish the
// browser authorization.
const loginTimeout = 2 * time.Minute

// AuthLogin performs the PKCE authorization flow for Spotify.
//
// Starts a local HTTP server, opens the browser for user authorization, and
// waits for the redirect to deliver the code.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(cmd.String("config")); err != nil {
		return err
	}

	if r.config.Credentials.Spotify.ClientID == "" {
		return fmt.Errorf("%w: spotify client_id must be set in %s", shared.ErrConfiguration, r.configPath)
	}

	authURL, err := r.session.Login()
	if err != nil {
		return fmt.Errorf("failed to start login: %w", err)
	}

	handler := server.NewCallbackHandler(r.session)
	router := server.NewBasicRouter()
	router.Handler(handler)

	serverAddr := fmt.Sprintf("%s:%d", r.config.Server.Host, r.config.Server.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("waiting for the Spotify redirect at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Spotify authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (%v timeout)...\n", loginTimeout)

	timeout := time.NewTimer(loginTimeout)
	defer timeout.Stop()

	var result server.CallbackResult

	select {
	case result = <-handler.Result():
		// Got result from callback
	case err := <-serverErrors:
		r.session.Logout()
		return fmt.Errorf("callback server error: %w", err)
	case <-timeout.C:
		r.session.Logout()
		return fmt.Errorf("%w: authorization timed out after %v", shared.ErrTimeout, loginTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if err := result.Error(); err != nil {
		return fmt.Errorf("authorization failed: %w", err)
	}

	cred := r.session.Credential()
	r.writePlainln("✓ Signed in to Spotify")
	r.writePlain("✓ Session valid until %s\n", cred.ExpiresAt.Format(time.RFC1123))

	if profile, err := r.spotify.UserProfile(ctx); err == nil && profile.DisplayName != "" {
		r.writePlain("\n¡Hola, %s! Run 'enunanota play' to start a game.\n", profile.DisplayName)
	}

	return nil
}

// AuthLogout clears the stored session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(cmd.String("config")); err != nil {
		return err
	}

	r.session.Logout()
	return r.writePlain("✓ Signed out, stored session cleared\n")
}

// AuthStatus shows the current session state.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(cmd.String("config")); err != nil {
		return err
	}

	status := r.session.Status()
	if status != auth.StatusAuthenticated {
		r.writePlain("Authentication: ✗ Not authenticated\n")
		r.writePlain("Run 'enunanota auth login' to sign in.\n")
		return nil
	}

	cred := r.session.Credential()
	r.writePlain("Authentication: ✓ Authenticated\n")
	r.writePlain("Valid until: %s\n", cred.ExpiresAt.Format(time.RFC1123))
	r.writePlain("Scopes: %s\n", cred.GrantedScopes)

	return nil
}
