package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/enunanota/enunanota/internal/auth"
	"github.com/enunanota/enunanota/internal/repositories"
	"github.com/enunanota/enunanota/internal/services"
	"github.com/enunanota/enunanota/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer

	db      *sql.DB
	store   auth.Store
	session *auth.Session
	spotify services.Service
	scores  *repositories.ScoreRepository
}

// RunnerOpts contains configuration options for creating a Runner. Fields
// left nil are built lazily by bootstrap; tests inject fakes here.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
	Store      auth.Store
	Session    *auth.Session
	Spotify    services.Service
	Scores     *repositories.ScoreRepository
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		store:      opts.Store,
		session:    opts.Session,
		spotify:    opts.Spotify,
		scores:     opts.Scores,
	}
}

// bootstrap loads configuration and wires storage, the session, and the
// Spotify client. Every command action calls it first; dependencies that
// were injected through RunnerOpts are kept as-is.
func (r *Runner) bootstrap(configPath string) error {
	if configPath == "" {
		configPath = r.configPath
	}
	if configPath == "" {
		configPath = "config.toml"
	}
	r.configPath = configPath

	if r.config == nil {
		if _, err := os.Stat(configPath); err == nil {
			config, err := shared.LoadConfig(configPath)
			if err != nil {
				r.logger.Warnf("failed to load config, using defaults %v", err)
				config = shared.DefaultConfig()
			}
			r.config = config
		} else {
			r.config = shared.DefaultConfig()
		}
	}

	if r.store == nil {
		db, err := shared.NewDatabase(r.config.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

		if err := shared.RunMigrations(db); err != nil {
			db.Close()
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		r.db = db
		r.store = repositories.NewCredentialRepository(db)
	}

	if r.scores == nil && r.db != nil {
		r.scores = repositories.NewScoreRepository(r.db)
	}

	if r.session == nil {
		spotify := r.config.Credentials.Spotify
		r.session = auth.NewSession(auth.SessionOpts{
			Store:       r.store,
			Exchanger:   auth.NewOAuthExchanger(spotify.ClientID, spotify.RedirectURI, "", r.httpClient),
			ClientID:    spotify.ClientID,
			RedirectURI: spotify.RedirectURI,
			Logger:      r.logger,
		})
		if err := r.session.Initialize(); err != nil {
			r.logger.Warn("failed to restore session", "error", err)
		}
	}

	if r.spotify == nil {
		r.spotify = services.NewSpotifyService(r.session.AccessToken, r.httpClient)
	}

	return nil
}

// Close releases the database handle if bootstrap opened one.
func (r *Runner) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

// requireAuth guards API commands behind a live credential.
func (r *Runner) requireAuth() error {
	if r.session != nil && r.session.IsTokenValid() {
		return nil
	}
	return fmt.Errorf("%w: run 'enunanota auth login' first", shared.ErrNotAuthenticated)
}

// apiError translates mid-command API failures. An expired token logs the
// session out so the next command starts from a clean state.
func (r *Runner) apiError(err error) error {
	if errors.Is(err, shared.ErrTokenExpired) {
		r.session.Logout()
		return fmt.Errorf("%w: session expired, run 'enunanota auth login' again", shared.ErrNotAuthenticated)
	}
	return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, tracksCommand, searchCommand, playCommand, scoresCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
