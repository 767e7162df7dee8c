package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/enunanota/enunanota/internal/game"
	"github.com/enunanota/enunanota/internal/services"
)

const hiddenField = "· · · · ·"

// playResultMsg reports the outcome of starting playback for a round.
type playResultMsg struct {
	err error
}

// Model is the bubbletea model for a game session: one round at a time,
// a guess input, and staged reveals.
type Model struct {
	ctx      context.Context
	game     *game.Game
	svc      services.Service
	deviceID string

	input    textinput.Model
	help     help.Model
	keys     keyMap
	feedback string
	playErr  error
	width    int
	height   int
	quitting bool
}

// NewModel creates the game TUI. svc and deviceID drive playback of each
// round's track; a nil svc or empty deviceID runs the game silently.
func NewModel(ctx context.Context, g *game.Game, svc services.Service, deviceID string) Model {
	input := textinput.New()
	input.Placeholder = "¿Qué canción es?"
	input.CharLimit = 120
	input.Focus()

	return Model{
		ctx:      ctx,
		game:     g,
		svc:      svc,
		deviceID: deviceID,
		input:    input,
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.playCurrent())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case playResultMsg:
		m.playErr = msg.err
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.guess):
			return m.onEnter()

		case key.Matches(msg, m.keys.hint):
			if round := m.game.Current(); round != nil && !round.Over {
				if round.RevealNext() {
					m.feedback = "Pista revelada."
				}
			}
			return m, nil

		case key.Matches(msg, m.keys.skip):
			if round := m.game.Current(); round != nil && !round.Over {
				for round.RevealNext() {
				}
				m.feedback = fmt.Sprintf("Era %q.", round.Track.Title)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// onEnter submits a guess, or advances to the next round once the current
// one is over.
func (m Model) onEnter() (tea.Model, tea.Cmd) {
	round := m.game.Current()
	if round == nil {
		m.quitting = true
		return m, tea.Quit
	}

	if round.Over {
		if next := m.game.Advance(); next == nil {
			m.quitting = true
			return m, tea.Quit
		}
		m.feedback = ""
		m.playErr = nil
		m.input.Reset()
		return m, m.playCurrent()
	}

	guess := strings.TrimSpace(m.input.Value())
	if guess == "" {
		return m, nil
	}
	m.input.Reset()

	if round.Guess(guess) {
		m.feedback = fmt.Sprintf("¡Exacto! +%d puntos", round.Points())
	} else if round.Over {
		m.feedback = fmt.Sprintf("Se acabaron los intentos. Era %q.", round.Track.Title)
	} else {
		m.feedback = "No es esa. Sigue intentando."
	}

	return m, nil
}

// playCurrent starts playback of the active round's track.
func (m Model) playCurrent() tea.Cmd {
	round := m.game.Current()
	if round == nil || m.svc == nil || m.deviceID == "" {
		return nil
	}

	ctx := m.ctx
	svc := m.svc
	deviceID := m.deviceID
	uri := round.Track.URI

	return func() tea.Msg {
		return playResultMsg{err: svc.Play(ctx, deviceID, []string{uri})}
	}
}

func (m Model) View() string {
	if m.quitting || m.game.Finished() {
		return m.summaryView()
	}

	round := m.game.Current()
	if round == nil {
		return m.summaryView()
	}

	var b strings.Builder

	b.WriteString(styles.title.Render("♪ En Una Nota"))
	b.WriteString(fmt.Sprintf("\nRonda %d/%d — %s — %d puntos\n\n",
		m.game.RoundNumber(), m.game.TotalRounds(), m.game.PlayerName, m.game.TotalPoints()))

	b.WriteString(fmt.Sprintf("  Canción: %s\n", m.renderField(round.Track.Title, round.TitleRevealed)))
	b.WriteString(fmt.Sprintf("  Artista: %s\n", m.renderField(round.Track.Artist, round.ArtistRevealed)))
	b.WriteString(fmt.Sprintf("  Álbum:   %s\n", m.renderField(round.Track.Album, round.AlbumRevealed)))
	b.WriteString(fmt.Sprintf("  Intentos restantes: %d\n\n", round.MaxAttempts-round.Attempts))

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.feedback != "" {
		if round.Won {
			b.WriteString(styles.ok.Render(m.feedback))
		} else if round.Over {
			b.WriteString(styles.err.Render(m.feedback))
		} else {
			b.WriteString(styles.warn.Render(m.feedback))
		}
		b.WriteString("\n")
	}
	if round.Over {
		b.WriteString(styles.help.Render("enter para la siguiente ronda"))
		b.WriteString("\n")
	}
	if m.playErr != nil {
		b.WriteString(styles.warn.Render(fmt.Sprintf("⚠ playback: %v", m.playErr)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m Model) renderField(value string, revealed bool) string {
	if revealed {
		return value
	}
	return styles.hidden.Render(hiddenField)
}

func (m Model) summaryView() string {
	var b strings.Builder

	b.WriteString(styles.title.Render("♪ En Una Nota — resultado"))
	b.WriteString(fmt.Sprintf("\n%s: %d puntos\n\n", m.game.PlayerName, m.game.TotalPoints()))

	for i, round := range m.game.Rounds() {
		mark := styles.err.Render("✗")
		if round.Won {
			mark = styles.ok.Render("✓")
		}
		b.WriteString(fmt.Sprintf("  %s %d. %s — %s (%d puntos)\n",
			mark, i+1, round.Track.Title, round.Track.Artist, round.Points()))
	}

	return b.String()
}

// Game exposes the underlying game so the caller can persist results
// after the program exits.
func (m Model) Game() *game.Game {
	return m.game
}
