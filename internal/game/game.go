package game

import (
	"strings"

	"github.com/enunanota/enunanota/internal/services"
)

const (
	// DefaultMaxAttempts is how many wrong guesses end a round.
	DefaultMaxAttempts = 3

	basePoints        = 100
	wrongGuessPenalty = 25
	revealPenalty     = 20
	minWinPoints      = 10
)

// Round is one track to guess. Reveal flags only ever go from hidden to
// revealed within a round; a new round starts with everything hidden.
type Round struct {
	Track       services.Track
	MaxAttempts int

	Attempts       int
	revealsUsed    int
	TitleRevealed  bool
	ArtistRevealed bool
	AlbumRevealed  bool
	Won            bool
	Over           bool
}

// NewRound starts a round for track with all reveal flags hidden.
func NewRound(track services.Track, maxAttempts int) *Round {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Round{Track: track, MaxAttempts: maxAttempts}
}

// Guess checks a guess against the track title. A correct guess wins and
// ends the round. A wrong guess consumes an attempt and auto-reveals the
// next hint; the round is lost when attempts run out.
func (r *Round) Guess(guess string) bool {
	if r.Over {
		return r.Won
	}

	if Normalize(guess) != "" && Normalize(guess) == Normalize(r.Track.Title) {
		r.Won = true
		r.Over = true
		r.TitleRevealed = true
		r.ArtistRevealed = true
		r.AlbumRevealed = true
		return true
	}

	r.Attempts++
	switch r.Attempts {
	case 1:
		if !r.ArtistRevealed {
			r.ArtistRevealed = true
			r.revealsUsed++
		}
	case 2:
		if !r.AlbumRevealed {
			r.AlbumRevealed = true
			r.revealsUsed++
		}
	}

	if r.Attempts >= r.MaxAttempts {
		r.TitleRevealed = true
		r.ArtistRevealed = true
		r.AlbumRevealed = true
		r.Over = true
	}

	return false
}

// RevealNext flips the next hidden hint: artist, then album, then the
// title itself. Revealing the title forfeits the round. Returns false when
// nothing is left to reveal.
func (r *Round) RevealNext() bool {
	switch {
	case r.Over:
		return false
	case !r.ArtistRevealed:
		r.ArtistRevealed = true
	case !r.AlbumRevealed:
		r.AlbumRevealed = true
	case !r.TitleRevealed:
		r.TitleRevealed = true
		r.Over = true
	default:
		return false
	}
	r.revealsUsed++
	return true
}

// RevealsUsed counts hints consumed while the round was live. The blanket
// reveal that accompanies the end of a round does not count.
func (r *Round) RevealsUsed() int {
	return r.revealsUsed
}

// Points scores the round: zero unless won, otherwise the base minus
// penalties for wrong guesses and hints, floored at a small consolation.
func (r *Round) Points() int {
	if !r.Won {
		return 0
	}
	points := basePoints - r.Attempts*wrongGuessPenalty - r.RevealsUsed()*revealPenalty
	if points < minWinPoints {
		points = minWinPoints
	}
	return points
}

// Game runs consecutive rounds over a track list for one player.
type Game struct {
	PlayerName string

	rounds  []*Round
	current int
}

// NewGame creates a game over tracks. An empty playerName gets a random
// animal name, the way the original assigned players.
func NewGame(playerName string, tracks []services.Track, maxAttempts int) *Game {
	if playerName == "" {
		playerName = RandomPlayerName()
	}

	rounds := make([]*Round, 0, len(tracks))
	for _, track := range tracks {
		rounds = append(rounds, NewRound(track, maxAttempts))
	}

	return &Game{PlayerName: playerName, rounds: rounds}
}

// Current returns the active round, nil when the game is finished or empty.
func (g *Game) Current() *Round {
	if g.current >= len(g.rounds) {
		return nil
	}
	return g.rounds[g.current]
}

// Advance moves to the next track. The returned round starts with every
// reveal flag hidden regardless of what the previous round exposed.
func (g *Game) Advance() *Round {
	if g.current < len(g.rounds) {
		g.current++
	}
	return g.Current()
}

// Finished reports whether every round has been played or skipped past.
func (g *Game) Finished() bool {
	return g.current >= len(g.rounds)
}

// RoundNumber is the 1-based index of the active round.
func (g *Game) RoundNumber() int {
	return g.current + 1
}

// TotalRounds is the number of tracks in the game.
func (g *Game) TotalRounds() int {
	return len(g.rounds)
}

// Rounds returns every round, played or not.
func (g *Game) Rounds() []*Round {
	return g.rounds
}

// TotalPoints sums the points of all finished rounds.
func (g *Game) TotalPoints() int {
	total := 0
	for _, r := range g.rounds {
		total += r.Points()
	}
	return total
}

var accentFolds = strings.NewReplacer(
	"á", "a", "é", "e", "í", "i", "ó", "o", "ú", "u", "ü", "u", "ñ", "n",
	"à", "a", "è", "e", "ì", "i", "ò", "o", "ù", "u",
)

// Normalize prepares a string for guess comparison: lowercase, accents
// folded, parenthetical and dash suffixes dropped (remaster tags and the
// like), punctuation stripped, whitespace collapsed.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = accentFolds.Replace(s)

	if idx := strings.Index(s, " - "); idx > 0 {
		s = s[:idx]
	}
	if idx := strings.IndexAny(s, "(["); idx > 0 {
		s = s[:idx]
	}

	var b strings.Builder
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == ' ':
			b.WriteRune(c)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
