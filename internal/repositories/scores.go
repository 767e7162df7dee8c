package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/enunanota/enunanota/internal/shared"
)

// Score is one finished game round.
type Score struct {
	ID          string
	PlayerName  string
	TrackID     string
	TrackTitle  string
	TrackArtist string
	Attempts    int
	Reveals     int
	Points      int
	Won         bool
	PlayedAt    time.Time
}

// ScoreRepository persists game results in the scores table.
type ScoreRepository struct {
	db *sql.DB
}

// NewScoreRepository creates a new [ScoreRepository] with the given database connection.
func NewScoreRepository(db *sql.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Create inserts a new score with a generated ID and timestamp.
func (r *ScoreRepository) Create(score *Score) error {
	if score.PlayerName == "" {
		return fmt.Errorf("%w: player name is required", shared.ErrInvalidInput)
	}
	if score.TrackID == "" {
		return fmt.Errorf("%w: track id is required", shared.ErrInvalidInput)
	}

	score.ID = shared.GenerateID()
	if score.PlayedAt.IsZero() {
		score.PlayedAt = time.Now()
	}

	query := `
		INSERT INTO scores (id, player_name, track_id, track_title, track_artist, attempts, reveals, points, won, played_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, score.ID, score.PlayerName, score.TrackID, score.TrackTitle,
		score.TrackArtist, score.Attempts, score.Reveals, score.Points, score.Won, score.PlayedAt)
	if err != nil {
		return fmt.Errorf("failed to insert score: %w", err)
	}

	return nil
}

// Recent retrieves the most recent scores, newest first.
func (r *ScoreRepository) Recent(limit int) ([]Score, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, player_name, track_id, track_title, track_artist, attempts, reveals, points, won, played_at
		FROM scores
		ORDER BY played_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	var scores []Score
	for rows.Next() {
		var s Score
		if err := rows.Scan(&s.ID, &s.PlayerName, &s.TrackID, &s.TrackTitle, &s.TrackArtist,
			&s.Attempts, &s.Reveals, &s.Points, &s.Won, &s.PlayedAt); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		scores = append(scores, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return scores, nil
}

// TotalPoints sums every recorded point for a player.
func (r *ScoreRepository) TotalPoints(playerName string) (int, error) {
	var total int
	err := r.db.QueryRow("SELECT COALESCE(SUM(points), 0) FROM scores WHERE player_name = ?", playerName).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum points: %w", err)
	}
	return total, nil
}
