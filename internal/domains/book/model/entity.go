package model

import (
	"time"

	"github.com/google/uuid"
)

// Book represents a catalogue entry. Score fields are only ever mutated
// through ApplyScoreChange; editorial updates must not touch them.
type Book struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Publisher string    `json:"publisher"`
	Genre     string    `json:"genre"`
	Pages     int       `json:"pages"`
	Year      int       `json:"year"`

	// Aggregate score state
	AverageScore float64 `json:"average_score"` // one-decimal rolling average
	ScoreCount   int     `json:"score_count"`
	ScoreSum     int     `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
