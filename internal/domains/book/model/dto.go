package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
)

// ========================================
// REQUEST DTOs
// ========================================

// CreateBookRequest adds a catalogue entry. Score state always starts at
// zero and cannot be supplied by the client.
type CreateBookRequest struct {
	Title     string `json:"title" binding:"required"`
	Author    string `json:"author" binding:"required"`
	Publisher string `json:"publisher" binding:"required"`
	Genre     string `json:"genre" binding:"required"`
	Pages     int    `json:"pages"`
	Year      int    `json:"year"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required.Error("title is required"), validation.Length(1, 255)),
		validation.Field(&r.Author, validation.Required.Error("author is required"), validation.Length(1, 255)),
		validation.Field(&r.Publisher, validation.Required.Error("publisher is required"), validation.Length(1, 255)),
		validation.Field(&r.Genre, validation.Required.Error("genre is required"), validation.Length(1, 100)),
		validation.Field(&r.Pages, validation.Min(0).Error("pages must not be negative")),
		validation.Field(&r.Year, validation.Min(0).Error("year must not be negative")),
	)
}

// UpdateBookRequest edits editorial fields only; aggregate score fields are
// never touched by an editorial update.
type UpdateBookRequest struct {
	Title     string `json:"title" binding:"required"`
	Author    string `json:"author" binding:"required"`
	Publisher string `json:"publisher" binding:"required"`
	Genre     string `json:"genre" binding:"required"`
	Pages     int    `json:"pages"`
	Year      int    `json:"year"`
}

func (r UpdateBookRequest) Validate() error {
	return CreateBookRequest(r).Validate()
}

// ========================================
// RESPONSE DTOs
// ========================================

// BookSummary is the compact projection used by search and listing
// endpoints.
type BookSummary struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Author       string    `json:"author"`
	Year         int       `json:"year"`
	AverageScore float64   `json:"average_score"`
	ScoreCount   int       `json:"score_count"`
}

// SummaryOf projects a book onto its summary form.
func SummaryOf(book *Book) BookSummary {
	return BookSummary{
		ID:           book.ID,
		Title:        book.Title,
		Author:       book.Author,
		Year:         book.Year,
		AverageScore: book.AverageScore,
		ScoreCount:   book.ScoreCount,
	}
}
