package model

import (
	"github.com/shopspring/decimal"
)

// ApplyScoreChange adjusts a book's aggregate score state for a single
// rating transition. Scores are integers 0-10 where 0 means "no score".
//
//   - old 0, new non-zero: a score is added
//   - old non-zero, new 0: a score is withdrawn
//   - both non-zero:       an existing score moves
//   - both zero or equal:  no-op
//
// The book is mutated in memory only; the caller persists it inside the same
// transaction as the rating write.
func ApplyScoreChange(book *Book, oldScore, newScore int) {
	if oldScore == newScore {
		return
	}

	switch {
	case oldScore == 0:
		book.ScoreCount++
		book.ScoreSum += newScore
	case newScore == 0:
		book.ScoreCount--
		book.ScoreSum -= oldScore
	default:
		book.ScoreSum += newScore - oldScore
	}

	book.AverageScore = averageOf(book.ScoreSum, book.ScoreCount)
}

// averageOf computes sum/count rounded half-up to one decimal place.
func averageOf(sum, count int) float64 {
	if count == 0 {
		return 0
	}

	avg := decimal.NewFromInt(int64(sum)).
		Div(decimal.NewFromInt(int64(count))).
		Round(1)
	f, _ := avg.Float64()
	return f
}
