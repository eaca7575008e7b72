package domain

import (
	"context"
)

// QuizRepository is the port for quiz persistence.
type QuizRepository interface {
	// SaveQuiz persists a new quiz as a single atomic insert and fills in
	// quiz.ID with the store-assigned identifier. On failure no identifier
	// is assigned.
	SaveQuiz(ctx context.Context, quiz *Quiz) error

	// GetQuizByID returns the stored quiz, or (nil, nil) when no quiz with
	// that identifier exists. A well-formed unknown identifier is not an
	// error.
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)
}
