package domain

import (
	"time"
)

// QuizRequest is a validated, normalized generation request.
// Instances are only produced by the input validator; the prompt builder
// and everything downstream may assume the ranges hold.
type QuizRequest struct {
	Theme        string
	NumQuestions int
	Difficulty   int
}

// Options holds the four answer choices of a multiple-choice question.
type Options struct {
	A string `json:"A"`
	B string `json:"B"`
	C string `json:"C"`
	D string `json:"D"`
}

// Question is a single multiple-choice question as accepted by the
// structural validator. CorrectAnswer is kept as the literal string the
// provider returned; membership against the option keys is not checked.
type Question struct {
	Question      string  `json:"question"`
	Options       Options `json:"options"`
	CorrectAnswer string  `json:"correctAnswer"`
}

// Quiz is the persisted aggregate. It is created once by the generation
// pipeline and immutable afterwards.
type Quiz struct {
	ID         string
	Theme      string
	Difficulty int
	Questions  []Question
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewQuiz creates a Quiz ready for persistence. The ID is assigned by the
// repository on save.
func NewQuiz(theme string, difficulty int, questions []Question) *Quiz {
	now := time.Now()
	return &Quiz{
		Theme:      theme,
		Difficulty: difficulty,
		Questions:  questions,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
