package dto

import "kviss/internal/domain"

// GenerateQuizRequest is the raw generation request body, prior to
// validation. The numeric fields are float64 on purpose: JSON numbers are
// not integers, and the validator must be able to reject 3.5 citing the
// field instead of failing body decoding.
// @Description Request body for generating a quiz
type GenerateQuizRequest struct {
	Theme        string  `json:"theme"`
	NumQuestions float64 `json:"numQuestions"`
	Difficulty   float64 `json:"difficulty"`
}

// QuestionResponse mirrors domain.Question in API responses.
type QuestionResponse struct {
	Question      string         `json:"question"`
	Options       domain.Options `json:"options"`
	CorrectAnswer string         `json:"correctAnswer"`
}

// GenerateQuizResponse is the success envelope of POST /api/quiz/generate-quiz.
// @Description Generated quiz identifier and questions
type GenerateQuizResponse struct {
	QuizID    string             `json:"quizId"`
	Questions []QuestionResponse `json:"questions"`
}

// QuizResponse is the full persisted quiz as returned by GET /api/quiz/:id.
// @Description Persisted quiz
type QuizResponse struct {
	ID         string             `json:"id"`
	Theme      string             `json:"theme"`
	Difficulty int                `json:"difficulty"`
	Questions  []QuestionResponse `json:"questions"`
}

// ErrorResponse represents an error in the API response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse is the 400 envelope for field-level failures.
type ValidationErrorResponse struct {
	Error   string                   `json:"error"`
	Details []domain.ValidationError `json:"details"`
}

// ToQuestionResponses converts domain questions for response shaping.
func ToQuestionResponses(questions []domain.Question) []QuestionResponse {
	out := make([]QuestionResponse, 0, len(questions))
	for _, q := range questions {
		out = append(out, QuestionResponse{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		})
	}
	return out
}
