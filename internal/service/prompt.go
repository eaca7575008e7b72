package service

import (
	"fmt"

	"kviss/internal/domain"
)

const promptTemplate = `Create a quiz with %d multiple-choice questions on the theme of "%s" The quiz should have a difficulty of %d, on a scale of 1 to 10. The response should be formatted as a JSON string containing an array of objects. Each object should have the following structure:
{
  "question": "Question text?",
  "options": {
    "A": "Option A",
    "B": "Option B",
    "C": "Option C",
    "D": "Option D"
  },
  "correctAnswer": "A"
}`

// BuildPrompt renders the generation instruction for a validated request.
// It is a pure function: identical requests yield byte-identical prompts.
func BuildPrompt(req *domain.QuizRequest) string {
	return fmt.Sprintf(promptTemplate, req.NumQuestions, req.Theme, req.Difficulty)
}
