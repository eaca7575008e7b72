package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"kviss/internal/domain"
)

// extractJSONArray takes the substring between the first '[' and the last
// ']' of raw, inclusive, to strip any prose the provider wrapped around the
// payload. If either bracket is missing the input passes through unchanged.
//
// This is a best-effort heuristic, not a parser: there is no bracket
// balancing, so a response with multiple independent bracketed spans can
// extract the wrong substring. The structural validator catches the damage.
func extractJSONArray(raw string) string {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start == -1 || end == -1 || end < start {
		return raw
	}
	return raw[start : end+1]
}

// parseQuestions parses the candidate text as generic JSON and checks it
// against the question contract: a sequence of objects, each with a
// non-empty question, options A-D each a non-empty string, and a non-empty
// correctAnswer. Membership of correctAnswer among the option keys is
// deliberately not checked, and neither is the element count.
// All-or-nothing: one bad element rejects the whole batch.
func parseQuestions(candidate string) ([]domain.Question, error) {
	var parsed interface{}
	if err := json.Unmarshal([]byte(candidate), &parsed); err != nil {
		return nil, domain.NewInvalidProviderOutputError(err)
	}

	items, ok := parsed.([]interface{})
	if !ok {
		return nil, domain.NewInvalidQuestionStructureError(
			fmt.Errorf("expected a JSON array, got %T", parsed))
	}

	questions := make([]domain.Question, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, domain.NewInvalidQuestionStructureError(
				fmt.Errorf("element %d is not an object", i))
		}

		question, ok := obj["question"].(string)
		if !ok || question == "" {
			return nil, domain.NewInvalidQuestionStructureError(
				fmt.Errorf("element %d has no question text", i))
		}

		rawOptions, ok := obj["options"].(map[string]interface{})
		if !ok || len(rawOptions) == 0 {
			return nil, domain.NewInvalidQuestionStructureError(
				fmt.Errorf("element %d has no options", i))
		}
		options, err := parseOptions(rawOptions)
		if err != nil {
			return nil, domain.NewInvalidQuestionStructureError(
				fmt.Errorf("element %d: %w", i, err))
		}

		correctAnswer, ok := obj["correctAnswer"].(string)
		if !ok || correctAnswer == "" {
			return nil, domain.NewInvalidQuestionStructureError(
				fmt.Errorf("element %d has no correctAnswer", i))
		}

		questions = append(questions, domain.Question{
			Question:      question,
			Options:       options,
			CorrectAnswer: correctAnswer,
		})
	}

	return questions, nil
}

func parseOptions(raw map[string]interface{}) (domain.Options, error) {
	var options domain.Options
	for key, dst := range map[string]*string{
		"A": &options.A,
		"B": &options.B,
		"C": &options.C,
		"D": &options.D,
	} {
		value, ok := raw[key].(string)
		if !ok || value == "" {
			return domain.Options{}, fmt.Errorf("option %s is missing or empty", key)
		}
		*dst = value
	}
	return options, nil
}
