package validation

import (
	"math"
	"regexp"
	"strings"

	"kviss/internal/domain"
	"kviss/internal/dto"
)

const (
	themeMaxLength  = 50
	minQuestions    = 1
	maxQuestions    = 20
	minDifficulty   = 1
	maxDifficulty   = 10
	quizIDHexLength = 24
)

var (
	// Letters, numbers, whitespace and the punctuation set - _ . , ! ? ( )
	themePattern = regexp.MustCompile(`^[\p{L}\p{N}\s\-_.,!?()]+$`)

	// The store's native key format: exactly 24 hex characters.
	quizIDPattern = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateQuizRequest checks the raw generation request and returns
// either the normalized request or every violated constraint. It is total
// and side-effect free; on failure nothing downstream runs.
func (v *Validator) ValidateGenerateQuizRequest(req dto.GenerateQuizRequest) (*domain.QuizRequest, domain.ValidationErrors) {
	var errs domain.ValidationErrors

	theme := strings.TrimSpace(req.Theme)
	switch {
	case theme == "":
		errs = append(errs, domain.NewValidationError("theme", domain.ReasonRequired,
			"Theme is required"))
	case len([]rune(theme)) > themeMaxLength:
		errs = append(errs, domain.NewValidationError("theme", domain.ReasonTooLong,
			"Theme must be at most 50 characters"))
	case !themePattern.MatchString(theme):
		errs = append(errs, domain.NewValidationError("theme", domain.ReasonInvalidCharacters,
			"Theme can only include letters, numbers, spaces, and - _ . , ! ? ( )"))
	}

	numQuestions, numErrs := validateIntField("numQuestions", req.NumQuestions,
		minQuestions, maxQuestions,
		"Number of questions must be an integer",
		"Number of questions must be between 1 and 20")
	errs = append(errs, numErrs...)

	difficulty, diffErrs := validateIntField("difficulty", req.Difficulty,
		minDifficulty, maxDifficulty,
		"Difficulty must be an integer",
		"Difficulty must be between 1 and 10")
	errs = append(errs, diffErrs...)

	if len(errs) > 0 {
		return nil, errs
	}

	return &domain.QuizRequest{
		Theme:        theme,
		NumQuestions: numQuestions,
		Difficulty:   difficulty,
	}, nil
}

// ValidateQuizID checks the retrieval key shape before any store lookup.
func (v *Validator) ValidateQuizID(id string) domain.ValidationErrors {
	if !quizIDPattern.MatchString(id) {
		return domain.ValidationErrors{
			domain.NewValidationError("id", domain.ReasonInvalidFormat,
				"Invalid quiz ID - must be a 24-character hexadecimal string"),
		}
	}
	return nil
}

// validateIntField rejects non-integral JSON numbers and values outside
// [min, max]. An absent field decodes to zero, which the range check
// rejects citing the same field.
func validateIntField(field string, value float64, min, max int, integerMsg, rangeMsg string) (int, domain.ValidationErrors) {
	var errs domain.ValidationErrors

	if value != math.Trunc(value) {
		errs = append(errs, domain.NewValidationError(field, domain.ReasonNotAnInteger, integerMsg))
		return 0, errs
	}

	n := int(value)
	if n < min || n > max {
		errs = append(errs, domain.NewValidationError(field, domain.ReasonOutOfRange, rangeMsg))
		return 0, errs
	}

	return n, nil
}
