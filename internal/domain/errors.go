package domain

import (
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal   ErrorCode = "INTERNAL_ERROR"
	CodeValidation ErrorCode = "VALIDATION_FAILED"
	CodeNotFound   ErrorCode = "NOT_FOUND"

	// Pipeline specific errors
	CodeGenerationUnavailable      ErrorCode = "GENERATION_UNAVAILABLE"
	CodeUnexpectedProviderResponse ErrorCode = "UNEXPECTED_PROVIDER_RESPONSE"
	CodeInvalidProviderOutput      ErrorCode = "INVALID_PROVIDER_OUTPUT"
	CodeInvalidQuestionStructure   ErrorCode = "INVALID_QUESTION_STRUCTURE"
	CodePersistence                ErrorCode = "PERSISTENCE_ERROR"
)

// Validation reason codes, machine-checkable per violated constraint.
const (
	ReasonRequired          = "REQUIRED"
	ReasonTooLong           = "TOO_LONG"
	ReasonInvalidCharacters = "INVALID_CHARACTERS"
	ReasonNotAnInteger      = "NOT_AN_INTEGER"
	ReasonOutOfRange        = "OUT_OF_RANGE"
	ReasonInvalidFormat     = "INVALID_FORMAT"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ValidationError describes a single violated constraint on a request field.
type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationErrors aggregates every violated constraint of one request.
// It implements error so the fiber error handler can render it as the
// 400 validation envelope.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, ve := range e {
		msgs = append(msgs, fmt.Sprintf("%s: %s", ve.Field, ve.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func NewValidationError(field, code, message string) ValidationError {
	return ValidationError{Field: field, Code: code, Message: message}
}

// Helper constructors for the pipeline error taxonomy

func NewGenerationUnavailableError(cause error) *DomainError {
	return NewError(CodeGenerationUnavailable, "Error during quiz generation", cause)
}

func NewUnexpectedProviderResponseError(cause error) *DomainError {
	return NewError(CodeUnexpectedProviderResponse, "Unexpected response from OpenAI", cause)
}

func NewInvalidProviderOutputError(cause error) *DomainError {
	return NewError(CodeInvalidProviderOutput, "Failed to parse the response from GPT as JSON.", cause)
}

func NewInvalidQuestionStructureError(cause error) *DomainError {
	return NewError(CodeInvalidQuestionStructure, "Invalid questions structure", cause)
}

func NewPersistenceError(cause error) *DomainError {
	return NewError(CodePersistence, "Failed to save quiz", cause)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}
