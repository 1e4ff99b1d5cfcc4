package domain

import (
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeValidation   ErrorCode = "VALIDATION_ERROR"

	// Quiz specific errors
	CodeQuizNotFound ErrorCode = "QUIZ_NOT_FOUND"

	// Generation pipeline errors
	CodeTopicRejected     ErrorCode = "TOPIC_REJECTED"
	CodeGenerationFailed  ErrorCode = "GENERATION_BACKEND_ERROR"
	CodeUnusableOutput    ErrorCode = "GENERATION_UNUSABLE_OUTPUT"
	CodeCredentialMissing ErrorCode = "GENERATION_CREDENTIAL_MISSING"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Cause   error     `json:"-"`
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

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewQuizNotFoundError(slug string) *DomainError {
	return NewError(CodeQuizNotFound, fmt.Sprintf("Quiz not found: %s", slug), nil)
}

// NewTopicRejectedError is returned when a topic fails the programming/technology
// gate. The message carries actionable guidance for the requester.
func NewTopicRejectedError() *DomainError {
	return NewError(CodeTopicRejected,
		"Please enter a programming or technology-related topic. "+
			"Examples: Python loops, JavaScript arrays, SQL queries, Git commands...",
		nil)
}

// NewGenerationError wraps a transport-level failure of the generation backend.
// The cause is kept for logs; the message never exposes backend internals.
func NewGenerationError(cause error) *DomainError {
	return NewError(CodeGenerationFailed,
		"The quiz generator is temporarily unavailable. Please try again.", cause)
}

// NewUnusableOutputError wraps a parse failure of the backend output. The
// specific parse error is preserved as the cause for diagnostics.
func NewUnusableOutputError(cause error) *DomainError {
	return NewError(CodeUnusableOutput,
		"The quiz generator produced unusable output. Please try again.", cause)
}

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of field validation failures.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, ve := range e {
		msgs[i] = ve.Error()
	}
	return strings.Join(msgs, "; ")
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("has invalid format: %q", value)}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("must be between %d and %d, got %d", min, max, value)}
}
