package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal        ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput    ErrorCode = "INVALID_INPUT"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeConflict        ErrorCode = "CONFLICT"
	CodeUnauthenticated ErrorCode = "UNAUTHENTICATED"

	// Model upstream errors
	CodeUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"
	CodeUpstreamMalformed   ErrorCode = "UPSTREAM_MALFORMED"
	CodeInvalidResponse     ErrorCode = "INVALID_RESPONSE"
	CodeInvalidPrompt       ErrorCode = "INVALID_PROMPT"

	// Generated quiz structure errors
	CodeMissingFields      ErrorCode = "MISSING_FIELDS"
	CodeWrongQuestionCount ErrorCode = "WRONG_QUESTION_COUNT"
	CodeMalformedQuestion  ErrorCode = "MALFORMED_QUESTION"
	CodeAnswerNotInOptions ErrorCode = "ANSWER_NOT_IN_OPTIONS"
)

// ErrDuplicateKey is wrapped by repositories when a unique constraint rejects a write.
var ErrDuplicateKey = errors.New("duplicate key")

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Err     error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError carrying the same code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithContext attaches a detail that is safe to show to API clients.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details,omitempty"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
		Details: e.Context,
	})
}

// IsStructural reports whether the code is one of the generated quiz structure violations.
func (c ErrorCode) IsStructural() bool {
	switch c {
	case CodeMissingFields, CodeWrongQuestionCount, CodeMalformedQuestion, CodeAnswerNotInOptions:
		return true
	}
	return false
}

// CodeOf extracts the ErrorCode of err, or CodeInternal if err is not a DomainError.
func CodeOf(err error) ErrorCode {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return CodeInternal
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, err error) *DomainError {
	return NewError(CodeInternal, message, err)
}

func NewConflictError(message string, err error) *DomainError {
	return NewError(CodeConflict, message, err)
}

func NewUnauthenticatedError(message string) *DomainError {
	return NewError(CodeUnauthenticated, message, nil)
}

func NewUpstreamUnavailableError(err error) *DomainError {
	return NewError(CodeUpstreamUnavailable, "model service unavailable", err)
}

func NewUpstreamMalformedError(message string) *DomainError {
	return NewError(CodeUpstreamMalformed, message, nil)
}

func NewInvalidResponseError(message string, err error) *DomainError {
	return NewError(CodeInvalidResponse, message, err)
}

func NewInvalidPromptError(message string) *DomainError {
	return NewError(CodeInvalidPrompt, message, nil)
}

func NewMissingFieldsError(message string) *DomainError {
	return NewError(CodeMissingFields, message, nil)
}

func NewWrongQuestionCountError(want, got int) *DomainError {
	return NewError(CodeWrongQuestionCount, fmt.Sprintf("expected exactly %d questions, got %d", want, got), nil).
		WithContext("expected", want).
		WithContext("actual", got)
}

func NewMalformedQuestionError(index int, message string) *DomainError {
	return NewError(CodeMalformedQuestion, fmt.Sprintf("question %d is malformed: %s", index, message), nil).
		WithContext("index", index)
}

func NewAnswerNotInOptionsError(index int) *DomainError {
	return NewError(CodeAnswerNotInOptions, fmt.Sprintf("question %d answer does not match any option", index), nil).
		WithContext("index", index)
}
