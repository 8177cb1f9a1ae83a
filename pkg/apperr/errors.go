package apperr

import (
	"errors"
	"fmt"
)

const (
	CodeInvalidInput      = "INVALID_INPUT"
	CodeModelUnavailable  = "MODEL_UNAVAILABLE"
	CodePredictionFailure = "PREDICTION_FAILURE"
	CodeNotFound          = "NOT_FOUND"
	CodeInternal          = "INTERNAL"
)

// Sentinels for errors.Is; every *Error with the same code matches its sentinel.
var (
	ErrInvalidInput      = &Error{Code: CodeInvalidInput, Message: "invalid input"}
	ErrModelUnavailable  = &Error{Code: CodeModelUnavailable, Message: "prediction model unavailable"}
	ErrPredictionFailure = &Error{Code: CodePredictionFailure, Message: "prediction failed"}
	ErrNotFound          = &Error{Code: CodeNotFound, Message: "not found"}
)

// Error is a coded application error.
type Error struct {
	Code    string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

func Newf(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(code string, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: message, Cause: err}
}

func InvalidInput(format string, args ...any) *Error {
	return Newf(CodeInvalidInput, format, args...)
}

// CodeOf returns the code of the outermost *Error in err's chain, or CodeInternal.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}
