package apperr

import (
	"errors"
	"net/http"
)

// HTTPStatus maps err's code to the status the API answers with.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeNotFound:
		return http.StatusNotFound
	case CodeModelUnavailable:
		return http.StatusServiceUnavailable
	case CodePredictionFailure:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// Body is the JSON error payload.
type Body struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// BodyOf renders err for clients. Causes never leave the process; model
// failures get a fixed message since theirs name the model server.
func BodyOf(err error) Body {
	var e *Error
	if !errors.As(err, &e) {
		return Body{Error: CodeInternal, Message: "internal error"}
	}
	switch e.Code {
	case CodeInvalidInput, CodeNotFound:
		return Body{Error: e.Code, Message: e.Message}
	case CodeModelUnavailable:
		return Body{Error: e.Code, Message: ErrModelUnavailable.Message}
	case CodePredictionFailure:
		return Body{Error: e.Code, Message: ErrPredictionFailure.Message}
	}
	return Body{Error: CodeInternal, Message: "internal error"}
}
