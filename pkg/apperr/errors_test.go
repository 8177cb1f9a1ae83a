package apperr

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCode(t *testing.T) {
	err := InvalidInput("unknown crop %q", "Wheat")
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrModelUnavailable))
	assert.Equal(t, `unknown crop "Wheat"`, err.Error())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("predict: %w", Wrap(CodeModelUnavailable, cause, "model server unreachable"))

	assert.True(t, errors.Is(err, ErrModelUnavailable))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, CodeModelUnavailable, CodeOf(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	assert.Nil(t, Wrap(CodeInternal, nil, "nothing"))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[error]int{
		InvalidInput("bad"):                     http.StatusBadRequest,
		ErrNotFound:                             http.StatusNotFound,
		Wrap(CodeModelUnavailable, io.EOF, "x"): http.StatusServiceUnavailable,
		New(CodePredictionFailure, "x"):         http.StatusBadGateway,
		io.EOF:                                  http.StatusInternalServerError,
	}
	for err, want := range cases {
		assert.Equal(t, want, HTTPStatus(err), err.Error())
	}
}

func TestBodyOfHidesInternalCause(t *testing.T) {
	b := BodyOf(fmt.Errorf("disk: %w", io.ErrUnexpectedEOF))
	assert.Equal(t, Body{Error: CodeInternal, Message: "internal error"}, b)

	b = BodyOf(InvalidInput("area must be > 0"))
	assert.Equal(t, Body{Error: CodeInvalidInput, Message: "area must be > 0"}, b)

	b = BodyOf(Wrap(CodeNotFound, io.EOF, "prediction x not found"))
	assert.Equal(t, Body{Error: CodeNotFound, Message: "prediction x not found"}, b)
}

func TestBodyOfModelErrorsAreStatic(t *testing.T) {
	dial := errors.New(`Post "http://10.255.0.7:9/secret-model/predict": connection reset by peer`)
	b := BodyOf(Wrap(CodeModelUnavailable, dial, "model server unreachable"))
	assert.Equal(t, Body{Error: CodeModelUnavailable, Message: "prediction model unavailable"}, b)

	b = BodyOf(Newf(CodePredictionFailure, "model server returned 500: %s", "trace at /srv/model.py"))
	assert.Equal(t, Body{Error: CodePredictionFailure, Message: "prediction failed"}, b)
}
