package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	cause := errors.New("selector exploded")
	err := Wrap(cause, CodeInternal, "group records")

	assert.True(t, HasCode(err, CodeInternal))
	assert.False(t, HasCode(err, CodeValidation))
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("handler: %w", New(CodeValidation, "kind is required"))
	assert.True(t, HasCode(wrapped, CodeValidation))
	assert.Equal(t, CodeValidation, CodeOf(wrapped))
	assert.Equal(t, CodeInternal, CodeOf(cause))
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(nil, CodeInternal, "nothing"))
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(CodeValidation))
	assert.Equal(t, http.StatusServiceUnavailable, ToHTTPStatus(CodeUnavailable))
	assert.Equal(t, http.StatusGatewayTimeout, ToHTTPStatus(CodeTimeout))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(CodeInvariantViolation))
}
