package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Clone(ErrConflict, "Username already exists"))

	got := FromError(wrapped)
	assert.Equal(t, ErrConflict.Code, got.Code)
	assert.Equal(t, http.StatusConflict, got.Status)
	assert.Equal(t, "Username already exists", got.Message)
}

func TestFromErrorHidesUnknownErrors(t *testing.T) {
	got := FromError(errors.New("dial tcp: connection refused"))
	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.Equal(t, ErrInternal.Message, got.Message)
	assert.EqualError(t, got.Unwrap(), "dial tcp: connection refused")
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrNotFound, "certificate not found")
	assert.Equal(t, "certificate not found", clone.Message)
	assert.Equal(t, "resource not found", ErrNotFound.Message)
}
