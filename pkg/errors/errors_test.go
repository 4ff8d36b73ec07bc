package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, "INTERNAL_ERROR", http.StatusInternalServerError, "failed to create claim")

	assert.Equal(t, "failed to create claim: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestFromErrorPassesThroughTypedErrors(t *testing.T) {
	err := Clone(ErrNotFound, "Claim with id 42 not found (custom handler)")
	got := FromError(fmt.Errorf("outer: %w", err))

	require.NotNil(t, got)
	assert.Equal(t, http.StatusNotFound, got.Status)
	assert.Equal(t, "Claim with id 42 not found (custom handler)", got.Message)
}

func TestFromErrorDefaultsToInternal(t *testing.T) {
	got := FromError(errors.New("boom"))
	require.NotNil(t, got)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.Equal(t, ErrInternal.Message, got.Message)
}

func TestFromErrorNil(t *testing.T) {
	assert.Nil(t, FromError(nil))
}

func TestCloneDoesNotMutateSentinel(t *testing.T) {
	clone := Clone(ErrConflict, "claim number CLM-1 already exists")

	assert.Equal(t, "claim number CLM-1 already exists", clone.Message)
	assert.Equal(t, "conflict", ErrConflict.Message)
	assert.Equal(t, ErrConflict.Status, clone.Status)
}

func TestCloneKeepsMessageWhenOverrideEmpty(t *testing.T) {
	clone := Clone(ErrValidation, "")
	assert.Equal(t, ErrValidation.Message, clone.Message)
}

func TestSentinelStatuses(t *testing.T) {
	assert.Equal(t, http.StatusUnauthorized, ErrUnauthorized.Status)
	assert.Equal(t, http.StatusBadRequest, ErrValidation.Status)
	assert.Equal(t, http.StatusConflict, ErrConflict.Status)
	assert.Equal(t, http.StatusNotFound, ErrNotFound.Status)
	assert.Equal(t, http.StatusInternalServerError, ErrUpstream.Status)
	assert.Equal(t, http.StatusInternalServerError, ErrInternal.Status)
}
