package models

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorPredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("Post", 7)))
	assert.True(t, IsValidation(NewValidationError("bad input")))
	assert.True(t, IsUnauthorized(NewUnauthorizedError("no")))

	internal := NewInternalError(errors.New("boom"))
	assert.False(t, IsNotFound(internal))
	assert.False(t, IsValidation(internal))
	assert.False(t, IsUnauthorized(internal))

	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}

func TestAppErrorWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewInternalError(cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")

	// Predicates see through additional wrapping.
	wrapped := fmt.Errorf("loading feed: %w", NewNotFoundError("User", "alice"))
	assert.True(t, IsNotFound(wrapped))
}

func TestAppErrorMessages(t *testing.T) {
	err := NewNotFoundError("Group", "travel")
	assert.Equal(t, "Group travel not found", err.Error())

	plain := NewUnauthorizedError("Only the author can edit a post")
	assert.Equal(t, "Only the author can edit a post", plain.Error())
}
