package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewKeepsKindAndMessage(t *testing.T) {
	err := New(ErrInvalidInput, "email and password required")

	assert.Equal(t, "email and password required", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestKind(t *testing.T) {
	wrapped := fmt.Errorf("delete chat: %w", New(ErrNotFound, "Not found"))

	assert.Equal(t, ErrNotFound, Kind(wrapped))
	assert.Equal(t, ErrConflict, Kind(ErrConflict))
	assert.Nil(t, Kind(errors.New("boom")))
}
