package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", notFound("Task not found"))

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrForbidden)
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.Equal(t, "Task not found", MessageOf(err, "fallback"))
}

func TestError_UnknownIsInternal(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, KindInternal, KindOf(err))
	assert.Equal(t, "fallback", MessageOf(err, "fallback"))

	wrapped := internal("Failed to fetch task", err)
	assert.ErrorIs(t, wrapped, err)
	assert.ErrorIs(t, wrapped, ErrInternal)
	assert.Equal(t, "InternalError: Failed to fetch task: boom", wrapped.Error())
}
