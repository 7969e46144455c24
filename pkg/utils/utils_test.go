package utils

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateStringSHA256(t *testing.T) {
	// Known SHA-256 of empty string
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		CalculateStringSHA256(""))

	// Deterministic and content-sensitive
	assert.Equal(t, CalculateStringSHA256("hello"), CalculateStringSHA256("hello"))
	assert.NotEqual(t, CalculateStringSHA256("hello"), CalculateStringSHA256("hello "))
}

func TestCategorizeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, "None"},
		{"not found", ErrNotFound, "Document_NotFound"},
		{"wrapped not found", fmt.Errorf("%w: 'intro'", ErrNotFound), "Document_NotFound"},
		{"malformed markup", fmt.Errorf("%w: unterminated <h2> marker", ErrMalformedMarkup), "Markup_Malformed"},
		{"filesystem permission", fmt.Errorf("%w: %w", ErrFilesystem, os.ErrPermission), "Filesystem_Permission"},
		{"filesystem not exist", fmt.Errorf("%w: %w", ErrFilesystem, os.ErrNotExist), "Filesystem_NotExist"},
		{"filesystem other", fmt.Errorf("%w: disk full", ErrFilesystem), "Filesystem_Other"},
		{"database", fmt.Errorf("%w: txn conflict", ErrDatabase), "Database_Other"},
		{"config validation", fmt.Errorf("%w: bad link policy", ErrConfigValidation), "Config_Validation"},
		{"context canceled", context.Canceled, "System_ContextCanceled"},
		{"context deadline", context.DeadlineExceeded, "System_ContextDeadlineExceeded"},
		{"unknown", errors.New("something else"), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CategorizeError(tt.err))
		})
	}
}
