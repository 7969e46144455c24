package utils

import (
	"context"
	"errors"
	"os"
)

// --- Sentinel Errors for Categorization ---
var (
	ErrNotFound         = errors.New("document not found")       // Named document missing from the backing reader
	ErrMalformedMarkup  = errors.New("malformed heading markup") // Wraps the specific scanner error
	ErrFilesystem       = errors.New("filesystem error")         // Wraps os errors
	ErrDatabase         = errors.New("database error")           // Wraps badger errors
	ErrConfigValidation = errors.New("configuration validation error")
)

// CategorizeError maps an error to a predefined category string for logging/metrics.
func CategorizeError(err error) string {
	if err == nil {
		return "None"
	}

	// Check against sentinel errors first
	switch {
	case errors.Is(err, ErrNotFound):
		return "Document_NotFound"
	case errors.Is(err, ErrMalformedMarkup):
		return "Markup_Malformed"
	case errors.Is(err, ErrFilesystem):
		if errors.Is(err, os.ErrPermission) {
			return "Filesystem_Permission"
		}
		if errors.Is(err, os.ErrNotExist) {
			return "Filesystem_NotExist"
		}
		return "Filesystem_Other"
	case errors.Is(err, ErrDatabase):
		return "Database_Other"
	case errors.Is(err, ErrConfigValidation):
		return "Config_Validation"
	}

	// Context errors
	if errors.Is(err, context.Canceled) {
		return "System_ContextCanceled"
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return "System_ContextDeadlineExceeded"
	}

	return "Unknown"
}
