package prompt

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the registry has no version bound to the
	// requested name/alias. Recoverable: the resolver falls back to
	// the bundled file.
	ErrNotFound = errors.New("prompt not found in registry")

	// ErrUnavailable means the registry backend could not be reached.
	ErrUnavailable = errors.New("prompt registry unavailable")

	// ErrFileNotFound means the fallback prompt file does not exist.
	ErrFileNotFound = errors.New("prompt file not found")

	// ErrPromptUnavailable means every tier was exhausted: the
	// registry had no usable version and the fallback file was
	// missing or unreadable.
	ErrPromptUnavailable = errors.New("prompt unavailable")
)

// MissingFieldError reports the first placeholder in a template body
// that has no value in the render input.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing template field: %s", e.Field)
}
