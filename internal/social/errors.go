// ABOUTME: Error taxonomy returned by the social engine.
// ABOUTME: Store errors are translated into these sentinels at the engine boundary.

package social

import (
	"errors"
	"fmt"

	"github.com/harper/notely/internal/store"
)

var (
	// ErrInvalidInput means a required field was missing or did not resolve.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound means a referenced user, note, comment or notification does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidOperation means the action is not allowed, such as following yourself.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrConflict means a write kept losing races with concurrent writers.
	ErrConflict = errors.New("conflict")
	// ErrDependencyFailure means the store failed and nothing was written.
	ErrDependencyFailure = errors.New("dependency failure")
)

func isEngineError(err error) bool {
	return errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidOperation) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrDependencyFailure)
}

// translate maps an error escaping a transaction onto the engine taxonomy.
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case isEngineError(err):
		return fmt.Errorf("%s: %w", op, err)
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%s: %w: %w", op, ErrNotFound, err)
	case store.Retryable(err):
		return fmt.Errorf("%s: %w: %w", op, ErrConflict, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrDependencyFailure, err)
}

func notFound(kind, id string) error {
	return fmt.Errorf("%w: %s %s", ErrNotFound, kind, id)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
