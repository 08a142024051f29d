package engine

import (
	"errors"
	"fmt"

	"gyst/internal/storage"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrInvalidFrequency = errors.New("invalid frequency")
	ErrInvalidName      = errors.New("name is required")
	ErrInvalidToken     = errors.New("token is required")
	ErrConflict         = errors.New("task already completed at this instant")

	// ErrTransient marks gateway failures. Callers may retry the whole
	// operation; the engine never retries on its own.
	ErrTransient = errors.New("store unavailable, try again")
)

// StoreError wraps a failed gateway call.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func (e *StoreError) Is(target error) bool { return target == ErrTransient }

// storeErr classifies a gateway error: missing rows become ErrNotFound,
// duplicate completions ErrConflict, everything else a StoreError.
func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	if errors.Is(err, storage.ErrDuplicateCompletion) {
		return fmt.Errorf("%s: %w", op, ErrConflict)
	}
	var se *StoreError
	if errors.As(err, &se) {
		return err
	}
	if isDomainErr(err) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

func isDomainErr(err error) bool {
	for _, target := range []error{
		ErrNotFound, ErrUnauthenticated, ErrInvalidFrequency,
		ErrInvalidName, ErrInvalidToken, ErrConflict,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
