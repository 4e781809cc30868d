package shortcut

import (
	"errors"
	"fmt"
)

var (
	// ErrPermissionDenied means the OS has not granted input monitoring.
	// The user has to grant it and usually restart the app.
	ErrPermissionDenied = errors.New("input monitoring permission not granted")

	// ErrInvalidBinding means a combination cannot be used as a global hotkey.
	ErrInvalidBinding = errors.New("invalid key binding")

	// ErrCaptureActive is returned when a capture session is already listening.
	ErrCaptureActive = errors.New("hotkey capture already in progress")
)

// PersistenceError reports a failed write of the binding file. The binding
// stays active in memory.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist binding to %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
