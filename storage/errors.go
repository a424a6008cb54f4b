package storage

import "errors"

var (
	ErrNotFound   = errors.New("storage: not found")
	ErrInvalidKey = errors.New("storage: invalid key")
	ErrCorrupt    = errors.New("storage: corrupt value")
	ErrNoBackends = errors.New("storage: no backends configured")

	// ErrRollback marks a failed commit whose rollback also failed, so some
	// staged writes may remain visible.
	ErrRollback = errors.New("storage: rollback incomplete")
)

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }
