// Package storage defines the keyed byte store every primitive is built on.
//
// A Backend is a plain associative store. Keyed wraps one Backend with a
// single reader/writer discipline: readers overlap each other, writers are
// mutually exclusive and exclude readers.
package storage

// Backend is a minimal keyed byte store.
//
// Contract:
// - Get MUST return ErrNotFound when the key is absent.
// - Put replaces any previous value for the key.
// - Values handed in and out MUST NOT alias memory the caller keeps using.
type Backend interface {
	Put(key string, value []byte) error
	Get(key string) ([]byte, error)
	Has(key string) bool
}

// Deleter is implemented by backends that can remove a key. Keyed uses it to
// undo keys a failed commit created.
type Deleter interface {
	Delete(key string) error
}

// Locker is implemented by backends that other processes may share, such as a
// directory on disk. Keyed holds the shared lock for reads and the exclusive
// lock for writes.
type Locker interface {
	Lock(exclusive bool) (unlock func() error, err error)
}

// NamedBackend associates a Backend with a stable name for logging and
// multi-tier orchestration.
type NamedBackend struct {
	Name    string
	Backend Backend
}
