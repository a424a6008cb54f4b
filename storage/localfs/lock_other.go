//go:build !unix

package localfs

// Lock is a no-op where flock is unavailable; only in-process access is
// serialized.
func (s *Store) Lock(bool) (func() error, error) {
	return func() error { return nil }, nil
}
