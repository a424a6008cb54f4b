package storage

import (
	"errors"
	"fmt"
	"sync"
)

// Reader is the read side of a Keyed store inside View or Update.
type Reader interface {
	Get(key string) ([]byte, error)
	Has(key string) bool
}

// Txn is handed to Update callbacks. Writes are staged and only reach the
// backend if the callback returns nil; reads observe staged writes.
type Txn interface {
	Reader
	Put(key string, value []byte)
}

// Keyed serializes all access to one Backend.
//
// Writers see a total order. Readers may overlap each other but never a
// writer. Writes to a single key are linearized by lock acquisition order.
// When the backend is a Locker the same rules hold across every process
// sharing it.
type Keyed struct {
	name    string
	backend Backend

	mu sync.RWMutex
}

// NewKeyed wraps backend. name is used only for reporting.
func NewKeyed(name string, backend Backend) *Keyed {
	return &Keyed{name: name, backend: backend}
}

func (k *Keyed) Name() string { return k.name }

// lock takes mu and, for a Locker backend, the backend's own lock. The
// returned release undoes both.
func (k *Keyed) lock(exclusive bool) (release func(), err error) {
	if exclusive {
		k.mu.Lock()
	} else {
		k.mu.RLock()
	}
	unlockMu := k.mu.RUnlock
	if exclusive {
		unlockMu = k.mu.Unlock
	}
	l, ok := k.backend.(Locker)
	if !ok {
		return unlockMu, nil
	}
	unlock, err := l.Lock(exclusive)
	if err != nil {
		unlockMu()
		return nil, fmt.Errorf("storage: lock %s: %w", k.name, err)
	}
	return func() {
		_ = unlock()
		unlockMu()
	}, nil
}

func (k *Keyed) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	release, err := k.lock(false)
	if err != nil {
		return nil, err
	}
	defer release()
	return k.backend.Get(key)
}

func (k *Keyed) Has(key string) bool {
	if key == "" {
		return false
	}
	release, err := k.lock(false)
	if err != nil {
		return false
	}
	defer release()
	return k.backend.Has(key)
}

func (k *Keyed) Put(key string, value []byte) error {
	if key == "" {
		return ErrInvalidKey
	}
	release, err := k.lock(true)
	if err != nil {
		return err
	}
	defer release()
	return k.backend.Put(key, value)
}

// View runs fn under the shared lock.
func (k *Keyed) View(fn func(Reader) error) error {
	release, err := k.lock(false)
	if err != nil {
		return err
	}
	defer release()
	return fn(backendReader{k.backend})
}

// Update runs fn under the exclusive lock and commits its staged writes in
// the order they were first made. Nothing is written when fn returns an
// error.
//
// If a write fails mid-commit, every key written so far (the failing one
// included) is restored to its value before the Update: rewritten when it
// existed, deleted when it did not. Deleting needs a Deleter backend; when
// any restore fails the returned error also matches ErrRollback.
func (k *Keyed) Update(fn func(Txn) error) error {
	release, err := k.lock(true)
	if err != nil {
		return err
	}
	defer release()

	tx := &txn{backend: k.backend, staged: map[string][]byte{}, prior: map[string]priorValue{}}
	if err := fn(tx); err != nil {
		return err
	}
	if tx.err != nil {
		return tx.err
	}
	for _, key := range tx.order {
		if _, err := tx.snapshot(key); err != nil {
			return fmt.Errorf("storage: snapshot %q on %s: %w", key, k.name, err)
		}
	}
	for i, key := range tx.order {
		if err := k.backend.Put(key, tx.staged[key]); err != nil {
			err = fmt.Errorf("storage: commit %q on %s: %w", key, k.name, err)
			if rerr := k.rollback(tx, tx.order[:i+1]); rerr != nil {
				return errors.Join(err, rerr)
			}
			return err
		}
	}
	return nil
}

func (k *Keyed) rollback(tx *txn, keys []string) error {
	var errs []error
	for i := len(keys) - 1; i >= 0; i-- {
		key := keys[i]
		p := tx.prior[key]
		if p.exists {
			if err := k.backend.Put(key, p.value); err != nil {
				errs = append(errs, fmt.Errorf("restore %q: %w", key, err))
			}
			continue
		}
		d, ok := k.backend.(Deleter)
		if !ok {
			errs = append(errs, fmt.Errorf("remove %q: backend %s cannot delete", key, k.name))
			continue
		}
		if err := d.Delete(key); err != nil {
			errs = append(errs, fmt.Errorf("remove %q: %w", key, err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrRollback, errors.Join(errs...))
}

type backendReader struct{ b Backend }

func (r backendReader) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	return r.b.Get(key)
}

func (r backendReader) Has(key string) bool {
	if key == "" {
		return false
	}
	return r.b.Has(key)
}

type priorValue struct {
	value  []byte
	exists bool
}

type txn struct {
	backend Backend
	staged  map[string][]byte
	order   []string
	err     error

	// prior caches backend values as they were before this Update.
	prior map[string]priorValue
}

// snapshot returns the pre-Update backend value of key, reading it once.
func (t *txn) snapshot(key string) (priorValue, error) {
	if p, ok := t.prior[key]; ok {
		return p, nil
	}
	v, err := t.backend.Get(key)
	switch {
	case err == nil:
		t.prior[key] = priorValue{value: v, exists: true}
	case IsNotFound(err):
		t.prior[key] = priorValue{}
	default:
		return priorValue{}, err
	}
	return t.prior[key], nil
}

func (t *txn) Get(key string) ([]byte, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	if v, ok := t.staged[key]; ok {
		return append([]byte(nil), v...), nil
	}
	p, err := t.snapshot(key)
	if err != nil {
		return nil, err
	}
	if !p.exists {
		return nil, ErrNotFound
	}
	return append([]byte(nil), p.value...), nil
}

func (t *txn) Has(key string) bool {
	if key == "" {
		return false
	}
	if _, ok := t.staged[key]; ok {
		return true
	}
	return t.backend.Has(key)
}

func (t *txn) Put(key string, value []byte) {
	if key == "" {
		if t.err == nil {
			t.err = ErrInvalidKey
		}
		return
	}
	if _, ok := t.staged[key]; !ok {
		t.order = append(t.order, key)
	}
	t.staged[key] = append([]byte(nil), value...)
}
