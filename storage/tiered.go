package storage

import (
	"errors"
	"fmt"
)

// Tiered fans writes out to every tier and reads back in tier order.
//
// Put writes tiers in slice order and stops at the first failure. Get returns
// the first tier that has the key; ErrNotFound is returned only when every
// tier reports it. Any other read error is returned immediately so a broken
// tier is not masked by a stale one.
type Tiered struct {
	Tiers []NamedBackend
}

var (
	_ Backend = Tiered{}
	_ Deleter = Tiered{}
	_ Locker  = Tiered{}
)

func (t Tiered) Put(key string, value []byte) error {
	if len(t.Tiers) == 0 {
		return ErrNoBackends
	}
	for _, tier := range t.Tiers {
		if tier.Backend == nil {
			return fmt.Errorf("storage: nil backend for tier %q", tier.Name)
		}
		if err := tier.Backend.Put(key, value); err != nil {
			return fmt.Errorf("storage: tier %q: %w", tier.Name, err)
		}
	}
	return nil
}

func (t Tiered) Get(key string) ([]byte, error) {
	for _, tier := range t.Tiers {
		if tier.Backend == nil {
			continue
		}
		b, err := tier.Backend.Get(key)
		if err == nil {
			return b, nil
		}
		if IsNotFound(err) {
			continue
		}
		return nil, fmt.Errorf("storage: tier %q: %w", tier.Name, err)
	}
	return nil, ErrNotFound
}

func (t Tiered) Has(key string) bool {
	for _, tier := range t.Tiers {
		if tier.Backend != nil && tier.Backend.Has(key) {
			return true
		}
	}
	return false
}

// Delete removes key from every tier. Every tier must be a Deleter.
func (t Tiered) Delete(key string) error {
	if len(t.Tiers) == 0 {
		return ErrNoBackends
	}
	for _, tier := range t.Tiers {
		d, ok := tier.Backend.(Deleter)
		if !ok {
			return fmt.Errorf("storage: tier %q cannot delete", tier.Name)
		}
		if err := d.Delete(key); err != nil {
			return fmt.Errorf("storage: tier %q: %w", tier.Name, err)
		}
	}
	return nil
}

// Lock takes the lock of every tier that is a Locker, in tier order.
func (t Tiered) Lock(exclusive bool) (func() error, error) {
	var unlocks []func() error
	release := func() error {
		var errs []error
		for i := len(unlocks) - 1; i >= 0; i-- {
			if err := unlocks[i](); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	}
	for _, tier := range t.Tiers {
		l, ok := tier.Backend.(Locker)
		if !ok {
			continue
		}
		unlock, err := l.Lock(exclusive)
		if err != nil {
			_ = release()
			return nil, fmt.Errorf("storage: tier %q: %w", tier.Name, err)
		}
		unlocks = append(unlocks, unlock)
	}
	return release, nil
}
