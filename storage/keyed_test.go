package storage_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/willief/AntTP-tutorial/storage"
	"github.com/willief/AntTP-tutorial/storage/memory"
)

func TestKeyed_UpdateCommitsOnlyOnSuccess(t *testing.T) {
	k := storage.NewKeyed("memory", memory.New())

	boom := errors.New("boom")
	err := k.Update(func(tx storage.Txn) error {
		tx.Put("a", []byte("1"))
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Update err = %v, want %v", err, boom)
	}
	if k.Has("a") {
		t.Fatalf("aborted Update left a key behind")
	}

	err = k.Update(func(tx storage.Txn) error {
		tx.Put("a", []byte("1"))
		tx.Put("b", []byte("2"))
		got, err := tx.Get("a")
		if err != nil {
			return err
		}
		if string(got) != "1" {
			t.Fatalf("staged read = %q, want 1", got)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	for key, want := range map[string]string{"a": "1", "b": "2"} {
		got, err := k.Get(key)
		if err != nil || string(got) != want {
			t.Fatalf("Get(%q) = %q, %v; want %q", key, got, err, want)
		}
	}
}

func TestKeyed_EmptyKeyRejected(t *testing.T) {
	k := storage.NewKeyed("memory", memory.New())
	if err := k.Put("", []byte("x")); !errors.Is(err, storage.ErrInvalidKey) {
		t.Fatalf("Put(\"\") err = %v, want ErrInvalidKey", err)
	}
	err := k.Update(func(tx storage.Txn) error {
		tx.Put("", []byte("x"))
		tx.Put("ok", []byte("y"))
		return nil
	})
	if !errors.Is(err, storage.ErrInvalidKey) {
		t.Fatalf("Update err = %v, want ErrInvalidKey", err)
	}
	if k.Has("ok") {
		t.Fatalf("Update with invalid key committed other writes")
	}
}

// Two keys written in one Update must never be observed half-applied.
func TestKeyed_UpdateIsAtomicAcrossKeys(t *testing.T) {
	k := storage.NewKeyed("memory", memory.New())
	if err := k.Update(func(tx storage.Txn) error {
		tx.Put("x", []byte{0})
		tx.Put("y", []byte{0})
		return nil
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for w := 1; w <= 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				v := []byte{byte(w*50 + i%50)}
				_ = k.Update(func(tx storage.Txn) error {
					tx.Put("x", v)
					tx.Put("y", v)
					return nil
				})
			}
		}(w)
	}

	readerDone := make(chan error, 1)
	go func() {
		for {
			select {
			case <-stop:
				readerDone <- nil
				return
			default:
			}
			err := k.View(func(r storage.Reader) error {
				x, err := r.Get("x")
				if err != nil {
					return err
				}
				y, err := r.Get("y")
				if err != nil {
					return err
				}
				if x[0] != y[0] {
					return errors.New("observed x != y")
				}
				return nil
			})
			if err != nil {
				readerDone <- err
				return
			}
		}
	}()

	wg.Wait()
	close(stop)
	if err := <-readerDone; err != nil {
		t.Fatalf("reader: %v", err)
	}
}

func TestTiered_FallbackAndFanOut(t *testing.T) {
	cache := memory.New()
	remote := memory.New()
	tiered := storage.Tiered{Tiers: []storage.NamedBackend{
		{Name: "cache", Backend: cache},
		{Name: "remote", Backend: remote},
	}}

	if err := tiered.Put("k", []byte("v")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if !cache.Has("k") || !remote.Has("k") {
		t.Fatalf("Put did not reach every tier")
	}

	if err := remote.Put("only-remote", []byte("r")); err != nil {
		t.Fatalf("remote.Put: %v", err)
	}
	got, err := tiered.Get("only-remote")
	if err != nil || string(got) != "r" {
		t.Fatalf("Get fallback = %q, %v", got, err)
	}

	if _, err := tiered.Get("nowhere"); !storage.IsNotFound(err) {
		t.Fatalf("Get missing err = %v, want ErrNotFound", err)
	}
	if err := (storage.Tiered{}).Put("k", nil); !errors.Is(err, storage.ErrNoBackends) {
		t.Fatalf("empty Tiered Put err = %v", err)
	}
}

type failingBackend struct{ err error }

func (f failingBackend) Put(string, []byte) error   { return f.err }
func (f failingBackend) Get(string) ([]byte, error) { return nil, f.err }
func (f failingBackend) Has(string) bool            { return false }

func TestTiered_ReadErrorIsNotMasked(t *testing.T) {
	broken := errors.New("unreachable")
	stale := memory.New()
	_ = stale.Put("k", []byte("stale"))
	tiered := storage.Tiered{Tiers: []storage.NamedBackend{
		{Name: "broken", Backend: failingBackend{err: broken}},
		{Name: "stale", Backend: stale},
	}}
	if _, err := tiered.Get("k"); !errors.Is(err, broken) {
		t.Fatalf("Get err = %v, want %v", err, broken)
	}
}

// flakyStore fails Put for the keys in failPut.
type flakyStore struct {
	*memory.Store
	failPut map[string]bool
}

func (f *flakyStore) Put(key string, value []byte) error {
	if f.failPut[key] {
		return errors.New("disk full")
	}
	return f.Store.Put(key, value)
}

func TestKeyed_FailedCommitRestoresPriorValues(t *testing.T) {
	backend := &flakyStore{Store: memory.New(), failPut: map[string]bool{}}
	k := storage.NewKeyed("flaky", backend)
	if err := k.Put("a", []byte("old")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	backend.failPut["c"] = true
	err := k.Update(func(tx storage.Txn) error {
		tx.Put("a", []byte("new"))
		tx.Put("b", []byte("new"))
		tx.Put("c", []byte("new"))
		return nil
	})
	if err == nil {
		t.Fatalf("Update succeeded with a failing write")
	}
	if errors.Is(err, storage.ErrRollback) {
		t.Fatalf("rollback reported incomplete: %v", err)
	}
	got, gerr := k.Get("a")
	if gerr != nil || string(got) != "old" {
		t.Fatalf("Get(a) = %q, %v; want old", got, gerr)
	}
	for _, key := range []string{"b", "c"} {
		if k.Has(key) {
			t.Fatalf("key %q created by a failed commit is still present", key)
		}
	}
}

func TestKeyed_RollbackWithoutDeleterIsReported(t *testing.T) {
	flaky := &flakyStore{Store: memory.New(), failPut: map[string]bool{"b": true}}
	k := storage.NewKeyed("flaky", struct{ storage.Backend }{flaky})
	if err := k.Put("a", []byte("old")); err != nil {
		t.Fatalf("seed: %v", err)
	}

	err := k.Update(func(tx storage.Txn) error {
		tx.Put("fresh", []byte("x"))
		tx.Put("a", []byte("new"))
		tx.Put("b", []byte("new"))
		return nil
	})
	if !errors.Is(err, storage.ErrRollback) {
		t.Fatalf("Update err = %v, want ErrRollback", err)
	}
	got, gerr := k.Get("a")
	if gerr != nil || string(got) != "old" {
		t.Fatalf("Get(a) = %q, %v; want old", got, gerr)
	}
}

func TestTiered_Delete(t *testing.T) {
	cache := memory.New()
	remote := memory.New()
	tiered := storage.Tiered{Tiers: []storage.NamedBackend{
		{Name: "cache", Backend: cache},
		{Name: "remote", Backend: remote},
	}}
	if err := tiered.Put("k", []byte("v")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := tiered.Delete("k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if cache.Has("k") || remote.Has("k") {
		t.Fatalf("Delete left the key in a tier")
	}

	partial := storage.Tiered{Tiers: []storage.NamedBackend{
		{Name: "cache", Backend: cache},
		{Name: "opaque", Backend: failingBackend{err: errors.New("x")}},
	}}
	if err := partial.Delete("k"); err == nil {
		t.Fatalf("Delete succeeded with a tier that cannot delete")
	}
}
