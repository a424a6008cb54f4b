// Package testkit holds the conformance suite every storage.Backend must
// pass.
package testkit

import (
	"bytes"
	"fmt"
	"sync"
	"testing"

	"github.com/willief/AntTP-tutorial/storage"
)

// NewBackend constructs a fresh, empty Backend for a test.
// The returned Backend MUST be isolated from other tests.
type NewBackend func(t *testing.T) storage.Backend

func RunBackendConformance(t *testing.T, newBackend NewBackend) {
	t.Helper()

	t.Run("PutGetRoundTrip", func(t *testing.T) {
		b := newBackend(t)
		want := []byte("hello, storage node")
		if err := b.Put("k1", want); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, err := b.Get("k1")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if !bytes.Equal(got, want) {
			t.Fatalf("Get bytes mismatch: got %q want %q", got, want)
		}
	})

	t.Run("EmptyValue", func(t *testing.T) {
		b := newBackend(t)
		if err := b.Put("empty", nil); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		got, err := b.Get("empty")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected empty value, got %d bytes", len(got))
		}
		if !b.Has("empty") {
			t.Fatalf("Has returned false for stored empty value")
		}
	})

	t.Run("Overwrite", func(t *testing.T) {
		b := newBackend(t)
		if err := b.Put("k", []byte("one")); err != nil {
			t.Fatalf("Put(1) failed: %v", err)
		}
		if err := b.Put("k", []byte("two")); err != nil {
			t.Fatalf("Put(2) failed: %v", err)
		}
		got, err := b.Get("k")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if string(got) != "two" {
			t.Fatalf("Get after overwrite = %q, want %q", got, "two")
		}
	})

	t.Run("HasAndNotFound", func(t *testing.T) {
		b := newBackend(t)
		if b.Has("missing") {
			t.Fatalf("Has returned true for missing key")
		}
		_, err := b.Get("missing")
		if !storage.IsNotFound(err) {
			t.Fatalf("Get missing: got err=%v want ErrNotFound", err)
		}
		if err := b.Put("missing", []byte("now here")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if !b.Has("missing") {
			t.Fatalf("Has returned false after Put")
		}
	})

	t.Run("KeysWithSeparators", func(t *testing.T) {
		b := newBackend(t)
		keys := []string{"pnr:alice", "kv:bucket:object/with/slashes", "abc_history", "abc:bob"}
		for i, k := range keys {
			if err := b.Put(k, []byte(fmt.Sprint(i))); err != nil {
				t.Fatalf("Put(%q) failed: %v", k, err)
			}
		}
		for i, k := range keys {
			got, err := b.Get(k)
			if err != nil {
				t.Fatalf("Get(%q) failed: %v", k, err)
			}
			if string(got) != fmt.Sprint(i) {
				t.Fatalf("Get(%q) = %q, want %q", k, got, fmt.Sprint(i))
			}
		}
	})

	t.Run("ConcurrentDistinctKeys", func(t *testing.T) {
		b := newBackend(t)
		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_ = b.Put(fmt.Sprintf("c%d", i), []byte{byte(i)})
			}(i)
		}
		wg.Wait()
		for i := 0; i < 16; i++ {
			got, err := b.Get(fmt.Sprintf("c%d", i))
			if err != nil {
				t.Fatalf("Get(c%d) failed: %v", i, err)
			}
			if len(got) != 1 || got[0] != byte(i) {
				t.Fatalf("Get(c%d) = %v", i, got)
			}
		}
	})

	t.Run("Delete", func(t *testing.T) {
		b := newBackend(t)
		d, ok := b.(storage.Deleter)
		if !ok {
			t.Skip("backend does not implement storage.Deleter")
		}
		if err := b.Put("gone", []byte("soon")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
		if err := d.Delete("gone"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if b.Has("gone") {
			t.Fatalf("Has returned true after Delete")
		}
		if _, err := b.Get("gone"); !storage.IsNotFound(err) {
			t.Fatalf("Get after Delete: got err=%v want ErrNotFound", err)
		}
		if err := d.Delete("never-stored"); err != nil {
			t.Fatalf("Delete of missing key: %v", err)
		}
	})
}
