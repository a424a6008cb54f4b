package memory

import (
	"testing"

	"github.com/willief/AntTP-tutorial/storage"
	"github.com/willief/AntTP-tutorial/storage/testkit"
)

func TestMemory_Conformance(t *testing.T) {
	testkit.RunBackendConformance(t, func(t *testing.T) storage.Backend {
		t.Helper()
		return New()
	})
}

func TestMemory_ValuesDoNotAlias(t *testing.T) {
	s := New()
	in := []byte("abc")
	if err := s.Put("k", in); err != nil {
		t.Fatalf("Put: %v", err)
	}
	in[0] = 'z'

	out, err := s.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(out) != "abc" {
		t.Fatalf("stored value changed through caller slice: %q", out)
	}
	out[1] = 'z'
	again, _ := s.Get("k")
	if string(again) != "abc" {
		t.Fatalf("stored value changed through returned slice: %q", again)
	}
}
