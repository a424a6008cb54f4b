package keys

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func TestDeriveSeedDeterministic(t *testing.T) {
	root := testSeed()
	a, err := DeriveSeed(root, PurposePointer)
	if err != nil {
		t.Fatalf("DeriveSeed: %v", err)
	}
	b, err := DeriveSeed(root, PurposePointer)
	if err != nil {
		t.Fatalf("DeriveSeed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("expected deterministic derivation")
	}
	c, err := DeriveSeed(root, "other")
	if err != nil {
		t.Fatalf("DeriveSeed: %v", err)
	}
	if bytes.Equal(a, c) {
		t.Fatalf("expected different purposes to derive different seeds")
	}
	if _, err := DeriveSeed(root, "bad purpose"); err == nil {
		t.Fatalf("expected error for invalid purpose")
	}
}

func TestLoadOrCreate_Persists(t *testing.T) {
	dir := t.TempDir()
	first, err := LoadOrCreate(dir, AlgEd25519)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	info, err := os.Stat(filepath.Join(dir, rootKeyFile))
	if err != nil {
		t.Fatalf("stat key file: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("key file mode = %v, want 0600", info.Mode().Perm())
	}

	second, err := LoadOrCreate(dir, AlgEd25519)
	if err != nil {
		t.Fatalf("LoadOrCreate: %v", err)
	}
	if first.Owner() != second.Owner() {
		t.Fatalf("owner changed across loads")
	}
}

func TestLoadOrCreate_RejectsCorruptSeed(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, rootKeyFile), []byte("nothex\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadOrCreate(dir, AlgEd25519); err == nil {
		t.Fatalf("expected error for corrupt seed")
	}
}
