package config

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/willief/AntTP-tutorial/model"
	"github.com/willief/AntTP-tutorial/selector"

	_ "github.com/willief/AntTP-tutorial/storage/localfs"
	_ "github.com/willief/AntTP-tutorial/storage/memory"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "anttp.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_EmptyPathIsMemoryOnly(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	sel, closeFn, err := cfg.Open(slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeFn()
	if got := sel.Available(); len(got) != 1 || got[0] != model.IntentMemory {
		t.Fatalf("Available = %v, want [memory]", got)
	}
}

func TestLoad_DiskAndCachedNetwork(t *testing.T) {
	data := t.TempDir()
	path := writeConfig(t, `
log_level: debug
log_format: text
strict: true
intents:
  disk:
    backends:
      - name: localfs
        config:
          localfs-dir: `+data+`
          localfs-compression: zstd
  network:
    cache: true
    backends:
      - name: memory
        id: remote
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Strict || cfg.LogFormat != "text" {
		t.Fatalf("cfg = %+v", cfg)
	}
	sel, closeFn, err := cfg.Open(nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer closeFn()

	if got := sel.Available(); len(got) != 3 {
		t.Fatalf("Available = %v, want all intents", got)
	}
	res, err := sel.Resolve(model.IntentDisk)
	if err != nil {
		t.Fatalf("Resolve(disk): %v", err)
	}
	if err := res.Store.Put("k", []byte("v")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	entries, err := os.ReadDir(data)
	if err != nil || len(entries) == 0 {
		t.Fatalf("disk intent did not write under localfs-dir: %v", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad level":     "log_level: loud\n",
		"bad format":    "log_format: xml\n",
		"bad algorithm": "identity_algorithm: rsa\n",
		"unnamed":       "intents:\n  disk:\n    backends:\n      - config: {}\n",
		"duplicate id":  "intents:\n  disk:\n    backends:\n      - name: memory\n      - name: memory\n",
		"cache alone":   "intents:\n  network:\n    cache: true\n",
		"not yaml":      "intents: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatalf("Load succeeded for %q", body)
			}
		})
	}
}

func TestOpen_UnknownBackend(t *testing.T) {
	cfg := Default()
	cfg.Intents.Network.Backends = []BackendConfig{{Name: "nope"}}
	if _, _, err := cfg.Open(nil); err == nil {
		t.Fatalf("Open succeeded with unknown backend")
	}
}

func TestSigner_PersistsUnderIdentityDir(t *testing.T) {
	cfg := Default()
	cfg.IdentityDir = t.TempDir()
	a, err := cfg.Signer()
	if err != nil {
		t.Fatalf("Signer: %v", err)
	}
	b, err := cfg.Signer()
	if err != nil {
		t.Fatalf("Signer: %v", err)
	}
	if a.Owner() != b.Owner() {
		t.Fatalf("owner changed between loads")
	}
}

// A cache tier only sees writes made through its own node.
func TestOpen_CacheTierIsNotInvalidated(t *testing.T) {
	shared := t.TempDir()
	path := writeConfig(t, `
intents:
  network:
    cache: true
    backends:
      - name: localfs
        config: {localfs-dir: `+shared+`}
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	openNode := func() *selector.Resolution {
		sel, closeFn, err := cfg.Open(nil)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		t.Cleanup(func() { _ = closeFn() })
		res, err := sel.Resolve(model.IntentNetwork)
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		return &res
	}
	a, b := openNode(), openNode()

	if err := b.Store.Put("k", []byte("v1")); err != nil {
		t.Fatalf("Put via b: %v", err)
	}
	if err := a.Store.Put("k", []byte("v2")); err != nil {
		t.Fatalf("Put via a: %v", err)
	}
	got, err := b.Store.Get("k")
	if err != nil {
		t.Fatalf("Get via b: %v", err)
	}
	if string(got) != "v1" {
		t.Fatalf("Get via b = %q, want the cached v1", got)
	}
}
