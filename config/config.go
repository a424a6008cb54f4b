// Package config loads node configuration and opens the storage it describes.
//
// Configuration is a single YAML file (JSON also parses). Backends named in
// it are opened through storage/registry, so binaries must link the backend
// packages they want to support, usually with blank imports.
//
// Example:
//
//	log_level: info
//	log_format: json
//	strict: false
//	identity_dir: /var/lib/anttp/identity
//	identity_algorithm: ed25519
//	intents:
//	  disk:
//	    backends:
//	      - name: localfs
//	        config: {localfs-dir: /var/lib/anttp/data, localfs-compression: zstd}
//	  network:
//	    cache: true
//	    backends:
//	      - name: grpc
//	        config: {grpc-target: "127.0.0.1:7777"}
//
// Memory is always available and needs no configuration. An intent with
// several backends writes to all of them and reads them in order.
//
// A cache tier is read first and is never invalidated. Values another node
// changes behind the same backend (a register update, a PNR append) keep
// reading as the cached copy until this process restarts. Enable cache only
// when this node is the sole writer for the intent.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/willief/AntTP-tutorial/internal/logging"
	"github.com/willief/AntTP-tutorial/keys"
	"github.com/willief/AntTP-tutorial/selector"
	"github.com/willief/AntTP-tutorial/storage"
	"github.com/willief/AntTP-tutorial/storage/memory"
	"github.com/willief/AntTP-tutorial/storage/registry"
)

type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Strict rejects unavailable intents instead of serving them from memory.
	Strict bool `yaml:"strict"`

	// IdentityDir holds the node signing key. Empty means a fresh key per run.
	IdentityDir       string `yaml:"identity_dir"`
	IdentityAlgorithm string `yaml:"identity_algorithm"`

	Intents IntentsConfig `yaml:"intents"`
}

type IntentsConfig struct {
	Disk    IntentConfig `yaml:"disk"`
	Network IntentConfig `yaml:"network"`
}

type IntentConfig struct {
	Backends []BackendConfig `yaml:"backends"`

	// Cache puts an in-memory tier in front of the backends. The tier only
	// learns of writes made through this process, so reads of keys other
	// nodes update go stale.
	Cache bool `yaml:"cache"`
}

type BackendConfig struct {
	// Name is the registry backend name to open (e.g. "localfs", "grpc").
	Name string `yaml:"name"`
	// ID is an optional alias used in tier names. If empty, Name is used.
	ID     string            `yaml:"id,omitempty"`
	Config map[string]string `yaml:"config,omitempty"`
}

// Default returns a memory-only configuration.
func Default() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "json",
		IdentityAlgorithm: keys.AlgEd25519,
	}
}

// Load reads path over Default. An empty path returns Default.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.LogFormat {
	case "", "json", "text":
	default:
		return fmt.Errorf("config: invalid log_format %q", c.LogFormat)
	}
	switch c.IdentityAlgorithm {
	case "", keys.AlgEd25519, keys.AlgDilithium3:
	default:
		return fmt.Errorf("config: invalid identity_algorithm %q", c.IdentityAlgorithm)
	}
	for intent, ic := range map[string]IntentConfig{"disk": c.Intents.Disk, "network": c.Intents.Network} {
		if err := ic.validate(); err != nil {
			return fmt.Errorf("config: intents.%s: %w", intent, err)
		}
	}
	return nil
}

func (ic IntentConfig) validate() error {
	if ic.Cache && len(ic.Backends) == 0 {
		return errors.New("cache requires at least one backend")
	}
	seen := make(map[string]struct{}, len(ic.Backends))
	for _, b := range ic.Backends {
		if b.Name == "" {
			return errors.New("backend name is required")
		}
		id := b.id()
		if _, ok := seen[id]; ok {
			return fmt.Errorf("duplicate backend id %q", id)
		}
		seen[id] = struct{}{}
	}
	return nil
}

func (b BackendConfig) id() string {
	if b.ID != "" {
		return b.ID
	}
	return b.Name
}

// Logger builds the configured logger writing to w.
func (c *Config) Logger(w io.Writer) (*slog.Logger, error) {
	return logging.New(c.LogLevel, c.LogFormat, w)
}

// Signer returns the node signing key, persisted under IdentityDir when set.
func (c *Config) Signer() (*keys.Signer, error) {
	if c.IdentityDir == "" {
		return keys.Ephemeral(c.IdentityAlgorithm)
	}
	return keys.LoadOrCreate(c.IdentityDir, c.IdentityAlgorithm)
}

// Open opens every configured backend and returns a selector over them. The
// returned function closes the backends in reverse order.
func (c *Config) Open(logger *slog.Logger) (*selector.Selector, func() error, error) {
	if err := c.Validate(); err != nil {
		return nil, nil, err
	}

	var closers []func() error
	closeAll := func() error {
		var firstErr error
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i](); err != nil && firstErr == nil {
				firstErr = err
			}
		}
		return firstErr
	}

	open := func(ic IntentConfig) (storage.Backend, error) {
		if len(ic.Backends) == 0 {
			return nil, nil
		}
		tiers := make([]storage.NamedBackend, 0, len(ic.Backends)+1)
		if ic.Cache {
			tiers = append(tiers, storage.NamedBackend{Name: "cache", Backend: memory.New()})
		}
		for _, b := range ic.Backends {
			backend, closeFn, err := registry.OpenWithConfig(b.Name, registry.UsageEngine, b.Config)
			if err != nil {
				return nil, fmt.Errorf("open backend %q: %w", b.id(), err)
			}
			if closeFn != nil {
				closers = append(closers, closeFn)
			}
			tiers = append(tiers, storage.NamedBackend{Name: b.id(), Backend: backend})
		}
		if len(tiers) == 1 {
			return tiers[0].Backend, nil
		}
		return storage.Tiered{Tiers: tiers}, nil
	}

	disk, err := open(c.Intents.Disk)
	if err != nil {
		_ = closeAll()
		return nil, nil, fmt.Errorf("config: intents.disk: %w", err)
	}
	network, err := open(c.Intents.Network)
	if err != nil {
		_ = closeAll()
		return nil, nil, fmt.Errorf("config: intents.network: %w", err)
	}

	sel := selector.New(selector.Options{
		Disk:    disk,
		Network: network,
		Strict:  c.Strict,
		Logger:  logger,
	})
	return sel, closeAll, nil
}
