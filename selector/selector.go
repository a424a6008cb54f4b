// Package selector maps a storage intent to the keyed store that serves it.
package selector

import (
	"log/slog"

	"github.com/willief/AntTP-tutorial/model"
	"github.com/willief/AntTP-tutorial/storage"
	"github.com/willief/AntTP-tutorial/storage/memory"
)

// Resolution is the outcome of resolving one intent.
type Resolution struct {
	Requested model.Intent
	Served    model.Intent
	Store     *storage.Keyed

	// Degraded is set when Served differs from Requested.
	Degraded bool
}

type Options struct {
	// Memory overrides the in-process backend. Nil means a fresh map.
	Memory storage.Backend

	// Disk and Network make those intents available when non-nil.
	Disk    storage.Backend
	Network storage.Backend

	// Strict refuses unavailable intents instead of serving them from memory.
	Strict bool

	Logger *slog.Logger
}

// Selector owns one storage.Keyed per available intent. It is safe for
// concurrent use and never changes after New.
type Selector struct {
	stores [model.IntentNetwork + 1]*storage.Keyed
	strict bool
	log    *slog.Logger
}

func New(opts Options) *Selector {
	s := &Selector{strict: opts.Strict, log: opts.Logger}
	if s.log == nil {
		s.log = slog.Default()
	}
	mem := opts.Memory
	if mem == nil {
		mem = memory.New()
	}
	s.stores[model.IntentMemory] = storage.NewKeyed(model.IntentMemory.String(), mem)
	if opts.Disk != nil {
		s.stores[model.IntentDisk] = storage.NewKeyed(model.IntentDisk.String(), opts.Disk)
	}
	if opts.Network != nil {
		s.stores[model.IntentNetwork] = storage.NewKeyed(model.IntentNetwork.String(), opts.Network)
	}
	return s
}

// Resolve returns the store for intent. An unavailable intent is served by
// memory with Degraded set, or rejected with UNSUPPORTED_BACKEND in strict
// mode.
func (s *Selector) Resolve(intent model.Intent) (Resolution, error) {
	if !intent.Valid() {
		return Resolution{}, model.Errorf(model.ErrCodeUnsupportedBackend, "invalid intent %d", uint8(intent))
	}
	if st := s.stores[intent]; st != nil {
		return Resolution{Requested: intent, Served: intent, Store: st}, nil
	}
	if s.strict {
		return Resolution{}, model.Errorf(model.ErrCodeUnsupportedBackend, "%s backend is not configured", intent)
	}
	s.log.Warn("storage intent unavailable, serving from memory",
		"requested", intent.String(),
		"served", model.IntentMemory.String(),
	)
	return Resolution{
		Requested: intent,
		Served:    model.IntentMemory,
		Store:     s.stores[model.IntentMemory],
		Degraded:  true,
	}, nil
}

// Available lists the intents that resolve without degrading.
func (s *Selector) Available() []model.Intent {
	out := make([]model.Intent, 0, len(model.Intents))
	for _, i := range model.Intents {
		if s.stores[i] != nil {
			out = append(out, i)
		}
	}
	return out
}

// Strict reports whether unavailable intents are rejected.
func (s *Selector) Strict() bool { return s.strict }
