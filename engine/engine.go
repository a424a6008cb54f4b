// Package engine is the single entry point for storage operations.
//
// Every operation takes the caller's storage intent, resolves it to a keyed
// store through the selector and delegates to the primitive stores. Writes
// return a model.Receipt saying which backend actually served them. The
// engine itself holds no primitive state.
package engine

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/willief/AntTP-tutorial/keys"
	"github.com/willief/AntTP-tutorial/model"
	"github.com/willief/AntTP-tutorial/selector"
	"github.com/willief/AntTP-tutorial/storage"
)

type Options struct {
	// Selector maps intents to stores. Nil means memory only.
	Selector *selector.Selector

	// Signer signs pointer records. Nil stores them unsigned.
	Signer *keys.Signer

	Logger *slog.Logger

	// Now stamps register entries. Nil means time.Now.
	Now func() time.Time
}

// Engine is safe for concurrent use.
type Engine struct {
	sel    *selector.Selector
	signer *keys.Signer
	log    *slog.Logger
	now    func() time.Time
}

func New(opts Options) *Engine {
	e := &Engine{
		sel:    opts.Selector,
		signer: opts.Signer,
		log:    opts.Logger,
		now:    opts.Now,
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	if e.sel == nil {
		e.sel = selector.New(selector.Options{Logger: e.log})
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// write resolves intent, runs fn against the served store and logs the
// outcome under a fresh operation id.
func (e *Engine) write(op string, intent model.Intent, fn func(*storage.Keyed) (model.Address, error)) (model.Receipt, error) {
	res, err := e.sel.Resolve(intent)
	if err != nil {
		return model.Receipt{}, err
	}
	opID := uuid.Must(uuid.NewV7()).String()

	addr, err := fn(res.Store)
	if err != nil {
		e.log.Warn(
			"storage operation failed",
			slog.String("op", op),
			slog.String("op_id", opID),
			slog.String("served", res.Served.String()),
			slog.String("code", string(model.CodeOf(err))),
			slog.String("error", err.Error()),
		)
		return model.Receipt{}, err
	}

	e.log.Info(
		"stored",
		slog.String("op", op),
		slog.String("op_id", opID),
		slog.String("address", addr.String()),
		slog.String("requested", res.Requested.String()),
		slog.String("served", res.Served.String()),
		slog.Bool("degraded", res.Degraded),
	)
	return model.Receipt{
		Address:   addr,
		Requested: res.Requested,
		Served:    res.Served,
		Degraded:  res.Degraded,
	}, nil
}

func read[T any](e *Engine, op string, intent model.Intent, fn func(*storage.Keyed) (T, error)) (T, error) {
	var zero T
	res, err := e.sel.Resolve(intent)
	if err != nil {
		return zero, err
	}
	v, err := fn(res.Store)
	if err != nil {
		e.log.Debug(
			"storage read failed",
			slog.String("op", op),
			slog.String("served", res.Served.String()),
			slog.String("code", string(model.CodeOf(err))),
		)
		return zero, err
	}
	return v, nil
}

// Commands lists the primitive operations and the intents that are
// currently served without degrading.
func (e *Engine) Commands() model.Capabilities {
	return model.Capabilities{
		Intents:  e.sel.Available(),
		Commands: append([]model.Command(nil), commands...),
	}
}

var commands = []model.Command{
	{Name: "chunk", Description: "Immutable content-addressed blobs (base64 or binary)", Operations: []string{"put", "get", "put_binary", "get_binary"}},
	{Name: "public_data", Description: "Immutable public binary data", Operations: []string{"put", "get"}},
	{Name: "register", Description: "Named hex values with append-only history", Operations: []string{"create", "update", "get", "history"}},
	{Name: "pointer", Description: "Mutable signed references to other addresses", Operations: []string{"create", "update", "get"}},
	{Name: "scratchpad", Description: "Mutable base64 blobs, public or per-name private namespaces", Operations: []string{"create_public", "update_public", "get_public", "create_private", "update_private", "get_private"}},
	{Name: "archive", Description: "File lists stored as one addressed unit", Operations: []string{"create", "get", "get_file"}},
	{Name: "tarchive", Description: "File lists stored as a deterministic tar stream", Operations: []string{"create", "import", "get"}},
	{Name: "graph_entry", Description: "Immutable named hex content", Operations: []string{"create", "get"}},
	{Name: "pnr", Description: "Name registry with replace and merge-append", Operations: []string{"create", "update", "append", "get"}},
	{Name: "key_value", Description: "Bucket/object storage", Operations: []string{"put", "get"}},
}
