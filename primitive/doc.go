// Package primitive implements the data primitives on top of a storage.Keyed:
// chunks and public data, registers, pointers, scratchpads, archives and
// tarchives, graph entries, the name registry (PNR) and bucket/object
// key-value storage.
//
// Each store is a small value type bound to one keyed store. Stores hold no
// state of their own, so callers construct them per request.
//
// Key layout within a keyed store:
//
//	<addr>               chunk, public data, archive, tarchive, graph entry,
//	                     register current value, pointer, public scratchpad
//	<addr>_history       register history
//	<addr>:<name>        private scratchpad namespace
//	pnr:<name>           name registry entry
//	kv:<bucket>:<object> key-value object
//
// Every payload is checked against its declared encoding before anything is
// written. Multi-key writes run inside one storage.Keyed.Update.
package primitive
