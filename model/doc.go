// Package model defines the boundary types shared by the engine, the
// primitive stores and any transport layered on top of them.
//
// Addresses are lowercase hex strings. Content fields carry the encoding the
// primitive declares (hex for registers and graph entries, base64 for chunks,
// scratchpads and key-value objects); the engine validates them before any
// mutation.
package model
