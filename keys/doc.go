// Package keys holds the node signing identity.
//
// A node signs the pointer records it stores so that a later read can detect
// records altered outside the engine. Signatures are an integrity check, not
// access control: any caller may update any pointer through the engine.
//
// Supported algorithms are ed25519 and dilithium3. Messages are pre-hashed
// (sha256, sha512 or sha3-256) before signing.
package keys
