// Package commands implements the anttp command tree.
//
// Every command opens the engine from --config (plus flag overrides), runs one
// operation against the --intent store and prints JSON on stdout. Errors are
// printed on stderr as {"error":{"code":...,"message":...}}.
//
// Memory stores live for one invocation only; use the disk or network intent
// to keep data between runs.
package commands
