// Package store's implementations are reference collaborators for
// pkg/ringslot, not the subject of this repository.
//
// [Mem] is the fastest and is what pkg/ringslot's own tests use. [File]
// is a minimal real backend for the cmd/ringslotctl CLI. [Chaos] wraps
// either one to exercise pkg/ringslot's Head Finder recovery paths against
// torn writes and transient I/O failures.
package store
