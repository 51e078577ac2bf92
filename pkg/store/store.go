// Package store provides the backing-store capability that pkg/ringslot
// consumes, plus a handful of concrete implementations for testing and
// production use.
//
// The core package (pkg/ringslot) never touches a file descriptor, a mmap, or
// a bus transport directly; it only calls [Store.ReadAt] and [Store.WriteAt].
// This package owns everything downstream of that boundary: an in-memory
// store for unit tests ([Mem]), an os-file-backed store for real partitions
// ([File]), and a fault-injecting wrapper ([Chaos]) used to exercise the
// core's recovery algorithms against torn writes.
package store

import "context"

// Store is the narrow capability pkg/ringslot requires of a backing medium.
//
// Implementations may be byte-addressable non-volatile memory (EEPROM,
// FRAM) behind an I2C/SPI transport, a plain file, or an in-memory buffer.
// Bounds checking beyond what the caller has already validated is the
// Store's responsibility; ringslot assumes address+length never overflows
// the partition it was told to use.
//
// ReadAt and WriteAt must be safe for concurrent use by a single caller that
// serializes its own calls; Store does not provide mutual exclusion between
// callers (see pkg/ringslot's concurrency model).
type Store interface {
	// ReadAt returns exactly length bytes starting at address, or an error.
	//
	// The returned slice may alias internal storage; callers that need to
	// retain the bytes past the next Store call must copy them.
	ReadAt(ctx context.Context, address uint32, length uint32) ([]byte, error)

	// WriteAt writes data verbatim starting at address, or returns an error.
	//
	// A single call to WriteAt is the unit of atomicity the core relies on
	// for header+payload concatenation (see pkg/ringslot's Slot Codec): the
	// store must not interleave bytes from two overlapping WriteAt calls,
	// though it may still fail partway through a single call (torn write).
	WriteAt(ctx context.Context, address uint32, data []byte) error
}
