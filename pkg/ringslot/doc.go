// Package ringslot turns a byte-addressable, fallible backing store (an
// [pkg/store.Store]) into a circular, wear-leveled "latest-value" ring: a
// log-structured sequence of fixed-size slots in which only the most
// recently written record matters, while older generations stay readable
// in decreasing recency until the ring wraps and overwrites them.
//
// ringslot owns the on-media layout and the algorithms that operate on it —
// the slot header format, head recovery after an unclean restart, the write
// protocol that advances the ring, and reverse-chronological enumeration.
// It never touches a file descriptor, a bus transport, or a lock; those are
// the Store's job (see pkg/store and cmd/ringslotctl for concrete
// backends).
//
// # Basic usage
//
//	err := ringslot.Format(ctx, s, byteLength, opts)
//	h, err := ringslot.Init(ctx, s, byteLength, opts)
//	err = h.Write(ctx, s, []byte("hello"))
//	payload, ok, err := h.Read(ctx, s)
//
// # Recovery
//
// [Init] always reconstructs the current head from the media itself via the
// Head Finder, in either linear or binary mode (see [Options.FullScan]).
// After any sequence of completed writes, a fresh [Handle] obtained after a
// restart ends up identical to the Handle a still-running process would
// have. If a write was interrupted mid-program, the next Init may instead
// elect the torn slot (when its header landed, or when a partial header
// compares as newest) rather than the last completed generation, and the
// interrupted payload is never guaranteed to survive intact (see the
// Test_Init_*_Torn_* recovery tests).
//
// # Concurrency
//
// There is none, by design. A single goroutine drives a single [Handle]
// sequentially; concurrent writers (or a writer racing a reader) to the
// same partition produce undefined on-media state, the same way two
// processes racing an EEPROM page write would. Callers that need mutual
// exclusion provide it themselves, the same way callers partition disjoint
// address ranges themselves for independent rings.
package ringslot
