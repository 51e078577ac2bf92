package ringslot

import (
	"errors"
	"fmt"
)

// Error classification codes (CORE SPEC §7).
//
// Implementations MAY wrap these errors with additional context; callers
// MUST classify errors using errors.Is. There is no sentinel for
// StoreFailure: per CORE SPEC §7 it is "propagated from the backing store
// ... never recovered locally", so failures from the [pkg/store.Store]
// passed in are wrapped with %w and returned as-is rather than coerced into
// a ringslot-owned sentinel.
var (
	// ErrInvalidPayload indicates a write's payload was missing or larger
	// than stride - HeaderSize (CORE SPEC I5).
	ErrInvalidPayload = errors.New("ringslot: invalid payload")

	// ErrOutOfRange classifies a Format asked to cover more bytes than the
	// backing store can hold. No function in this package returns it:
	// Format passes on, wrapped, whatever error the Store's WriteAt returns
	// for an out-of-range write.
	ErrOutOfRange = errors.New("ringslot: out of range")

	// ErrVersionMismatch indicates Read found a header inconsistent with
	// the handle's expected version: a stale handle or concurrent media
	// change (CORE SPEC §4.6).
	ErrVersionMismatch = errors.New("ringslot: version mismatch")

	// ErrInvalidOptions indicates the supplied Options are not usable
	// (e.g. Stride too small to hold a header and a payload byte).
	ErrInvalidOptions = errors.New("ringslot: invalid options")
)

func invalidOptionsf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidOptions)...)
}

func invalidPayloadf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidPayload)...)
}
