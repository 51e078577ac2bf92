package ringslot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aep/ringslot/pkg/store"
)

// Format writes HeaderInitValue8 to every byte in
// [opts.BaseAddress, opts.BaseAddress+byteLength) via a single Store.WriteAt
// call, erasing the partition (CORE SPEC §4.7, I1).
//
// Format does not produce a [Handle]; call [Init] afterward to open one.
//
// Possible errors: [ErrOutOfRange] is never raised directly by Format
// itself — an out-of-range byteLength surfaces as whatever error the Store
// returns from WriteAt, since bounds checking belongs to the Store
// (CORE SPEC §4.1). Format wraps that error for context.
func Format(ctx context.Context, s store.Store, byteLength uint32, opts Options) error {
	fill := bytes.Repeat([]byte{HeaderInitValue8}, int(byteLength))

	err := s.WriteAt(ctx, opts.BaseAddress, fill)
	if err != nil {
		return fmt.Errorf("ringslot: format %d bytes at %d: %w", byteLength, opts.BaseAddress, err)
	}

	return nil
}
