package ringslot

import (
	"context"
	"fmt"

	"github.com/aep/ringslot/pkg/store"
)

// Init opens a partition by recovering its head via the Head Finder
// (CORE SPEC §4.3, §6.2).
//
// On a freshly formatted partition, Init returns a Handle with Empty true,
// Version 0, and Offset 0 (CORE SPEC P2). On a partition whose prior writes
// all completed, Init reconstructs the same (version, offset) a live Handle
// would already know (CORE SPEC R1, R2); after an interrupted write it may
// elect the torn slot instead (see the package doc's Recovery section).
//
// Possible errors: [ErrInvalidOptions] if Stride is below HeaderSize+1 or
// byteLength is too small to hold one slot of Stride bytes; otherwise
// whatever the Store's ReadAt returns, wrapped for context.
func Init(ctx context.Context, s store.Store, byteLength uint32, opts Options) (*Handle, error) {
	normalized, err := opts.normalize()
	if err != nil {
		return nil, err
	}

	count := slotCount(byteLength, normalized.Stride)
	if count < 1 {
		return nil, invalidOptionsf("byte_length %d too small for stride %d", byteLength, normalized.Stride)
	}

	result, err := findHead(ctx, s, normalized.BaseAddress, normalized.Stride, count, normalized.FullScan, normalized.LittleEndian)
	if err != nil {
		return nil, fmt.Errorf("ringslot: init: %w", err)
	}

	return &Handle{
		baseAddress:  normalized.BaseAddress,
		byteLength:   byteLength,
		stride:       normalized.Stride,
		littleEndian: normalized.LittleEndian,
		fullScan:     normalized.FullScan,
		empty:        result.empty,
		version:      result.version,
		offset:       result.offset,
	}, nil
}
