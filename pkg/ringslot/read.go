package ringslot

import (
	"context"
	"fmt"

	"github.com/aep/ringslot/pkg/store"
)

// Read returns the current head's payload (CORE SPEC §4.6).
//
// If h.Empty(), Read returns (nil, false, nil): the "none" sentinel from
// CORE SPEC §6.2, modeled as a Go ok-bool rather than a dedicated zero
// value, the same way [*Cache.Get] in the teacher's pkg/slotcache reports
// "not found" with a bool rather than a sentinel error.
//
// Otherwise Read reads the slot at h.Offset() and compares its header to
// h.Version(); a mismatch means the handle is stale or the media changed
// out from under it, reported as [ErrVersionMismatch].
func (h *Handle) Read(ctx context.Context, s store.Store) ([]byte, bool, error) {
	if h.empty {
		return nil, false, nil
	}

	slotIndex := h.offset / h.stride

	version, payload, err := readSlot(ctx, s, h.baseAddress, h.stride, slotIndex, h.littleEndian)
	if err != nil {
		return nil, false, fmt.Errorf("ringslot: read: %w", err)
	}

	if version != h.version {
		return nil, false, fmt.Errorf("ringslot: read: header has version %d, handle expects %d: %w", version, h.version, ErrVersionMismatch)
	}

	return payload, true, nil
}
