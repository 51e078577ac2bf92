package ringslot

import (
	"context"
	"fmt"

	"github.com/aep/ringslot/pkg/store"
)

// Write commits payload as a new generation and advances h to point at it
// (CORE SPEC §4.4, the Ring Writer).
//
// On the very first write to a freshly formatted partition, the new
// generation occupies slot 0 at version 0 (CORE SPEC P3, S1). Every
// subsequent write advances to the next physical slot, wrapping to slot 0
// once the ring is full, and increments the version by one — never
// resetting it, even across a wrap (CORE SPEC I2, S3, S4).
//
// On success h is mutated in place; the caller owns h exclusively for the
// duration of the call (CORE SPEC §9, "Handle mutation vs. return"). On
// failure h is left unchanged: the media may be in any state, including a
// partially written slot, but the next [Init] will reconcile it via the
// Head Finder (CORE SPEC §4.4, "On failure").
//
// Possible errors: [ErrInvalidPayload] if payload is empty or
// len(payload)+HeaderSize exceeds h.Stride(); otherwise whatever the
// Store's WriteAt returns, wrapped for context.
func (h *Handle) Write(ctx context.Context, s store.Store, payload []byte) error {
	if len(payload) == 0 {
		return invalidPayloadf("payload must be non-empty")
	}

	if uint32(len(payload))+HeaderSize > h.stride {
		return invalidPayloadf("payload length %d exceeds stride-%d capacity %d", len(payload), HeaderSize, h.stride-HeaderSize)
	}

	nextOffset, nextVersion := nextSlot(h)

	block := encodeSlotBlock(nextVersion, payload, h.stride, h.littleEndian)

	err := s.WriteAt(ctx, h.baseAddress+nextOffset, block)
	if err != nil {
		return fmt.Errorf("ringslot: write at offset %d: %w", nextOffset, err)
	}

	h.offset = nextOffset
	h.version = nextVersion
	h.empty = false

	return nil
}

// nextSlot computes where the next write lands and what version it
// carries, per CORE SPEC §4.4's "Compute the next position".
func nextSlot(h *Handle) (offset uint32, version uint32) {
	if h.empty {
		return h.offset, h.version
	}

	wrap := h.offset+h.stride >= h.byteLength
	if wrap {
		return 0, h.version + 1
	}

	return h.offset + h.stride, h.version + 1
}
