package ringslot

import (
	"context"

	"github.com/aep/ringslot/pkg/store"
)

// ListSlots yields every slot in physical order 0..slotCount-1, including
// erased ones (CORE SPEC §4.5, "listSlots"). It requires only layout
// parameters, not a [Handle] — useful for diagnostics or for probing media
// with speculative options before committing to an [Init] call.
//
// An erased slot is yielded with Version == HeaderInitValue32 and an
// all-0xFF Payload, exactly as stored; ListSlots never stops early.
func ListSlots(ctx context.Context, s store.Store, byteLength uint32, opts Options) Seq {
	return func(yield func(SlotRecord, error) bool) {
		normalized, err := opts.normalize()
		if err != nil {
			yield(SlotRecord{}, err)
			return
		}

		count := slotCount(byteLength, normalized.Stride)

		for i := uint32(0); i < count; i++ {
			version, payload, err := readSlot(ctx, s, normalized.BaseAddress, normalized.Stride, i, normalized.LittleEndian)
			if err != nil {
				yield(SlotRecord{}, err)
				return
			}

			if !yield(SlotRecord{Version: version, Payload: payload}, nil) {
				return
			}
		}
	}
}

// List walks the ring backward from the head, newest to oldest, stopping
// at the first erased slot or after a full revolution (CORE SPEC §4.5,
// "list", P6).
//
// If h.Empty(), List yields nothing.
func (h *Handle) List(ctx context.Context, s store.Store) Seq {
	return func(yield func(SlotRecord, error) bool) {
		if h.empty {
			return
		}

		count := h.SlotCount()

		for k := uint32(0); k < count; k++ {
			physOffset := wrapBack(h.offset, k, h.stride, h.byteLength)

			slotIndex := physOffset / h.stride

			version, payload, err := readSlot(ctx, s, h.baseAddress, h.stride, slotIndex, h.littleEndian)
			if err != nil {
				yield(SlotRecord{}, err)
				return
			}

			if version == HeaderInitValue32 {
				return
			}

			if !yield(SlotRecord{Version: version, Payload: payload}, nil) {
				return
			}
		}
	}
}

// wrapBack computes (offset - k*stride + byteLength) mod byteLength, per
// CORE SPEC §4.5's backward-walk formula. The subtraction is carried out in
// 64 bits so it never underflows before the modulo is applied, even though
// k < slotCount guarantees k*stride < byteLength and the result would also
// be safe in 32 bits for any non-pathological layout.
func wrapBack(offset, k, stride, byteLength uint32) uint32 {
	step := uint64(k) * uint64(stride)
	total := uint64(offset) + uint64(byteLength) - step

	return uint32(total % uint64(byteLength))
}
