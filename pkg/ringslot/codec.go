package ringslot

import (
	"context"
	"encoding/binary"
	"fmt"

	"github.com/aep/ringslot/pkg/store"
)

// byteOrder returns the configured header byte order, matching
// encoding/binary's ByteOrder interface the way the teacher's
// pkg/slotcache/format.go uses it for every multi-byte header field.
func byteOrder(littleEndian bool) binary.ByteOrder {
	if littleEndian {
		return binary.LittleEndian
	}

	return binary.BigEndian
}

// decodeVersion reads the 4-byte header out of a slot-sized (or larger)
// buffer's first HeaderSize bytes.
func decodeVersion(buf []byte, littleEndian bool) uint32 {
	return byteOrder(littleEndian).Uint32(buf[:HeaderSize])
}

// readVersion reads just the version header of the slot at the given
// physical slot index (CORE SPEC §4.2, readVersion).
func readVersion(ctx context.Context, s store.Store, baseAddress, stride uint32, slotIndex uint32, littleEndian bool) (uint32, error) {
	addr := baseAddress + slotIndex*stride

	buf, err := s.ReadAt(ctx, addr, HeaderSize)
	if err != nil {
		return 0, fmt.Errorf("ringslot: read version at slot %d: %w", slotIndex, err)
	}

	return decodeVersion(buf, littleEndian), nil
}

// readSlot reads a full slot (header + payload) at the given physical slot
// index and splits it into (version, payload) per CORE SPEC §4.2, readSlot.
//
// The returned payload is a fresh slice owned by the caller; it never
// aliases the Store's internal buffers (CORE SPEC §9, "Payload view
// lifetime").
func readSlot(ctx context.Context, s store.Store, baseAddress, stride uint32, slotIndex uint32, littleEndian bool) (version uint32, payload []byte, err error) {
	addr := baseAddress + slotIndex*stride

	buf, err := s.ReadAt(ctx, addr, stride)
	if err != nil {
		return 0, nil, fmt.Errorf("ringslot: read slot %d: %w", slotIndex, err)
	}

	version = decodeVersion(buf, littleEndian)

	payload = make([]byte, stride-HeaderSize)
	copy(payload, buf[HeaderSize:])

	return version, payload, nil
}

// encodeSlotBlock builds the stride-prefixed header+payload block for a
// single write call. Concatenating header and payload into one buffer
// before calling Store.WriteAt keeps the write atomic from the Store's
// perspective (CORE SPEC §4.2: "single write call").
func encodeSlotBlock(version uint32, payload []byte, stride uint32, littleEndian bool) []byte {
	block := make([]byte, stride)
	byteOrder(littleEndian).PutUint32(block[:HeaderSize], version)
	copy(block[HeaderSize:], payload)

	return block
}
