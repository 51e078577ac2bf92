package ringslot

// Constants fixed by the on-media layout (CORE SPEC §6.4).
const (
	// HeaderSize is the width of the version header in bytes.
	HeaderSize = 4

	// HeaderInitValue8 is the byte value of an erased (never-written) byte.
	HeaderInitValue8 = 0xFF

	// HeaderInitValue32 is the version value of an erased slot header.
	HeaderInitValue32 = 0xFFFF_FFFF
)

// Options configures a partition's layout. The zero value is usable: a
// Stride of 0 is replaced by the default stride, and the other zero fields
// already equal [DefaultOptions]. Fields are set explicitly, the same way the teacher's pkg/slotcache.Options is built up from
// explicit fields rather than functional options — there are few enough
// knobs here that a functional-options API would only add indirection.
type Options struct {
	// BaseAddress is the first byte of the partition within the Store.
	BaseAddress uint32

	// Stride is the slot size in bytes, header included. Must be >= 5
	// (HeaderSize + 1): a slot must hold at least one payload byte.
	Stride uint32

	// LittleEndian selects the byte order of the version header. Defaults
	// to false (big-endian) per [DefaultOptions].
	LittleEndian bool

	// FullScan selects the Head Finder strategy: linear (true) or binary
	// (false, the default). Binary recovery is O(log slotCount) store
	// reads; linear recovery reads every slot and is only worth choosing
	// when the medium's read cost is uniform and very cheap, or as a
	// cross-check against binary mode (see CORE SPEC P5).
	FullScan bool
}

// DefaultOptions returns the options CORE SPEC §6.3 lists as defaults:
// BaseAddress 0, Stride 32, big-endian headers, binary head recovery.
func DefaultOptions() Options {
	return Options{
		BaseAddress:  0,
		Stride:       32,
		LittleEndian: false,
		FullScan:     false,
	}
}

// normalize fills in zero-valued fields with defaults and validates the
// result. A Stride of 0 is treated as "unset" and defaulted to 32, matching
// the pattern of optional fields in the teacher's Options types; every
// other field is used as given once Stride is resolved.
func (o Options) normalize() (Options, error) {
	if o.Stride == 0 {
		o.Stride = DefaultOptions().Stride
	}

	if o.Stride < HeaderSize+1 {
		return Options{}, invalidOptionsf("stride %d must be >= %d", o.Stride, HeaderSize+1)
	}

	return o, nil
}

// slotCount returns floor(byteLength / stride) per CORE SPEC §3.
func slotCount(byteLength uint32, stride uint32) uint32 {
	return byteLength / stride
}

// Handle is the in-memory state describing an opened partition (CORE SPEC
// §3, "The Handle entity"). It is produced by [Init], mutated only by
// [Handle.Write], and owned exclusively by the caller — there is no
// shared/concurrent mutation path, unlike the teacher's Cache/Writer split,
// because this spec has no concurrency model of its own (see CORE SPEC §5).
type Handle struct {
	baseAddress uint32
	byteLength  uint32
	stride      uint32

	littleEndian bool
	fullScan     bool

	empty   bool
	version uint32
	offset  uint32
}

// BaseAddress returns the partition's first byte address.
func (h *Handle) BaseAddress() uint32 { return h.baseAddress }

// ByteLength returns the partition size in bytes.
func (h *Handle) ByteLength() uint32 { return h.byteLength }

// Stride returns the configured slot size in bytes.
func (h *Handle) Stride() uint32 { return h.stride }

// SlotCount returns the number of slots the partition is divided into.
func (h *Handle) SlotCount() uint32 { return slotCount(h.byteLength, h.stride) }

// Empty reports whether no non-erased slot has been found yet.
func (h *Handle) Empty() bool { return h.empty }

// Version returns the current head's version, or 0 when [Handle.Empty].
func (h *Handle) Version() uint32 { return h.version }

// Offset returns the current head's byte offset relative to BaseAddress,
// or 0 when [Handle.Empty].
func (h *Handle) Offset() uint32 { return h.offset }

// LittleEndian reports the header byte order this Handle was opened with.
func (h *Handle) LittleEndian() bool { return h.littleEndian }

// FullScan reports whether this Handle recovers its head via linear scan
// rather than binary search.
func (h *Handle) FullScan() bool { return h.fullScan }

// Stat is a read-only snapshot of a Handle's state, useful for diagnostics
// without exposing the Handle itself for mutation. It has no analogue in
// CORE SPEC's Handle table; it exists purely as a convenience accessor,
// grounded on the teacher's pkg/slotcache cheap-accessor style (Generation,
// Len) for exposing internal counters without a full operation.
type Stat struct {
	BaseAddress uint32
	ByteLength  uint32
	Stride      uint32
	SlotCount   uint32

	Empty   bool
	Version uint32
	Offset  uint32
}

// Stat returns a snapshot of the handle's current state.
func (h *Handle) Stat() Stat {
	return Stat{
		BaseAddress: h.baseAddress,
		ByteLength:  h.byteLength,
		Stride:      h.stride,
		SlotCount:   h.SlotCount(),
		Empty:       h.empty,
		Version:     h.version,
		Offset:      h.offset,
	}
}

// SlotRecord is one (version, payload) pair yielded by [Handle.List] and
// [ListSlots].
//
// Payload is a fresh copy on every yield — it does not alias the Store's
// internal buffers or any previous yield, so callers may retain it past the
// next loop iteration (see CORE SPEC §9, "Payload view lifetime": this
// implementation always copies rather than documenting a borrow).
type SlotRecord struct {
	Version uint32
	Payload []byte
}

// Seq is a push-style iterator matching the shape of iter.Seq2[SlotRecord,
// error], so callers can range over it directly:
//
//	for rec, err := range ringslot.ListSlots(ctx, s, byteLength, opts) {
//	    if err != nil {
//	        break
//	    }
//	    ...
//	}
//
// This package avoids importing iter directly, the same way the teacher's
// pkg/slotcache.Seq avoids it while matching iter.Seq's shape.
type Seq func(yield func(SlotRecord, error) bool)
