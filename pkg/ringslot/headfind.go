package ringslot

import (
	"context"

	"github.com/aep/ringslot/pkg/store"
)

// headResult is the outcome of a Head Finder run (CORE SPEC §4.3).
type headResult struct {
	version uint32
	offset  uint32
	empty   bool
}

// findHead recovers (version, offset, empty) by scanning the ring according
// to the configured strategy. Both strategies must agree on every ring
// produced by format-then-write (CORE SPEC P5); tests exercise that
// agreement directly rather than trusting it by inspection.
func findHead(ctx context.Context, s store.Store, baseAddress, stride uint32, count uint32, fullScan bool, littleEndian bool) (headResult, error) {
	if fullScan {
		return findHeadLinear(ctx, s, baseAddress, stride, count, littleEndian)
	}

	return findHeadBinary(ctx, s, baseAddress, stride, count, littleEndian)
}

// findHeadLinear implements CORE SPEC §4.3's linear mode: scan slots in
// physical order, tracking the maximum version seen, and stop at the first
// erased slot.
//
// Early termination on the first erased slot relies on the invariant that,
// short of media corruption, the ring fills in increasing physical order
// from slot 0 until the first wrap — a gap can only mean "everything from
// here on is still erased" or corruption, and this implementation treats
// both the same way (CORE SPEC §4.3, "Rationale for early termination").
func findHeadLinear(ctx context.Context, s store.Store, baseAddress, stride uint32, count uint32, littleEndian bool) (headResult, error) {
	result := headResult{empty: true}
	seenAny := false

	for i := uint32(0); i < count; i++ {
		version, err := readVersion(ctx, s, baseAddress, stride, i, littleEndian)
		if err != nil {
			return headResult{}, err
		}

		if version == HeaderInitValue32 {
			break
		}

		if !seenAny || version > result.version {
			result = headResult{version: version, offset: i * stride, empty: false}
		}

		seenAny = true
	}

	return result, nil
}

// findHeadBinary implements CORE SPEC §4.3's binary mode: locate the head
// in O(log slotCount) header reads by exploiting that version values are
// strictly increasing in physical order except across the single wrap
// point, which splits the ring into two increasing runs with every value
// in the newer run ([0, head]) greater than every value in the older run
// ([head+1, count-1]).
//
// Expressed as an iterative (lo, hi, loVersion) loop rather than the
// source's recursive closure, per CORE SPEC §9's design note.
func findHeadBinary(ctx context.Context, s store.Store, baseAddress, stride uint32, count uint32, littleEndian bool) (headResult, error) {
	version0, err := readVersion(ctx, s, baseAddress, stride, 0, littleEndian)
	if err != nil {
		return headResult{}, err
	}

	if version0 == HeaderInitValue32 {
		return headResult{empty: true}, nil
	}

	// lo/hi are tracked as plain int (not uint32) so that "hi = mid - 1"
	// never underflows when mid == lo == 0; the slot indices they carry
	// always fit comfortably since count itself is a uint32 slot count.
	lo, hi := 0, int(count)-1
	loVersion := version0

	for lo < hi {
		mid := lo + (hi-lo)/2

		versionMid, err := readVersion(ctx, s, baseAddress, stride, uint32(mid), littleEndian)
		if err != nil {
			return headResult{}, err
		}

		if versionMid < loVersion || versionMid == HeaderInitValue32 {
			// Head lies in [lo, mid-1]; loVersion is unchanged.
			hi = mid - 1
			continue
		}

		versionMidNext, err := readVersion(ctx, s, baseAddress, stride, uint32(mid+1), littleEndian)
		if err != nil {
			return headResult{}, err
		}

		if versionMid > versionMidNext || versionMidNext == HeaderInitValue32 {
			return headResult{version: versionMid, offset: uint32(mid) * stride, empty: false}, nil
		}

		lo = mid + 1
		loVersion = versionMidNext
	}

	return headResult{version: loVersion, offset: uint32(lo) * stride, empty: false}, nil
}
