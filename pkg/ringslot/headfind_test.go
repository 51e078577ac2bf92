package ringslot_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/aep/ringslot/pkg/ringslot"
	"github.com/aep/ringslot/pkg/store"
)

// S5: re-initializing after a wrap with the default (binary) head finder
// reproduces exactly the handle the writer's own bookkeeping already had.
func Test_Init_After_Wrap_Reproduces_Writer_Handle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	opts := ringslot.Options{Stride: 8}
	m, h := openFresh(t, 64, opts)

	for i := 0; i < 21; i++ {
		require.NoError(t, h.Write(ctx, m, []byte{7, 8, 9, 0}))
	}

	reopened, err := ringslot.Init(ctx, m, 64, opts)
	require.NoError(t, err)

	require.Empty(t, cmp.Diff(h.Stat(), reopened.Stat()))
}

// R2: two successive Init calls with no intervening writes agree.
func Test_Init_Twice_Without_Writes_Returns_Equal_Handles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	opts := ringslot.Options{Stride: 8}
	m, h := openFresh(t, 64, opts)

	for i := 0; i < 5; i++ {
		require.NoError(t, h.Write(ctx, m, []byte{1, 2, 3, 4}))
	}

	first, err := ringslot.Init(ctx, m, 64, opts)
	require.NoError(t, err)

	second, err := ringslot.Init(ctx, m, 64, opts)
	require.NoError(t, err)

	require.Empty(t, cmp.Diff(first.Stat(), second.Stat()))
}

// P5: linear and binary head recovery must agree on every ring produced
// by format-then-write, across a range of write counts that exercise
// "never wrapped", "wrapped once", and "wrapped several times".
func Test_Linear_And_Binary_Head_Finders_Agree(t *testing.T) {
	t.Parallel()

	const stride = 8
	const byteLength = 64
	const slotCount = byteLength / stride

	for writes := 0; writes <= 3*slotCount+2; writes++ {
		writes := writes
		t.Run(tname(writes), func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			m := store.NewMem(byteLength, 0x00)

			binOpts := ringslot.Options{Stride: stride}
			require.NoError(t, ringslot.Format(ctx, m, byteLength, binOpts))

			h, err := ringslot.Init(ctx, m, byteLength, binOpts)
			require.NoError(t, err)

			for i := 0; i < writes; i++ {
				require.NoError(t, h.Write(ctx, m, []byte{byte(i)}))
			}

			binary, err := ringslot.Init(ctx, m, byteLength, binOpts)
			require.NoError(t, err)

			linearOpts := binOpts
			linearOpts.FullScan = true

			linear, err := ringslot.Init(ctx, m, byteLength, linearOpts)
			require.NoError(t, err)

			require.Equal(t, binary.Empty(), linear.Empty())
			require.Equal(t, binary.Version(), linear.Version())
			require.Equal(t, binary.Offset(), linear.Offset())
		})
	}
}

// Single-slot ring: step 1 of the binary algorithm either returns empty or
// step 4 returns slot 0 directly, since lo == hi == 0 immediately.
func Test_Binary_Head_Finder_Single_Slot_Ring(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	opts := ringslot.Options{Stride: 8}
	m, h := openFresh(t, 8, opts)

	empty, err := ringslot.Init(ctx, m, 8, opts)
	require.NoError(t, err)
	require.True(t, empty.Empty())

	require.NoError(t, h.Write(ctx, m, []byte{1}))

	reopened, err := ringslot.Init(ctx, m, 8, opts)
	require.NoError(t, err)
	require.False(t, reopened.Empty())
	require.Equal(t, uint32(0), reopened.Offset())
	require.Equal(t, uint32(0), reopened.Version())
}

// Exactly one non-erased slot at position 0: every probed mid slot is
// erased, so rule 3c keeps narrowing hi until lo == hi == 0 and step 4
// returns slot 0.
func Test_Binary_Head_Finder_One_Written_Slot_Of_Many(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	opts := ringslot.Options{Stride: 8}
	m, h := openFresh(t, 64, opts)

	require.NoError(t, h.Write(ctx, m, []byte{1, 2, 3, 4}))

	reopened, err := ringslot.Init(ctx, m, 64, opts)
	require.NoError(t, err)

	require.False(t, reopened.Empty())
	require.Equal(t, uint32(0), reopened.Offset())
	require.Equal(t, uint32(0), reopened.Version())
}

// No wrap yet: the binary search must walk to the true last written slot
// even though the ring is not full.
func Test_Binary_Head_Finder_No_Wrap_Finds_Last_Written_Slot(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	opts := ringslot.Options{Stride: 8}
	m, h := openFresh(t, 64, opts)

	for i := 0; i < 5; i++ {
		require.NoError(t, h.Write(ctx, m, []byte{byte(i)}))
	}

	reopened, err := ringslot.Init(ctx, m, 64, opts)
	require.NoError(t, err)

	require.False(t, reopened.Empty())
	require.Equal(t, uint32(4), reopened.Version())
	require.Equal(t, uint32(4*8), reopened.Offset())
}

func tname(n int) string {
	return "writes=" + strconv.Itoa(n)
}
