package ringslot_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aep/ringslot/pkg/ringslot"
	"github.com/aep/ringslot/pkg/store"
)

func Test_Format_Fills_Entire_Partition_With_Erased_Byte(t *testing.T) {
	t.Parallel()

	m := store.NewMem(64, 0x00)
	ctx := context.Background()

	require.NoError(t, ringslot.Format(ctx, m, 64, ringslot.DefaultOptions()))

	want := bytes.Repeat([]byte{0xFF}, 64)
	require.Equal(t, want, m.Bytes())
}

func Test_Format_Only_Touches_Bytes_Within_The_Partition(t *testing.T) {
	t.Parallel()

	m := store.NewMem(16, 0x00)
	ctx := context.Background()

	opts := ringslot.DefaultOptions()
	opts.BaseAddress = 4

	require.NoError(t, ringslot.Format(ctx, m, 8, opts))

	got := m.Bytes()
	require.Equal(t, byte(0x00), got[0])
	require.Equal(t, byte(0xFF), got[4])
	require.Equal(t, byte(0xFF), got[11])
	require.Equal(t, byte(0x00), got[12])
}
