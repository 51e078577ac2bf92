package ringslot_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aep/ringslot/pkg/ringslot"
)

func Test_Read_On_Empty_Handle_Returns_None(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, h := openFresh(t, 64, ringslot.Options{Stride: 8})

	payload, ok, err := h.Read(ctx, nil)
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, payload)
}

// P4: Read returns exactly the payload bytes of the most recent write,
// padded on the right with the zero bytes the stride-sized write block
// carries past the payload (the slot held 0xFF before the write).
func Test_Read_Returns_Payload_Zero_Padded_To_Slot_Size(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m, h := openFresh(t, 64, ringslot.Options{Stride: 8})

	require.NoError(t, h.Write(ctx, m, []byte{0xAB}))

	payload, ok, err := h.Read(ctx, m)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte{0xAB, 0x00, 0x00, 0x00}, payload)
}

func Test_Read_Detects_Version_Mismatch_From_Stale_Handle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	opts := ringslot.Options{Stride: 8}
	m, h := openFresh(t, 64, opts)

	require.NoError(t, h.Write(ctx, m, []byte{1, 2, 3, 4}))

	stale, err := ringslot.Init(ctx, m, 64, opts)
	require.NoError(t, err)

	require.NoError(t, h.Write(ctx, m, []byte{5, 6, 7, 8}))
	require.NoError(t, h.Write(ctx, m, []byte{9, 9, 9, 9}))

	_, _, err = stale.Read(ctx, m)
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		require.NoError(t, h.Write(ctx, m, []byte{0}))
	}

	_, _, err = stale.Read(ctx, m)
	require.ErrorIs(t, err, ringslot.ErrVersionMismatch)
}
