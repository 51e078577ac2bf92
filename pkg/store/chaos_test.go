package store_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aep/ringslot/pkg/store"
)

func Test_Chaos_Passes_Through_When_Config_Is_Zero_Value(t *testing.T) {
	t.Parallel()

	m := store.NewMem(8, 0xFF)
	c := store.NewChaos(m, store.ChaosConfig{})
	ctx := context.Background()

	require.NoError(t, c.WriteAt(ctx, 0, []byte("abcd")))

	got, err := c.ReadAt(ctx, 0, 4)
	require.NoError(t, err)
	require.Equal(t, []byte("abcd"), got)
}

func Test_Chaos_Injects_Read_Failure_When_Read_Fail_Rate_Is_One(t *testing.T) {
	t.Parallel()

	m := store.NewMem(8, 0xFF)
	c := store.NewChaos(m, store.ChaosConfig{
		ReadFailRate: 1.0,
		Rand:         rand.New(rand.NewPCG(1, 1)),
	})

	_, err := c.ReadAt(context.Background(), 0, 4)
	require.ErrorIs(t, err, store.ErrChaosInjected)
}

func Test_Chaos_Injects_Write_Failure_When_Write_Fail_Rate_Is_One(t *testing.T) {
	t.Parallel()

	m := store.NewMem(8, 0xFF)
	c := store.NewChaos(m, store.ChaosConfig{
		WriteFailRate: 1.0,
		Rand:          rand.New(rand.NewPCG(1, 1)),
	})

	err := c.WriteAt(context.Background(), 0, []byte("abcd"))
	require.ErrorIs(t, err, store.ErrChaosInjected)
}

func Test_Chaos_Torn_Write_Commits_A_Prefix_Before_Failing(t *testing.T) {
	t.Parallel()

	m := store.NewMem(8, 0xFF)
	c := store.NewChaos(m, store.ChaosConfig{
		TornWriteRate: 1.0,
		Rand:          rand.New(rand.NewPCG(1, 1)),
	})

	err := c.WriteAt(context.Background(), 0, []byte{1, 2, 3, 4, 5, 6})
	require.Error(t, err)
	require.True(t, errors.Is(err, store.ErrChaosInjected))

	got, err := m.ReadAt(context.Background(), 0, 8)
	require.NoError(t, err)

	// With TornBeforeHeaderRate 0 the tear lands after the 4-byte header,
	// so at least that prefix is committed.
	require.Equal(t, []byte{1, 2, 3, 4}, got[:4])

	// A torn write never commits more than the requested bytes, and never
	// disturbs bytes outside the write's own range.
	require.Equal(t, byte(0xFF), got[6])
	require.Equal(t, byte(0xFF), got[7])
}

func Test_Chaos_SetConfig_Replaces_Active_Configuration(t *testing.T) {
	t.Parallel()

	m := store.NewMem(8, 0xFF)
	c := store.NewChaos(m, store.ChaosConfig{WriteFailRate: 1.0})

	c.SetConfig(store.ChaosConfig{})

	err := c.WriteAt(context.Background(), 0, []byte("abcd"))
	require.NoError(t, err)
}
