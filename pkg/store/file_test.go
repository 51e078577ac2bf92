package store_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aep/ringslot/pkg/store"
)

func Test_CreateFile_Fills_New_Partition_With_Erased_Byte(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "partition.bin")

	f, err := store.CreateFile(path, 16)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.ReadAt(context.Background(), 0, 16)
	require.NoError(t, err)

	want := make([]byte, 16)
	for i := range want {
		want[i] = 0xFF
	}

	require.Equal(t, want, got)
}

func Test_File_WriteAt_Then_ReadAt_Round_Trips(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "partition.bin")

	f, err := store.CreateFile(path, 32)
	require.NoError(t, err)
	defer f.Close()

	ctx := context.Background()

	require.NoError(t, f.WriteAt(ctx, 8, []byte("hello, ring")))

	got, err := f.ReadAt(ctx, 8, 11)
	require.NoError(t, err)
	require.Equal(t, []byte("hello, ring"), got)
}

func Test_OpenFile_Returns_Error_When_Path_Does_Not_Exist(t *testing.T) {
	t.Parallel()

	_, err := store.OpenFile(filepath.Join(t.TempDir(), "missing.bin"))
	require.Error(t, err)
}

func Test_OpenFile_Reopens_File_Created_By_CreateFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "partition.bin")

	created, err := store.CreateFile(path, 16)
	require.NoError(t, err)

	require.NoError(t, created.WriteAt(context.Background(), 0, []byte("hi")))
	require.NoError(t, created.Close())

	reopened, err := store.OpenFile(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.ReadAt(context.Background(), 0, 2)
	require.NoError(t, err)
	require.Equal(t, []byte("hi"), got)
}
