package repo_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/triplog/internal/repo"
)

// runMediumContract exercises the behaviour every Medium must share.
// Each implementation's test calls it with a fresh, empty medium.
func runMediumContract(t *testing.T, m repo.Medium) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		_, err := m.Load(ctx, "never_written")
		assert.ErrorIs(t, err, repo.ErrKeyNotFound)
	})

	t.Run("save then load", func(t *testing.T) {
		require.NoError(t, m.Save(ctx, "trip_records", []byte(`[{"id":"a"}]`)))

		got, err := m.Load(ctx, "trip_records")
		require.NoError(t, err)
		assert.Equal(t, `[{"id":"a"}]`, string(got))
	})

	t.Run("save replaces", func(t *testing.T) {
		require.NoError(t, m.Save(ctx, "vehicleList", []byte(`["MH12"]`)))
		require.NoError(t, m.Save(ctx, "vehicleList", []byte(`["MH12","KA01"]`)))

		got, err := m.Load(ctx, "vehicleList")
		require.NoError(t, err)
		assert.Equal(t, `["MH12","KA01"]`, string(got))
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, m.Save(ctx, "k1", []byte("one")))
		require.NoError(t, m.Save(ctx, "k2", []byte("two")))

		got, err := m.Load(ctx, "k1")
		require.NoError(t, err)
		assert.Equal(t, "one", string(got))
	})
}

func TestMemoryMedium(t *testing.T) {
	runMediumContract(t, repo.NewMemoryMedium())
}

func TestMemoryMedium_ReturnsCopies(t *testing.T) {
	m := repo.NewMemoryMedium()
	ctx := context.Background()

	value := []byte("abc")
	require.NoError(t, m.Save(ctx, "k", value))
	value[0] = 'X' // caller mutates its own buffer after saving

	got, err := m.Load(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileMedium(t *testing.T) {
	m, err := repo.NewFileMedium(t.TempDir())
	require.NoError(t, err)

	runMediumContract(t, m)
}

func TestFileMedium_WritesOneFilePerKey(t *testing.T) {
	dir := t.TempDir()
	m, err := repo.NewFileMedium(dir)
	require.NoError(t, err)

	require.NoError(t, m.Save(context.Background(), "trip_records", []byte("[]")))

	b, err := os.ReadFile(filepath.Join(dir, "trip_records.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	// No temp files are left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileMedium_RejectsPathKeys(t *testing.T) {
	m, err := repo.NewFileMedium(t.TempDir())
	require.NoError(t, err)

	err = m.Save(context.Background(), "../escape", []byte("x"))
	assert.Error(t, err)
}

func TestFileMedium_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	_, err := repo.NewFileMedium(dir)

	require.NoError(t, err)
	assert.DirExists(t, dir)
}

func TestSQLiteMedium(t *testing.T) {
	m, db, err := repo.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "triplog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	runMediumContract(t, m)
}

func TestSQLiteMedium_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triplog.db")
	ctx := context.Background()

	m, db, err := repo.OpenSQLite(ctx, path)
	require.NoError(t, err)
	require.NoError(t, m.Save(ctx, "trip_records", []byte(`[]`)))
	require.NoError(t, db.Close())

	// Reopening runs migrations again; they must be a no-op.
	m, db, err = repo.OpenSQLite(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	got, err := m.Load(ctx, "trip_records")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}
