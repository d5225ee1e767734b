//go:build unix

package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/shelf/internal/catalog"
)

func Test_Open_Fails_Fast_When_Catalog_Is_Locked(t *testing.T) {
	t.Parallel()

	path := catalogPath(t)

	first, err := catalog.Open(path, catalog.Options{})
	require.NoError(t, err)

	_, err = catalog.Open(path, catalog.Options{})
	require.ErrorIs(t, err, catalog.ErrLocked)

	require.NoError(t, first.Close())

	second, err := catalog.Open(path, catalog.Options{})
	require.NoError(t, err)
	assert.NoError(t, second.Close())
}

func Test_Open_Without_Lock_Ignores_Held_Lock(t *testing.T) {
	t.Parallel()

	path := catalogPath(t)
	held := openCatalog(t, path)
	mustAdd(t, held, "Dune", "Frank Herbert", 1965)

	reader, err := catalog.Open(path, catalog.Options{NoLock: true})
	require.NoError(t, err)
	assert.Equal(t, 1, reader.Len())
}

func Test_Catalog_Takes_Lock_On_First_Write_When_Directory_Was_Missing(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "books.json")
	cat := openCatalog(t, path)

	_, err := os.Stat(path + ".lock")
	require.True(t, os.IsNotExist(err), "no lock file before the first write")

	mustAdd(t, cat, "Dune", "Frank Herbert", 1965)

	_, err = os.Stat(path + ".lock")
	require.NoError(t, err)

	_, err = catalog.Open(path, catalog.Options{})
	require.ErrorIs(t, err, catalog.ErrLocked)
}
