package catalog_test

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/shelf/internal/catalog"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()

	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func Test_Open_Treats_Missing_Or_Blank_File_As_Empty_Catalog(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content *string
	}{
		{name: "Missing"},
		{name: "Empty", content: ptr("")},
		{name: "Whitespace", content: ptr("  \n\t\n")},
		{name: "Null", content: ptr("null")},
		{name: "EmptyArray", content: ptr("[]")},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			path := catalogPath(t)
			if testCase.content != nil {
				writeFile(t, path, *testCase.content)
			}

			cat := openCatalog(t, path)
			assert.Equal(t, 0, cat.Len())
			assert.NoError(t, cat.LoadIssue())
		})
	}
}

func Test_Open_Treats_Malformed_File_As_Empty_Catalog_With_Issue(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		content string
	}{
		{name: "InvalidJSON", content: `[{"id": 1,`},
		{name: "NotAnArray", content: `{"id": 1}`},
		{name: "MissingStatus", content: `[{"id":1,"title":"T","author":"A","year":1}]`},
		{name: "MissingID", content: `[{"title":"T","author":"A","year":1,"status":"available"}]`},
		{name: "UnknownStatus", content: `[{"id":1,"title":"T","author":"A","year":1,"status":"lost"}]`},
		{name: "DuplicateID", content: `[{"id":1,"title":"T","author":"A","year":1,"status":"available"},` +
			`{"id":1,"title":"U","author":"B","year":2,"status":"available"}]`},
		{name: "ZeroID", content: `[{"id":0,"title":"T","author":"A","year":1,"status":"available"}]`},
		{name: "NegativeYear", content: `[{"id":1,"title":"T","author":"A","year":-5,"status":"available"}]`},
		{name: "EmptyTitle", content: `[{"id":1,"title":"","author":"A","year":1,"status":"available"}]`},
		{name: "StringYear", content: `[{"id":1,"title":"T","author":"A","year":"1999","status":"available"}]`},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			path := catalogPath(t)
			writeFile(t, path, testCase.content)

			cat := openCatalog(t, path)
			assert.Equal(t, 0, cat.Len())
			require.ErrorIs(t, cat.LoadIssue(), catalog.ErrMalformed)
		})
	}
}

func Test_Open_Preserves_Stored_Order_And_Normalizes_Legacy_Status(t *testing.T) {
	t.Parallel()

	path := catalogPath(t)
	writeFile(t, path, `[
    {"id": 5, "title": "Мы", "author": "Евгений Замятин", "year": 1924, "status": "выдана"},
    {"id": 2, "title": "Dune", "author": "Frank Herbert", "year": 1965, "status": "в наличии"},
    {"id": 9, "title": "1984", "author": "George Orwell", "year": 1949, "status": "checked_out", "extra": true}
]`)

	cat := openCatalog(t, path)
	require.NoError(t, cat.LoadIssue())

	want := []catalog.Book{
		{ID: 5, Title: "Мы", Author: "Евгений Замятин", Year: 1924, Status: catalog.StatusCheckedOut},
		{ID: 2, Title: "Dune", Author: "Frank Herbert", Year: 1965, Status: catalog.StatusAvailable},
		{ID: 9, Title: "1984", Author: "George Orwell", Year: 1949, Status: catalog.StatusCheckedOut},
	}
	if diff := cmp.Diff(want, cat.List()); diff != "" {
		t.Fatalf("loaded catalog mismatch (-want +got):\n%s", diff)
	}

	book := mustAdd(t, cat, "Solaris", "Stanisław Lem", 1961)
	assert.Equal(t, 10, book.ID)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "выдана")
	assert.NotContains(t, string(content), "extra")
}

func Test_Catalog_Moves_Malformed_File_Aside_Before_First_Write(t *testing.T) {
	t.Parallel()

	path := catalogPath(t)
	garbage := "this is not json"
	writeFile(t, path, garbage)

	cat := openCatalog(t, path)
	require.ErrorIs(t, cat.LoadIssue(), catalog.ErrMalformed)

	// Reads and no-op mutations leave the file alone.
	found, err := cat.Delete(1)
	require.NoError(t, err)
	assert.False(t, found)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, garbage, string(content))

	mustAdd(t, cat, "Dune", "Frank Herbert", 1965)

	preserved, err := os.ReadFile(path + catalog.TestCorruptSuffix)
	require.NoError(t, err)
	assert.Equal(t, garbage, string(preserved))

	assert.Equal(t, []int{1}, ids(reload(t, path)))

	// Only the first write moves the file aside.
	mustAdd(t, cat, "1984", "George Orwell", 1949)

	preserved, err = os.ReadFile(path + catalog.TestCorruptSuffix)
	require.NoError(t, err)
	assert.Equal(t, garbage, string(preserved))
}

func Test_Catalog_Keeps_Every_Malformed_Copy_When_Moved_Aside_Repeatedly(t *testing.T) {
	t.Parallel()

	path := catalogPath(t)

	for _, garbage := range []string{"{first", "{second", "{third"} {
		writeFile(t, path, garbage)

		cat, err := catalog.Open(path, catalog.Options{})
		require.NoError(t, err)
		require.ErrorIs(t, cat.LoadIssue(), catalog.ErrMalformed)

		mustAdd(t, cat, "Dune", "Frank Herbert", 1965)
		require.NoError(t, cat.Close())
	}

	want := map[string]string{
		catalog.TestCorruptSuffix:        "{first",
		catalog.TestCorruptSuffix + ".1": "{second",
		catalog.TestCorruptSuffix + ".2": "{third",
	}

	for suffix, garbage := range want {
		preserved, err := os.ReadFile(path + suffix)
		require.NoError(t, err, suffix)
		assert.Equal(t, garbage, string(preserved), suffix)
	}
}

func Test_Open_Returns_Error_When_Path_Is_A_Directory(t *testing.T) {
	t.Parallel()

	path := catalogPath(t)
	require.NoError(t, os.Mkdir(path, 0o750))

	_, err := catalog.Open(path, catalog.Options{NoLock: true})
	require.Error(t, err)
}

func ptr(s string) *string {
	return &s
}
