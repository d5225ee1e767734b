package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calvinalkan/shelf/internal/catalog"
)

func Test_ParseStatus_Accepts_Canonical_And_Legacy_Labels(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		input string
		want  catalog.Status
	}{
		{input: "available", want: catalog.StatusAvailable},
		{input: "checked_out", want: catalog.StatusCheckedOut},
		{input: "  checked_out ", want: catalog.StatusCheckedOut},
		{input: "в наличии", want: catalog.StatusAvailable},
		{input: "выдана", want: catalog.StatusCheckedOut},
	}

	for _, testCase := range testCases {
		t.Run(testCase.input, func(t *testing.T) {
			t.Parallel()

			got, err := catalog.ParseStatus(testCase.input)
			require.NoError(t, err)
			assert.Equal(t, testCase.want, got)
		})
	}
}

func Test_ParseStatus_Rejects_Unknown_Values(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "lost", "Available", "checked out"} {
		_, err := catalog.ParseStatus(input)
		require.ErrorIs(t, err, catalog.ErrInvalidStatus, "input %q", input)
		assert.Contains(t, err.Error(), "available")
		assert.Contains(t, err.Error(), "checked_out")
	}
}

func Test_ParseField_Accepts_Only_Title_Author_Year(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"title", "author", "year"} {
		field, err := catalog.ParseField(name)
		require.NoError(t, err)
		assert.Equal(t, catalog.Field(name), field)
	}

	for _, name := range []string{"", "id", "status", "Title"} {
		_, err := catalog.ParseField(name)
		require.ErrorIs(t, err, catalog.ErrInvalidField, "field %q", name)
	}
}

func Test_Book_String_Formats_Listing_Line(t *testing.T) {
	t.Parallel()

	book := catalog.Book{ID: 7, Title: "Dune", Author: "Frank Herbert", Year: 1965, Status: catalog.StatusCheckedOut}

	assert.Equal(t, "7 [checked_out] Dune - Frank Herbert (1965)", book.String())
}
