package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// Field selects which book attribute a search compares against.
type Field string

// Search fields.
const (
	FieldTitle  Field = "title"
	FieldAuthor Field = "author"
	FieldYear   Field = "year"
)

// ParseField parses a search field name.
func ParseField(s string) (Field, error) {
	switch field := Field(strings.TrimSpace(s)); field {
	case FieldTitle, FieldAuthor, FieldYear:
		return field, nil
	default:
		return "", fmt.Errorf("%w: %q (must be %s, %s or %s)", ErrInvalidField, s, FieldTitle, FieldAuthor, FieldYear)
	}
}

// text returns the textual form of the field for book.
// ok is false for an unknown field.
func (f Field) text(book *Book) (string, bool) {
	switch f {
	case FieldTitle:
		return book.Title, true
	case FieldAuthor:
		return book.Author, true
	case FieldYear:
		return strconv.Itoa(book.Year), true
	default:
		return "", false
	}
}
