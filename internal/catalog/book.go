package catalog

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Status is the availability state of a book.
type Status string

// Status constants.
const (
	StatusAvailable  Status = "available"
	StatusCheckedOut Status = "checked_out"
)

// Older catalog files stored localized labels. They are still accepted as
// input and normalized on load, but never written.
var legacyStatusLabels = map[string]Status{
	"в наличии": StatusAvailable,
	"выдана":    StatusCheckedOut,
}

// Valid reports whether s is one of the enumerated statuses.
func (s Status) Valid() bool {
	return s == StatusAvailable || s == StatusCheckedOut
}

// ParseStatus parses a status name or one of its legacy labels.
func ParseStatus(s string) (Status, error) {
	value := strings.TrimSpace(s)

	if status := Status(value); status.Valid() {
		return status, nil
	}

	if status, ok := legacyStatusLabels[value]; ok {
		return status, nil
	}

	return "", fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidStatus, s, StatusAvailable, StatusCheckedOut)
}

// Book is a single catalog entry.
type Book struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Year   int    `json:"year"`
	Status Status `json:"status"`
}

// String formats the book as a single listing line.
func (b Book) String() string {
	var builder strings.Builder

	builder.WriteString(strconv.Itoa(b.ID))
	builder.WriteString(" [")
	builder.WriteString(string(b.Status))
	builder.WriteString("] ")
	builder.WriteString(b.Title)
	builder.WriteString(" - ")
	builder.WriteString(b.Author)
	builder.WriteString(" (")
	builder.WriteString(strconv.Itoa(b.Year))
	builder.WriteString(")")

	return builder.String()
}

func validateNewBook(title, author string, year int) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidBook)
	}

	if strings.TrimSpace(author) == "" {
		return fmt.Errorf("%w: author is required", ErrInvalidBook)
	}

	if year < 0 {
		return fmt.Errorf("%w: year must be non-negative (got %d)", ErrInvalidBook, year)
	}

	return nil
}

// validateBooks checks a complete record sequence, as read from disk or a
// backup: every record well-formed, ids positive and unique.
func validateBooks(books []Book) error {
	seen := make(map[int]bool, len(books))

	for i, book := range books {
		if book.ID <= 0 {
			return fmt.Errorf("%w: entry %d: id must be positive (got %d)", ErrInvalidBook, i, book.ID)
		}

		if seen[book.ID] {
			return fmt.Errorf("%w: entry %d: duplicate id %d", ErrInvalidBook, i, book.ID)
		}

		seen[book.ID] = true

		err := validateNewBook(book.Title, book.Author, book.Year)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}

		if !book.Status.Valid() {
			return fmt.Errorf("%w: entry %d: %q", ErrInvalidStatus, i, book.Status)
		}
	}

	return nil
}

// nextID returns one past the highest id. ErrIDsExhausted is returned when
// the highest id is already the largest int.
func nextID(books []Book) (int, error) {
	highest := 0

	for _, book := range books {
		highest = max(highest, book.ID)
	}

	if highest == math.MaxInt {
		return 0, fmt.Errorf("%w: highest id is %d", ErrIDsExhausted, highest)
	}

	return highest + 1, nil
}
