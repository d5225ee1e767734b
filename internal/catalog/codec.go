package catalog

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

const indent = "    "

// storedBook mirrors Book on disk. Pointers detect missing fields.
type storedBook struct {
	ID     *int    `json:"id"`
	Title  *string `json:"title"`
	Author *string `json:"author"`
	Year   *int    `json:"year"`
	Status *string `json:"status"`
}

var errMissingField = errors.New("missing required field")

// encodeBooks renders the catalog document: a pretty-printed JSON array
// with non-ASCII text left unescaped.
func encodeBooks(books []Book) ([]byte, error) {
	if books == nil {
		books = []Book{}
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)

	err := enc.Encode(books)
	if err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}

	return buf.Bytes(), nil
}

// decodeBooks parses a catalog document. Blank input and JSON null decode
// to an empty catalog. Legacy status labels are normalized.
func decodeBooks(data []byte) ([]Book, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var stored []storedBook

	err := json.Unmarshal(data, &stored)
	if err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	books := make([]Book, 0, len(stored))

	for i, entry := range stored {
		book, convErr := entry.toBook()
		if convErr != nil {
			return nil, fmt.Errorf("entry %d: %w", i, convErr)
		}

		books = append(books, book)
	}

	validateErr := validateBooks(books)
	if validateErr != nil {
		return nil, validateErr
	}

	return books, nil
}

func (s *storedBook) toBook() (Book, error) {
	switch {
	case s.ID == nil:
		return Book{}, fmt.Errorf("%w: id", errMissingField)
	case s.Title == nil:
		return Book{}, fmt.Errorf("%w: title", errMissingField)
	case s.Author == nil:
		return Book{}, fmt.Errorf("%w: author", errMissingField)
	case s.Year == nil:
		return Book{}, fmt.Errorf("%w: year", errMissingField)
	case s.Status == nil:
		return Book{}, fmt.Errorf("%w: status", errMissingField)
	}

	status, err := ParseStatus(*s.Status)
	if err != nil {
		return Book{}, err
	}

	return Book{
		ID:     *s.ID,
		Title:  *s.Title,
		Author: *s.Author,
		Year:   *s.Year,
		Status: status,
	}, nil
}
