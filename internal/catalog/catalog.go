// Package catalog implements the book catalog: an ordered in-memory list of
// books backed by a single JSON document on disk.
//
// Every mutation is staged on a copy of the list, written to disk as a full
// overwrite, and only then committed in memory. A failed write therefore
// leaves the catalog exactly as it was last persisted.
package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/calvinalkan/shelf/internal/snapshot"
)

const (
	dirPerms  = 0o750
	filePerms = 0o600
)

// corruptSuffix is appended to a malformed catalog file before it is
// first overwritten.
const corruptSuffix = ".corrupt"

// Options configures Open.
type Options struct {
	// NoLock skips the instance lock. Intended for read-only tooling and
	// tests that open the same path twice.
	NoLock bool
}

// Catalog is an open book catalog. It is not safe for concurrent use.
type Catalog struct {
	path      string
	books     []Book
	lock      *instanceLock
	noLock    bool
	loadIssue error
	preserved bool
	closed    bool

	// writeFile replaces the content of path. Swapped in tests.
	writeFile func(path string, data []byte) error
}

// Open loads the catalog stored at path.
//
// A missing, blank or malformed file yields an empty catalog. For a
// malformed file the reason is available from [Catalog.LoadIssue]. Other
// read failures are returned as errors since overwriting an unreadable
// file could destroy data.
//
// The instance lock lives in a sibling "<path>.lock" file which stays on
// disk after Close. If the parent directory does not exist yet, nothing is
// created until the first write.
func Open(path string, opts Options) (*Catalog, error) {
	if path == "" {
		return nil, ErrPathEmpty
	}

	cat := &Catalog{
		path:      path,
		noLock:    opts.NoLock,
		writeFile: writeFileAtomic,
	}

	lockErr := cat.acquire(false)
	if lockErr != nil {
		return nil, lockErr
	}

	loadErr := cat.load()
	if loadErr != nil {
		return nil, errors.Join(loadErr, cat.Close())
	}

	return cat, nil
}

// Path returns the storage location.
func (c *Catalog) Path() string {
	return c.path
}

// LoadIssue returns why the stored document was discarded on load, or nil
// if it was absent or loaded cleanly. The error wraps [ErrMalformed].
func (c *Catalog) LoadIssue() error {
	return c.loadIssue
}

// Close releases the instance lock. Further operations return ErrClosed.
func (c *Catalog) Close() error {
	if c.closed {
		return nil
	}

	c.closed = true

	err := c.lock.release()
	if err != nil {
		return fmt.Errorf("release lock: %w", err)
	}

	return nil
}

// Len returns the number of books.
func (c *Catalog) Len() int {
	return len(c.books)
}

// List returns all books in catalog order.
func (c *Catalog) List() []Book {
	return slices.Clone(c.books)
}

// Get returns the book with the given id.
func (c *Catalog) Get(id int) (Book, error) {
	idx := c.index(id)
	if idx < 0 {
		return Book{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}

	return c.books[idx], nil
}

// Add creates a book with the next free id and status available.
func (c *Catalog) Add(title, author string, year int) (Book, error) {
	if c.closed {
		return Book{}, ErrClosed
	}

	err := validateNewBook(title, author, year)
	if err != nil {
		return Book{}, err
	}

	id, err := nextID(c.books)
	if err != nil {
		return Book{}, err
	}

	book := Book{
		ID:     id,
		Title:  strings.TrimSpace(title),
		Author: strings.TrimSpace(author),
		Year:   year,
		Status: StatusAvailable,
	}

	staged := append(slices.Clone(c.books), book)

	err = c.commit(staged)
	if err != nil {
		return Book{}, err
	}

	return book, nil
}

// Delete removes the book with the given id. Returns false without touching
// storage if no such book exists.
func (c *Catalog) Delete(id int) (bool, error) {
	if c.closed {
		return false, ErrClosed
	}

	idx := c.index(id)
	if idx < 0 {
		return false, nil
	}

	staged := slices.Delete(slices.Clone(c.books), idx, idx+1)

	err := c.commit(staged)
	if err != nil {
		return false, err
	}

	return true, nil
}

// UpdateStatus sets the status of the book with the given id. Returns false
// without touching storage if no such book exists.
func (c *Catalog) UpdateStatus(id int, status Status) (bool, error) {
	if c.closed {
		return false, ErrClosed
	}

	if !status.Valid() {
		return false, fmt.Errorf("%w: %q (must be %s or %s)", ErrInvalidStatus, status, StatusAvailable, StatusCheckedOut)
	}

	idx := c.index(id)
	if idx < 0 {
		return false, nil
	}

	staged := slices.Clone(c.books)
	staged[idx].Status = status

	err := c.commit(staged)
	if err != nil {
		return false, err
	}

	return true, nil
}

// Search returns the books whose field contains query, ignoring case, in
// catalog order.
func (c *Catalog) Search(query string, field Field) ([]Book, error) {
	// Validate before scanning so an empty catalog still reports bad input.
	if _, ok := field.text(&Book{}); !ok {
		return nil, fmt.Errorf("%w: %q (must be %s, %s or %s)", ErrInvalidField, field, FieldTitle, FieldAuthor, FieldYear)
	}

	needle := strings.ToLower(query)
	results := []Book{}

	for i := range c.books {
		text, _ := field.text(&c.books[i])
		if strings.Contains(strings.ToLower(text), needle) {
			results = append(results, c.books[i])
		}
	}

	return results, nil
}

// Backup writes a compressed snapshot of the current books to w.
func (c *Catalog) Backup(w io.Writer) error {
	data, err := encodeBooks(c.books)
	if err != nil {
		return err
	}

	return snapshot.Write(w, data)
}

// Restore replaces every book with the content of a snapshot read from r.
// The snapshot is fully validated before anything is written.
func (c *Catalog) Restore(r io.Reader) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}

	data, err := snapshot.Read(r)
	if err != nil {
		return 0, err
	}

	books, err := decodeBooks(data)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	err = c.commit(books)
	if err != nil {
		return 0, err
	}

	return len(books), nil
}

func (c *Catalog) index(id int) int {
	return slices.IndexFunc(c.books, func(b Book) bool { return b.ID == id })
}

func (c *Catalog) load() error {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		c.books = nil

		return nil
	}

	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}

	books, decodeErr := decodeBooks(data)
	if decodeErr != nil {
		c.books = nil
		c.loadIssue = fmt.Errorf("%w: %s: %w", ErrMalformed, c.path, decodeErr)

		return nil
	}

	c.books = books

	return nil
}

// commit persists staged and, only if that succeeds, makes it current.
func (c *Catalog) commit(staged []Book) error {
	err := c.persist(staged)
	if err != nil {
		return err
	}

	c.books = staged

	return nil
}

func (c *Catalog) persist(books []Book) error {
	data, err := encodeBooks(books)
	if err != nil {
		return err
	}

	err = c.acquire(true)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	if c.loadIssue != nil && !c.preserved {
		err = preserveMalformed(c.path)
		if err != nil {
			return fmt.Errorf("%w: preserve malformed file: %w", ErrPersist, err)
		}

		c.preserved = true
	}

	err = c.writeFile(c.path, data)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}

	return nil
}

// acquire takes the instance lock unless it is held or disabled. With
// create false a missing parent directory is left alone and the lock is
// deferred to the first write.
func (c *Catalog) acquire(create bool) error {
	if c.noLock || c.lock != nil {
		return nil
	}

	dir := filepath.Dir(c.path)

	if create {
		err := os.MkdirAll(dir, dirPerms)
		if err != nil {
			return fmt.Errorf("create catalog directory: %w", err)
		}
	} else if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	lock, err := acquireLock(c.path)
	if err != nil {
		return err
	}

	c.lock = lock

	return nil
}

// preserveMalformed moves path to the first free name of path.corrupt,
// path.corrupt.1, path.corrupt.2, ... so earlier copies are kept.
func preserveMalformed(path string) error {
	_, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	target := path + corruptSuffix

	for n := 1; ; n++ {
		_, statErr := os.Lstat(target)
		if errors.Is(statErr, fs.ErrNotExist) {
			break
		}

		if statErr != nil {
			return statErr
		}

		target = path + corruptSuffix + "." + strconv.Itoa(n)
	}

	return os.Rename(path, target)
}

func writeFileAtomic(path string, data []byte) error {
	err := atomic.WriteFile(path, bytes.NewReader(data))
	if err != nil {
		return err
	}

	// atomic.WriteFile doesn't set permissions for new files
	return os.Chmod(path, filePerms)
}
