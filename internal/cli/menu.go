package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/calvinalkan/shelf/internal/catalog"
	"github.com/calvinalkan/shelf/internal/config"

	flag "github.com/spf13/pflag"
)

// errInput marks failures to read operator input, as opposed to catalog
// errors which the menu reports and survives.
var errInput = errors.New("read input")

const menuText = `
Menu:
1. Add a book
2. Delete a book
3. Search books
4. List all books
5. Change book status
6. Exit`

// MenuCmd returns the interactive menu command.
func MenuCmd(cfg *config.Config, stdin io.Reader) *Command {
	return &Command{
		Flags: flag.NewFlagSet("menu", flag.ContinueOnError),
		Usage: "menu",
		Short: "Interactive menu",
		Long: `Run the interactive catalog menu. Invalid input is asked for again.
Exit with 6, Ctrl-D or Ctrl-C.`,
		Args: 0,
		Exec: func(ctx context.Context, io *IO, _ []string) error {
			return withCatalog(io, cfg, func(cat *catalog.Catalog) error {
				in := newPrompter(stdin, io, cfg.HistoryAbs)
				m := &menu{cat: cat, in: in, io: io}

				return errors.Join(m.run(ctx), in.Close())
			})
		},
	}
}

type menu struct {
	cat *catalog.Catalog
	in  prompter
	io  *IO
}

func (m *menu) run(ctx context.Context) error {
	m.io.Println("Welcome to shelf, the library catalog!")

	for ctx.Err() == nil {
		m.io.Println(menuText)

		choice, err := m.in.Prompt("Choose an action: ")
		if err != nil {
			return m.stop(fmt.Errorf("%w: %w", errInput, err))
		}

		switch strings.TrimSpace(choice) {
		case "1":
			err = m.add()
		case "2":
			err = m.remove()
		case "3":
			err = m.search()
		case "4":
			printBooks(m.io, m.cat.List(), "Catalog is empty.")
		case "5":
			err = m.updateStatus()
		case "6":
			m.io.Println("Goodbye!")

			return nil
		default:
			m.io.Println("Invalid choice, try again.")
		}

		if errors.Is(err, errInput) {
			return m.stop(err)
		}

		if err != nil {
			m.io.ErrPrintln("error:", err)
		}
	}

	return nil
}

// stop ends the session. End of input and Ctrl-C are a normal exit.
func (m *menu) stop(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, errAborted) {
		m.io.Println("Goodbye!")

		return nil
	}

	return err
}

func (m *menu) add() error {
	title, err := m.readString("Title: ")
	if err != nil {
		return err
	}

	author, err := m.readString("Author: ")
	if err != nil {
		return err
	}

	year, err := m.readInt("Year (e.g. 2022): ")
	if err != nil {
		return err
	}

	book, err := m.cat.Add(title, author, year)
	if err != nil {
		return err
	}

	m.io.Println("Added:", book)

	return nil
}

func (m *menu) remove() error {
	id, err := m.readInt("Book ID: ")
	if err != nil {
		return err
	}

	found, err := m.cat.Delete(id)
	if err != nil {
		return err
	}

	if !found {
		m.io.Printf("Book %d not found.\n", id)

		return nil
	}

	m.io.Printf("Deleted book %d.\n", id)

	return nil
}

func (m *menu) search() error {
	rawField, err := m.readString("Search field (title, author, year): ")
	if err != nil {
		return err
	}

	query, err := m.readString("Query: ")
	if err != nil {
		return err
	}

	field, err := catalog.ParseField(rawField)
	if err != nil {
		return err
	}

	results, err := m.cat.Search(query, field)
	if err != nil {
		return err
	}

	printBooks(m.io, results, "No books found.")

	return nil
}

func (m *menu) updateStatus() error {
	id, err := m.readInt("Book ID: ")
	if err != nil {
		return err
	}

	rawStatus, err := m.readString("New status (available or checked_out): ")
	if err != nil {
		return err
	}

	status, err := catalog.ParseStatus(rawStatus)
	if err != nil {
		return err
	}

	found, err := m.cat.UpdateStatus(id, status)
	if err != nil {
		return err
	}

	if !found {
		m.io.Printf("Book %d not found.\n", id)

		return nil
	}

	m.io.Printf("Book %d status set to %s.\n", id, status)

	return nil
}

// readString prompts until the operator enters a non-blank line.
func (m *menu) readString(prompt string) (string, error) {
	for {
		line, err := m.in.Prompt(prompt)
		if err != nil {
			return "", fmt.Errorf("%w: %w", errInput, err)
		}

		if value := strings.TrimSpace(line); value != "" {
			return value, nil
		}

		m.io.Println("Input error: value cannot be empty. Try again.")
	}
}

// readInt prompts until the operator enters a non-negative integer.
func (m *menu) readInt(prompt string) (int, error) {
	for {
		line, err := m.in.Prompt(prompt)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", errInput, err)
		}

		value, convErr := strconv.Atoi(strings.TrimSpace(line))

		switch {
		case convErr != nil:
			m.io.Println("Input error: enter a whole number. Try again.")
		case value < 0:
			m.io.Println("Input error: number must be non-negative. Try again.")
		default:
			return value, nil
		}
	}
}
