package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/calvinalkan/shelf/internal/catalog"
	"github.com/calvinalkan/shelf/internal/config"

	flag "github.com/spf13/pflag"
)

var errFlagRequired = errors.New("required flag not set")

// AddCmd returns the add command.
func AddCmd(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.StringP("author", "a", "", "Author name (required)")
	fs.IntP("year", "y", 0, "Publication year, non-negative (required)")

	return &Command{
		Flags: fs,
		Usage: "add <title> -a <author> -y <year>",
		Short: "Add a book, prints the new record",
		Long: `Add a book to the catalog. The book gets the next free ID and
status "available". Prints the created record.`,
		Args: 1,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execAdd(io, cfg, fs, args[0])
		},
	}
}

func execAdd(io *IO, cfg *config.Config, fs *flag.FlagSet, title string) error {
	for _, name := range []string{"author", "year"} {
		if !fs.Changed(name) {
			return fmt.Errorf("%w: --%s", errFlagRequired, name)
		}
	}

	author, _ := fs.GetString("author")
	year, _ := fs.GetInt("year")

	return withCatalog(io, cfg, func(cat *catalog.Catalog) error {
		book, err := cat.Add(title, author, year)
		if err != nil {
			return err
		}

		io.Println(book)

		return nil
	})
}
