package cli

import (
	"context"

	"github.com/calvinalkan/shelf/internal/catalog"
	"github.com/calvinalkan/shelf/internal/config"

	flag "github.com/spf13/pflag"
)

// SearchCmd returns the search command.
func SearchCmd(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	fs.StringP("by", "b", string(catalog.FieldTitle), "Field to search: title|author|year")

	return &Command{
		Flags:   fs,
		Usage:   "search <query> [--by field]",
		Aliases: []string{"find"},
		Short:   "Find books by title, author or year",
		Long: `Find books whose field contains the query, ignoring case.
Results are listed in catalog order.`,
		Args: 1,
		Exec: func(_ context.Context, io *IO, args []string) error {
			rawField, _ := fs.GetString("by")

			return execSearch(io, cfg, args[0], rawField)
		},
	}
}

func execSearch(io *IO, cfg *config.Config, query, rawField string) error {
	field, err := catalog.ParseField(rawField)
	if err != nil {
		return err
	}

	return withCatalog(io, cfg, func(cat *catalog.Catalog) error {
		results, err := cat.Search(query, field)
		if err != nil {
			return err
		}

		printBooks(io, results, "No books found.")

		return nil
	})
}

func printBooks(io *IO, books []catalog.Book, empty string) {
	if len(books) == 0 {
		io.Println(empty)

		return
	}

	for _, book := range books {
		io.Println(book)
	}
}
