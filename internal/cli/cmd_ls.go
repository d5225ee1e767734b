package cli

import (
	"context"

	"github.com/calvinalkan/shelf/internal/catalog"
	"github.com/calvinalkan/shelf/internal/config"

	flag "github.com/spf13/pflag"
)

// LsCmd returns the ls command.
func LsCmd(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("ls", flag.ContinueOnError)
	fs.String("status", "", "Filter by status (available|checked_out)")

	return &Command{
		Flags:   fs,
		Usage:   "ls [flags]",
		Aliases: []string{"list"},
		Short:   "List books",
		Long:    "List all books in catalog order.",
		Args:    0,
		Exec: func(_ context.Context, io *IO, _ []string) error {
			return execLs(io, cfg, fs)
		},
	}
}

func execLs(io *IO, cfg *config.Config, fs *flag.FlagSet) error {
	var filter catalog.Status

	if fs.Changed("status") {
		raw, _ := fs.GetString("status")

		status, err := catalog.ParseStatus(raw)
		if err != nil {
			return err
		}

		filter = status
	}

	return withCatalog(io, cfg, func(cat *catalog.Catalog) error {
		books := cat.List()
		empty := "Catalog is empty."

		if filter != "" {
			matching := books[:0]

			for _, book := range books {
				if book.Status == filter {
					matching = append(matching, book)
				}
			}

			books = matching
			empty = "No books with status " + string(filter) + "."
		}

		printBooks(io, books, empty)

		return nil
	})
}
