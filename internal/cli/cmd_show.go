package cli

import (
	"context"

	"github.com/calvinalkan/shelf/internal/catalog"
	"github.com/calvinalkan/shelf/internal/config"

	flag "github.com/spf13/pflag"
)

// ShowCmd returns the show command.
func ShowCmd(cfg *config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("show", flag.ContinueOnError),
		Usage: "show <id>",
		Short: "Show a book",
		Args:  1,
		Exec: func(_ context.Context, io *IO, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withCatalog(io, cfg, func(cat *catalog.Catalog) error {
				book, err := cat.Get(id)
				if err != nil {
					return err
				}

				io.Printf("id: %d\ntitle: %s\nauthor: %s\nyear: %d\nstatus: %s\n",
					book.ID, book.Title, book.Author, book.Year, book.Status)

				return nil
			})
		},
	}
}
