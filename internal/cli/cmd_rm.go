package cli

import (
	"context"
	"fmt"

	"github.com/calvinalkan/shelf/internal/catalog"
	"github.com/calvinalkan/shelf/internal/config"

	flag "github.com/spf13/pflag"
)

// RmCmd returns the rm command.
func RmCmd(cfg *config.Config) *Command {
	return &Command{
		Flags:   flag.NewFlagSet("rm", flag.ContinueOnError),
		Usage:   "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a book",
		Long:    "Delete the book with the given ID. Its ID is never handed out again while a higher ID exists.",
		Args:    1,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execRm(io, cfg, args[0])
		},
	}
}

func execRm(io *IO, cfg *config.Config, rawID string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	return withCatalog(io, cfg, func(cat *catalog.Catalog) error {
		found, err := cat.Delete(id)
		if err != nil {
			return err
		}

		if !found {
			return fmt.Errorf("%w: %d", catalog.ErrNotFound, id)
		}

		io.Println("Deleted book", id)

		return nil
	})
}
