package cli

import (
	"context"
	"fmt"

	"github.com/calvinalkan/shelf/internal/catalog"
	"github.com/calvinalkan/shelf/internal/config"

	flag "github.com/spf13/pflag"
)

// StatusCmd returns the status command.
func StatusCmd(cfg *config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("status", flag.ContinueOnError),
		Usage: "status <id> <status>",
		Short: "Set book status (available|checked_out)",
		Long: `Set the status of a book. Status must be "available" or "checked_out".
The legacy labels "в наличии" and "выдана" are accepted as well.`,
		Args: 2,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execStatus(io, cfg, args[0], args[1])
		},
	}
}

func execStatus(io *IO, cfg *config.Config, rawID, rawStatus string) error {
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	status, err := catalog.ParseStatus(rawStatus)
	if err != nil {
		return err
	}

	return withCatalog(io, cfg, func(cat *catalog.Catalog) error {
		found, err := cat.UpdateStatus(id, status)
		if err != nil {
			return err
		}

		if !found {
			return fmt.Errorf("%w: %d", catalog.ErrNotFound, id)
		}

		io.Printf("Updated book %d to %s\n", id, status)

		return nil
	})
}
