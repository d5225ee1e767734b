package cli

import (
	"context"

	"github.com/calvinalkan/shelf/internal/config"

	flag "github.com/spf13/pflag"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(cfg *config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("print-config", flag.ContinueOnError),
		Usage: "print-config",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration and which files it was loaded from.",
		Args:  0,
		Exec: func(_ context.Context, io *IO, _ []string) error {
			printPairs(io, [][2]string{
				{"effective_cwd", cfg.EffectiveCwd},
				{"catalog", cfg.CatalogAbs},
				{"history", cfg.HistoryAbs},
			})

			io.Println("")
			io.Println("# sources")

			if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
				io.Println("(defaults only)")

				return nil
			}

			printPairs(io, [][2]string{
				{"global_config", cfg.Sources.Global},
				{"project_config", cfg.Sources.Project},
			})

			return nil
		},
	}
}

// printPairs prints key=value lines, skipping empty values.
func printPairs(io *IO, pairs [][2]string) {
	for _, pair := range pairs {
		if pair[1] != "" {
			io.Println(pair[0] + "=" + pair[1])
		}
	}
}
