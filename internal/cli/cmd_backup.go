package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"

	"github.com/calvinalkan/shelf/internal/catalog"
	"github.com/calvinalkan/shelf/internal/config"

	flag "github.com/spf13/pflag"
)

var errCatalogNotEmpty = errors.New("catalog is not empty (use --force to replace it)")

// BackupCmd returns the backup command.
func BackupCmd(cfg *config.Config) *Command {
	return &Command{
		Flags: flag.NewFlagSet("backup", flag.ContinueOnError),
		Usage: "backup <file>",
		Short: "Write a compressed backup of the catalog",
		Long: `Write a compressed, checksummed backup of the catalog to <file>.
An existing file is replaced.`,
		Args: 1,
		Exec: func(_ context.Context, io *IO, args []string) error {
			return execBackup(io, cfg, resolvePath(cfg, args[0]))
		},
	}
}

func execBackup(io *IO, cfg *config.Config, path string) error {
	return withCatalog(io, cfg, func(cat *catalog.Catalog) error {
		var buf bytes.Buffer

		err := cat.Backup(&buf)
		if err != nil {
			return err
		}

		err = atomic.WriteFile(path, &buf)
		if err != nil {
			return fmt.Errorf("write backup: %w", err)
		}

		io.Printf("Backed up %d books to %s\n", cat.Len(), path)

		return nil
	})
}

// RestoreCmd returns the restore command.
func RestoreCmd(cfg *config.Config) *Command {
	fs := flag.NewFlagSet("restore", flag.ContinueOnError)
	fs.BoolP("force", "f", false, "Replace a non-empty catalog")

	return &Command{
		Flags: fs,
		Usage: "restore <file> [--force]",
		Short: "Replace the catalog with a backup",
		Long: `Replace every book in the catalog with the content of a backup
written by "shelf backup". The backup is verified before anything changes.`,
		Args: 1,
		Exec: func(_ context.Context, io *IO, args []string) error {
			force, _ := fs.GetBool("force")

			return execRestore(io, cfg, resolvePath(cfg, args[0]), force)
		},
	}
}

func execRestore(io *IO, cfg *config.Config, path string, force bool) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open backup: %w", err)
	}
	defer func() { _ = file.Close() }()

	return withCatalog(io, cfg, func(cat *catalog.Catalog) error {
		if cat.Len() > 0 && !force {
			return errCatalogNotEmpty
		}

		n, err := cat.Restore(file)
		if err != nil {
			return err
		}

		io.Printf("Restored %d books from %s\n", n, path)

		return nil
	})
}

func resolvePath(cfg *config.Config, path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	return filepath.Join(cfg.EffectiveCwd, path)
}
