// Package cli implements the command-line interface for shelf.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/calvinalkan/shelf/internal/catalog"
	"github.com/calvinalkan/shelf/internal/config"
)

const (
	consumedNone = 0
	consumedOne  = 1
	consumedTwo  = 2
	helpFlag     = "--help"
)

var (
	errFlagRequiresArg = errors.New("flag requires an argument")
	errUnknownFlag     = errors.New("unknown flag")
	errUnknownCommand  = errors.New("unknown command")
	errInvalidID       = errors.New("invalid book ID")
)

// Run is the main entry point. Returns exit code.
// A signal on sigCh cancels the running command's context; sigCh may be nil.
func Run(stdin io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	if len(args) == 0 {
		args = []string{"shelf"}
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: flags.workDir,
		ConfigPath:      flags.configPath,
		CatalogOverride: flags.catalog,
		Env:             env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	commands := allCommands(&cfg, stdin)

	if len(flags.remaining) == 0 || flags.remaining[0] == helpFlag || flags.remaining[0] == "-h" {
		printUsage(out, commands)

		return 0
	}

	name := flags.remaining[0]

	cmd := findCommand(commands, name)
	if cmd == nil {
		fprintln(errOut, "error:", fmt.Errorf("%w: %s", errUnknownCommand, name))
		printUsage(errOut, commands)

		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	o := NewIO(out, errOut)

	code := cmd.Run(ctx, o, flags.remaining[1:])
	o.Finish()

	return code
}

func allCommands(cfg *config.Config, stdin io.Reader) []*Command {
	return []*Command{
		AddCmd(cfg),
		RmCmd(cfg),
		SearchCmd(cfg),
		LsCmd(cfg),
		ShowCmd(cfg),
		StatusCmd(cfg),
		BackupCmd(cfg),
		RestoreCmd(cfg),
		MenuCmd(cfg, stdin),
		PrintConfigCmd(cfg),
	}
}

func findCommand(commands []*Command, name string) *Command {
	for _, cmd := range commands {
		if cmd.Matches(name) {
			return cmd
		}
	}

	return nil
}

// withCatalog opens the configured catalog for the duration of handler.
// A catalog file that could not be loaded is reported as a warning.
func withCatalog(o *IO, cfg *config.Config, handler func(cat *catalog.Catalog) error) error {
	cat, err := catalog.Open(cfg.CatalogAbs, catalog.Options{})
	if err != nil {
		return err
	}

	if issue := cat.LoadIssue(); issue != nil {
		o.Warn(issue.Error(), "started with an empty catalog; the file is moved to "+
			cfg.CatalogAbs+".corrupt (or .corrupt.N) on the next change, fix it or restore a backup")
	}

	handlerErr := handler(cat)
	closeErr := cat.Close()

	return errors.Join(handlerErr, closeErr)
}

func parseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id < 0 {
		return 0, fmt.Errorf("%w: %q", errInvalidID, s)
	}

	return id, nil
}

type globalFlags struct {
	workDir    string
	configPath string
	catalog    string
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == consumedNone {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a global flag at args[idx]. Returns number of
// args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	valueFlags := []struct {
		short, long string
		target      *string
	}{
		{"-C", "--cwd", &flags.workDir},
		{"-c", "--config", &flags.configPath},
		{"", "--catalog", &flags.catalog},
	}

	for _, vf := range valueFlags {
		if arg == vf.long || (vf.short != "" && arg == vf.short) {
			if idx+1 >= len(args) {
				return consumedNone, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
			}

			*vf.target = args[idx+1]

			return consumedTwo, nil
		}

		if after, ok := strings.CutPrefix(arg, vf.long+"="); ok {
			*vf.target = after

			return consumedOne, nil
		}
	}

	if after, ok := strings.CutPrefix(arg, "-C"); ok && after != "" {
		flags.workDir = after

		return consumedOne, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", errUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer, commands []*Command) {
	fprintln(w, `shelf - library catalog

Usage: shelf [options] <command> [args]

Options:
  -C, --cwd <dir>        Run as if started in <dir>
  -c, --config <file>    Use specified config file
  --catalog <file>       Use specified catalog file

Commands:`)

	for _, cmd := range commands {
		fprintln(w, cmd.HelpLine())
	}
}
