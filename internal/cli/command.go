package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	flag "github.com/spf13/pflag"
)

// Command defines a CLI command with unified help generation.
type Command struct {
	// Flags defines command-specific flags.
	Flags *flag.FlagSet

	// Usage is the freeform usage string shown after "shelf" in help.
	// The first word is the command name.
	// Examples: "show <id>", "add <title> [flags]", "ls [flags]"
	Usage string

	// Aliases are alternative names accepted on the command line.
	Aliases []string

	// Short is a one-line description for the global help listing.
	Short string

	// Long is the full description shown in command help.
	// If empty, Short is used instead.
	Long string

	// Args is the exact number of positional arguments, or -1 for any.
	Args int

	// Exec runs the command after flags and arguments are checked.
	Exec func(ctx context.Context, o *IO, args []string) error
}

var errArgCount = errors.New("wrong number of arguments")

// Name returns the command name (first word of Usage).
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// Matches reports whether name selects this command.
func (c *Command) Matches(name string) bool {
	return name == c.Name() || slices.Contains(c.Aliases, name)
}

// HelpLine returns the short help line for the main usage display.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-32s %s", c.Usage, c.Short)
}

// PrintHelp prints the full help output for "shelf <cmd> --help".
func (c *Command) PrintHelp(o *IO) {
	c.writeHelp(o.Println)
}

// writeHelp renders help through println, so usage errors can send it to
// stderr and keep stdout clean.
func (c *Command) writeHelp(println func(a ...any)) {
	println("Usage: shelf", c.Usage)

	if len(c.Aliases) > 0 {
		println("Aliases:", strings.Join(c.Aliases, ", "))
	}

	println()

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	println(desc)

	if c.Flags != nil && c.Flags.HasFlags() {
		println()
		println("Flags:")

		var buf strings.Builder
		c.Flags.SetOutput(&buf)
		c.Flags.PrintDefaults()
		println(strings.TrimRight(buf.String(), "\n"))
	}
}

// Run parses flags and executes the command. Returns exit code.
// Handles error printing internally for consistent output ordering.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{}) // discard pflag output

	err := c.Flags.Parse(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)
			return 0
		}
		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.writeHelp(o.ErrPrintln)
		return 1
	}

	positional := c.Flags.Args()
	if c.Args >= 0 && len(positional) != c.Args {
		o.ErrPrintln("error:", fmt.Errorf("%w: %s takes %d, got %d", errArgCount, c.Name(), c.Args, len(positional)))
		o.ErrPrintln()
		c.writeHelp(o.ErrPrintln)
		return 1
	}

	if err := c.Exec(ctx, o, positional); err != nil {
		o.ErrPrintln("error:", err)
		return 1
	}

	return 0
}
