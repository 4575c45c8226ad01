package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "sql" | "wire"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "sql", "wire"}

// NewRootCommand creates the sargdump command. Run without a subcommand it
// translates filter pushdown JSON into a search argument.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	dump := &dumpOptions{root: opts}

	cmd := &cobra.Command{
		Use:   "sargdump [file]",
		Short: "Translate DuckDB filter pushdown JSON into a search argument",
		Long: `Translate the filter pushdown JSON the DuckDB Airport extension sends
with a scan into the search argument a columnar reader would receive.

Filters that cannot be pushed down are dropped; with --verbose each one is
logged. Reads from stdin when no file is given.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(dump, args, cmd)
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log translation decisions to stderr")
	cmd.PersistentFlags().StringVarP(&opts.Format, "format", "f", "text", "output format (text|sql|wire)")

	cmd.Flags().StringVarP(&dump.schemaFile, "schema", "s", "", "YAML file overriding column types")

	cmd.AddCommand(NewDecodeCommand(opts))

	return cmd
}

// logger returns the logger for a command run. Logs go to stderr so that
// they never mix with the dumped output.
func (o *RootOptions) logger(w io.Writer) *slog.Logger {
	if !o.Verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// readInput reads the file named by args, or stdin when there is none.
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return data, nil
}
