package cli

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hugr-lab/pushdown/sarg"
)

// NewDecodeCommand creates the decode command.
func NewDecodeCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode a search argument written with --format wire",
		Long: `Decode a base64 search argument, as printed by sargdump --format wire,
and print it in the selected format.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runDecode(opts *RootOptions, args []string, cmd *cobra.Command) error {
	data, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	text := strings.TrimSpace(string(data))
	if text == noFilters {
		return writeSearchArgument(cmd.OutOrStdout(), opts.Format, nil)
	}

	raw, err := base64.StdEncoding.DecodeString(text)
	if err != nil {
		return fmt.Errorf("decode base64: %w", err)
	}
	sa, err := sarg.Unmarshal(raw)
	if err != nil {
		return err
	}

	opts.logger(cmd.ErrOrStderr()).Debug("Decoded search argument",
		"leaves", len(sa.Leaves),
		"columns", sa.Columns(),
	)
	return writeSearchArgument(cmd.OutOrStdout(), opts.Format, sa)
}
