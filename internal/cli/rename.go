package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/renux/internal/wire"
)

// PreviewCmd returns the preview command
func PreviewCmd() *cobra.Command {
	var flags renameFlags

	cmd := &cobra.Command{
		Use:   "preview <directory> <pattern> <replacement>",
		Short: "Show the proposed names without renaming anything",
		Long: `Compute the new name of every file in the directory and print them.
Files that cannot be resolved (bad pattern, missing timestamps) are listed
with the reason.

Examples:
  renux preview ~/photos 'IMG_(\d+)' 'photo-\1'
  renux preview . '.*' '{counter(1,1,3)}' --apply-to name`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(cmd, globalConfig, args[0], args[1], args[2])
			if err != nil {
				return err
			}

			adapter, err := wire.RenameAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			_, err = adapter.Preview(NewContext(), req)
			return err
		},
	}

	flags.bind(cmd)
	return cmd
}

// ApplyCmd returns the apply command
func ApplyCmd() *cobra.Command {
	var flags renameFlags
	var yes bool

	cmd := &cobra.Command{
		Use:   "apply <directory> <pattern> <replacement>",
		Short: "Rename the files after confirmation",
		Long: `Preview the batch, ask for confirmation, then rename.

Nothing is renamed when no name changes or when two files would end up with
the same name. A rename that fails on disk is skipped and reported; the rest
of the batch still runs.

Examples:
  renux apply ~/photos 'IMG_(\d+)' 'photo-\1'
  renux apply . txt md --apply-to ext --yes`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(cmd, globalConfig, args[0], args[1], args[2])
			if err != nil {
				return err
			}

			ctx := NewContext()
			adapter, err := wire.RenameAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			if !yes {
				preview, err := adapter.Preview(ctx, req)
				if err != nil {
					return err
				}
				if preview.Changes == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "Nothing to rename.")
					return nil
				}
				ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Rename %d files?", preview.Changes))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
					return nil
				}
			}

			_, err = adapter.Apply(ctx, req)
			return err
		},
	}

	flags.bind(cmd)
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// confirm asks a yes/no question; anything but y or yes is no. End of input
// is no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
