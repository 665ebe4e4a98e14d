package cli

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/example/renux/internal/tui"
	"github.com/example/renux/internal/version"
	"github.com/example/renux/internal/wire"
)

// RootCmd returns the renux command tree.
func RootCmd() *cobra.Command {
	var flags renameFlags

	cmd := &cobra.Command{
		Use:     "renux [directory] [pattern] [replacement]",
		Short:   "Batch rename files with patterns, counters, dates and text operations",
		Version: version.String(),
		Long: `renux renames the files of one directory by matching a pattern against
each filename and substituting a replacement template.

Replacement templates support:
  \1, \g<name>          regex group references
  {counter(s,i,p)}      counter starting at s, step i, zero-padded to p
  {now(%Y-%m-%d)}       current date, also {created_at(...)} and {modified_at(...)}
  {text|upper}          text operations (see 'renux keywords')

Without a subcommand renux starts the interactive shell, prefilled with the
given pattern and replacement. When stdout is not a terminal the preview is
printed instead.

Examples:
  renux ~/photos
  renux ~/photos 'IMG_(\d+)' 'holiday-{counter(1,1,3)}'
  renux . txt md --apply-to ext`,
		Args:          cobra.MaximumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Bootstrap(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir, pattern, replacement string
			if len(args) > 0 {
				dir = args[0]
			}
			if len(args) > 1 {
				pattern = args[1]
			}
			if len(args) > 2 {
				replacement = args[2]
			}

			req, err := flags.request(cmd, globalConfig, dir, pattern, replacement)
			if err != nil {
				return err
			}

			ctx := NewContext()
			svc, err := wire.RenameService()
			if err != nil {
				return err
			}

			// Fail fast on a bad directory before taking over the terminal.
			if _, err := svc.ListFiles(ctx, req.Directory); err != nil {
				return err
			}

			if !isTerminal(cmd) {
				adapter, err := wire.RenameAdapterWithOutput(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				_, err = adapter.Preview(ctx, req)
				return err
			}

			opts, err := flags.options(cmd, globalConfig)
			if err != nil {
				return err
			}
			session := tui.NewSession(req.Directory, opts)
			session.Pattern = pattern
			session.Replacement = replacement
			return tui.Run(ctx, svc, session, wire.Logger())
		},
	}

	cmd.PersistentFlags().String("config", "", "Config file (default ~/.renux/config.yaml)")
	cmd.PersistentFlags().Bool("no-journal", false, "Do not record renames in the journal")
	flags.bind(cmd)

	cmd.AddCommand(PreviewCmd())
	cmd.AddCommand(ApplyCmd())
	cmd.AddCommand(KeywordsCmd())
	cmd.AddCommand(LogCmd())

	return cmd
}

// isTerminal reports whether the command writes to an interactive terminal.
func isTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.OutOrStdout().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
