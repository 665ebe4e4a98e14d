package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/renux/internal/app"
	"github.com/example/renux/internal/wire"
)

// LogCmd returns the log command
func LogCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show journaled renames",
		Long:  "Show the most recent applies, undos and redos recorded in the journal (audit trail)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				limit = 20
			}

			adapter, err := wire.RenameAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}

			_, err = adapter.Log(NewContext(), limit)
			if errors.Is(err, app.ErrJournalDisabled) {
				return fmt.Errorf("%w (enable journal.enabled in the config and drop --no-journal)", err)
			}
			return err
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of batches to show")
	return cmd
}
