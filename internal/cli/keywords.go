package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/renux/internal/wire"
)

// KeywordsCmd returns the keywords command
func KeywordsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keywords",
		Short: "List replacement placeholders and text operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.RenameAdapterWithOutput(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			adapter.Keywords()
			return nil
		},
	}
}
