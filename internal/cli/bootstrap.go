// Package cli provides CLI commands for the renux application.
package cli

import (
	gocontext "context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/renux/internal/config"
	"github.com/example/renux/internal/ctxutil"
	"github.com/example/renux/internal/wire"
)

// globalSessionID identifies this CLI invocation in the journal.
// Set once at startup by Bootstrap.
var globalSessionID string

// globalConfig is the configuration loaded by Bootstrap.
var globalConfig = config.Default()

// Bootstrap loads the configuration named by --config, applies the color
// mode and configures the service wiring. It runs in the root command's
// PersistentPreRunE, before any service is built.
func Bootstrap(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	globalConfig = cfg

	applyColorMode(cfg.Color)

	noJournal, _ := cmd.Flags().GetBool("no-journal")
	wire.Configure(wire.Settings{Config: cfg, NoJournal: noJournal})

	globalSessionID = ctxutil.NewSessionID()
	return nil
}

// NewContext creates a context.Background() with the current session ID embedded.
// CLI commands should use this instead of context.Background() directly.
func NewContext() gocontext.Context {
	ctx := gocontext.Background()
	if globalSessionID != "" {
		return ctxutil.WithSessionID(ctx, globalSessionID)
	}
	return ctx
}

// applyColorMode forces color on or off; auto keeps fatih/color's terminal
// detection.
func applyColorMode(mode string) {
	switch mode {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	}
}

// Shutdown releases the journal and log file.
func Shutdown() {
	if err := wire.Close(); err != nil {
		fmt.Fprintf(color.Error, "warning: %v\n", err)
	}
}
