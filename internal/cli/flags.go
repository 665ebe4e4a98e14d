package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/example/renux/internal/config"
	"github.com/example/renux/internal/core/rename"
	"github.com/example/renux/internal/ports/primary"
)

var _ pflag.Value = (*rename.ApplyTo)(nil)

// renameFlags are the per-batch options shared by the root, preview and
// apply commands. Values only override the config when set explicitly.
type renameFlags struct {
	count         int
	regex         bool
	caseSensitive bool
	applyTo       rename.ApplyTo
}

func (f *renameFlags) bind(cmd *cobra.Command) {
	f.applyTo = rename.ApplyToName

	cmd.Flags().IntVarP(&f.count, "count", "c", 0, "Maximum replacements per file (0 = all)")
	cmd.Flags().BoolVarP(&f.regex, "regex", "r", true, "Treat the pattern as a regular expression (--regex=false for literal)")
	cmd.Flags().BoolVar(&f.caseSensitive, "case-sensitive", false, "Match case-sensitively")
	cmd.Flags().Var(&f.applyTo, "apply-to", "Part of the filename to match: name, ext or both")
}

// options merges explicitly set flags over the configured defaults.
func (f *renameFlags) options(cmd *cobra.Command, cfg *config.Config) (rename.Options, error) {
	opts := cfg.Options()

	if cmd.Flags().Changed("count") {
		if f.count < 0 {
			return rename.Options{}, fmt.Errorf("invalid --count %d: must be 0 or more", f.count)
		}
		opts.MaxReplacements = f.count
	}
	if cmd.Flags().Changed("regex") {
		opts.UseRegex = f.regex
	}
	if cmd.Flags().Changed("case-sensitive") {
		opts.CaseSensitive = f.caseSensitive
	}
	if cmd.Flags().Changed("apply-to") {
		opts.ApplyTo = f.applyTo
	}
	return opts, nil
}

// request builds the engine request for directory, pattern and replacement.
func (f *renameFlags) request(cmd *cobra.Command, cfg *config.Config, directory, pattern, replacement string) (primary.RenameRequest, error) {
	opts, err := f.options(cmd, cfg)
	if err != nil {
		return primary.RenameRequest{}, err
	}

	dir, err := resolveDirectory(directory)
	if err != nil {
		return primary.RenameRequest{}, err
	}

	return primary.RenameRequest{
		Directory:       dir,
		Pattern:         pattern,
		Replacement:     replacement,
		MaxReplacements: opts.MaxReplacements,
		UseRegex:        opts.UseRegex,
		CaseSensitive:   opts.CaseSensitive,
		ApplyTo:         opts.ApplyTo.String(),
	}, nil
}

// resolveDirectory makes directory absolute; empty means the working
// directory.
func resolveDirectory(directory string) (string, error) {
	if directory == "" {
		directory = "."
	}
	abs, err := filepath.Abs(directory)
	if err != nil {
		return "", &rename.InvalidDirectoryError{Path: directory, Err: err}
	}
	return abs, nil
}
