// Package tui implements the interactive rename shell: a form of pattern,
// replacement and count inputs over a live preview of the directory.
package tui

import (
	"github.com/example/renux/internal/core/rename"
	"github.com/example/renux/internal/ports/primary"
)

// Session is the form state of one interactive session. The shell owns it;
// every engine call is built from it.
type Session struct {
	Directory     string
	Pattern       string
	Replacement   string
	Count         int
	UseRegex      bool
	CaseSensitive bool
	ApplyTo       rename.ApplyTo
}

// NewSession returns a session over directory with opts as the initial
// toggles.
func NewSession(directory string, opts rename.Options) Session {
	return Session{
		Directory:     directory,
		Count:         opts.MaxReplacements,
		UseRegex:      opts.UseRegex,
		CaseSensitive: opts.CaseSensitive,
		ApplyTo:       opts.ApplyTo,
	}
}

// Request builds the engine request for the current form state.
func (s Session) Request() primary.RenameRequest {
	return primary.RenameRequest{
		Directory:       s.Directory,
		Pattern:         s.Pattern,
		Replacement:     s.Replacement,
		MaxReplacements: s.Count,
		UseRegex:        s.UseRegex,
		CaseSensitive:   s.CaseSensitive,
		ApplyTo:         s.ApplyTo.String(),
	}
}

// Clear empties the text fields and keeps directory and toggles.
func (s *Session) Clear() {
	s.Pattern = ""
	s.Replacement = ""
	s.Count = 0
}
