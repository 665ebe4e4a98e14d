// Package effects holds the rename operations a plan produces, as plain
// values. The planner in core/rename builds them; the app layer executes them.
package effects

// Effect is one planned operation.
type Effect interface {
	EffectType() string
}

// LogEffect asks the executor to log a message.
type LogEffect struct {
	Level   string // "debug", "info", "warn", "error"
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// RenameEffect represents one rename syscall inside Directory.
// Original/Proposed identify the logical pair the hop belongs to; a pair
// broken out of a cycle takes two hops, the first one Temporary.
type RenameEffect struct {
	Directory string
	From      string
	To        string
	Original  string
	Proposed  string
	Temporary bool
	RestoreTo string // where to move From back to if the hop fails; empty = leave
}

func (e RenameEffect) EffectType() string { return "rename" }

// CompositeEffect runs its effects in order.
type CompositeEffect struct {
	Effects []Effect
}

func (e CompositeEffect) EffectType() string { return "composite" }

// NoEffect does nothing.
type NoEffect struct{}

func (e NoEffect) EffectType() string { return "none" }
