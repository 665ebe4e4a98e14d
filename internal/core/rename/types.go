// Package rename contains the pure business logic for batch renames.
// The resolver computes proposed names, guards validate a batch before any
// mutation, and the planner turns a validated batch into rename effects.
package rename

import (
	"fmt"
	"strings"
)

// ApplyTo selects which part of a filename the pattern is matched against.
type ApplyTo string

const (
	// ApplyToName targets the stem (everything before the last dot).
	ApplyToName ApplyTo = "name"
	// ApplyToExtension targets the extension without its dot.
	ApplyToExtension ApplyTo = "ext"
	// ApplyToBoth targets the whole filename.
	ApplyToBoth ApplyTo = "both"
)

// ApplyToValues lists the accepted ApplyTo values in cycling order.
var ApplyToValues = []ApplyTo{ApplyToName, ApplyToExtension, ApplyToBoth}

// ParseApplyTo converts a string to an ApplyTo.
func ParseApplyTo(s string) (ApplyTo, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name", "":
		return ApplyToName, nil
	case "ext", "extension":
		return ApplyToExtension, nil
	case "both":
		return ApplyToBoth, nil
	}
	return "", fmt.Errorf("invalid apply-to %q: must be one of name, ext, both", s)
}

// String implements pflag.Value.
func (a ApplyTo) String() string {
	if a == "" {
		return string(ApplyToName)
	}
	return string(a)
}

// Set implements pflag.Value.
func (a *ApplyTo) Set(s string) error {
	parsed, err := ParseApplyTo(s)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Type implements pflag.Value.
func (a *ApplyTo) Type() string { return "name|ext|both" }

// Next returns the value following a in ApplyToValues, wrapping around.
func (a ApplyTo) Next() ApplyTo {
	for i, v := range ApplyToValues {
		if v == a {
			return ApplyToValues[(i+1)%len(ApplyToValues)]
		}
	}
	return ApplyToName
}

// Options controls how a batch is computed. Immutable per batch.
type Options struct {
	MaxReplacements int // 0 = unlimited
	UseRegex        bool
	CaseSensitive   bool
	ApplyTo         ApplyTo
}

// DefaultOptions returns the default options: regex on, case-insensitive,
// unlimited replacements, name target.
func DefaultOptions() Options {
	return Options{
		MaxReplacements: 0,
		UseRegex:        true,
		CaseSensitive:   false,
		ApplyTo:         ApplyToName,
	}
}

// Pair is one original -> proposed filename mapping.
type Pair struct {
	Original string
	Proposed string
}

// Changed reports whether the pair renames anything.
func (p Pair) Changed() bool {
	return p.Original != p.Proposed
}

// Inverse returns the pair that undoes p.
func (p Pair) Inverse() Pair {
	return Pair{Original: p.Proposed, Proposed: p.Original}
}

// FileError records a file dropped from a batch during resolution.
type FileError struct {
	File string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Batch is the result of one resolver invocation over one file snapshot.
// Files that failed to resolve are absent from Pairs and listed in Errors.
type Batch struct {
	Directory string
	Pairs     []Pair
	Errors    []FileError
}

// Changes returns the pairs that rename something, in batch order.
func (b Batch) Changes() []Pair {
	var out []Pair
	for _, p := range b.Pairs {
		if p.Changed() {
			out = append(out, p)
		}
	}
	return out
}

// Inverse returns a batch undoing pairs, in reverse order.
func Inverse(directory string, pairs []Pair) Batch {
	inv := Batch{Directory: directory, Pairs: make([]Pair, 0, len(pairs))}
	for i := len(pairs) - 1; i >= 0; i-- {
		inv.Pairs = append(inv.Pairs, pairs[i].Inverse())
	}
	return inv
}

// PairError records a pair skipped while applying.
type PairError struct {
	Pair Pair
	Err  error
}

// ApplyReport is the typed outcome of applying a batch.
type ApplyReport struct {
	Renamed []Pair
	Skipped []PairError
}

// Err returns a *PartialApplyError when any pair was skipped, nil otherwise.
func (r ApplyReport) Err() error {
	if len(r.Skipped) == 0 {
		return nil
	}
	return &PartialApplyError{
		Renamed: len(r.Renamed),
		Skipped: len(r.Skipped),
		First:   r.Skipped[0].Err,
	}
}
