package rename

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/example/renux/internal/core/placeholder"
)

// Resolver computes proposed names for a file list.
// It holds no batch state; counter slots are created per ComputeRenames call.
type Resolver struct {
	dates *placeholder.DateEvaluator
}

// NewResolver creates a Resolver reading file timestamps through times.
// A nil clock means time.Now.
func NewResolver(times placeholder.Timestamps, clock func() time.Time) *Resolver {
	return &Resolver{dates: placeholder.NewDateEvaluator(times, clock)}
}

// ComputeRenames resolves every file in files, in order, threading one set of
// counter slots through the whole list. Files that fail to resolve are left
// out of Pairs and recorded in Errors. The only returned error is a context
// cancellation, checked between files.
func (r *Resolver) ComputeRenames(ctx context.Context, files []string, directory, pattern, template string, opts Options) (Batch, error) {
	batch := Batch{
		Directory: directory,
		Pairs:     make([]Pair, 0, len(files)),
	}

	re, err := CompilePattern(pattern, opts)
	if err != nil {
		for _, f := range files {
			batch.Errors = append(batch.Errors, FileError{File: f, Err: err})
		}
		return batch, nil
	}

	slots := placeholder.NewCounterSlots(template)
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return batch, err
		}

		proposed, err := r.resolve(re, pattern, directory, f, template, slots, opts)
		if err != nil {
			batch.Errors = append(batch.Errors, FileError{File: f, Err: err})
			continue
		}
		batch.Pairs = append(batch.Pairs, Pair{Original: f, Proposed: proposed})
	}

	return batch, nil
}

// ComputeRename resolves a single file with fresh counter slots.
func (r *Resolver) ComputeRename(directory, name, pattern, template string, opts Options) (string, error) {
	re, err := CompilePattern(pattern, opts)
	if err != nil {
		return "", err
	}
	return r.resolve(re, pattern, directory, name, template, placeholder.NewCounterSlots(template), opts)
}

// CompilePattern builds the matcher for pattern under opts. An empty pattern
// compiles to nil, which matches nothing.
func CompilePattern(pattern string, opts Options) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, nil
	}

	expr := pattern
	if !opts.UseRegex {
		expr = regexp.QuoteMeta(pattern)
	}
	if !opts.CaseSensitive {
		expr = "(?i)" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &InvalidPatternError{Pattern: pattern, Err: err}
	}
	return re, nil
}

// resolve computes the proposed name of one file. Order: match check,
// counters then dates on the template, back-reference translation, bounded
// substitution on the target field, text operations on the new filename.
func (r *Resolver) resolve(re *regexp.Regexp, pattern, directory, name, template string, slots *placeholder.CounterSlots, opts Options) (string, error) {
	if re == nil {
		return name, nil
	}

	stem, ext := SplitName(name)
	var field string
	switch opts.ApplyTo {
	case ApplyToExtension:
		field = strings.TrimPrefix(ext, ".")
	case ApplyToBoth:
		field = name
	default:
		field = stem
	}

	if !re.MatchString(field) {
		return name, nil
	}

	tmpl := slots.Apply(template)
	tmpl, err := r.dates.Apply(tmpl, directory, name)
	if err != nil {
		return "", &DateLookupError{File: name, Err: err}
	}

	expand, err := translateReplacement(tmpl, re)
	if err != nil {
		return "", &InvalidPatternError{Pattern: pattern, Err: err}
	}

	replaced := substitute(re, field, expand, opts.MaxReplacements)

	var newName string
	switch opts.ApplyTo {
	case ApplyToExtension:
		newName = stem
		if replaced != "" {
			newName += "." + replaced
		}
	case ApplyToBoth:
		newName = replaced
	default:
		newName = replaced + ext
	}

	return placeholder.ApplyTextOperations(newName), nil
}

// SplitName splits name into stem and extension. The extension starts at the
// last dot and includes it; leading dots never start an extension, so
// ".bashrc" has no extension.
func SplitName(name string) (stem, ext string) {
	start := 0
	for start < len(name) && name[start] == '.' {
		start++
	}
	i := strings.LastIndexByte(name[start:], '.')
	if i < 0 {
		return name, ""
	}
	i += start
	return name[:i], name[i:]
}

// substitute replaces at most n matches of re in src (n <= 0 means all) with
// the expansion of tmpl.
func substitute(re *regexp.Regexp, src, tmpl string, n int) string {
	limit := -1
	if n > 0 {
		limit = n
	}

	matches := re.FindAllStringSubmatchIndex(src, limit)
	if len(matches) == 0 {
		return src
	}

	out := make([]byte, 0, len(src)+len(tmpl))
	last := 0
	for _, m := range matches {
		out = append(out, src[last:m[0]]...)
		out = re.ExpandString(out, tmpl, src, m)
		last = m[1]
	}
	out = append(out, src[last:]...)
	return string(out)
}

// translateReplacement converts a replacement written with backslash group
// references (\1, \12, \g<name>, \g<0>) into a regexp.Expand template.
// A doubled backslash is a literal backslash and a literal $ is preserved.
// References to groups re does not define are an error.
func translateReplacement(repl string, re *regexp.Regexp) (string, error) {
	if !strings.ContainsAny(repl, `\$`) {
		return repl, nil
	}

	names := re.SubexpNames()
	groups := re.NumSubexp()

	var b strings.Builder
	b.Grow(len(repl) + 8)
	for i := 0; i < len(repl); i++ {
		c := repl[i]
		if c == '$' {
			b.WriteString("$$")
			continue
		}
		if c != '\\' || i+1 == len(repl) {
			b.WriteByte(c)
			continue
		}

		next := repl[i+1]
		switch {
		case next == '\\':
			b.WriteByte('\\')
			i++

		case isDigit(next):
			j := i + 2
			if j < len(repl) && isDigit(repl[j]) {
				j++
			}
			n, _ := strconv.Atoi(repl[i+1 : j])
			if n == 0 || n > groups {
				return "", fmt.Errorf("invalid group reference %s", repl[i:j])
			}
			fmt.Fprintf(&b, "${%d}", n)
			i = j - 1

		case next == 'g' && i+2 < len(repl) && repl[i+2] == '<':
			end := strings.IndexByte(repl[i+3:], '>')
			if end < 0 {
				return "", fmt.Errorf("missing > in group reference %s", repl[i:])
			}
			ref := repl[i+3 : i+3+end]
			if err := checkGroupRef(ref, names, groups); err != nil {
				return "", err
			}
			fmt.Fprintf(&b, "${%s}", ref)
			i += 3 + end

		default:
			b.WriteByte(c)
		}
	}

	return b.String(), nil
}

func checkGroupRef(ref string, names []string, groups int) error {
	if ref == "" {
		return fmt.Errorf("empty group reference")
	}
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 0 || n > groups {
			return fmt.Errorf("invalid group reference %d", n)
		}
		return nil
	}
	for _, name := range names {
		if name != "" && name == ref {
			return nil
		}
	}
	return fmt.Errorf("unknown group name %q", ref)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
