package placeholder

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gosimple/slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Operation transforms the captured text of a {<text>|<operation>} markup.
type Operation func(string) string

// textOpPattern matches {<text>|<operation>}. Neither part may contain braces
// or pipes.
var textOpPattern = regexp.MustCompile(`\{([^{}|]+)\|([^{}|]+)\}`)

var (
	operations     = map[string]Operation{}
	operationOrder []string
)

func init() {
	RegisterOperation("capitalize", capitalize)
	RegisterOperation("len", func(s string) string { return strconv.Itoa(utf8.RuneCountInString(s)) })
	RegisterOperation("lower", cases.Lower(language.Und).String)
	RegisterOperation("reverse", reverse)
	RegisterOperation("slugify", slug.Make)
	RegisterOperation("strip", strings.TrimSpace)
	RegisterOperation("swapcase", swapCase)
	RegisterOperation("title", title)
	RegisterOperation("upper", cases.Upper(language.Und).String)

	RegisterOperation("caps", capitalize)
	RegisterOperation("camel", camelCase)
	RegisterOperation("pascal", pascalCase)
	RegisterOperation("snake", func(s string) string { return joinWords(s, "_") })
	RegisterOperation("kebab", func(s string) string { return joinWords(s, "-") })
}

// RegisterOperation adds or replaces a named text operation. Not safe for
// concurrent use; call it during initialization.
func RegisterOperation(name string, op Operation) {
	if _, exists := operations[name]; !exists {
		operationOrder = append(operationOrder, name)
	}
	operations[name] = op
}

// Operations returns the registered operation names in registration order.
func Operations() []string {
	out := make([]string, len(operationOrder))
	copy(out, operationOrder)
	return out
}

// LookupOperation returns the operation registered under name.
func LookupOperation(name string) (Operation, bool) {
	op, ok := operations[name]
	return op, ok
}

// ApplyTextOperations replaces every {<text>|<operation>} markup in s with the
// operation applied to text. Unknown operations leave text unchanged.
func ApplyTextOperations(s string) string {
	return textOpPattern.ReplaceAllStringFunc(s, func(match string) string {
		sub := textOpPattern.FindStringSubmatch(match)
		text, name := sub[1], sub[2]
		if op, ok := operations[name]; ok {
			return op(text)
		}
		return text
	})
}

// HasTextOperation reports whether s contains text-operation markup.
func HasTextOperation(s string) bool {
	return textOpPattern.MatchString(s)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && size <= 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// title upper-cases the first letter of every run of letters and lower-cases
// the rest.
func title(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToTitle(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}

func swapCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		}
		return r
	}, s)
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// splitWords breaks s into lower-cased words on non-alphanumerics and on
// lower-to-upper transitions ("fileName" -> file, name).
func splitWords(s string) []string {
	var (
		words []string
		cur   []rune
		prev  rune
	)
	flush := func() {
		if len(cur) > 0 {
			words = append(words, strings.ToLower(string(cur)))
			cur = cur[:0]
		}
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			prev = 0
			continue
		}
		if unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			flush()
		}
		cur = append(cur, r)
		prev = r
	}
	flush()
	return words
}

func joinWords(s, sep string) string {
	return strings.Join(splitWords(s), sep)
}

func camelCase(s string) string {
	words := splitWords(s)
	for i := 1; i < len(words); i++ {
		words[i] = capitalize(words[i])
	}
	return strings.Join(words, "")
}

func pascalCase(s string) string {
	words := splitWords(s)
	for i := range words {
		words[i] = capitalize(words[i])
	}
	return strings.Join(words, "")
}
