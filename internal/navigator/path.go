// Package navigator parses and prints value paths such as
// $.services[0].ports["http-alt"] and resolves them against a document.
package navigator

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

var (
	// ErrSyntax is wrapped by every ParsePath failure.
	ErrSyntax = errors.New("invalid path")
	// ErrNotFound is wrapped when a path does not lead to a value.
	ErrNotFound = errors.New("path not found")
)

// Step is one path segment: an object member or an array element.
type Step struct {
	Key     string
	Index   int
	IsIndex bool
}

// Key returns a member step.
func Key(name string) Step { return Step{Key: name} }

// Index returns an element step.
func Index(i int) Step { return Step{Index: i, IsIndex: true} }

// ParsePath parses a path made of dotted names, bracket indices and
// bracket-quoted names. A leading "$" or "_" (the root) is optional, so
// "$.a[0]", "_.a[0]" and "a[0]" are the same path. The root alone is the
// empty path.
func ParsePath(input string) ([]Step, error) {
	s := strings.TrimSpace(input)
	if strings.HasPrefix(s, "$") || strings.HasPrefix(s, "_") && (len(s) == 1 || s[1] == '.' || s[1] == '[') {
		s = s[1:]
	}

	var steps []Step
	i := 0
	for i < len(s) {
		switch s[i] {
		case '.':
			name, next := field(s, i+1)
			if name == "" {
				return nil, fmt.Errorf("%w: empty name at offset %d in %q", ErrSyntax, i+1, input)
			}
			steps = append(steps, Key(name))
			i = next
		case '[':
			step, next, err := bracket(s, i)
			if err != nil {
				return nil, fmt.Errorf("%w: %s in %q", ErrSyntax, err.Error(), input)
			}
			steps = append(steps, step)
			i = next
		default:
			if i != 0 {
				return nil, fmt.Errorf("%w: unexpected %q at offset %d in %q", ErrSyntax, s[i], i, input)
			}
			name, next := field(s, i)
			steps = append(steps, Key(name))
			i = next
		}
	}
	return steps, nil
}

// field scans a dotted name starting at i.
func field(s string, i int) (string, int) {
	j := i
	for j < len(s) && s[j] != '.' && s[j] != '[' {
		j++
	}
	return s[i:j], j
}

// bracket parses [n] or ["name"] starting at the '[' at i.
func bracket(s string, i int) (Step, int, error) {
	rest := s[i+1:]
	if strings.HasPrefix(rest, `"`) {
		quoted, err := strconv.QuotedPrefix(rest)
		if err != nil {
			return Step{}, 0, fmt.Errorf("unterminated quoted name at offset %d", i)
		}
		name, err := strconv.Unquote(quoted)
		if err != nil {
			return Step{}, 0, fmt.Errorf("bad quoted name at offset %d", i)
		}
		end := i + 1 + len(quoted)
		if end >= len(s) || s[end] != ']' {
			return Step{}, 0, fmt.Errorf("missing ] at offset %d", end)
		}
		return Key(name), end + 1, nil
	}
	end := strings.IndexByte(rest, ']')
	if end < 0 {
		return Step{}, 0, fmt.Errorf("missing ] after offset %d", i)
	}
	n, err := strconv.Atoi(strings.TrimSpace(rest[:end]))
	if err != nil || n < 0 {
		return Step{}, 0, fmt.Errorf("bad index %q at offset %d", rest[:end], i)
	}
	return Index(n), i + 1 + end + 1, nil
}

// Format prints steps in the form ParsePath reads, rooted at "$". Names
// that are not plain identifiers are bracket-quoted.
func Format(steps []Step) string {
	var b strings.Builder
	b.WriteByte('$')
	for _, st := range steps {
		switch {
		case st.IsIndex:
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(st.Index))
			b.WriteByte(']')
		case isIdent(st.Key):
			b.WriteByte('.')
			b.WriteString(st.Key)
		default:
			b.WriteByte('[')
			b.WriteString(strconv.Quote(st.Key))
			b.WriteByte(']')
		}
	}
	return b.String()
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && (unicode.IsDigit(r) || r == '-'):
		default:
			return false
		}
	}
	return true
}
