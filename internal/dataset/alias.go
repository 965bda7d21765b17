package dataset

import (
	"maps"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Aliases maps a logical field name to the physical column names that may carry it, in
// precedence order. Logical names are matched case-insensitively; physical names are matched
// exactly.
type Aliases map[string][]string

// Logical names understood by DefaultAliases.
const (
	ClosePrice = "close price"
	DateField  = "date"
	Gold       = "gold"
	Oil        = "oil"
)

// DefaultAliases returns the resolution rules for the price dashboard inputs.
func DefaultAliases() Aliases {
	return Aliases{
		ClosePrice: {"close", "Close"},
		DateField:  {"Date", "date"},
		Gold:       {"Gold"},
		Oil:        {"Oil"},
	}
}

// With returns a copy of a with logical mapped to candidates.
func (a Aliases) With(logical string, candidates ...string) Aliases {
	c := maps.Clone(a)
	if c == nil {
		c = Aliases{}
	}
	c[strings.ToLower(logical)] = slices.Clone(candidates)
	return c
}

// Candidates returns the physical names tried for logical, in order.
// A name without a rule is tried verbatim, then lower-cased, then capitalised.
func (a Aliases) Candidates(logical string) []string {
	if c, ok := a[strings.ToLower(logical)]; ok {
		return slices.Clone(c)
	}
	var out []string
	for _, n := range []string{logical, strings.ToLower(logical), capitalize(logical)} {
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

// Resolve maps logical to the first candidate present in t.
func (a Aliases) Resolve(logical string, t *Table) (string, error) {
	return a.resolveIn(logical, t.columns)
}

func (a Aliases) resolveIn(logical string, names []string) (string, error) {
	candidates := a.Candidates(logical)
	for _, c := range candidates {
		if slices.Contains(names, c) {
			return c, nil
		}
	}
	return "", &ColumnNotFoundError{Name: logical, Candidates: candidates}
}

// ResolveColumn resolves logical against t with DefaultAliases.
func ResolveColumn(logical string, t *Table) (string, error) {
	return DefaultAliases().Resolve(logical, t)
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
