// Package interpolate substitutes $NAME and ${NAME} references in templates
// using an ordered variable mapping. Substitution walks the mapping in
// insertion order and is a single pass per variable, which makes results
// reproducible but also order-sensitive: a variable listed first can consume
// part of a longer reference before the longer variable gets its turn.
package interpolate

import (
	"fmt"
	"strings"

	"github.com/steinuil/gitlab-ci-env/internal/errors"
)

// Pair is one name/value entry of a Mapping.
type Pair struct {
	Name  string
	Value string
}

// Mapping is an ordered set of variables. It is a slice under the hood,
// never a Go map: iteration order is the substitution order and must not
// depend on hashing.
type Mapping struct {
	pairs []Pair
}

// NewMapping creates a Mapping holding the given pairs in order. Duplicate
// names keep the first position and the last value.
func NewMapping(pairs ...Pair) *Mapping {
	m := &Mapping{pairs: make([]Pair, 0, len(pairs))}
	for _, p := range pairs {
		m.Set(p.Name, p.Value)
	}
	return m
}

// Set updates the value in place when name is already present, keeping its
// position, and appends the pair otherwise.
func (m *Mapping) Set(name, value string) {
	for i := range m.pairs {
		if m.pairs[i].Name == name {
			m.pairs[i].Value = value
			return
		}
	}
	m.pairs = append(m.pairs, Pair{Name: name, Value: value})
}

// Clone returns an independent copy. Cloning a nil Mapping yields an empty
// one, so callers can treat optional mappings uniformly.
func (m *Mapping) Clone() *Mapping {
	if m == nil {
		return &Mapping{}
	}
	clone := &Mapping{pairs: make([]Pair, len(m.pairs))}
	copy(clone.pairs, m.pairs)
	return clone
}

// Pairs returns a copy of the entries in insertion order.
func (m *Mapping) Pairs() []Pair {
	if m == nil {
		return nil
	}
	pairs := make([]Pair, len(m.pairs))
	copy(pairs, m.pairs)
	return pairs
}

// Len returns the number of entries.
func (m *Mapping) Len() int {
	if m == nil {
		return 0
	}
	return len(m.pairs)
}

// ParseAssignments converts KEY=VALUE arguments into a Mapping, preserving
// the order of first appearance. A later assignment to the same key replaces
// the earlier value in place. The value may be empty or contain further =
// signs; the key may not be empty.
func ParseAssignments(args []string) (*Mapping, error) {
	vars := NewMapping()
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%w: %q, expected format: KEY=VALUE", errors.ErrInvalidAssignment, arg)
		}
		vars.Set(name, value)
	}
	return vars, nil
}

// Expand replaces variable references in template with the values of vars,
// walking the mapping in insertion order. Each variable replaces every
// occurrence of its bare $NAME form first, then its braced ${NAME} form.
//
// Expansion is not recursive, but values substituted by earlier variables
// are visible to later ones. References to absent variables, lone dollar
// signs and unterminated ${ are left untouched.
func Expand(template string, vars *Mapping) string {
	if vars == nil {
		return template
	}
	for _, p := range vars.pairs {
		template = strings.ReplaceAll(template, "$"+p.Name, p.Value)
		template = strings.ReplaceAll(template, "${"+p.Name+"}", p.Value)
	}
	return template
}
