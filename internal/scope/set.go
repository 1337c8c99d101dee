package scope

import (
	"slices"
)

// Set is an unordered collection of distinct scopes.
type Set map[string]struct{}

// NewSet returns a set holding the given scopes.
func NewSet(scopes ...string) Set {
	s := make(Set, len(scopes))
	for _, scope := range scopes {
		s.Add(scope)
	}
	return s
}

// Add inserts scope; adding an existing scope is a no-op.
func (s Set) Add(scope string) {
	s[scope] = struct{}{}
}

// Has reports whether scope is in the set.
func (s Set) Has(scope string) bool {
	_, ok := s[scope]
	return ok
}

// Len returns the number of scopes.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the scopes in lexical order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for scope := range s {
		out = append(out, scope)
	}
	slices.Sort(out)
	return out
}
