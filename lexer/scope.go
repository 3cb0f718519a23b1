package lexer

import (
	"maps"
	"slices"
)

// Scope holds the local variable names visible to the lexer.
type Scope struct {
	store map[string]struct{}
}

// NewScope creates a scope with the given names already declared.
func NewScope(names ...string) *Scope {
	s := &Scope{store: make(map[string]struct{})}
	for _, name := range names {
		s.Declare(name)
	}
	return s
}

// Declare records name as a local variable.
func (s *Scope) Declare(name string) {
	s.store[name] = struct{}{}
}

// IsLocalDefined reports whether name has been declared.
func (s *Scope) IsLocalDefined(name string) bool {
	_, ok := s.store[name]
	return ok
}

// LocalVariableNames returns the declared names in sorted order.
func (s *Scope) LocalVariableNames() []string {
	return slices.Sorted(maps.Keys(s.store))
}
