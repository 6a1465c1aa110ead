package types

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Symbol is a name bound in a scope. Functions and operators are symbols
// whose type is a *Function.
type Symbol struct {
	Name    string
	Type    Type
	Mutable bool
}

// IsFunction reports whether the symbol names a function or an overloaded
// operator.
func (s *Symbol) IsFunction() bool {
	return len(Signatures(s.Type)) > 0
}

// Scope maps names to symbols. Scopes form a chain up to the universe;
// insertion only ever touches the scope it is called on.
type Scope struct {
	parent  *Scope
	symbols map[string]*Symbol
}

// NewScope creates a scope nested in parent, which may be nil.
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, symbols: make(map[string]*Symbol)}
}

func (s *Scope) Parent() *Scope {
	return s.parent
}

// Insert binds sym in this scope. If the name is already bound here, the
// existing symbol is returned and nothing changes; otherwise nil.
func (s *Scope) Insert(sym *Symbol) *Symbol {
	if existing := s.symbols[sym.Name]; existing != nil {
		return existing
	}
	s.symbols[sym.Name] = sym
	return nil
}

// Lookup searches this scope only.
func (s *Scope) Lookup(name string) *Symbol {
	return s.symbols[name]
}

// LookupParent searches this scope, then its ancestors.
func (s *Scope) LookupParent(name string) *Symbol {
	for scope := s; scope != nil; scope = scope.parent {
		if sym := scope.symbols[name]; sym != nil {
			return sym
		}
	}
	return nil
}

// Names returns the names bound in this scope, sorted.
func (s *Scope) Names() []string {
	return slices.Sorted(maps.Keys(s.symbols))
}

func (s *Scope) String() string {
	var buf strings.Builder
	for depth, scope := 0, s; scope != nil; depth, scope = depth+1, scope.parent {
		fmt.Fprintf(&buf, "scope %d {\n", depth)
		for _, name := range scope.Names() {
			sym := scope.symbols[name]
			fmt.Fprintf(&buf, "  %s: %s", name, sym.Type)
			if sym.Mutable {
				buf.WriteString(" (mutable)")
			}
			buf.WriteString("\n")
		}
		buf.WriteString("}\n")
	}
	return buf.String()
}
