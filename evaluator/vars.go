package evaluator

import (
	"sort"
	"sync"
)

// Scope resolves and binds variables during an evaluation.
type Scope interface {
	Lookup(name string) (Value, bool)
	Assign(name string, value Value)
}

// Table maps variable names to their last assigned value. It is safe for
// concurrent use.
type Table struct {
	mu   sync.RWMutex
	vars map[string]Value
}

// NewTable creates an empty variable table.
func NewTable() *Table {
	return &Table{vars: map[string]Value{}}
}

// Lookup returns the value bound to name.
func (t *Table) Lookup(name string) (Value, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	v, ok := t.vars[name]
	return v, ok
}

// Assign binds value to name, overwriting any previous value.
func (t *Table) Assign(name string, value Value) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.vars[name] = value
}

// Len returns the number of bound variables.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.vars)
}

// Names returns the bound variable names, sorted.
func (t *Table) Names() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	names := make([]string, 0, len(t.vars))
	for name := range t.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a copy of the bindings.
func (t *Table) Snapshot() map[string]Value {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]Value, len(t.vars))
	for name, v := range t.vars {
		out[name] = v
	}
	return out
}

// staged collects the assignments of a single equation on top of a Scope so
// that a failing equation leaves the underlying bindings untouched.
type staged struct {
	base   Scope
	writes map[string]Value
	order  []string
}

func stage(base Scope) *staged {
	return &staged{base: base, writes: map[string]Value{}}
}

func (s *staged) Lookup(name string) (Value, bool) {
	if v, ok := s.writes[name]; ok {
		return v, true
	}
	return s.base.Lookup(name)
}

func (s *staged) Assign(name string, value Value) {
	if _, ok := s.writes[name]; !ok {
		s.order = append(s.order, name)
	}
	s.writes[name] = value
}

// commit applies the staged assignments to the underlying scope.
func (s *staged) commit() {
	for _, name := range s.order {
		s.base.Assign(name, s.writes[name])
	}
}
