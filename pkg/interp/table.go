package interp

import (
	"os"
	"sort"
)

// Table holds substitutions that take precedence over the environment.
// Values are stored already computed; SetFunc is for values that can only be
// known at the moment of expansion. A nil *Table is a valid empty table.
type Table struct {
	values map[string]string
	funcs  map[string]func() string
}

// NewTable returns an empty table
func NewTable() *Table {
	return &Table{
		values: make(map[string]string),
		funcs:  make(map[string]func() string),
	}
}

// TableFrom builds a table from a plain map
func TableFrom(values map[string]string) *Table {
	t := NewTable()
	for name, value := range values {
		t.Set(name, value)
	}
	return t
}

// Set stores a computed value, replacing any previous entry for name.
func (t *Table) Set(name, value string) *Table {
	delete(t.funcs, name)
	t.values[name] = value
	return t
}

// SetFunc stores a deferred value. fn is called each time name is resolved.
func (t *Table) SetFunc(name string, fn func() string) *Table {
	delete(t.values, name)
	t.funcs[name] = fn
	return t
}

// Lookup resolves name against the table only.
func (t *Table) Lookup(name string) (string, bool) {
	if t == nil {
		return "", false
	}
	if v, ok := t.values[name]; ok {
		return v, true
	}
	if fn, ok := t.funcs[name]; ok && fn != nil {
		return fn(), true
	}
	return "", false
}

// Merge copies the entries of other into t, other winning on conflicts.
func (t *Table) Merge(other *Table) *Table {
	if other == nil {
		return t
	}
	for name, value := range other.values {
		t.Set(name, value)
	}
	for name, fn := range other.funcs {
		t.SetFunc(name, fn)
	}
	return t
}

// Names returns the table's names in sorted order
func (t *Table) Names() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.values)+len(t.funcs))
	for name := range t.values {
		names = append(names, name)
	}
	for name := range t.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of entries
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.values) + len(t.funcs)
}

// Environment is the fallback consulted for names missing from the table.
type Environment interface {
	Lookup(name string) (string, bool)
}

// OSEnvironment reads the process environment.
type OSEnvironment struct{}

func (OSEnvironment) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

// MapEnvironment is a fixed environment, mostly useful in tests.
type MapEnvironment map[string]string

func (m MapEnvironment) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}
