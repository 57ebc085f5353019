package interp

import "strings"

type scanState int

const (
	literal scanState = iota
	inVariable
	escaped
)

// Expander expands templates against a table with Env as fallback.
// A nil Env means no fallback at all.
type Expander struct {
	Env Environment
}

// Expand expands template using the process environment as fallback.
func Expand(template string, table *Table) string {
	return Expander{Env: OSEnvironment{}}.Expand(template, table)
}

// Expand expands every $NAME reference in template.
func (e Expander) Expand(template string, table *Table) string {
	if !strings.ContainsAny(template, `$\`) {
		return template
	}

	s := scanner{resolve: func(name string) string {
		if v, ok := table.Lookup(name); ok {
			return v
		}
		if e.Env != nil {
			if v, ok := e.Env.Lookup(name); ok {
				return v
			}
		}
		return ""
	}}
	s.out.Grow(len(template))

	st := literal
	for _, r := range template {
		st = s.step(st, r)
	}
	return s.finish(st)
}

type scanner struct {
	out     strings.Builder
	name    strings.Builder
	resolve func(string) string
}

// step consumes one rune and returns the next state.
func (s *scanner) step(st scanState, r rune) scanState {
	switch st {
	case escaped:
		// "\\" and "\$" yield the second rune; before anything else the
		// backslash is simply dropped.
		s.out.WriteRune(r)
		return literal

	case inVariable:
		switch {
		case r == '$':
			s.flush()
			return inVariable
		case r == '\\':
			s.flush()
			return escaped
		case isIdentRune(r):
			s.name.WriteRune(r)
			return inVariable
		default:
			// covers the space and every other terminator
			s.flush()
			s.out.WriteRune(r)
			return literal
		}

	default:
		switch r {
		case '\\':
			return escaped
		case '$':
			return inVariable
		default:
			s.out.WriteRune(r)
			return literal
		}
	}
}

// flush resolves the pending name and writes its value.
func (s *scanner) flush() {
	s.out.WriteString(s.resolve(s.name.String()))
	s.name.Reset()
}

func (s *scanner) finish(st scanState) string {
	if st == inVariable {
		s.flush()
	}
	// a trailing lone backslash (st == escaped) is dropped
	return s.out.String()
}

func isIdentRune(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// IsIdentifier reports whether name can be referenced as $name in full.
func IsIdentifier(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if !isIdentRune(r) {
			return false
		}
	}
	return true
}
