package filter

import (
	"fmt"
	"strings"
)

// Filter is the interface implemented by all filter kinds.
// The set of kinds is closed: use a type switch over the pointer types
// declared in this package to inspect a filter.
type Filter interface {
	// References returns the column names the filter reads, in tree order.
	References() []string

	// String renders the filter in a compact SQL-like form.
	String() string

	// filterMarker is a marker method to prevent external implementation.
	filterMarker()
}

// And is the conjunction of two filters.
type And struct {
	Left  Filter
	Right Filter
}

// Or is the disjunction of two filters.
type Or struct {
	Left  Filter
	Right Filter
}

// Not negates its child.
type Not struct {
	Child Filter
}

// EqualTo matches rows where Column = Value.
type EqualTo struct {
	Column string
	Value  any
}

// EqualNullSafe matches rows where Column IS NOT DISTINCT FROM Value.
type EqualNullSafe struct {
	Column string
	Value  any
}

// LessThan matches rows where Column < Value.
type LessThan struct {
	Column string
	Value  any
}

// LessThanOrEqual matches rows where Column <= Value.
type LessThanOrEqual struct {
	Column string
	Value  any
}

// GreaterThan matches rows where Column > Value.
type GreaterThan struct {
	Column string
	Value  any
}

// GreaterThanOrEqual matches rows where Column >= Value.
type GreaterThanOrEqual struct {
	Column string
	Value  any
}

// IsNull matches rows where Column is NULL.
type IsNull struct {
	Column string
}

// IsNotNull matches rows where Column is not NULL.
type IsNotNull struct {
	Column string
}

// In matches rows where Column equals any of Values.
type In struct {
	Column string
	Values []any
}

// StringStartsWith matches string columns with the given prefix.
type StringStartsWith struct {
	Column string
	Value  string
}

// StringEndsWith matches string columns with the given suffix.
type StringEndsWith struct {
	Column string
	Value  string
}

// StringContains matches string columns containing the given substring.
type StringContains struct {
	Column string
	Value  string
}

// Unsupported stands in for an upstream expression that has no filter
// equivalent. It keeps the tree shape intact so that the surrounding
// AND/OR/NOT rules still apply to it.
type Unsupported struct {
	Description string
}

func (*And) filterMarker()                {}
func (*Or) filterMarker()                 {}
func (*Not) filterMarker()                {}
func (*EqualTo) filterMarker()            {}
func (*EqualNullSafe) filterMarker()      {}
func (*LessThan) filterMarker()           {}
func (*LessThanOrEqual) filterMarker()    {}
func (*GreaterThan) filterMarker()        {}
func (*GreaterThanOrEqual) filterMarker() {}
func (*IsNull) filterMarker()             {}
func (*IsNotNull) filterMarker()          {}
func (*In) filterMarker()                 {}
func (*StringStartsWith) filterMarker()   {}
func (*StringEndsWith) filterMarker()     {}
func (*StringContains) filterMarker()     {}
func (*Unsupported) filterMarker()        {}

func (f *And) References() []string {
	return append(f.Left.References(), f.Right.References()...)
}

func (f *Or) References() []string {
	return append(f.Left.References(), f.Right.References()...)
}

func (f *Not) References() []string                { return f.Child.References() }
func (f *EqualTo) References() []string            { return []string{f.Column} }
func (f *EqualNullSafe) References() []string      { return []string{f.Column} }
func (f *LessThan) References() []string           { return []string{f.Column} }
func (f *LessThanOrEqual) References() []string    { return []string{f.Column} }
func (f *GreaterThan) References() []string        { return []string{f.Column} }
func (f *GreaterThanOrEqual) References() []string { return []string{f.Column} }
func (f *IsNull) References() []string             { return []string{f.Column} }
func (f *IsNotNull) References() []string          { return []string{f.Column} }
func (f *In) References() []string                 { return []string{f.Column} }
func (f *StringStartsWith) References() []string   { return []string{f.Column} }
func (f *StringEndsWith) References() []string     { return []string{f.Column} }
func (f *StringContains) References() []string     { return []string{f.Column} }
func (f *Unsupported) References() []string        { return nil }

func (f *And) String() string { return "(" + f.Left.String() + " AND " + f.Right.String() + ")" }
func (f *Or) String() string  { return "(" + f.Left.String() + " OR " + f.Right.String() + ")" }
func (f *Not) String() string { return "NOT " + f.Child.String() }

func (f *EqualTo) String() string            { return f.Column + " = " + formatLiteral(f.Value) }
func (f *EqualNullSafe) String() string      { return f.Column + " <=> " + formatLiteral(f.Value) }
func (f *LessThan) String() string           { return f.Column + " < " + formatLiteral(f.Value) }
func (f *LessThanOrEqual) String() string    { return f.Column + " <= " + formatLiteral(f.Value) }
func (f *GreaterThan) String() string        { return f.Column + " > " + formatLiteral(f.Value) }
func (f *GreaterThanOrEqual) String() string { return f.Column + " >= " + formatLiteral(f.Value) }
func (f *IsNull) String() string             { return f.Column + " IS NULL" }
func (f *IsNotNull) String() string          { return f.Column + " IS NOT NULL" }

func (f *In) String() string {
	parts := make([]string, 0, len(f.Values))
	for _, v := range f.Values {
		parts = append(parts, formatLiteral(v))
	}
	return f.Column + " IN (" + strings.Join(parts, ", ") + ")"
}

func (f *StringStartsWith) String() string {
	return "starts_with(" + f.Column + ", " + formatLiteral(f.Value) + ")"
}

func (f *StringEndsWith) String() string {
	return "ends_with(" + f.Column + ", " + formatLiteral(f.Value) + ")"
}

func (f *StringContains) String() string {
	return "contains(" + f.Column + ", " + formatLiteral(f.Value) + ")"
}

func (f *Unsupported) String() string { return "UNSUPPORTED(" + f.Description + ")" }

// formatLiteral renders a literal for String output. Strings are quoted.
func formatLiteral(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case string:
		return "'" + strings.ReplaceAll(v, "'", "''") + "'"
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
