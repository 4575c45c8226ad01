package sarg

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow/decimal128"
)

// Type is the type tag of a leaf predicate's literal.
type Type int

const (
	TypeLong Type = iota
	TypeFloat
	TypeString
	TypeDate
	TypeDecimal
	TypeTimestamp
	TypeBoolean
)

func (t Type) String() string {
	switch t {
	case TypeLong:
		return "LONG"
	case TypeFloat:
		return "FLOAT"
	case TypeString:
		return "STRING"
	case TypeDate:
		return "DATE"
	case TypeDecimal:
		return "DECIMAL"
	case TypeTimestamp:
		return "TIMESTAMP"
	case TypeBoolean:
		return "BOOLEAN"
	default:
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
}

// Operator identifies the kind of leaf predicate.
type Operator int

const (
	OpEquals Operator = iota
	OpNullSafeEquals
	OpLessThan
	OpLessThanEquals
	OpIn
	OpIsNull
)

func (o Operator) String() string {
	switch o {
	case OpEquals:
		return "EQUALS"
	case OpNullSafeEquals:
		return "NULL_SAFE_EQUALS"
	case OpLessThan:
		return "LESS_THAN"
	case OpLessThanEquals:
		return "LESS_THAN_EQUALS"
	case OpIn:
		return "IN"
	case OpIsNull:
		return "IS_NULL"
	default:
		return "Operator(" + strconv.Itoa(int(o)) + ")"
	}
}

// Leaf is an atomic predicate over a single column.
type Leaf struct {
	Operator Operator
	Type     Type
	Column   string

	// Literal is set for EQUALS, NULL_SAFE_EQUALS, LESS_THAN and LESS_THAN_EQUALS.
	Literal any

	// Literals is set for IN.
	Literals []any
}

func (l Leaf) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(l.Operator.String())
	sb.WriteString(" ")
	sb.WriteString(l.Column)
	switch l.Operator {
	case OpIsNull:
	case OpIn:
		for _, v := range l.Literals {
			sb.WriteString(" ")
			sb.WriteString(formatLiteral(v))
		}
	default:
		sb.WriteString(" ")
		sb.WriteString(formatLiteral(l.Literal))
	}
	sb.WriteString(")")
	return sb.String()
}

func (l Leaf) equal(o Leaf) bool {
	if l.Operator != o.Operator || l.Type != o.Type || l.Column != o.Column {
		return false
	}
	if !literalEqual(l.Literal, o.Literal) || len(l.Literals) != len(o.Literals) {
		return false
	}
	for i := range l.Literals {
		if !literalEqual(l.Literals[i], o.Literals[i]) {
			return false
		}
	}
	return true
}

// Decimal is a fixed-precision decimal literal.
type Decimal struct {
	Num       decimal128.Num
	Precision int32
	Scale     int32
}

// NewDecimal parses s into a Decimal with the given precision and scale.
func NewDecimal(s string, precision, scale int32) (Decimal, error) {
	n, err := decimal128.FromString(s, precision, scale)
	if err != nil {
		return Decimal{}, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	return Decimal{Num: n, Precision: precision, Scale: scale}, nil
}

func (d Decimal) String() string {
	return d.Num.ToString(d.Scale)
}

// Kind identifies the node type of an expression tree.
type Kind int

const (
	KindLeaf Kind = iota
	KindAnd
	KindOr
	KindNot
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	case KindNot:
		return "not"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Expr is a node of the search argument's expression tree.
// Leaf nodes refer to SearchArgument.Leaves by index.
type Expr struct {
	Kind     Kind    `msgpack:"k"`
	Children []*Expr `msgpack:"c,omitempty"`
	Leaf     int     `msgpack:"l,omitempty"`
}

func (e *Expr) String() string {
	if e.Kind == KindLeaf {
		return "leaf-" + strconv.Itoa(e.Leaf)
	}
	parts := make([]string, 0, len(e.Children)+1)
	parts = append(parts, e.Kind.String())
	for _, c := range e.Children {
		parts = append(parts, c.String())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// SearchArgument is a finished, immutable predicate over a set of leaves.
type SearchArgument struct {
	Leaves []Leaf
	Expr   *Expr
}

func (s *SearchArgument) String() string {
	var sb strings.Builder
	for i, l := range s.Leaves {
		sb.WriteString("leaf-")
		sb.WriteString(strconv.Itoa(i))
		sb.WriteString(" = ")
		sb.WriteString(l.String())
		sb.WriteString(", ")
	}
	sb.WriteString("expr = ")
	sb.WriteString(s.Expr.String())
	return sb.String()
}

// Columns returns the distinct column names referenced by the leaves.
func (s *SearchArgument) Columns() []string {
	seen := make(map[string]bool, len(s.Leaves))
	var cols []string
	for _, l := range s.Leaves {
		if !seen[l.Column] {
			seen[l.Column] = true
			cols = append(cols, l.Column)
		}
	}
	return cols
}

// checkLiteral reports whether v is the Go representation required for t.
func checkLiteral(t Type, v any) bool {
	switch v.(type) {
	case int64:
		return t == TypeLong
	case float64:
		return t == TypeFloat
	case string:
		return t == TypeString
	case bool:
		return t == TypeBoolean
	case time.Time:
		return t == TypeDate || t == TypeTimestamp
	case Decimal:
		return t == TypeDecimal
	}
	return false
}

func literalEqual(a, b any) bool {
	if ta, ok := a.(time.Time); ok {
		tb, ok := b.(time.Time)
		return ok && ta.Equal(tb)
	}
	return a == b
}

func formatLiteral(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case nil:
		return "null"
	default:
		return fmt.Sprint(v)
	}
}
