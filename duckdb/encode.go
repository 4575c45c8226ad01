package duckdb

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hugr-lab/pushdown/sarg"
)

// EncoderOptions configures encoding behavior.
type EncoderOptions struct {
	// ColumnMapping maps original column names to target names.
	// Columns not in the map use their original names.
	ColumnMapping map[string]string

	// ColumnExpressions maps column names to SQL expressions.
	// Takes precedence over ColumnMapping.
	// Use for computed columns or complex transformations.
	ColumnExpressions map[string]string
}

// Encode renders a search argument as the body of a DuckDB WHERE clause,
// without the WHERE keyword. It returns an empty string for a nil search
// argument.
//
// Example:
//
//	where := duckdb.Encode(sa, &duckdb.EncoderOptions{
//	    ColumnMapping: map[string]string{"a": "account_id"},
//	})
//	rows, err := db.Query("SELECT * FROM t WHERE " + where)
func Encode(sa *sarg.SearchArgument, opts *EncoderOptions) string {
	if sa == nil || sa.Expr == nil {
		return ""
	}
	if opts == nil {
		opts = &EncoderOptions{}
	}
	e := &encoder{opts: opts, leaves: sa.Leaves}
	return e.expr(sa.Expr)
}

type encoder struct {
	opts   *EncoderOptions
	leaves []sarg.Leaf
}

func (e *encoder) expr(x *sarg.Expr) string {
	switch x.Kind {
	case sarg.KindLeaf:
		return e.leaf(e.leaves[x.Leaf])
	case sarg.KindNot:
		return "NOT (" + e.expr(x.Children[0]) + ")"
	}

	parts := make([]string, 0, len(x.Children))
	for _, c := range x.Children {
		parts = append(parts, e.expr(c))
	}
	if len(parts) == 1 {
		return parts[0]
	}
	op := " AND "
	if x.Kind == sarg.KindOr {
		op = " OR "
	}
	return "(" + strings.Join(parts, op) + ")"
}

func (e *encoder) leaf(l sarg.Leaf) string {
	col := e.column(l.Column)
	switch l.Operator {
	case sarg.OpEquals:
		return col + " = " + formatLiteral(l.Type, l.Literal)
	case sarg.OpNullSafeEquals:
		return col + " IS NOT DISTINCT FROM " + formatLiteral(l.Type, l.Literal)
	case sarg.OpLessThan:
		return col + " < " + formatLiteral(l.Type, l.Literal)
	case sarg.OpLessThanEquals:
		return col + " <= " + formatLiteral(l.Type, l.Literal)
	case sarg.OpIn:
		values := make([]string, 0, len(l.Literals))
		for _, v := range l.Literals {
			values = append(values, formatLiteral(l.Type, v))
		}
		return col + " IN (" + strings.Join(values, ", ") + ")"
	default:
		return col + " IS NULL"
	}
}

// column resolves a leaf column to SQL. Backticks added around dotted
// names are removed first.
func (e *encoder) column(name string) string {
	if len(name) >= 2 && name[0] == '`' && name[len(name)-1] == '`' {
		name = name[1 : len(name)-1]
	}

	// Check for expression mapping first (takes precedence)
	if expr, ok := e.opts.ColumnExpressions[name]; ok {
		return expr
	}
	if mapped, ok := e.opts.ColumnMapping[name]; ok {
		name = mapped
	}
	return quoteIdentifier(name)
}

// formatLiteral renders a leaf literal as a DuckDB constant.
func formatLiteral(t sarg.Type, v any) string {
	switch v := v.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return formatFloat(v)
	case string:
		return quoteLiteral(v)
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case sarg.Decimal:
		return v.String()
	case time.Time:
		v = v.UTC()
		if t == sarg.TypeDate {
			return "DATE '" + v.Format("2006-01-02") + "'"
		}
		return "TIMESTAMP '" + v.Format("2006-01-02 15:04:05.999999") + "'"
	}
	return "NULL"
}

// formatFloat renders a DOUBLE constant. NaN and the infinities have no
// bare token in DuckDB and are cast from their string names.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "'nan'::DOUBLE"
	case math.IsInf(v, 1):
		return "'inf'::DOUBLE"
	case math.IsInf(v, -1):
		return "'-inf'::DOUBLE"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// escapeString escapes single quotes in a string value for SQL.
func escapeString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// quoteLiteral returns a SQL string literal with proper escaping.
func quoteLiteral(s string) string {
	return "'" + escapeString(s) + "'"
}

// quoteIdentifier returns a quoted identifier if needed.
// DuckDB uses double quotes for identifiers.
func quoteIdentifier(name string) string {
	if needsQuoting(name) {
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
	return name
}

// needsQuoting returns true if the identifier needs quoting.
func needsQuoting(name string) bool {
	if len(name) == 0 {
		return true
	}

	c := name[0]
	if !isLetter(c) && c != '_' {
		return true
	}
	for i := 1; i < len(name); i++ {
		c = name[i]
		if !isLetter(c) && !isDigit(c) && c != '_' {
			return true
		}
	}

	_, reserved := reservedWords[strings.ToUpper(name)]
	return reserved
}

// reservedWords is a simplified list of keywords that must be quoted.
var reservedWords = map[string]struct{}{
	"SELECT": {}, "FROM": {}, "WHERE": {}, "AND": {}, "OR": {}, "NOT": {}, "NULL": {},
	"TRUE": {}, "FALSE": {}, "TABLE": {}, "JOIN": {}, "ON": {}, "AS": {}, "IN": {},
	"IS": {}, "LIKE": {}, "BETWEEN": {}, "CASE": {}, "WHEN": {}, "THEN": {}, "ELSE": {},
	"END": {}, "ORDER": {}, "BY": {}, "GROUP": {}, "HAVING": {}, "LIMIT": {}, "OFFSET": {},
	"UNION": {}, "ALL": {}, "DISTINCT": {}, "DEFAULT": {}, "CAST": {}, "INTERVAL": {},
	"DATE": {}, "TIME": {}, "TIMESTAMP": {},
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
