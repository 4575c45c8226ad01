package sarg

import (
	"strings"
	"time"
)

// TruthValue is the outcome of evaluating a predicate against a group of
// rows. It records which of true, false and null the predicate can take
// for the rows in the group.
type TruthValue int

const (
	Yes       TruthValue = iota // every row matches
	No                          // no row matches
	Null                        // every row evaluates to null
	YesNull                     // rows are true or null
	NoNull                      // rows are false or null
	YesNo                       // rows are true or false
	YesNoNull                   // anything is possible
)

func (v TruthValue) String() string {
	switch v {
	case Yes:
		return "YES"
	case No:
		return "NO"
	case Null:
		return "NULL"
	case YesNull:
		return "YES_NULL"
	case NoNull:
		return "NO_NULL"
	case YesNo:
		return "YES_NO"
	default:
		return "YES_NO_NULL"
	}
}

// IsNeeded reports whether some row of the group may match, that is
// whether the group must be read.
func (v TruthValue) IsNeeded() bool {
	switch v {
	case No, Null, NoNull:
		return false
	}
	return true
}

// Not returns the negation of v.
func (v TruthValue) Not() TruthValue {
	switch v {
	case Yes:
		return No
	case No:
		return Yes
	case YesNull:
		return NoNull
	case NoNull:
		return YesNull
	}
	return v
}

// And combines v and o with SQL conjunction semantics.
func (v TruthValue) And(o TruthValue) TruthValue {
	switch {
	case v == o:
		return v
	case v == No || o == No:
		return No
	case v == NoNull || o == NoNull:
		return NoNull
	case o == Yes:
		return v
	case v == Yes:
		return o
	case v == Null:
		if o == YesNull {
			return Null
		}
		return NoNull
	case o == Null:
		if v == YesNull {
			return Null
		}
		return NoNull
	}
	return YesNoNull
}

// Or combines v and o with SQL disjunction semantics.
func (v TruthValue) Or(o TruthValue) TruthValue {
	switch {
	case v == o:
		return v
	case v == Yes || o == Yes:
		return Yes
	case v == YesNull || o == YesNull:
		return YesNull
	case o == No:
		return v
	case v == No:
		return o
	case v == Null:
		if o == NoNull {
			return Null
		}
		return YesNull
	case o == Null:
		if v == NoNull {
			return Null
		}
		return YesNull
	}
	return YesNoNull
}

// Evaluate computes the truth value of the expression given one truth
// value per leaf, indexed like Leaves. Missing entries count as YesNoNull.
func (s *SearchArgument) Evaluate(leaves []TruthValue) TruthValue {
	return evaluate(s.Expr, leaves)
}

func evaluate(e *Expr, leaves []TruthValue) TruthValue {
	switch e.Kind {
	case KindLeaf:
		if e.Leaf < len(leaves) {
			return leaves[e.Leaf]
		}
		return YesNoNull
	case KindNot:
		return evaluate(e.Children[0], leaves).Not()
	}
	result := evaluate(e.Children[0], leaves)
	for _, c := range e.Children[1:] {
		if e.Kind == KindAnd {
			result = result.And(evaluate(c, leaves))
		} else {
			result = result.Or(evaluate(c, leaves))
		}
	}
	return result
}

// ColumnStats summarizes the values of one column in a row group.
// Min and Max are nil when the group holds no non-null value. Values use
// the same Go representation as leaf literals of the column's type.
type ColumnStats struct {
	Min     any
	Max     any
	HasNull bool
}

// EvaluateStats evaluates the search argument against per-column
// statistics of a row group. Columns without statistics are unknown.
func (s *SearchArgument) EvaluateStats(stats map[string]ColumnStats) TruthValue {
	values := make([]TruthValue, len(s.Leaves))
	for i, l := range s.Leaves {
		st, ok := stats[unquote(l.Column)]
		if !ok {
			values[i] = YesNoNull
			continue
		}
		values[i] = l.EvaluateStats(st)
	}
	return s.Evaluate(values)
}

// EvaluateStats evaluates a single leaf against column statistics.
func (l Leaf) EvaluateStats(st ColumnStats) TruthValue {
	if l.Operator == OpIsNull {
		switch {
		case !st.HasNull:
			return No
		case st.Min == nil:
			return Yes
		}
		return YesNo
	}
	if st.Min == nil || st.Max == nil {
		if st.HasNull && l.Operator != OpNullSafeEquals {
			return Null
		}
		return No
	}

	var result TruthValue
	switch l.Operator {
	case OpEquals, OpNullSafeEquals:
		result = rangeEquals(l.Literal, st)
	case OpIn:
		result = No
		for _, v := range l.Literals {
			switch rangeEquals(v, st) {
			case Yes:
				result = Yes
			case YesNo:
				if result == No {
					result = YesNo
				}
			}
		}
	case OpLessThan:
		result = rangeLess(l.Literal, st, false)
	case OpLessThanEquals:
		result = rangeLess(l.Literal, st, true)
	default:
		result = YesNo
	}

	if !st.HasNull {
		return result
	}
	if l.Operator == OpNullSafeEquals {
		// null rows compare false, never null
		if result == Yes {
			return YesNo
		}
		return result
	}
	switch result {
	case Yes:
		return YesNull
	case No:
		return NoNull
	}
	return YesNoNull
}

func rangeEquals(v any, st ColumnStats) TruthValue {
	lo, ok1 := compare(v, st.Min)
	hi, ok2 := compare(v, st.Max)
	switch {
	case !ok1 || !ok2:
		return YesNo
	case lo < 0 || hi > 0:
		return No
	case lo == 0 && hi == 0:
		return Yes
	}
	return YesNo
}

func rangeLess(v any, st ColumnStats, inclusive bool) TruthValue {
	lo, ok1 := compare(st.Min, v)
	hi, ok2 := compare(st.Max, v)
	switch {
	case !ok1 || !ok2:
		return YesNo
	case hi < 0 || (inclusive && hi == 0):
		return Yes
	case lo > 0 || (!inclusive && lo == 0):
		return No
	}
	return YesNo
}

// compare orders two literals of the same Go type.
func compare(a, b any) (int, bool) {
	switch a := a.(type) {
	case int64:
		b, ok := b.(int64)
		return cmpOrdered(a, b), ok
	case float64:
		b, ok := b.(float64)
		return cmpOrdered(a, b), ok
	case string:
		b, ok := b.(string)
		return strings.Compare(a, b), ok
	case bool:
		b, ok := b.(bool)
		if !ok {
			return 0, false
		}
		switch {
		case a == b:
			return 0, true
		case !a:
			return -1, true
		}
		return 1, true
	case time.Time:
		b, ok := b.(time.Time)
		return a.Compare(b), ok
	case Decimal:
		b, ok := b.(Decimal)
		if !ok {
			return 0, false
		}
		x, y := a.Num, b.Num
		switch {
		case a.Scale < b.Scale:
			x = x.IncreaseScaleBy(b.Scale - a.Scale)
		case b.Scale < a.Scale:
			y = y.IncreaseScaleBy(a.Scale - b.Scale)
		}
		return x.Cmp(y), true
	}
	return 0, false
}

func cmpOrdered[T int64 | float64](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// unquote strips the backticks added around dotted column names. Other
// names are returned unchanged, backticks included.
func unquote(column string) string {
	if len(column) < 2 || column[0] != '`' || column[len(column)-1] != '`' {
		return column
	}
	inner := column[1 : len(column)-1]
	if !strings.Contains(inner, ".") || strings.Contains(inner, "`") {
		return column
	}
	return inner
}
