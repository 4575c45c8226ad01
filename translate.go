package pushdown

import (
	"github.com/hugr-lab/pushdown/filter"
	"github.com/hugr-lab/pushdown/sarg"
)

// convertible translates f into a throwaway builder and reports whether
// the translation succeeded. The builder is never finalized.
func (t *Translator) convertible(schema filter.Schema, f filter.Filter, canPartialPushDownConjuncts bool) bool {
	_, ok := t.build(schema, f, t.newBuilder(), canPartialPushDownConjuncts)
	return ok
}

// build appends f to b as one closed scope and returns the builder.
//
// canPartialPushDownConjuncts is true while no OR or NOT encloses f; only
// then may an AND drop an unconvertible side. When ok is false nothing was
// written to b, provided b is the builder of a filter already proven
// convertible.
func (t *Translator) build(schema filter.Schema, f filter.Filter, b sarg.Builder, canPartialPushDownConjuncts bool) (sarg.Builder, bool) {
	switch f := f.(type) {
	case *filter.And:
		left := t.convertible(schema, f.Left, canPartialPushDownConjuncts)
		right := t.convertible(schema, f.Right, canPartialPushDownConjuncts)
		switch {
		case left && right:
			b = b.StartAnd()
			b, _ = t.build(schema, f.Left, b, canPartialPushDownConjuncts)
			b, _ = t.build(schema, f.Right, b, canPartialPushDownConjuncts)
			return b.End(), true
		case left && canPartialPushDownConjuncts:
			return t.build(schema, f.Left, b, canPartialPushDownConjuncts)
		case right && canPartialPushDownConjuncts:
			return t.build(schema, f.Right, b, canPartialPushDownConjuncts)
		}
		return nil, false

	case *filter.Or:
		if !t.convertible(schema, f.Left, false) || !t.convertible(schema, f.Right, false) {
			return nil, false
		}
		b = b.StartOr()
		b, _ = t.build(schema, f.Left, b, false)
		b, _ = t.build(schema, f.Right, b, false)
		return b.End(), true

	case *filter.Not:
		if !t.convertible(schema, f.Child, false) {
			return nil, false
		}
		b = b.StartNot()
		b, _ = t.build(schema, f.Child, b, false)
		return b.End(), true

	case *filter.EqualTo:
		return comparison(schema, f.Column, f.Value, b, false, sarg.Builder.Equals)
	case *filter.EqualNullSafe:
		return comparison(schema, f.Column, f.Value, b, false, sarg.Builder.NullSafeEquals)
	case *filter.LessThan:
		return comparison(schema, f.Column, f.Value, b, false, sarg.Builder.LessThan)
	case *filter.LessThanOrEqual:
		return comparison(schema, f.Column, f.Value, b, false, sarg.Builder.LessThanEquals)
	case *filter.GreaterThan:
		return comparison(schema, f.Column, f.Value, b, true, sarg.Builder.LessThanEquals)
	case *filter.GreaterThanOrEqual:
		return comparison(schema, f.Column, f.Value, b, true, sarg.Builder.LessThan)

	case *filter.IsNull:
		return nullCheck(schema, f.Column, b, false)
	case *filter.IsNotNull:
		return nullCheck(schema, f.Column, b, true)

	case *filter.In:
		lt, ok := searchableColumn(schema, f.Column)
		if !ok || len(f.Values) == 0 {
			return nil, false
		}
		values := make([]any, 0, len(f.Values))
		for _, v := range f.Values {
			cv, ok := coerceLiteral(v, lt)
			if !ok {
				return nil, false
			}
			values = append(values, cv)
		}
		return b.StartAnd().In(quoteAttribute(f.Column), leafType(lt), values...).End(), true
	}

	// String matching, unsupported expressions and nil.
	return nil, false
}

type leafFunc func(b sarg.Builder, column string, typ sarg.Type, literal any) sarg.Builder

// comparison emits a single comparison leaf, wrapped in an AND scope or,
// when negate is set, in a NOT scope.
func comparison(schema filter.Schema, column string, value any, b sarg.Builder, negate bool, leaf leafFunc) (sarg.Builder, bool) {
	lt, ok := searchableColumn(schema, column)
	if !ok {
		return nil, false
	}
	v, ok := coerceLiteral(value, lt)
	if !ok {
		return nil, false
	}
	return leaf(startScope(b, negate), quoteAttribute(column), leafType(lt), v).End(), true
}

func nullCheck(schema filter.Schema, column string, b sarg.Builder, negate bool) (sarg.Builder, bool) {
	lt, ok := searchableColumn(schema, column)
	if !ok {
		return nil, false
	}
	return startScope(b, negate).IsNull(quoteAttribute(column), leafType(lt)).End(), true
}

func startScope(b sarg.Builder, negate bool) sarg.Builder {
	if negate {
		return b.StartNot()
	}
	return b.StartAnd()
}

// searchableColumn returns the type of a column that leaves may reference.
// Columns missing from the schema are treated as unconvertible.
func searchableColumn(schema filter.Schema, column string) (filter.LogicalType, bool) {
	lt, ok := schema.Lookup(column)
	if !ok || !isSearchable(lt) {
		return filter.LogicalType{}, false
	}
	return lt, true
}
