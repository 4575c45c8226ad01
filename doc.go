// Package pushdown translates query planner filters into search arguments
// that a columnar reader uses to skip row groups.
//
// The search argument builder is single-pass and cannot be rolled back, so
// every subtree is first translated against a throwaway builder. Only
// filters proven convertible this way are replayed, as one balanced
// conjunction, against the builder that produces the result.
//
// # Quick Start
//
//	schema := filter.Schema{
//	    "a": filter.Type(filter.TypeIDBigInt),
//	    "b": filter.Type(filter.TypeIDInteger),
//	    "c": filter.Type(filter.TypeIDDouble),
//	}
//	filters := []filter.Filter{
//	    &filter.EqualTo{Column: "a", Value: 1},
//	    &filter.In{Column: "b", Values: []any{1, 2, 3}},
//	    &filter.GreaterThan{Column: "c", Value: 5.0},
//	}
//
//	sa, err := pushdown.Default().CreateFilter(schema, filters)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if sa == nil {
//	    // nothing could be pushed down
//	}
//	fmt.Println(sa)
//	// leaf-0 = (EQUALS a 1), leaf-1 = (IN b 1 2 3), leaf-2 = (LESS_THAN_EQUALS c 5), expr = (and leaf-0 leaf-1 (not leaf-2))
//
// # Conversion Rules
//
// Filters that cannot be expressed are not errors; they are left out and
// must be evaluated by the caller after the scan.
//
//   - Leaves need a searchable column: booleans, integers that fit in an
//     int64 (so not UBIGINT or HUGEINT), floats, decimals, strings, dates
//     and timestamps. Binary, nested and opaque types are never pushed down.
//   - GreaterThan and GreaterThanOrEqual become negated LessThanOrEqual
//     and LessThan. IsNotNull becomes a negated IsNull.
//   - An AND with one unconvertible side keeps the other side, but only
//     when no OR or NOT encloses it.
//   - OR and NOT convert only when their whole subtree converts.
//   - Column names containing '.' are wrapped in backticks.
//
// # Concurrency
//
// A Translator holds no mutable state. CreateFilter may be called from
// multiple goroutines as long as the configured NewBuilder returns
// independent builders.
package pushdown
