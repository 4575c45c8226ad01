// Package filter defines the boolean filter tree handed to the pushdown
// translator, together with the logical column types a Schema maps column
// names to.
//
// A Filter is a closed set of pointer types: the logical combinators And,
// Or and Not, the leaf predicates EqualTo, EqualNullSafe, LessThan,
// LessThanOrEqual, GreaterThan, GreaterThanOrEqual, IsNull, IsNotNull and
// In, and kinds that never reach the storage layer (string matching and
// Unsupported). Filters are immutable once constructed:
//
//	f := &filter.And{
//	    Left:  &filter.EqualTo{Column: "status", Value: "active"},
//	    Right: &filter.GreaterThan{Column: "age", Value: int64(18)},
//	}
//
// # Combining top-level filters
//
// Combine merges a list of filters into one balanced conjunction:
//
//	root, ok := filter.Combine([]filter.Filter{a, b, c, d})
//	// root == And(And(a, b), And(c, d))
//
// # Schemas
//
// A Schema maps column names to LogicalType values. SchemaFromArrow derives
// one from an Arrow schema:
//
//	schema := filter.SchemaFromArrow(table.Schema())
package filter
