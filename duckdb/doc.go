// Package duckdb connects the pushdown translator to DuckDB.
//
// ParseFilters reads the filter pushdown JSON the DuckDB Airport extension
// sends with a scan request and returns the equivalent filters together
// with the types of the referenced columns:
//
//	filters, schema, err := duckdb.ParseFilters([]byte(tableRef.Filters))
//	if err != nil {
//	    return err
//	}
//	sa, err := pushdown.Default().CreateFilter(schema, filters)
//
// Expressions without a filter equivalent (arithmetic, casts of columns,
// CASE and the like) are kept as *filter.Unsupported, so the translator
// still applies its AND/OR/NOT rules around them.
//
// Encode goes the other way and renders a search argument as a DuckDB
// WHERE clause body, for readers backed by a DuckDB database.
package duckdb
