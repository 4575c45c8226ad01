package duckdb

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/hugr-lab/pushdown/filter"
)

func TestParseFiltersEmpty(t *testing.T) {
	filters, schema, err := ParseFilters(nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(filters) != 0 || len(schema) != 0 {
		t.Errorf("expected no filters, got %d", len(filters))
	}
}

func TestParseFiltersSimpleEquality(t *testing.T) {
	// WHERE id = 42
	json := []byte(`{
		"filters": [
			{
				"expression_class": "BOUND_COMPARISON",
				"type": "COMPARE_EQUAL",
				"alias": "",
				"left": {
					"expression_class": "BOUND_COLUMN_REF",
					"type": "BOUND_COLUMN_REF",
					"alias": "",
					"return_type": {"id": "INTEGER", "type_info": null},
					"binding": {"table_index": 0, "column_index": 0},
					"depth": 0
				},
				"right": {
					"expression_class": "BOUND_CONSTANT",
					"type": "VALUE_CONSTANT",
					"alias": "",
					"value": {
						"type": {"id": "INTEGER", "type_info": null},
						"is_null": false,
						"value": 42
					}
				}
			}
		],
		"column_binding_names_by_index": ["id", "name", "value"]
	}`)

	filters, schema, err := ParseFilters(json)
	if err != nil {
		t.Fatalf("ParseFilters failed: %v", err)
	}
	if len(filters) != 1 {
		t.Fatalf("expected 1 filter, got %d", len(filters))
	}

	eq, ok := filters[0].(*filter.EqualTo)
	if !ok {
		t.Fatalf("expected *filter.EqualTo, got %T", filters[0])
	}
	if eq.Column != "id" {
		t.Errorf("expected column 'id', got '%s'", eq.Column)
	}
	if v, ok := eq.Value.(int64); !ok || v != 42 {
		t.Errorf("expected value 42, got %v", eq.Value)
	}

	lt, ok := schema.Lookup("id")
	if !ok || lt.ID != filter.TypeIDInteger {
		t.Errorf("expected id to be INTEGER, got %v", lt)
	}
	if _, ok := schema.Lookup("name"); ok {
		t.Error("expected unreferenced column to be absent from the schema")
	}
}

// Helpers building DuckDB expression JSON.

func colRef(index int, typ string) string {
	return fmt.Sprintf(`{"expression_class": "BOUND_COLUMN_REF", "type": "BOUND_COLUMN_REF", "alias": "",
		"return_type": %s, "binding": {"table_index": 0, "column_index": %d}, "depth": 0}`, typ, index)
}

func constant(typ, value string) string {
	return fmt.Sprintf(`{"expression_class": "BOUND_CONSTANT", "type": "VALUE_CONSTANT", "alias": "",
		"value": {"type": %s, "is_null": false, "value": %s}}`, typ, value)
}

func nullConstant(typ string) string {
	return fmt.Sprintf(`{"expression_class": "BOUND_CONSTANT", "type": "VALUE_CONSTANT", "alias": "",
		"value": {"type": %s, "is_null": true}}`, typ)
}

func comparison(op, left, right string) string {
	return fmt.Sprintf(`{"expression_class": "BOUND_COMPARISON", "type": "%s", "alias": "", "left": %s, "right": %s}`,
		op, left, right)
}

func conjunction(op string, children ...string) string {
	return fmt.Sprintf(`{"expression_class": "BOUND_CONJUNCTION", "type": "%s", "alias": "", "children": [%s]}`,
		op, strings.Join(children, ", "))
}

func operator(op string, children ...string) string {
	return fmt.Sprintf(`{"expression_class": "BOUND_OPERATOR", "type": "%s", "alias": "",
		"return_type": {"id": "BOOLEAN"}, "children": [%s]}`, op, strings.Join(children, ", "))
}

func function(name string, children ...string) string {
	return fmt.Sprintf(`{"expression_class": "BOUND_FUNCTION", "type": "BOUND_FUNCTION", "alias": "",
		"return_type": {"id": "BOOLEAN"}, "name": %q, "children": [%s], "is_operator": false}`,
		name, strings.Join(children, ", "))
}

func between(op, input, lower, upper string, lowerInclusive, upperInclusive bool) string {
	return fmt.Sprintf(`{"expression_class": "BOUND_BETWEEN", "type": "%s", "alias": "",
		"input": %s, "lower": %s, "upper": %s, "lower_inclusive": %t, "upper_inclusive": %t}`,
		op, input, lower, upper, lowerInclusive, upperInclusive)
}

func pushdown(filters ...string) []byte {
	return []byte(fmt.Sprintf(`{"filters": [%s], "column_binding_names_by_index": ["id", "name", "price", "created", "day", "raw"]}`,
		strings.Join(filters, ", ")))
}

const (
	tInt     = `{"id": "INTEGER", "type_info": null}`
	tVarchar = `{"id": "VARCHAR", "type_info": null}`
	tDecimal = `{"id": "DECIMAL", "type_info": {"type": "DECIMAL_TYPE_INFO", "alias": "", "width": 10, "scale": 2}}`
	tTS      = `{"id": "TIMESTAMP", "type_info": null}`
	tDate    = `{"id": "DATE", "type_info": null}`
	tBlob    = `{"id": "BLOB", "type_info": null}`
	tTime    = `{"id": "TIME", "type_info": null}`
)

func TestParseFilters(t *testing.T) {
	id := colRef(0, tInt)
	name := colRef(1, tVarchar)
	price := colRef(2, tDecimal)
	one := constant(tInt, "1")
	two := constant(tInt, "2")

	tests := []struct {
		name     string
		json     string
		expected string
	}{
		{"equal", comparison("COMPARE_EQUAL", id, one), "id = 1"},
		{"not equal", comparison("COMPARE_NOTEQUAL", id, one), "NOT id = 1"},
		{"less than", comparison("COMPARE_LESSTHAN", id, one), "id < 1"},
		{"greater than", comparison("COMPARE_GREATERTHAN", id, one), "id > 1"},
		{"less or equal", comparison("COMPARE_LESSTHANOREQUALTO", id, one), "id <= 1"},
		{"greater or equal", comparison("COMPARE_GREATERTHANOREQUALTO", id, one), "id >= 1"},
		{"constant on the left", comparison("COMPARE_LESSTHAN", one, id), "id > 1"},
		{"constant on the left inclusive", comparison("COMPARE_GREATERTHANOREQUALTO", one, id), "id <= 1"},
		{"not distinct from", comparison("COMPARE_NOT_DISTINCT_FROM", id, one), "id <=> 1"},
		{"distinct from", comparison("COMPARE_DISTINCT_FROM", id, one), "NOT id <=> 1"},
		{"string", comparison("COMPARE_EQUAL", name, constant(tVarchar, `"it's"`)), "name = 'it''s'"},
		{"base64 string", comparison("COMPARE_EQUAL", name, constant(tVarchar, `{"base64": "aGk="}`)), "name = 'hi'"},
		{"decimal", comparison("COMPARE_LESSTHAN", price, constant(tDecimal, `"12.50"`)), "price < '12.50'"},
		{"null constant", comparison("COMPARE_EQUAL", id, nullConstant(tInt)), "id = NULL"},
		{"column to column", comparison("COMPARE_EQUAL", id, colRef(2, tDecimal)), "UNSUPPORTED(BOUND_COMPARISON COMPARE_EQUAL)"},
		{
			"and",
			conjunction("CONJUNCTION_AND", comparison("COMPARE_EQUAL", id, one), operator("OPERATOR_IS_NOT_NULL", name)),
			"(id = 1 AND name IS NOT NULL)",
		},
		{
			"or of three is balanced",
			conjunction("CONJUNCTION_OR",
				comparison("COMPARE_EQUAL", id, one),
				comparison("COMPARE_EQUAL", id, two),
				operator("OPERATOR_IS_NULL", id)),
			"(id = 1 OR (id = 2 OR id IS NULL))",
		},
		{"not", operator("OPERATOR_NOT", comparison("COMPARE_EQUAL", id, one)), "NOT id = 1"},
		{"in operator", operator("COMPARE_IN", id, one, two), "id IN (1, 2)"},
		{"not in operator", operator("COMPARE_NOT_IN", id, one, two), "NOT id IN (1, 2)"},
		{"in list", comparison("COMPARE_IN", id, function("list_value", one, two)), "id IN (1, 2)"},
		{"between", between("COMPARE_BETWEEN", id, one, two, true, true), "(id >= 1 AND id <= 2)"},
		{"exclusive between", between("COMPARE_BETWEEN", id, one, two, false, false), "(id > 1 AND id < 2)"},
		{"not between", between("COMPARE_NOT_BETWEEN", id, one, two, true, true), "NOT (id >= 1 AND id <= 2)"},
		{"prefix", function("prefix", name, constant(tVarchar, `"ab"`)), "starts_with(name, 'ab')"},
		{"suffix", function("suffix", name, constant(tVarchar, `"ab"`)), "ends_with(name, 'ab')"},
		{"contains", function("contains", name, constant(tVarchar, `"ab"`)), "contains(name, 'ab')"},
		{"other function", function("lower", name, one), "UNSUPPORTED(BOUND_FUNCTION lower)"},
		{
			"unsupported class",
			`{"expression_class": "BOUND_CASE", "type": "CASE_EXPR", "alias": ""}`,
			"UNSUPPORTED(BOUND_CASE CASE_EXPR)",
		},
		{"time constant", comparison("COMPARE_EQUAL", colRef(3, tTime), constant(tTime, "1000")), "UNSUPPORTED(BOUND_COMPARISON COMPARE_EQUAL)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filters, _, err := ParseFilters(pushdown(tt.json))
			if err != nil {
				t.Fatalf("ParseFilters failed: %v", err)
			}
			if len(filters) != 1 {
				t.Fatalf("expected 1 filter, got %d", len(filters))
			}
			if got := filters[0].String(); got != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

func TestParseFiltersSchema(t *testing.T) {
	data := pushdown(
		comparison("COMPARE_LESSTHAN", colRef(2, tDecimal), constant(tDecimal, `"1.00"`)),
		operator("OPERATOR_IS_NULL", colRef(5, tBlob)),
		comparison("COMPARE_EQUAL", colRef(3, tTS), constant(tTS, "0")),
	)

	_, schema, err := ParseFilters(data)
	if err != nil {
		t.Fatalf("ParseFilters failed: %v", err)
	}

	if got := schema["price"].String(); got != "DECIMAL(10, 2)" {
		t.Errorf("expected DECIMAL(10, 2), got %s", got)
	}
	if got := schema["raw"].ID; got != filter.TypeIDBlob {
		t.Errorf("expected BLOB, got %s", got)
	}
	if got := schema["created"].ID; got != filter.TypeIDTimestamp {
		t.Errorf("expected TIMESTAMP, got %s", got)
	}
}

func TestParseFiltersTemporalValues(t *testing.T) {
	data := pushdown(
		comparison("COMPARE_EQUAL", colRef(4, tDate), constant(tDate, "19723")),
		comparison("COMPARE_LESSTHAN", colRef(3, tTS), constant(tTS, "1704067200123456")),
	)

	filters, _, err := ParseFilters(data)
	if err != nil {
		t.Fatalf("ParseFilters failed: %v", err)
	}

	day := filters[0].(*filter.EqualTo).Value.(time.Time)
	if want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC); !day.Equal(want) {
		t.Errorf("expected %v, got %v", want, day)
	}

	ts := filters[1].(*filter.LessThan).Value.(time.Time)
	if want := time.Date(2024, 1, 1, 0, 0, 0, 123456000, time.UTC); !ts.Equal(want) {
		t.Errorf("expected %v, got %v", want, ts)
	}
}

func TestParseFiltersBlobValue(t *testing.T) {
	data := pushdown(comparison("COMPARE_EQUAL", colRef(5, tBlob), constant(tBlob, `{"base64": "AAEC"}`)))

	filters, _, err := ParseFilters(data)
	if err != nil {
		t.Fatalf("ParseFilters failed: %v", err)
	}
	b, ok := filters[0].(*filter.EqualTo).Value.([]byte)
	if !ok || len(b) != 3 || b[0] != 0 || b[2] != 2 {
		t.Errorf("expected [0 1 2], got %v", filters[0].(*filter.EqualTo).Value)
	}
}

func TestParseFiltersErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"invalid JSON", []byte(`{"filters": [`)},
		{"bad binding", pushdown(comparison("COMPARE_EQUAL", colRef(9, tInt), constant(tInt, "1")))},
		{"bad value", pushdown(comparison("COMPARE_EQUAL", colRef(0, tInt), constant(tInt, `"x"`)))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParseFilters(tt.data); err == nil {
				t.Error("expected error")
			}
		})
	}

	_, _, err := ParseFilters(pushdown(operator("OPERATOR_IS_NULL", colRef(7, tInt))))
	var be *ColumnBindingError
	if !errors.As(err, &be) {
		t.Fatalf("expected *ColumnBindingError, got %v", err)
	}
	if be.Index != 7 || be.Max != 6 {
		t.Errorf("expected index 7 of 6, got %d of %d", be.Index, be.Max)
	}
}
