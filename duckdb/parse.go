package duckdb

import (
	"fmt"

	"github.com/goccy/go-json"

	"github.com/hugr-lab/pushdown/filter"
)

// Expression classes and types used by DuckDB's filter pushdown JSON.
const (
	classComparison  = "BOUND_COMPARISON"
	classConjunction = "BOUND_CONJUNCTION"
	classConstant    = "BOUND_CONSTANT"
	classColumnRef   = "BOUND_COLUMN_REF"
	classFunction    = "BOUND_FUNCTION"
	classBetween     = "BOUND_BETWEEN"
	classOperator    = "BOUND_OPERATOR"

	typeCompareEqual              = "COMPARE_EQUAL"
	typeCompareNotEqual           = "COMPARE_NOTEQUAL"
	typeCompareLessThan           = "COMPARE_LESSTHAN"
	typeCompareGreaterThan        = "COMPARE_GREATERTHAN"
	typeCompareLessThanOrEqual    = "COMPARE_LESSTHANOREQUALTO"
	typeCompareGreaterThanOrEqual = "COMPARE_GREATERTHANOREQUALTO"
	typeCompareIn                 = "COMPARE_IN"
	typeCompareNotIn              = "COMPARE_NOT_IN"
	typeCompareDistinctFrom       = "COMPARE_DISTINCT_FROM"
	typeCompareNotDistinctFrom    = "COMPARE_NOT_DISTINCT_FROM"
	typeCompareNotBetween         = "COMPARE_NOT_BETWEEN"

	typeConjunctionOr = "CONJUNCTION_OR"

	typeOperatorNot       = "OPERATOR_NOT"
	typeOperatorIsNull    = "OPERATOR_IS_NULL"
	typeOperatorIsNotNull = "OPERATOR_IS_NOT_NULL"
)

// ColumnBindingError indicates a column reference outside the binding list.
type ColumnBindingError struct {
	Index int
	Max   int
}

func (e *ColumnBindingError) Error() string {
	return fmt.Sprintf("invalid column binding index: %d (max: %d)", e.Index, e.Max-1)
}

// ParseFilters parses filter pushdown JSON from the DuckDB Airport extension.
// It returns one filter per top-level expression, implicitly conjoined, and
// the types of the columns they reference.
//
// Expressions with no filter equivalent become *filter.Unsupported so the
// surrounding AND/OR/NOT structure is preserved. Errors are returned only
// for malformed JSON and invalid column bindings.
func ParseFilters(data []byte) ([]filter.Filter, filter.Schema, error) {
	schema := filter.Schema{}
	if len(data) == 0 {
		return nil, schema, nil
	}

	var raw rawFilterPushdown
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("duckdb: invalid JSON: %w", err)
	}

	p := &parser{bindings: raw.ColumnBindings, schema: schema}
	filters := make([]filter.Filter, 0, len(raw.Filters))
	for i, rawExpr := range raw.Filters {
		f, err := p.parse(rawExpr)
		if err != nil {
			return nil, nil, fmt.Errorf("duckdb: error parsing filter %d: %w", i, err)
		}
		filters = append(filters, f)
	}
	return filters, schema, nil
}

type rawFilterPushdown struct {
	Filters        []json.RawMessage `json:"filters"`
	ColumnBindings []string          `json:"column_binding_names_by_index"`
}

// rawExpression holds the fields of every expression class the parser
// understands. Only the fields of the decoded class are populated.
type rawExpression struct {
	ExpressionClass string            `json:"expression_class"`
	Type            string            `json:"type"`
	Left            json.RawMessage   `json:"left"`
	Right           json.RawMessage   `json:"right"`
	Children        []json.RawMessage `json:"children"`
	Value           json.RawMessage   `json:"value"`
	ReturnType      json.RawMessage   `json:"return_type"`
	Binding         struct {
		ColumnIndex int `json:"column_index"`
	} `json:"binding"`
	Name           string          `json:"name"`
	Input          json.RawMessage `json:"input"`
	Lower          json.RawMessage `json:"lower"`
	Upper          json.RawMessage `json:"upper"`
	LowerInclusive bool            `json:"lower_inclusive"`
	UpperInclusive bool            `json:"upper_inclusive"`
}

type parser struct {
	bindings []string
	schema   filter.Schema
}

// operand is a column reference or a constant on one side of a predicate.
type operand struct {
	column   string
	isColumn bool
	value    any
	isValue  bool
}

func (p *parser) decode(data json.RawMessage) (*rawExpression, error) {
	var raw rawExpression
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid expression: %w", err)
	}
	return &raw, nil
}

func (p *parser) parse(data json.RawMessage) (filter.Filter, error) {
	raw, err := p.decode(data)
	if err != nil {
		return nil, err
	}

	switch raw.ExpressionClass {
	case classComparison:
		return p.parseComparison(raw)
	case classConjunction:
		return p.parseConjunction(raw)
	case classOperator:
		return p.parseOperator(raw)
	case classBetween:
		return p.parseBetween(raw)
	case classFunction:
		return p.parseFunction(raw)
	}
	return unsupported(raw), nil
}

func (p *parser) parseComparison(raw *rawExpression) (filter.Filter, error) {
	left, err := p.operand(raw.Left)
	if err != nil {
		return nil, fmt.Errorf("invalid left operand: %w", err)
	}

	if raw.Type == typeCompareIn || raw.Type == typeCompareNotIn {
		list, err := p.decode(raw.Right)
		if err != nil {
			return nil, fmt.Errorf("invalid right operand: %w", err)
		}
		if list.ExpressionClass != classFunction {
			return unsupported(raw), nil
		}
		return p.in(raw, left, list.Children, raw.Type == typeCompareNotIn)
	}

	right, err := p.operand(raw.Right)
	if err != nil {
		return nil, fmt.Errorf("invalid right operand: %w", err)
	}

	op := raw.Type
	col, val := left, right
	if !left.isColumn && right.isColumn {
		col, val = right, left
		op = flip(op)
	}
	if !col.isColumn || !val.isValue {
		return unsupported(raw), nil
	}

	c, v := col.column, val.value
	switch op {
	case typeCompareEqual:
		return &filter.EqualTo{Column: c, Value: v}, nil
	case typeCompareNotEqual:
		return &filter.Not{Child: &filter.EqualTo{Column: c, Value: v}}, nil
	case typeCompareLessThan:
		return &filter.LessThan{Column: c, Value: v}, nil
	case typeCompareLessThanOrEqual:
		return &filter.LessThanOrEqual{Column: c, Value: v}, nil
	case typeCompareGreaterThan:
		return &filter.GreaterThan{Column: c, Value: v}, nil
	case typeCompareGreaterThanOrEqual:
		return &filter.GreaterThanOrEqual{Column: c, Value: v}, nil
	case typeCompareNotDistinctFrom:
		return &filter.EqualNullSafe{Column: c, Value: v}, nil
	case typeCompareDistinctFrom:
		return &filter.Not{Child: &filter.EqualNullSafe{Column: c, Value: v}}, nil
	}
	return unsupported(raw), nil
}

// flip mirrors a comparison so that the column moves to the left.
func flip(op string) string {
	switch op {
	case typeCompareLessThan:
		return typeCompareGreaterThan
	case typeCompareGreaterThan:
		return typeCompareLessThan
	case typeCompareLessThanOrEqual:
		return typeCompareGreaterThanOrEqual
	case typeCompareGreaterThanOrEqual:
		return typeCompareLessThanOrEqual
	}
	return op
}

func (p *parser) parseConjunction(raw *rawExpression) (filter.Filter, error) {
	children := make([]filter.Filter, 0, len(raw.Children))
	for i, child := range raw.Children {
		f, err := p.parse(child)
		if err != nil {
			return nil, fmt.Errorf("invalid child %d: %w", i, err)
		}
		children = append(children, f)
	}

	var (
		f  filter.Filter
		ok bool
	)
	if raw.Type == typeConjunctionOr {
		f, ok = filter.CombineOr(children)
	} else {
		f, ok = filter.Combine(children)
	}
	if !ok {
		return unsupported(raw), nil
	}
	return f, nil
}

func (p *parser) parseOperator(raw *rawExpression) (filter.Filter, error) {
	if len(raw.Children) == 0 {
		return unsupported(raw), nil
	}

	switch raw.Type {
	case typeOperatorNot:
		child, err := p.parse(raw.Children[0])
		if err != nil {
			return nil, fmt.Errorf("invalid child: %w", err)
		}
		return &filter.Not{Child: child}, nil

	case typeOperatorIsNull, typeOperatorIsNotNull:
		op, err := p.operand(raw.Children[0])
		if err != nil {
			return nil, fmt.Errorf("invalid child: %w", err)
		}
		if !op.isColumn {
			return unsupported(raw), nil
		}
		if raw.Type == typeOperatorIsNull {
			return &filter.IsNull{Column: op.column}, nil
		}
		return &filter.IsNotNull{Column: op.column}, nil

	case typeCompareIn, typeCompareNotIn:
		// children[0] is the column, the rest are the values
		op, err := p.operand(raw.Children[0])
		if err != nil {
			return nil, fmt.Errorf("invalid child: %w", err)
		}
		return p.in(raw, op, raw.Children[1:], raw.Type == typeCompareNotIn)
	}
	return unsupported(raw), nil
}

func (p *parser) in(raw *rawExpression, col operand, items []json.RawMessage, negate bool) (filter.Filter, error) {
	if !col.isColumn || len(items) == 0 {
		return unsupported(raw), nil
	}

	values := make([]any, 0, len(items))
	for i, item := range items {
		op, err := p.operand(item)
		if err != nil {
			return nil, fmt.Errorf("invalid value %d: %w", i, err)
		}
		if !op.isValue {
			return unsupported(raw), nil
		}
		values = append(values, op.value)
	}

	var f filter.Filter = &filter.In{Column: col.column, Values: values}
	if negate {
		f = &filter.Not{Child: f}
	}
	return f, nil
}

func (p *parser) parseBetween(raw *rawExpression) (filter.Filter, error) {
	input, err := p.operand(raw.Input)
	if err != nil {
		return nil, fmt.Errorf("invalid input: %w", err)
	}
	lower, err := p.operand(raw.Lower)
	if err != nil {
		return nil, fmt.Errorf("invalid lower bound: %w", err)
	}
	upper, err := p.operand(raw.Upper)
	if err != nil {
		return nil, fmt.Errorf("invalid upper bound: %w", err)
	}
	if !input.isColumn || !lower.isValue || !upper.isValue {
		return unsupported(raw), nil
	}

	c := input.column
	var lo, hi filter.Filter
	if raw.LowerInclusive {
		lo = &filter.GreaterThanOrEqual{Column: c, Value: lower.value}
	} else {
		lo = &filter.GreaterThan{Column: c, Value: lower.value}
	}
	if raw.UpperInclusive {
		hi = &filter.LessThanOrEqual{Column: c, Value: upper.value}
	} else {
		hi = &filter.LessThan{Column: c, Value: upper.value}
	}

	var f filter.Filter = &filter.And{Left: lo, Right: hi}
	if raw.Type == typeCompareNotBetween {
		f = &filter.Not{Child: f}
	}
	return f, nil
}

// parseFunction recognizes the string matching functions DuckDB pushes
// down for LIKE patterns.
func (p *parser) parseFunction(raw *rawExpression) (filter.Filter, error) {
	if len(raw.Children) != 2 {
		return unsupported(raw), nil
	}
	col, err := p.operand(raw.Children[0])
	if err != nil {
		return nil, fmt.Errorf("invalid child 0: %w", err)
	}
	pattern, err := p.operand(raw.Children[1])
	if err != nil {
		return nil, fmt.Errorf("invalid child 1: %w", err)
	}
	s, isString := pattern.value.(string)
	if !col.isColumn || !pattern.isValue || !isString {
		return unsupported(raw), nil
	}

	switch raw.Name {
	case "prefix", "starts_with":
		return &filter.StringStartsWith{Column: col.column, Value: s}, nil
	case "suffix", "ends_with":
		return &filter.StringEndsWith{Column: col.column, Value: s}, nil
	case "contains":
		return &filter.StringContains{Column: col.column, Value: s}, nil
	}
	return unsupported(raw), nil
}

// operand decodes a column reference or a constant. Any other expression
// yields an empty operand.
func (p *parser) operand(data json.RawMessage) (operand, error) {
	raw, err := p.decode(data)
	if err != nil {
		return operand{}, err
	}

	switch raw.ExpressionClass {
	case classColumnRef:
		idx := raw.Binding.ColumnIndex
		if idx < 0 || idx >= len(p.bindings) {
			return operand{}, &ColumnBindingError{Index: idx, Max: len(p.bindings)}
		}
		name := p.bindings[idx]
		lt, err := parseLogicalType(raw.ReturnType)
		if err != nil {
			return operand{}, fmt.Errorf("invalid return type: %w", err)
		}
		if _, seen := p.schema[name]; !seen {
			p.schema[name] = lt
		}
		return operand{column: name, isColumn: true}, nil

	case classConstant:
		v, ok, err := parseValue(raw.Value)
		if err != nil {
			return operand{}, fmt.Errorf("invalid value: %w", err)
		}
		return operand{value: v, isValue: ok}, nil
	}
	return operand{}, nil
}

func unsupported(raw *rawExpression) *filter.Unsupported {
	desc := raw.ExpressionClass
	if raw.Type != "" && raw.Type != raw.ExpressionClass {
		desc += " " + raw.Type
	}
	if raw.Name != "" {
		desc += " " + raw.Name
	}
	return &filter.Unsupported{Description: desc}
}
