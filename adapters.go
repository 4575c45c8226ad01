package pushdown

import (
	"math"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow/decimal128"

	"github.com/hugr-lab/pushdown/filter"
	"github.com/hugr-lab/pushdown/sarg"
)

// isSearchable reports whether leaves over a column of this type can be
// pushed down. Binary and composite columns never are.
func isSearchable(lt filter.LogicalType) bool {
	return lt.ID.IsAtomic() && lt.ID != filter.TypeIDBlob
}

// leafType maps a searchable column type to its leaf type tag.
// It panics with *ContractError for any type isSearchable should have
// rejected.
func leafType(lt filter.LogicalType) sarg.Type {
	id := lt.ID
	switch {
	case id == filter.TypeIDBoolean:
		return sarg.TypeBoolean
	case id.IsInteger():
		return sarg.TypeLong
	case id.IsFloating():
		return sarg.TypeFloat
	case id.IsString():
		return sarg.TypeString
	case id == filter.TypeIDDate:
		return sarg.TypeDate
	case id.IsTimestamp():
		return sarg.TypeTimestamp
	case id == filter.TypeIDDecimal:
		return sarg.TypeDecimal
	}
	panic(&ContractError{Type: lt.String()})
}

// coerceLiteral converts a filter literal into the representation the
// builder requires for the column's leaf type: integers widen to int64,
// floats to float64 and decimals to sarg.Decimal. ok is false when the
// literal is null or cannot represent a value of the column's type.
func coerceLiteral(v any, lt filter.LogicalType) (any, bool) {
	if v == nil {
		return nil, false
	}
	switch leafType(lt) {
	case sarg.TypeLong:
		return toInt64(v)
	case sarg.TypeFloat:
		switch v := v.(type) {
		case float64:
			return v, true
		case float32:
			return float64(v), true
		}
		if i, ok := toInt64(v); ok {
			return float64(i.(int64)), true
		}
		return nil, false
	case sarg.TypeDecimal:
		return toDecimal(v, lt)
	case sarg.TypeString:
		s, ok := v.(string)
		return s, ok
	case sarg.TypeBoolean:
		b, ok := v.(bool)
		return b, ok
	default:
		t, ok := v.(time.Time)
		return t, ok
	}
}

func toInt64(v any) (any, bool) {
	switch v := v.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return nil, false
		}
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return nil, false
		}
		return int64(v), true
	}
	return nil, false
}

// toDecimal converts v to a decimal literal. A sarg.Decimal keeps its own
// precision and scale; other representations take the column's.
func toDecimal(v any, lt filter.LogicalType) (any, bool) {
	width, scale := lt.DecimalInfo()
	prec, sc := int32(width), int32(scale)

	var (
		n   decimal128.Num
		err error
	)
	switch v := v.(type) {
	case sarg.Decimal:
		return v, true
	case decimal128.Num:
		n = v
	case string:
		n, err = decimal128.FromString(v, prec, sc)
	case float64:
		n, err = decimal128.FromFloat64(v, prec, sc)
	case float32:
		n, err = decimal128.FromFloat32(v, prec, sc)
	default:
		i, ok := toInt64(v)
		if !ok {
			return nil, false
		}
		n = decimal128.FromI64(i.(int64)).IncreaseScaleBy(sc)
	}
	if err != nil || !n.FitsInPrecision(prec) {
		return nil, false
	}
	return sarg.Decimal{Num: n, Precision: prec, Scale: sc}, true
}

// quoteAttribute wraps a dotted column name in backticks so the reader
// does not take the dot for a nested field separator.
func quoteAttribute(name string) string {
	if strings.Contains(name, ".") && !strings.Contains(name, "`") {
		return "`" + name + "`"
	}
	return name
}
