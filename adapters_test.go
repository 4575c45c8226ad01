package pushdown

import (
	"errors"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow/decimal128"

	"github.com/hugr-lab/pushdown/filter"
	"github.com/hugr-lab/pushdown/internal/recovery"
	"github.com/hugr-lab/pushdown/sarg"
)

func TestIsSearchable(t *testing.T) {
	tests := []struct {
		id   filter.LogicalTypeID
		want bool
	}{
		{filter.TypeIDBoolean, true},
		{filter.TypeIDTinyInt, true},
		{filter.TypeIDBigInt, true},
		{filter.TypeIDUInteger, true},
		{filter.TypeIDFloat, true},
		{filter.TypeIDDouble, true},
		{filter.TypeIDDecimal, true},
		{filter.TypeIDVarchar, true},
		{filter.TypeIDChar, true},
		{filter.TypeIDDate, true},
		{filter.TypeIDTimestamp, true},
		{filter.TypeIDTimestampTZ, true},
		{filter.TypeIDBlob, false},
		{filter.TypeIDUUID, false},
		{filter.TypeIDInterval, false},
		{filter.TypeIDTime, false},
		{filter.TypeIDHugeInt, false},
		{filter.TypeIDUBigInt, false},
		{filter.TypeIDEnum, false},
		{filter.TypeIDStruct, false},
		{filter.TypeIDList, false},
		{filter.TypeIDMap, false},
		{filter.TypeIDArray, false},
		{filter.TypeIDUnknown, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			if got := isSearchable(filter.Type(tt.id)); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestLeafType(t *testing.T) {
	tests := []struct {
		lt   filter.LogicalType
		want sarg.Type
	}{
		{filter.Type(filter.TypeIDBoolean), sarg.TypeBoolean},
		{filter.Type(filter.TypeIDSmallInt), sarg.TypeLong},
		{filter.Type(filter.TypeIDBigInt), sarg.TypeLong},
		{filter.Type(filter.TypeIDFloat), sarg.TypeFloat},
		{filter.Type(filter.TypeIDVarchar), sarg.TypeString},
		{filter.Type(filter.TypeIDDate), sarg.TypeDate},
		{filter.Type(filter.TypeIDTimestampNs), sarg.TypeTimestamp},
		{filter.Decimal(10, 2), sarg.TypeDecimal},
	}

	for _, tt := range tests {
		t.Run(tt.lt.String(), func(t *testing.T) {
			if got := leafType(tt.lt); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

// Every searchable type must have a leaf type.
func TestLeafTypeCoversSearchableTypes(t *testing.T) {
	ids := []filter.LogicalTypeID{
		filter.TypeIDInvalid, filter.TypeIDSQLNull, filter.TypeIDUnknown, filter.TypeIDAny,
		filter.TypeIDBoolean, filter.TypeIDTinyInt, filter.TypeIDSmallInt, filter.TypeIDInteger,
		filter.TypeIDBigInt, filter.TypeIDUTinyInt, filter.TypeIDUSmallInt, filter.TypeIDUInteger,
		filter.TypeIDUBigInt, filter.TypeIDHugeInt, filter.TypeIDUHugeInt, filter.TypeIDFloat,
		filter.TypeIDDouble, filter.TypeIDDecimal, filter.TypeIDChar, filter.TypeIDVarchar,
		filter.TypeIDBlob, filter.TypeIDDate, filter.TypeIDTime, filter.TypeIDTimeTZ,
		filter.TypeIDTimestampSec, filter.TypeIDTimestampMs, filter.TypeIDTimestamp,
		filter.TypeIDTimestampNs, filter.TypeIDTimestampTZ, filter.TypeIDInterval,
		filter.TypeIDUUID, filter.TypeIDEnum, filter.TypeIDStruct, filter.TypeIDList,
		filter.TypeIDMap, filter.TypeIDArray,
	}

	for _, id := range ids {
		lt := filter.Type(id)
		if !isSearchable(lt) {
			continue
		}
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("leafType(%s) panicked: %v", id, r)
				}
			}()
			leafType(lt)
		}()
	}
}

func TestLeafTypeContractViolation(t *testing.T) {
	_, err := recovery.RecoverToValue(slog.New(slog.DiscardHandler), "leafType", func() (sarg.Type, error) {
		return leafType(filter.Type(filter.TypeIDUUID)), nil
	})
	if !errors.Is(err, ErrContractViolation) {
		t.Fatalf("expected ErrContractViolation, got %v", err)
	}

	var ce *ContractError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ContractError, got %T", err)
	}
	if ce.Type != "UUID" {
		t.Errorf("expected type 'UUID', got '%s'", ce.Type)
	}
}

func TestCoerceLiteral(t *testing.T) {
	ts := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	bigint := filter.Type(filter.TypeIDBigInt)
	double := filter.Type(filter.TypeIDDouble)

	tests := []struct {
		name  string
		value any
		lt    filter.LogicalType
		want  any
		ok    bool
	}{
		{"int", 1, bigint, int64(1), true},
		{"int8", int8(-3), bigint, int64(-3), true},
		{"int32", int32(7), bigint, int64(7), true},
		{"uint16", uint16(9), bigint, int64(9), true},
		{"uint64 in range", uint64(42), bigint, int64(42), true},
		{"uint64 overflow", uint64(math.MaxUint64), bigint, nil, false},
		{"float for integer column", 1.5, bigint, nil, false},
		{"float32", float32(0.5), double, 0.5, true},
		{"float64", 2.25, double, 2.25, true},
		{"int for float column", 3, double, 3.0, true},
		{"string", "x", filter.Type(filter.TypeIDVarchar), "x", true},
		{"int for string column", 1, filter.Type(filter.TypeIDVarchar), nil, false},
		{"bool", true, filter.Type(filter.TypeIDBoolean), true, true},
		{"date", ts, filter.Type(filter.TypeIDDate), ts, true},
		{"timestamp", ts, filter.Type(filter.TypeIDTimestampTZ), ts, true},
		{"string for timestamp", "2024-05-06", filter.Type(filter.TypeIDTimestamp), nil, false},
		{"null", nil, bigint, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := coerceLiteral(tt.value, tt.lt)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if !ok {
				return
			}
			if gt, isTime := got.(time.Time); isTime {
				if !gt.Equal(tt.want.(time.Time)) {
					t.Errorf("expected %v, got %v", tt.want, got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("expected %v (%T), got %v (%T)", tt.want, tt.want, got, got)
			}
		})
	}
}

func TestCoerceDecimal(t *testing.T) {
	dec := filter.Decimal(10, 2)
	own, err := sarg.NewDecimal("1.5", 5, 1)
	if err != nil {
		t.Fatalf("NewDecimal failed: %v", err)
	}

	tests := []struct {
		name  string
		value any
		want  string
		prec  int32
		scale int32
		ok    bool
	}{
		{"string", "123.45", "123.45", 10, 2, true},
		{"float", 2.5, "2.50", 10, 2, true},
		{"int", 7, "7.00", 10, 2, true},
		{"num", decimal128.FromI64(1234), "12.34", 10, 2, true},
		{"decimal keeps precision", own, "1.5", 5, 1, true},
		{"too wide", "123456789.00", "", 0, 0, false},
		{"not a number", "abc", "", 0, 0, false},
		{"bool", true, "", 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := coerceLiteral(tt.value, dec)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if !ok {
				return
			}
			d, isDec := got.(sarg.Decimal)
			if !isDec {
				t.Fatalf("expected sarg.Decimal, got %T", got)
			}
			if d.String() != tt.want {
				t.Errorf("expected '%s', got '%s'", tt.want, d.String())
			}
			if d.Precision != tt.prec || d.Scale != tt.scale {
				t.Errorf("expected DECIMAL(%d, %d), got DECIMAL(%d, %d)", tt.prec, tt.scale, d.Precision, d.Scale)
			}
		})
	}
}

func TestCoerceDecimalDefaults(t *testing.T) {
	got, ok := coerceLiteral("1", filter.Type(filter.TypeIDDecimal))
	if !ok {
		t.Fatal("expected decimal without type info to convert")
	}
	d := got.(sarg.Decimal)
	if d.Precision != filter.DefaultDecimalWidth || d.Scale != filter.DefaultDecimalScale {
		t.Errorf("expected DECIMAL(18, 3), got DECIMAL(%d, %d)", d.Precision, d.Scale)
	}
}

func TestQuoteAttribute(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"a", "a"},
		{"a.b", "`a.b`"},
		{"a.b.c", "`a.b.c`"},
		{"`a.b`", "`a.b`"},
		{"a`b.c", "a`b.c"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := quoteAttribute(tt.name); got != tt.want {
			t.Errorf("quoteAttribute(%q): expected %q, got %q", tt.name, tt.want, got)
		}
	}
}
