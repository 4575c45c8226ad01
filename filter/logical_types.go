package filter

import (
	"strconv"
	"strings"
)

// LogicalTypeID identifies the logical data type of a column.
// Names follow DuckDB's type identifiers.
type LogicalTypeID string

const (
	TypeIDInvalid      LogicalTypeID = "INVALID"
	TypeIDSQLNull      LogicalTypeID = "SQLNULL"
	TypeIDUnknown      LogicalTypeID = "UNKNOWN"
	TypeIDAny          LogicalTypeID = "ANY"
	TypeIDBoolean      LogicalTypeID = "BOOLEAN"
	TypeIDTinyInt      LogicalTypeID = "TINYINT"
	TypeIDSmallInt     LogicalTypeID = "SMALLINT"
	TypeIDInteger      LogicalTypeID = "INTEGER"
	TypeIDBigInt       LogicalTypeID = "BIGINT"
	TypeIDUTinyInt     LogicalTypeID = "UTINYINT"
	TypeIDUSmallInt    LogicalTypeID = "USMALLINT"
	TypeIDUInteger     LogicalTypeID = "UINTEGER"
	TypeIDUBigInt      LogicalTypeID = "UBIGINT"
	TypeIDHugeInt      LogicalTypeID = "HUGEINT"
	TypeIDUHugeInt     LogicalTypeID = "UHUGEINT"
	TypeIDFloat        LogicalTypeID = "FLOAT"
	TypeIDDouble       LogicalTypeID = "DOUBLE"
	TypeIDDecimal      LogicalTypeID = "DECIMAL"
	TypeIDChar         LogicalTypeID = "CHAR"
	TypeIDVarchar      LogicalTypeID = "VARCHAR"
	TypeIDBlob         LogicalTypeID = "BLOB"
	TypeIDDate         LogicalTypeID = "DATE"
	TypeIDTime         LogicalTypeID = "TIME"
	TypeIDTimeTZ       LogicalTypeID = "TIME_TZ"
	TypeIDTimestampSec LogicalTypeID = "TIMESTAMP_SEC"
	TypeIDTimestampMs  LogicalTypeID = "TIMESTAMP_MS"
	TypeIDTimestamp    LogicalTypeID = "TIMESTAMP"
	TypeIDTimestampNs  LogicalTypeID = "TIMESTAMP_NS"
	TypeIDTimestampTZ  LogicalTypeID = "TIMESTAMP_TZ"
	TypeIDInterval     LogicalTypeID = "INTERVAL"
	TypeIDUUID         LogicalTypeID = "UUID"
	TypeIDEnum         LogicalTypeID = "ENUM"
	TypeIDStruct       LogicalTypeID = "STRUCT"
	TypeIDList         LogicalTypeID = "LIST"
	TypeIDMap          LogicalTypeID = "MAP"
	TypeIDArray        LogicalTypeID = "ARRAY"
)

// typeIDMapping maps type aliases and full SQL names to the canonical ID.
var typeIDMapping = map[LogicalTypeID]LogicalTypeID{
	"TIMESTAMP WITH TIME ZONE":    TypeIDTimestampTZ,
	"TIMESTAMPTZ":                 TypeIDTimestampTZ,
	"TIME WITH TIME ZONE":         TypeIDTimeTZ,
	"TIMETZ":                      TypeIDTimeTZ,
	"TIMESTAMP_S":                 TypeIDTimestampSec,
	"TIMESTAMP WITHOUT TIME ZONE": TypeIDTimestamp,
	"DATETIME":                    TypeIDTimestamp,
	"INT":                         TypeIDInteger,
	"INT4":                        TypeIDInteger,
	"INT8":                        TypeIDBigInt,
	"LONG":                        TypeIDBigInt,
	"INT2":                        TypeIDSmallInt,
	"SHORT":                       TypeIDSmallInt,
	"INT1":                        TypeIDTinyInt,
	"UINT8":                       TypeIDUBigInt,
	"UINT4":                       TypeIDUInteger,
	"UINT2":                       TypeIDUSmallInt,
	"UINT1":                       TypeIDUTinyInt,
	"INT128":                      TypeIDHugeInt,
	"UINT128":                     TypeIDUHugeInt,
	"FLOAT4":                      TypeIDFloat,
	"FLOAT8":                      TypeIDDouble,
	"REAL":                        TypeIDFloat,
	"NUMERIC":                     TypeIDDecimal,
	"STRING":                      TypeIDVarchar,
	"TEXT":                        TypeIDVarchar,
	"BYTEA":                       TypeIDBlob,
	"BINARY":                      TypeIDBlob,
	"BOOL":                        TypeIDBoolean,
}

// Normalize returns the canonical LogicalTypeID for the given type ID.
// Matching is case-insensitive.
func (t LogicalTypeID) Normalize() LogicalTypeID {
	upper := LogicalTypeID(strings.ToUpper(string(t)))
	if mapped, ok := typeIDMapping[upper]; ok {
		return mapped
	}
	return upper
}

// LogicalType is a logical column type with optional extra type information.
type LogicalType struct {
	ID       LogicalTypeID
	TypeInfo ExtraTypeInfo
}

// Type returns a LogicalType without extra information.
func Type(id LogicalTypeID) LogicalType {
	return LogicalType{ID: id.Normalize()}
}

// Decimal returns a DECIMAL type with the given width and scale.
func Decimal(width, scale int) LogicalType {
	return LogicalType{ID: TypeIDDecimal, TypeInfo: &DecimalTypeInfo{Width: width, Scale: scale}}
}

// String returns the type name, including width and scale for decimals.
func (lt LogicalType) String() string {
	if info, ok := lt.TypeInfo.(*DecimalTypeInfo); ok {
		return string(lt.ID) + "(" + strconv.Itoa(info.Width) + ", " + strconv.Itoa(info.Scale) + ")"
	}
	return string(lt.ID)
}

// ExtraTypeInfo is the interface for additional type information.
type ExtraTypeInfo interface {
	extraTypeInfoMarker()
}

// DecimalTypeInfo contains precision and scale for DECIMAL types.
type DecimalTypeInfo struct {
	Width int // Total digits
	Scale int // Decimal places
}

func (d *DecimalTypeInfo) extraTypeInfoMarker() {}

// Default DECIMAL width and scale when a type carries no DecimalTypeInfo.
const (
	DefaultDecimalWidth = 18
	DefaultDecimalScale = 3
)

// DecimalInfo returns the width and scale of a DECIMAL type,
// falling back to the defaults when no type info is attached.
func (lt LogicalType) DecimalInfo() (width, scale int) {
	if info, ok := lt.TypeInfo.(*DecimalTypeInfo); ok {
		return info.Width, info.Scale
	}
	return DefaultDecimalWidth, DefaultDecimalScale
}

// IsInteger returns true for integer types that fit in a signed 64-bit value.
func (t LogicalTypeID) IsInteger() bool {
	switch t {
	case TypeIDTinyInt, TypeIDSmallInt, TypeIDInteger, TypeIDBigInt,
		TypeIDUTinyInt, TypeIDUSmallInt, TypeIDUInteger:
		return true
	}
	return false
}

// IsFloating returns true for binary floating point types.
func (t LogicalTypeID) IsFloating() bool {
	return t == TypeIDFloat || t == TypeIDDouble
}

// IsString returns true for character string types.
func (t LogicalTypeID) IsString() bool {
	return t == TypeIDVarchar || t == TypeIDChar
}

// IsTimestamp returns true for all timestamp precisions.
func (t LogicalTypeID) IsTimestamp() bool {
	switch t {
	case TypeIDTimestamp, TypeIDTimestampTZ, TypeIDTimestampMs, TypeIDTimestampNs, TypeIDTimestampSec:
		return true
	}
	return false
}

// IsComplex returns true if the type is a complex/nested type.
func (t LogicalTypeID) IsComplex() bool {
	switch t {
	case TypeIDList, TypeIDStruct, TypeIDMap, TypeIDArray:
		return true
	}
	return false
}

// IsAtomic returns true for types stored natively as primitive columns:
// booleans, 64-bit-representable integers, floats, decimals, strings,
// binaries, dates and timestamps. Wider integers, unsigned 64-bit
// integers, times, intervals, UUIDs and enums are opaque to the storage
// format and are not atomic in this sense.
func (t LogicalTypeID) IsAtomic() bool {
	switch {
	case t == TypeIDBoolean, t == TypeIDDecimal, t == TypeIDBlob, t == TypeIDDate:
		return true
	case t.IsInteger(), t.IsFloating(), t.IsString(), t.IsTimestamp():
		return true
	}
	return false
}
