package filter

import "github.com/apache/arrow-go/v18/arrow"

// Schema maps column names to their logical types.
// It is built once per translation call and never modified afterwards.
type Schema map[string]LogicalType

// Lookup returns the type of the named column.
func (s Schema) Lookup(column string) (LogicalType, bool) {
	lt, ok := s[column]
	return lt, ok
}

// SchemaFromArrow derives a Schema from an Arrow schema.
// Fields whose type has no logical equivalent are mapped to UNKNOWN.
func SchemaFromArrow(schema *arrow.Schema) Schema {
	if schema == nil {
		return Schema{}
	}
	s := make(Schema, schema.NumFields())
	for _, field := range schema.Fields() {
		s[field.Name] = FromArrowType(field.Type)
	}
	return s
}

// FromArrowType maps an Arrow data type to a LogicalType.
func FromArrowType(dt arrow.DataType) LogicalType {
	switch t := dt.(type) {
	case *arrow.Decimal128Type:
		return Decimal(int(t.Precision), int(t.Scale))
	case *arrow.Decimal256Type:
		return Decimal(int(t.Precision), int(t.Scale))
	case *arrow.TimestampType:
		if t.TimeZone != "" {
			return Type(TypeIDTimestampTZ)
		}
		switch t.Unit {
		case arrow.Second:
			return Type(TypeIDTimestampSec)
		case arrow.Millisecond:
			return Type(TypeIDTimestampMs)
		case arrow.Nanosecond:
			return Type(TypeIDTimestampNs)
		}
		return Type(TypeIDTimestamp)
	case *arrow.DictionaryType:
		return FromArrowType(t.ValueType)
	}

	switch dt.ID() {
	case arrow.NULL:
		return Type(TypeIDSQLNull)
	case arrow.BOOL:
		return Type(TypeIDBoolean)
	case arrow.INT8:
		return Type(TypeIDTinyInt)
	case arrow.INT16:
		return Type(TypeIDSmallInt)
	case arrow.INT32:
		return Type(TypeIDInteger)
	case arrow.INT64:
		return Type(TypeIDBigInt)
	case arrow.UINT8:
		return Type(TypeIDUTinyInt)
	case arrow.UINT16:
		return Type(TypeIDUSmallInt)
	case arrow.UINT32:
		return Type(TypeIDUInteger)
	case arrow.UINT64:
		return Type(TypeIDUBigInt)
	case arrow.FLOAT16, arrow.FLOAT32:
		return Type(TypeIDFloat)
	case arrow.FLOAT64:
		return Type(TypeIDDouble)
	case arrow.STRING, arrow.LARGE_STRING, arrow.STRING_VIEW:
		return Type(TypeIDVarchar)
	case arrow.BINARY, arrow.LARGE_BINARY, arrow.FIXED_SIZE_BINARY, arrow.BINARY_VIEW:
		return Type(TypeIDBlob)
	case arrow.DATE32, arrow.DATE64:
		return Type(TypeIDDate)
	case arrow.TIME32, arrow.TIME64:
		return Type(TypeIDTime)
	case arrow.INTERVAL_MONTHS, arrow.INTERVAL_DAY_TIME, arrow.INTERVAL_MONTH_DAY_NANO, arrow.DURATION:
		return Type(TypeIDInterval)
	case arrow.LIST, arrow.LARGE_LIST, arrow.LIST_VIEW, arrow.LARGE_LIST_VIEW:
		return Type(TypeIDList)
	case arrow.FIXED_SIZE_LIST:
		return Type(TypeIDArray)
	case arrow.STRUCT:
		return Type(TypeIDStruct)
	case arrow.MAP:
		return Type(TypeIDMap)
	}
	return Type(TypeIDUnknown)
}
