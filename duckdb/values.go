package duckdb

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"time"

	"github.com/apache/arrow-go/v18/arrow/decimal128"
	"github.com/goccy/go-json"

	"github.com/hugr-lab/pushdown/filter"
)

// parseLogicalType parses a LogicalType from JSON.
// Only DECIMAL type info is kept; other type info is irrelevant to pushdown.
func parseLogicalType(data json.RawMessage) (filter.LogicalType, error) {
	if len(data) == 0 || string(data) == "null" {
		return filter.LogicalType{ID: filter.TypeIDUnknown}, nil
	}

	var raw struct {
		ID       string `json:"id"`
		TypeInfo *struct {
			Type  string `json:"type"`
			Width int    `json:"width"`
			Scale int    `json:"scale"`
		} `json:"type_info"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return filter.LogicalType{}, fmt.Errorf("invalid logical type: %w", err)
	}

	// Normalize the type ID to handle DuckDB aliases and full SQL names
	lt := filter.Type(filter.LogicalTypeID(raw.ID))
	if lt.ID == filter.TypeIDDecimal && raw.TypeInfo != nil && raw.TypeInfo.Type == "DECIMAL_TYPE_INFO" {
		lt = filter.Decimal(raw.TypeInfo.Width, raw.TypeInfo.Scale)
	}
	return lt, nil
}

// parseValue parses a constant value. ok is false for values that have no
// literal representation in a filter (times, intervals, nested values and
// the like). Null constants are returned as (nil, true).
func parseValue(data json.RawMessage) (any, bool, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, true, nil
	}

	var raw struct {
		Type   json.RawMessage `json:"type"`
		IsNull bool            `json:"is_null"`
		Value  json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, false, fmt.Errorf("invalid value: %w", err)
	}

	lt, err := parseLogicalType(raw.Type)
	if err != nil {
		return nil, false, fmt.Errorf("invalid value type: %w", err)
	}
	if raw.IsNull || len(raw.Value) == 0 || string(raw.Value) == "null" {
		return nil, true, nil
	}

	v, ok, err := parseValueData(raw.Value, lt)
	if err != nil {
		return nil, false, fmt.Errorf("invalid %s value: %w", lt.ID, err)
	}
	return v, ok, nil
}

// parseValueData converts the JSON value of a constant into the Go
// representation filters use for its logical type.
func parseValueData(data json.RawMessage, lt filter.LogicalType) (any, bool, error) {
	switch id := lt.ID; {
	case id == filter.TypeIDBoolean:
		var v bool
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, false, err
		}
		return v, true, nil

	case id.IsInteger():
		var v int64
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, false, err
		}
		return v, true, nil

	case id == filter.TypeIDUBigInt:
		var v uint64
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, false, err
		}
		return v, true, nil

	case id == filter.TypeIDHugeInt:
		var v struct {
			Upper int64  `json:"upper"`
			Lower uint64 `json:"lower"`
		}
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, false, err
		}
		// as digits, so a DECIMAL column reads it at its own scale
		return decimal128.New(v.Upper, v.Lower).BigInt().String(), true, nil

	case id.IsFloating():
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, false, err
		}
		return v, true, nil

	case id == filter.TypeIDDecimal:
		// Decimal can be string or number
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			return s, true, nil
		}
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, false, err
		}
		return strconv.FormatFloat(f, 'f', -1, 64), true, nil

	case id.IsString():
		// Non-UTF8 strings arrive base64-encoded
		var b64 struct {
			Base64 string `json:"base64"`
		}
		if err := json.Unmarshal(data, &b64); err == nil && b64.Base64 != "" {
			decoded, err := base64.StdEncoding.DecodeString(b64.Base64)
			if err != nil {
				return nil, false, fmt.Errorf("invalid base64: %w", err)
			}
			return string(decoded), true, nil
		}
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, false, err
		}
		return s, true, nil

	case id == filter.TypeIDBlob:
		var b64 struct {
			Base64 string `json:"base64"`
		}
		if err := json.Unmarshal(data, &b64); err == nil && b64.Base64 != "" {
			decoded, err := base64.StdEncoding.DecodeString(b64.Base64)
			if err != nil {
				return nil, false, fmt.Errorf("invalid base64: %w", err)
			}
			return decoded, true, nil
		}
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, false, err
		}
		return []byte(s), true, nil

	case id == filter.TypeIDDate:
		// days since the Unix epoch
		var days int64
		if err := json.Unmarshal(data, &days); err != nil {
			return nil, false, err
		}
		return time.Unix(days*86400, 0).UTC(), true, nil

	case id.IsTimestamp():
		var v int64
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, false, err
		}
		return timestamp(v, id), true, nil
	}

	return nil, false, nil
}

// timestamp converts an epoch offset in the unit of the timestamp type.
func timestamp(v int64, id filter.LogicalTypeID) time.Time {
	switch id {
	case filter.TypeIDTimestampSec:
		return time.Unix(v, 0).UTC()
	case filter.TypeIDTimestampMs:
		return time.UnixMilli(v).UTC()
	case filter.TypeIDTimestampNs:
		return time.Unix(0, v).UTC()
	default: // TIMESTAMP, TIMESTAMP_TZ (microseconds)
		return time.UnixMicro(v).UTC()
	}
}
