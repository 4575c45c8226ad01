// Package msgpack provides MessagePack encoding/decoding for the search
// argument wire form.
package msgpack

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrEmpty is returned when decoding zero bytes.
var ErrEmpty = errors.New("empty MessagePack data")

// Decode deserializes MessagePack data into the structure v points to.
// Fields that v does not declare are rejected, as is trailing data.
//
// Example:
//
//	var w wireSearchArgument
//	err := msgpack.Decode(data, &w)
func Decode(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmpty
	}

	r := bytes.NewReader(data)
	dec := msgpack.NewDecoder(r)
	dec.DisallowUnknownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode MessagePack: %w", err)
	}
	if r.Len() > 0 {
		return fmt.Errorf("failed to decode MessagePack: %d trailing bytes", r.Len())
	}
	return nil
}

// Encode serializes v into MessagePack.
func Encode(v any) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode MessagePack: %w", err)
	}
	return data, nil
}
