package sarg

import (
	"errors"
	"fmt"
	"time"

	"github.com/hugr-lab/pushdown/internal/msgpack"
	"github.com/hugr-lab/pushdown/internal/serialize"
)

// ErrInvalidWire indicates serialized data that does not describe a valid search argument.
var ErrInvalidWire = errors.New("sarg: invalid serialized search argument")

const wireVersion = 1

type wireSearchArgument struct {
	Version int        `msgpack:"v"`
	Leaves  []wireLeaf `msgpack:"leaves"`
	Expr    *Expr      `msgpack:"expr"`
}

type wireLeaf struct {
	Operator Operator      `msgpack:"op"`
	Type     Type          `msgpack:"type"`
	Column   string        `msgpack:"col"`
	Literals []wireLiteral `msgpack:"lits,omitempty"`
}

// wireLiteral holds one literal; the leaf type selects the populated field.
type wireLiteral struct {
	Int       int64     `msgpack:"i,omitempty"`
	Float     float64   `msgpack:"f,omitempty"`
	Str       string    `msgpack:"s,omitempty"`
	Bool      bool      `msgpack:"b,omitempty"`
	Time      time.Time `msgpack:"t,omitempty"`
	Precision int32     `msgpack:"p,omitempty"`
	Scale     int32     `msgpack:"sc,omitempty"`
}

// Marshal serializes a search argument to compressed MessagePack, the form
// handed to a reader.
func Marshal(s *SearchArgument) ([]byte, error) {
	w := wireSearchArgument{
		Version: wireVersion,
		Leaves:  make([]wireLeaf, 0, len(s.Leaves)),
		Expr:    s.Expr,
	}
	for _, l := range s.Leaves {
		wl := wireLeaf{Operator: l.Operator, Type: l.Type, Column: l.Column}
		switch l.Operator {
		case OpIsNull:
		case OpIn:
			for _, v := range l.Literals {
				wl.Literals = append(wl.Literals, toWire(v))
			}
		default:
			wl.Literals = []wireLiteral{toWire(l.Literal)}
		}
		w.Leaves = append(w.Leaves, wl)
	}

	data, err := msgpack.Encode(w)
	if err != nil {
		return nil, fmt.Errorf("sarg: %w", err)
	}
	return serialize.Compress(data)
}

// Unmarshal restores a search argument written by Marshal.
func Unmarshal(data []byte) (*SearchArgument, error) {
	raw, err := serialize.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWire, err)
	}

	var w wireSearchArgument
	if err := msgpack.Decode(raw, &w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWire, err)
	}
	if w.Version != wireVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidWire, w.Version)
	}
	if w.Expr == nil {
		return nil, fmt.Errorf("%w: missing expression", ErrInvalidWire)
	}

	s := &SearchArgument{Leaves: make([]Leaf, 0, len(w.Leaves)), Expr: w.Expr}
	for i, wl := range w.Leaves {
		l := Leaf{Operator: wl.Operator, Type: wl.Type, Column: wl.Column}
		lits := make([]any, 0, len(wl.Literals))
		for _, wv := range wl.Literals {
			v, err := fromWire(wl.Type, wv)
			if err != nil {
				return nil, fmt.Errorf("%w: leaf %d: %w", ErrInvalidWire, i, err)
			}
			lits = append(lits, v)
		}
		switch l.Operator {
		case OpIsNull:
		case OpIn:
			l.Literals = lits
		default:
			if len(lits) != 1 {
				return nil, fmt.Errorf("%w: leaf %d: expected one literal, got %d", ErrInvalidWire, i, len(lits))
			}
			l.Literal = lits[0]
		}
		if err := validateLeaf(l); err != nil {
			return nil, fmt.Errorf("%w: leaf %d: %w", ErrInvalidWire, i, err)
		}
		s.Leaves = append(s.Leaves, l)
	}

	if err := validateExpr(s.Expr, len(s.Leaves)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWire, err)
	}
	return s, nil
}

func toWire(v any) wireLiteral {
	switch v := v.(type) {
	case int64:
		return wireLiteral{Int: v}
	case float64:
		return wireLiteral{Float: v}
	case string:
		return wireLiteral{Str: v}
	case bool:
		return wireLiteral{Bool: v}
	case time.Time:
		return wireLiteral{Time: v}
	case Decimal:
		return wireLiteral{Str: v.String(), Precision: v.Precision, Scale: v.Scale}
	}
	return wireLiteral{}
}

func fromWire(t Type, w wireLiteral) (any, error) {
	switch t {
	case TypeLong:
		return w.Int, nil
	case TypeFloat:
		return w.Float, nil
	case TypeString:
		return w.Str, nil
	case TypeBoolean:
		return w.Bool, nil
	case TypeDate, TypeTimestamp:
		return w.Time.UTC(), nil
	case TypeDecimal:
		return NewDecimal(w.Str, w.Precision, w.Scale)
	}
	return nil, fmt.Errorf("unknown leaf type %s", t)
}

func validateExpr(e *Expr, leaves int) error {
	switch e.Kind {
	case KindLeaf:
		if e.Leaf < 0 || e.Leaf >= leaves {
			return fmt.Errorf("leaf reference %d out of range", e.Leaf)
		}
		return nil
	case KindNot:
		if len(e.Children) != 1 {
			return ErrNotArity
		}
	case KindAnd, KindOr:
		if len(e.Children) == 0 {
			return ErrEmptyScope
		}
	default:
		return fmt.Errorf("unknown expression kind %s", e.Kind)
	}
	for _, c := range e.Children {
		if c == nil {
			return fmt.Errorf("nil child in %s", e.Kind)
		}
		if err := validateExpr(c, leaves); err != nil {
			return err
		}
	}
	return nil
}
