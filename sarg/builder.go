package sarg

import (
	"errors"
	"fmt"
)

// Builder errors, returned by Build.
var (
	// ErrUnbalanced indicates End without a matching Start, or Build with open scopes.
	ErrUnbalanced = errors.New("sarg: unbalanced scopes")

	// ErrEmptyScope indicates a scope closed without children.
	ErrEmptyScope = errors.New("sarg: scope has no children")

	// ErrNotArity indicates a NOT scope closed with more than one child.
	ErrNotArity = errors.New("sarg: not scope must have exactly one child")

	// ErrLeafOutsideScope indicates a leaf added while no scope is open.
	ErrLeafOutsideScope = errors.New("sarg: leaf outside of a scope")

	// ErrMultipleRoots indicates a second top-level scope.
	ErrMultipleRoots = errors.New("sarg: more than one top-level scope")

	// ErrLiteralType indicates a literal whose Go type does not match its leaf type.
	ErrLiteralType = errors.New("sarg: literal does not match leaf type")

	// ErrNoExpression indicates Build on a builder that never opened a scope.
	ErrNoExpression = errors.New("sarg: no expression")
)

// Builder assembles a SearchArgument in a single forward pass.
//
// Scopes are opened with StartAnd, StartOr or StartNot and closed with End;
// leaves may only be added inside an open scope. Every method returns the
// same builder for chaining. Nothing can be undone: the first misuse is
// recorded and reported by Build, and later calls are ignored.
type Builder interface {
	StartAnd() Builder
	StartOr() Builder
	StartNot() Builder
	End() Builder

	Equals(column string, typ Type, literal any) Builder
	NullSafeEquals(column string, typ Type, literal any) Builder
	LessThan(column string, typ Type, literal any) Builder
	LessThanEquals(column string, typ Type, literal any) Builder
	In(column string, typ Type, literals ...any) Builder
	IsNull(column string, typ Type) Builder

	// Build finalizes the predicate. It fails unless every scope was closed.
	Build() (*SearchArgument, error)
}

// NewBuilder returns an empty Builder.
func NewBuilder() Builder {
	return &builder{}
}

type builder struct {
	stack  []*Expr // open scopes, innermost last
	root   *Expr
	leaves []Leaf
	err    error
}

func (b *builder) StartAnd() Builder { return b.start(KindAnd) }
func (b *builder) StartOr() Builder  { return b.start(KindOr) }
func (b *builder) StartNot() Builder { return b.start(KindNot) }

func (b *builder) start(kind Kind) Builder {
	if b.err != nil {
		return b
	}
	node := &Expr{Kind: kind}
	if n := len(b.stack); n > 0 {
		parent := b.stack[n-1]
		parent.Children = append(parent.Children, node)
	} else if b.root != nil {
		b.err = ErrMultipleRoots
		return b
	} else {
		b.root = node
	}
	b.stack = append(b.stack, node)
	return b
}

func (b *builder) End() Builder {
	if b.err != nil {
		return b
	}
	n := len(b.stack)
	if n == 0 {
		b.err = fmt.Errorf("%w: end without start", ErrUnbalanced)
		return b
	}
	node := b.stack[n-1]
	b.stack = b.stack[:n-1]
	switch {
	case len(node.Children) == 0:
		b.err = fmt.Errorf("%w: %s", ErrEmptyScope, node.Kind)
	case node.Kind == KindNot && len(node.Children) != 1:
		b.err = fmt.Errorf("%w: got %d", ErrNotArity, len(node.Children))
	}
	return b
}

func (b *builder) Equals(column string, typ Type, literal any) Builder {
	return b.addLeaf(Leaf{Operator: OpEquals, Type: typ, Column: column, Literal: literal})
}

func (b *builder) NullSafeEquals(column string, typ Type, literal any) Builder {
	return b.addLeaf(Leaf{Operator: OpNullSafeEquals, Type: typ, Column: column, Literal: literal})
}

func (b *builder) LessThan(column string, typ Type, literal any) Builder {
	return b.addLeaf(Leaf{Operator: OpLessThan, Type: typ, Column: column, Literal: literal})
}

func (b *builder) LessThanEquals(column string, typ Type, literal any) Builder {
	return b.addLeaf(Leaf{Operator: OpLessThanEquals, Type: typ, Column: column, Literal: literal})
}

func (b *builder) In(column string, typ Type, literals ...any) Builder {
	if len(literals) == 0 {
		if b.err == nil {
			b.err = fmt.Errorf("%w: IN %s without literals", ErrLiteralType, column)
		}
		return b
	}
	vals := make([]any, len(literals))
	copy(vals, literals)
	return b.addLeaf(Leaf{Operator: OpIn, Type: typ, Column: column, Literals: vals})
}

func (b *builder) IsNull(column string, typ Type) Builder {
	return b.addLeaf(Leaf{Operator: OpIsNull, Type: typ, Column: column})
}

func (b *builder) addLeaf(leaf Leaf) Builder {
	if b.err != nil {
		return b
	}
	n := len(b.stack)
	if n == 0 {
		b.err = fmt.Errorf("%w: %s", ErrLeafOutsideScope, leaf)
		return b
	}
	if err := validateLeaf(leaf); err != nil {
		b.err = err
		return b
	}

	id := -1
	for i, l := range b.leaves {
		if l.equal(leaf) {
			id = i
			break
		}
	}
	if id < 0 {
		id = len(b.leaves)
		b.leaves = append(b.leaves, leaf)
	}

	parent := b.stack[n-1]
	parent.Children = append(parent.Children, &Expr{Kind: KindLeaf, Leaf: id})
	return b
}

func validateLeaf(leaf Leaf) error {
	switch leaf.Operator {
	case OpIsNull:
		return nil
	case OpIn:
		for _, v := range leaf.Literals {
			if !checkLiteral(leaf.Type, v) {
				return fmt.Errorf("%w: %T for %s in %s", ErrLiteralType, v, leaf.Type, leaf.Column)
			}
		}
		return nil
	default:
		if !checkLiteral(leaf.Type, leaf.Literal) {
			return fmt.Errorf("%w: %T for %s in %s", ErrLiteralType, leaf.Literal, leaf.Type, leaf.Column)
		}
		return nil
	}
}

func (b *builder) Build() (*SearchArgument, error) {
	if b.err != nil {
		return nil, b.err
	}
	if n := len(b.stack); n > 0 {
		return nil, fmt.Errorf("%w: %d scope(s) still open", ErrUnbalanced, n)
	}
	if b.root == nil {
		return nil, ErrNoExpression
	}

	leaves := make([]Leaf, len(b.leaves))
	copy(leaves, b.leaves)
	return &SearchArgument{
		Leaves: leaves,
		Expr:   normalize(b.root),
	}, nil
}
