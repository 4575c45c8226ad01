package sarg

// normalize returns a simplified copy of e. Negations are pushed down to
// the leaves using De Morgan's laws, double negations cancel, nested scopes
// of the same kind are merged and single-child AND/OR scopes are replaced
// by their child. The input tree is not modified.
func normalize(e *Expr) *Expr {
	return flatten(pushDownNot(e, false))
}

func pushDownNot(e *Expr, negate bool) *Expr {
	switch e.Kind {
	case KindLeaf:
		leaf := &Expr{Kind: KindLeaf, Leaf: e.Leaf}
		if negate {
			return &Expr{Kind: KindNot, Children: []*Expr{leaf}}
		}
		return leaf
	case KindNot:
		return pushDownNot(e.Children[0], !negate)
	}

	kind := e.Kind
	if negate {
		if kind == KindAnd {
			kind = KindOr
		} else {
			kind = KindAnd
		}
	}
	out := &Expr{Kind: kind, Children: make([]*Expr, 0, len(e.Children))}
	for _, c := range e.Children {
		out.Children = append(out.Children, pushDownNot(c, negate))
	}
	return out
}

func flatten(e *Expr) *Expr {
	if e.Kind != KindAnd && e.Kind != KindOr {
		return e
	}
	children := make([]*Expr, 0, len(e.Children))
	for _, c := range e.Children {
		c = flatten(c)
		if c.Kind == e.Kind {
			children = append(children, c.Children...)
		} else {
			children = append(children, c)
		}
	}
	if len(children) == 1 {
		return children[0]
	}
	return &Expr{Kind: e.Kind, Children: children}
}
