package filter

// Combine conjoins filters into a single balanced AND tree.
//
// An empty input yields (nil, false). A single filter is returned unchanged.
// Larger inputs are split at the midpoint and each half is combined
// recursively, so the resulting tree has depth ceil(log2(n)) instead of n-1.
func Combine(filters []Filter) (Filter, bool) {
	return balance(filters, func(l, r Filter) Filter { return &And{Left: l, Right: r} })
}

// CombineOr is Combine for disjunctions.
func CombineOr(filters []Filter) (Filter, bool) {
	return balance(filters, func(l, r Filter) Filter { return &Or{Left: l, Right: r} })
}

func balance(filters []Filter, join func(l, r Filter) Filter) (Filter, bool) {
	switch len(filters) {
	case 0:
		return nil, false
	case 1:
		return filters[0], true
	case 2:
		return join(filters[0], filters[1]), true
	}
	mid := len(filters) / 2
	left, _ := balance(filters[:mid], join)
	right, _ := balance(filters[mid:], join)
	return join(left, right), true
}

// Depth returns the number of logical operator levels above the deepest
// leaf. A leaf has depth 0; And(a, b) over two leaves has depth 1.
func Depth(f Filter) int {
	switch f := f.(type) {
	case *And:
		return 1 + max(Depth(f.Left), Depth(f.Right))
	case *Or:
		return 1 + max(Depth(f.Left), Depth(f.Right))
	case *Not:
		return 1 + Depth(f.Child)
	default:
		return 0
	}
}
