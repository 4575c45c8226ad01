package filter

import (
	"testing"
)

func leaves(n int) []Filter {
	out := make([]Filter, n)
	for i := range out {
		out[i] = &EqualTo{Column: string(rune('a' + i)), Value: i}
	}
	return out
}

func TestCombine(t *testing.T) {
	tests := []struct {
		name     string
		n        int
		expected string
	}{
		{"one", 1, "a = 0"},
		{"two", 2, "(a = 0 AND b = 1)"},
		{"three", 3, "(a = 0 AND (b = 1 AND c = 2))"},
		{"four", 4, "((a = 0 AND b = 1) AND (c = 2 AND d = 3))"},
		{"five", 5, "((a = 0 AND b = 1) AND (c = 2 AND (d = 3 AND e = 4)))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := Combine(leaves(tt.n))
			if !ok {
				t.Fatal("expected a combined filter")
			}
			if f.String() != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, f.String())
			}
		})
	}
}

func TestCombineEmpty(t *testing.T) {
	if f, ok := Combine(nil); ok || f != nil {
		t.Errorf("expected (nil, false), got (%v, %v)", f, ok)
	}
}

func TestCombineSingleIsUnchanged(t *testing.T) {
	in := &IsNull{Column: "x"}
	f, ok := Combine([]Filter{in})
	if !ok || f != Filter(in) {
		t.Errorf("expected the input filter back, got %v", f)
	}
}

func TestCombineFourIsBalanced(t *testing.T) {
	in := leaves(4)
	f, _ := Combine(in)

	root, ok := f.(*And)
	if !ok {
		t.Fatalf("expected *And, got %T", f)
	}
	left, lok := root.Left.(*And)
	right, rok := root.Right.(*And)
	if !lok || !rok {
		t.Fatalf("expected And(And, And), got %s", f)
	}
	if left.Left != in[0] || left.Right != in[1] || right.Left != in[2] || right.Right != in[3] {
		t.Errorf("expected And(And(A, B), And(C, D)), got %s", f)
	}
}

func TestCombineDepth(t *testing.T) {
	tests := []struct {
		n     int
		depth int
	}{
		{1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {8, 3}, {9, 4}, {16, 4}, {17, 5}, {100, 7}, {1000, 10},
	}

	for _, tt := range tests {
		f, _ := Combine(leaves(tt.n))
		if got := Depth(f); got != tt.depth {
			t.Errorf("n=%d: expected depth %d, got %d", tt.n, tt.depth, got)
		}
	}
}

func TestCombineOr(t *testing.T) {
	f, ok := CombineOr(leaves(3))
	if !ok {
		t.Fatal("expected a combined filter")
	}
	expected := "(a = 0 OR (b = 1 OR c = 2))"
	if f.String() != expected {
		t.Errorf("expected '%s', got '%s'", expected, f.String())
	}
}

func TestDepth(t *testing.T) {
	f := &Not{Child: &Or{Left: &IsNull{Column: "a"}, Right: &And{Left: &IsNull{Column: "b"}, Right: &IsNull{Column: "c"}}}}
	if got := Depth(f); got != 3 {
		t.Errorf("expected depth 3, got %d", got)
	}
	if got := Depth(&Unsupported{}); got != 0 {
		t.Errorf("expected depth 0, got %d", got)
	}
}
