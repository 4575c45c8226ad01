// Package sarg implements search arguments: the predicate form a columnar
// reader evaluates against row group statistics to skip data that cannot
// match.
//
// A SearchArgument is assembled with a Builder, a single-pass API with no
// rollback. Scopes are opened with StartAnd, StartOr or StartNot, filled
// with leaves and closed with End:
//
//	sa, err := sarg.NewBuilder().
//	    StartAnd().
//	        Equals("a", sarg.TypeLong, int64(1)).
//	        StartNot().
//	            LessThanEquals("c", sarg.TypeFloat, 5.0).
//	        End().
//	    End().
//	    Build()
//	// sa.String() == "leaf-0 = (EQUALS a 1), leaf-1 = (LESS_THAN_EQUALS c 5), expr = (and leaf-0 (not leaf-1))"
//
// Build normalizes the tree: negations are pushed to the leaves, nested
// scopes of the same kind are merged and identical leaves are shared.
//
// # Literal types
//
// Each leaf carries a Type tag and literals of a matching Go type:
//
//	LONG       int64
//	FLOAT      float64
//	STRING     string
//	BOOLEAN    bool
//	DATE       time.Time
//	TIMESTAMP  time.Time
//	DECIMAL    sarg.Decimal
//
// Any other literal is rejected and reported by Build.
//
// # Evaluation
//
// EvaluateStats decides, from per-column min/max/null statistics, whether
// a row group may contain matching rows:
//
//	if !sa.EvaluateStats(stats).IsNeeded() {
//	    // skip the row group
//	}
//
// # Serialization
//
// Marshal and Unmarshal convert a SearchArgument to and from a compact
// zstd-compressed MessagePack form.
package sarg
