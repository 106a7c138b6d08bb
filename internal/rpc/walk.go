package rpc

// opaqueKeys are JSON object keys whose values carry document content,
// never filesystem paths. Their subtrees are never visited.
var opaqueKeys = map[string]bool{
	"text":           true,
	"contentChanges": true,
}

// StringVisitor rewrites a single string value found during a tree walk.
// key is the JSON object key the string was found under; a string inside
// an array gets the key of the object field holding that array, or "" when
// no object encloses it. The visitor returns the value to use in
// its place; returning the input unchanged is always safe.
type StringVisitor func(key string, value string) string

// Walk recurses over a decoded JSON value (the shapes produced by
// encoding/json into `any`: map[string]any, []any, string, float64, bool,
// nil) and applies visit to every string it finds, except strings reached
// through an opaque key (see opaqueKeys). It returns a new tree; the
// input is not mutated in place for maps/slices it had to rebuild, though
// scalars are returned as-is.
func Walk(v any, visit StringVisitor) any {
	return walkKeyed("", v, visit)
}

func walkKeyed(key string, v any, visit StringVisitor) any {
	switch val := v.(type) {
	case string:
		return visit(key, val)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			if opaqueKeys[k] {
				out[k] = child
				continue
			}
			out[k] = walkKeyed(k, child, visit)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = walkKeyed(key, child, visit)
		}
		return out
	default:
		// numbers, bools, null: nothing to rewrite.
		return v
	}
}
