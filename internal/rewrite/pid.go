package rewrite

// patchProcessID sets params.processId to nil on a decoded initialize
// request tree. It is a no-op for any tree that isn't shaped like an
// object with a "params" object, which keeps it safe to call
// unconditionally once the caller has already confirmed method ==
// "initialize" and direction == to-server.
func patchProcessID(tree any) any {
	obj, ok := tree.(map[string]any)
	if !ok {
		return tree
	}
	params, ok := obj["params"].(map[string]any)
	if !ok {
		return tree
	}
	params["processId"] = nil
	obj["params"] = params
	return obj
}
