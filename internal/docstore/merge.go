package docstore

// MergeDoc deep-merges src into a copy of dst. Nested map values merge
// recursively; every other value type is last-write-wins. Neither input is
// mutated.
func MergeDoc(dst, src map[string]any) map[string]any {
	out := CloneDoc(dst)
	for key, value := range src {
		srcMap, srcIsMap := value.(map[string]any)
		dstMap, dstIsMap := out[key].(map[string]any)
		if srcIsMap && dstIsMap {
			out[key] = MergeDoc(dstMap, srcMap)
			continue
		}
		if srcIsMap {
			out[key] = CloneDoc(srcMap)
			continue
		}
		out[key] = value
	}
	return out
}

// CloneDoc returns a deep copy of doc (map values only; slices and scalars
// are shared, which is safe because documents are treated as immutable once
// handed over).
func CloneDoc(doc map[string]any) map[string]any {
	if doc == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(doc))
	for key, value := range doc {
		if nested, ok := value.(map[string]any); ok {
			out[key] = CloneDoc(nested)
			continue
		}
		out[key] = value
	}
	return out
}
