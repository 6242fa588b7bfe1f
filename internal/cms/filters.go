package cms

import (
	"sort"
	"strings"
)

// buildFilters expands dotted keys ("category.slug") into one level of
// nesting. Keys are applied in sorted order. A dotted key whose parent already
// holds a non-map value is dropped.
func buildFilters(in map[string]any) map[string]any {
	if len(in) == 0 {
		return nil
	}
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(map[string]any, len(in))
	for _, key := range keys {
		value := in[key]
		parent, child, dotted := strings.Cut(key, ".")
		if !dotted {
			out[key] = value
			continue
		}
		switch existing := out[parent].(type) {
		case nil:
			out[parent] = map[string]any{child: value}
		case map[string]any:
			merged := make(map[string]any, len(existing)+1)
			for k, v := range existing {
				merged[k] = v
			}
			merged[child] = value
			out[parent] = merged
		}
	}
	return out
}
