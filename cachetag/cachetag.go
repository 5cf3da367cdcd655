// Package cachetag derives stable cache-invalidation tags from a JSON
// response value (spec §4.I). It has no dependency on the compiler: any
// already-decoded JSON value shaped like a GraphQL response can be walked.
package cachetag

import (
	"sort"
	"strings"
)

const typenameKey = "__typename"

// Sorted returns the tags in a set as a sorted slice, for deterministic
// serialization (Pack) or display.
func Sorted(tags map[string]struct{}) []string {
	out := make([]string, 0, len(tags))
	for t := range tags {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Extract walks value recursively and adds every tag it finds to sink.
// Rules applied at each JSON object:
//
//   - An object carrying a string-valued "__typename" scans its other
//     keys once: a key of exactly "id", "key", or "email" with a string
//     value, or any key ending in "_id" with a string value, each emit
//     "type:<typename>:<key>:<value>" and mark the object tagged; every
//     other key recurses into its value.
//   - If the scan found no identifying key, the object still emits the
//     type-level tag "type:<typename>".
//   - An object without "__typename" recurses into every value, emitting
//     nothing of its own.
//   - An array recurses into every element.
//   - Any other JSON value is a no-op.
//
// Extract is safe to call with sink == nil only if value contributes no
// tags; callers that expect tags must pass a non-nil map.
func Extract(value any, sink map[string]struct{}) {
	switch v := value.(type) {
	case map[string]any:
		extractObject(v, sink)
	case []any:
		for _, item := range v {
			Extract(item, sink)
		}
	}
}

func extractObject(obj map[string]any, sink map[string]struct{}) {
	typeName, ok := obj[typenameKey].(string)
	if !ok {
		for _, v := range obj {
			Extract(v, sink)
		}
		return
	}
	tagged := false
	for key, v := range obj {
		if key == typenameKey {
			continue
		}
		if id, isString := v.(string); isString && isIdentifyingKey(key) {
			sink["type:"+typeName+":"+key+":"+id] = struct{}{}
			tagged = true
			continue
		}
		Extract(v, sink)
	}
	if !tagged {
		sink["type:"+typeName] = struct{}{}
	}
}

func isIdentifyingKey(key string) bool {
	switch key {
	case "id", "key", "email":
		return true
	default:
		return strings.HasSuffix(key, "_id")
	}
}
