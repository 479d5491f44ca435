// Package tabular provides the small relational layer the extraction
// pipeline is built on: ordered-column tables of decoded JSON rows,
// multi-key hash joins with an explicit collision-naming policy, and
// null-safe projections over nested objects and object lists.
package tabular

// Object is a decoded JSON object. Nested references and object lists
// inside upstream payloads decode to Objects and []Object values.
type Object = map[string]any

// Field returns the named field of a nested object, or nil when the
// object is absent or not an object at all. It never panics: a missing
// nested reference projects to a null value, not an error.
func Field(v any, name string) any {
	switch obj := v.(type) {
	case nil:
		return nil
	case Object:
		return obj[name]
	default:
		return nil
	}
}

// Fields projects a nullable list of nested objects down to only the
// named fields, preserving element order. A nil or empty input yields
// an empty list. Fields absent from an element are carried as nil so
// every projected object has the same shape.
func Fields(v any, names ...string) []Object {
	list := asObjectList(v)
	out := make([]Object, 0, len(list))
	for _, item := range list {
		projected := make(Object, len(names))
		for _, name := range names {
			projected[name] = Field(item, name)
		}
		out = append(out, projected)
	}
	return out
}

// asObjectList normalizes the two shapes a decoded JSON list can take.
func asObjectList(v any) []Object {
	switch list := v.(type) {
	case nil:
		return nil
	case []Object:
		return list
	case []any:
		out := make([]Object, 0, len(list))
		for _, item := range list {
			if obj, ok := item.(Object); ok {
				out = append(out, obj)
			}
		}
		return out
	default:
		return nil
	}
}
