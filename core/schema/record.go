package schema

import (
	"reflect"
	"strconv"
	"strings"
)

// Record is raw form data keyed by field name, as decoded from JSON or YAML.
type Record = map[string]any

// Lookup resolves a path such as "businessAddress.city" or
// "shareholders[0].name" inside a record.
func Lookup(r Record, path string) (any, bool) {
	if r == nil || path == "" {
		return nil, false
	}

	var cur any = r
	for _, seg := range splitPath(path) {
		switch {
		case seg.index >= 0:
			items, ok := asSlice(cur)
			if !ok || seg.index >= len(items) {
				return nil, false
			}
			cur = items[seg.index]
		default:
			m, ok := AsMap(cur)
			if !ok {
				return nil, false
			}
			v, ok := m[seg.key]
			if !ok {
				return nil, false
			}
			cur = v
		}
	}
	return cur, true
}

// IsFilled reports whether a value counts as answered. Strings must be
// non-blank, lists and objects non-empty; any number or boolean counts,
// including zero and false.
func IsFilled(v any) bool {
	if v == nil {
		return false
	}
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x) != ""
	case *string:
		return x != nil && strings.TrimSpace(*x) != ""
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() > 0
	case reflect.Pointer, reflect.Interface:
		return !rv.IsNil()
	}
	return true
}

// AsMap converts decoded objects to map[string]any.
func AsMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

// AsSlice converts decoded lists to []any.
func AsSlice(v any) ([]any, bool) {
	return asSlice(v)
}

func asSlice(v any) ([]any, bool) {
	if s, ok := v.([]any); ok {
		return s, true
	}
	if v == nil {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

type segment struct {
	key   string
	index int
}

func splitPath(path string) []segment {
	var segs []segment
	for _, part := range strings.Split(path, ".") {
		for part != "" {
			open := strings.IndexByte(part, '[')
			if open < 0 {
				segs = append(segs, segment{key: part, index: -1})
				break
			}
			if open > 0 {
				segs = append(segs, segment{key: part[:open], index: -1})
			}
			end := strings.IndexByte(part[open:], ']')
			if end < 0 {
				segs = append(segs, segment{key: part[open:], index: -1})
				break
			}
			idx, err := strconv.Atoi(part[open+1 : open+end])
			if err != nil || idx < 0 {
				segs = append(segs, segment{key: part[open : open+end+1], index: -1})
			} else {
				segs = append(segs, segment{index: idx})
			}
			part = part[open+end+1:]
		}
	}
	return segs
}

// IndexPath builds the path of a table cell, e.g. "shareholders[0].name".
func IndexPath(table string, row int, column string) string {
	p := table + "[" + strconv.Itoa(row) + "]"
	if column != "" {
		p += "." + column
	}
	return p
}

// JoinPath joins a parent path and a child name with a dot.
func JoinPath(parent, child string) string {
	if parent == "" {
		return child
	}
	return parent + "." + child
}
