package resource

import "strings"

// columns maps a report column name to the accessor that renders it.
type columns[V any] map[string]func(V) string

func (c columns[V]) lookup(v V, name string) (string, bool) {
	fn, ok := c[name]
	if !ok {
		return "", false
	}
	return fn(v), true
}

func join(values []string) string {
	return strings.Join(values, ",")
}
