package resource

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Document is the raw description of one resource as returned by the
// provider. It is immutable. JSON nulls are treated as absent keys.
type Document struct {
	Kind Kind
	ID   string
	raw  string
}

// NewDocument wraps a raw JSON description.
func NewDocument(kind Kind, id string, raw []byte) (*Document, error) {
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("%s %s: invalid document", kind, id)
	}
	return &Document{Kind: kind, ID: id, raw: string(raw)}, nil
}

// FromValue encodes an SDK response value into a Document. Fields the
// provider left unset (nil pointers, empty enums) are dropped so the
// document only holds what was actually returned.
func FromValue(kind Kind, id string, v any) (*Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode %s %s: %w", kind, id, err)
	}
	pruned, ok := prune(gjson.ParseBytes(raw))
	if !ok {
		pruned = "{}"
	}
	return NewDocument(kind, id, []byte(pruned))
}

// prune rewrites r without nulls, empty strings and objects left empty
// by their removal. Key order is kept.
func prune(r gjson.Result) (string, bool) {
	switch {
	case r.IsObject():
		var b strings.Builder
		n := 0
		r.ForEach(func(k, v gjson.Result) bool {
			raw, ok := prune(v)
			if !ok {
				return true
			}
			if n == 0 {
				b.WriteByte('{')
			} else {
				b.WriteByte(',')
			}
			b.WriteString(k.Raw)
			b.WriteByte(':')
			b.WriteString(raw)
			n++
			return true
		})
		if n == 0 {
			return "", false
		}
		b.WriteByte('}')
		return b.String(), true
	case r.IsArray():
		var b strings.Builder
		b.WriteByte('[')
		n := 0
		r.ForEach(func(_, v gjson.Result) bool {
			raw, ok := prune(v)
			if !ok {
				return true
			}
			if n > 0 {
				b.WriteByte(',')
			}
			b.WriteString(raw)
			n++
			return true
		})
		b.WriteByte(']')
		return b.String(), true
	case r.Type == gjson.Null:
		return "", false
	case r.Type == gjson.String && r.Str == "":
		return "", false
	default:
		return r.Raw, true
	}
}

// Raw returns the JSON text of the document.
func (d *Document) Raw() string {
	return d.raw
}

// Get returns the value at a gjson path.
func (d *Document) Get(path string) gjson.Result {
	return gjson.Get(d.raw, path)
}

// Text renders the value at path, or "" when the path is absent.
func (d *Document) Text(path string) string {
	return render(d.Get(path))
}

// TagValue returns the value of the first tag with key, or "".
func (d *Document) TagValue(key string) string {
	value := ""
	d.Get("Tags").ForEach(func(_, tag gjson.Result) bool {
		if tag.Get("Key").String() == key {
			value = tag.Get("Value").String()
			return false
		}
		return true
	})
	return value
}

// TagKeys returns tag keys in document order, duplicates included.
func (d *Document) TagKeys() []string {
	var keys []string
	d.Get("Tags").ForEach(func(_, tag gjson.Result) bool {
		keys = append(keys, tag.Get("Key").String())
		return true
	})
	return keys
}

// Name is the Name tag.
func (d *Document) Name() string {
	return d.TagValue("Name")
}

// FindKey walks the whole document depth first and collects every value
// stored under key, in encounter order. A matched value is not searched
// further. Documents come from the provider and are always finite.
func (d *Document) FindKey(key string) []string {
	return findKey(gjson.Parse(d.raw), key, nil)
}

func findKey(node gjson.Result, key string, out []string) []string {
	switch {
	case node.IsObject():
		node.ForEach(func(k, v gjson.Result) bool {
			if k.String() == key {
				if present(v) {
					out = append(out, render(v))
				}
			} else {
				out = findKey(v, key, out)
			}
			return true
		})
	case node.IsArray():
		node.ForEach(func(_, v gjson.Result) bool {
			out = findKey(v, key, out)
			return true
		})
	}
	return out
}

// Field is one top-level entry of a document.
type Field struct {
	Key    string
	Value  string
	Nested bool
}

// Fields lists the top-level entries in document order, skipping nulls and
// empty lists.
func (d *Document) Fields() []Field {
	var fields []Field
	gjson.Parse(d.raw).ForEach(func(k, v gjson.Result) bool {
		if !present(v) || (v.IsArray() && len(v.Array()) == 0) {
			return true
		}
		fields = append(fields, Field{
			Key:    k.String(),
			Value:  render(v),
			Nested: v.IsObject() || v.IsArray(),
		})
		return true
	})
	return fields
}

func present(r gjson.Result) bool {
	return r.Exists() && r.Type != gjson.Null
}

func render(r gjson.Result) string {
	switch r.Type {
	case gjson.Null:
		return ""
	case gjson.True:
		return "True"
	case gjson.False:
		return "False"
	case gjson.String:
		return r.Str
	default:
		return r.Raw
	}
}

// list renders each element found at path, skipping absent ones.
func (d *Document) list(path string) []string {
	var out []string
	d.Get(path).ForEach(func(_, v gjson.Result) bool {
		if present(v) {
			out = append(out, render(v))
		}
		return true
	})
	return out
}
