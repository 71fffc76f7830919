package universe

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

var ErrInvalidPatch = errors.New("invalid patch")

// Patch is a shallow merge keyed by persisted JSON field name. Fields not
// named in the patch keep their current value, shared with the input node.
type Patch map[string]any

// Apply patches a node that is not in any tree yet, such as one about to be
// inserted.
func Apply(n Node, p Patch) (Node, error) {
	if len(p) == 0 {
		return n, nil
	}
	switch v := n.(type) {
	case Universe:
		return patchAs(v, p)
	case Character:
		return patchAs(v, p)
	case Trait:
		return patchAs(v, p)
	case Section:
		return patchAs(v, p)
	case Location:
		return patchAs(v, p)
	case Script:
		return patchAs(v, p)
	case Scene:
		return patchAs(v, p)
	case Dialogue:
		return patchAs(v, p)
	case Category:
		return patchAs(v, p)
	case Item:
		return patchAs(v, p)
	case Field:
		return patchAs(v, p)
	case WorldNote:
		return patchAs(v, p)
	case Image:
		return patchAs(v, p)
	}
	return n, fmt.Errorf("%w: unsupported node %T", ErrInvalidPatch, n)
}

func patchAs[T Node](v T, p Patch) (Node, error) {
	out, err := patchNode(v, p)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func patchNode[T Node](v T, p Patch) (T, error) {
	if len(p) == 0 {
		return v, nil
	}
	if _, ok := p["id"]; ok {
		return v, fmt.Errorf("%w: id cannot be changed", ErrInvalidPatch)
	}

	out := v
	rv := reflect.ValueOf(&out).Elem()
	fields := jsonFields(rv.Type())
	for key := range p {
		i, ok := fields[key]
		if !ok {
			return v, fmt.Errorf("%w: %s has no field %q", ErrInvalidPatch, v.Kind(), key)
		}
		// Decoding into a slice reuses its backing array, which belongs to v.
		if f := rv.Field(i); isReference(f.Kind()) {
			f.Set(reflect.Zero(f.Type()))
		}
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return v, fmt.Errorf("%w: %v", ErrInvalidPatch, err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&out); err != nil {
		return v, fmt.Errorf("%w: %s: %v", ErrInvalidPatch, v.Kind(), err)
	}

	// Only the replaced fields can break the collection invariant.
	norm := reflect.ValueOf(normalizeNode(out))
	for key := range p {
		i := fields[key]
		rv.Field(i).Set(norm.Field(i))
	}
	return out, nil
}

func isReference(k reflect.Kind) bool {
	switch k {
	case reflect.Slice, reflect.Map, reflect.Pointer, reflect.Interface:
		return true
	}
	return false
}

var fieldIndex sync.Map // reflect.Type -> map[string]int

// jsonFields maps the JSON name of each field of t to its index.
func jsonFields(t reflect.Type) map[string]int {
	if cached, ok := fieldIndex.Load(t); ok {
		return cached.(map[string]int)
	}
	fields := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		fields[name] = i
	}
	fieldIndex.Store(t, fields)
	return fields
}
