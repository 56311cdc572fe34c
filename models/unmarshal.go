package models

import (
	"errors"
	"fmt"
	"go/token"

	"helixir/internal/convert"
)

// Unmarshal maps a decoded JSON payload onto the requested response
// type. Depending on the tag it returns a coerced scalar, a *Entity,
// a []*Entity or a map[string]any whose values follow the dict's
// element type. The payload must come from encoding/json decoding
// into any.
func Unmarshal(reg *Registry, responseType string, payload any) (any, error) {
	t, err := ParseType(responseType)
	if err != nil {
		return nil, err
	}
	return UnmarshalType(reg, t, payload)
}

// UnmarshalType is Unmarshal with a pre-parsed response type.
func UnmarshalType(reg *Registry, t TypeRef, payload any) (any, error) {
	switch t.Kind {
	case RefScalar:
		v, err := coerceScalar(t.Scalar, payload)
		if err != nil {
			return nil, &CoercionError{Type: t.String(), Value: payload, Err: err}
		}
		return v, nil

	case RefList:
		arr, ok := payload.([]any)
		if !ok {
			return nil, &CoercionError{Type: t.String(), Value: payload, Err: errors.New("expected JSON array")}
		}
		return unmarshalList(reg, t, arr)

	case RefDict:
		obj, ok := payload.(map[string]any)
		if !ok {
			return nil, &CoercionError{Type: t.String(), Value: payload, Err: errors.New("expected JSON object")}
		}
		out := make(map[string]any, len(obj))
		for key, value := range obj {
			v, err := UnmarshalType(reg, *t.Elem, value)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			out[key] = v
		}
		return out, nil

	case RefEntity:
		d, err := reg.Resolve(t.Name)
		if err != nil {
			return nil, err
		}
		switch p := payload.(type) {
		case map[string]any:
			return hydrateObject(reg, d, p)
		case []any:
			return hydrateArray(reg, d, p)
		default:
			// Bare scalar payloads reuse the generic decode path on
			// some numeric endpoints, pass them through unchanged.
			return payload, nil
		}

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, t)
	}
}

func unmarshalList(reg *Registry, t TypeRef, arr []any) (any, error) {
	if t.Elem.Kind == RefScalar {
		out := make([]any, 0, len(arr))
		for i, item := range arr {
			v, err := coerceScalar(t.Elem.Scalar, item)
			if err != nil {
				return nil, &CoercionError{Type: t.String(), Field: fmt.Sprintf("[%d]", i), Value: item, Err: err}
			}
			out = append(out, v)
		}
		return out, nil
	}

	d, err := reg.Resolve(t.Elem.Name)
	if err != nil {
		return nil, err
	}
	out := make([]*Entity, 0, len(arr))
	for i, item := range arr {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &CoercionError{Type: t.String(), Field: fmt.Sprintf("[%d]", i), Value: item, Err: errors.New("expected JSON object")}
		}
		e, err := hydrateObject(reg, d, obj)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// hydrateObject populates an entity from a JSON object. Declared
// fields are coerced or recursed per the descriptor; unknown fields
// are preserved verbatim under their wire name.
func hydrateObject(reg *Registry, d *Descriptor, obj map[string]any) (*Entity, error) {
	e := newEntity(d.Name)
	for key, value := range obj {
		f, declared := d.Field(key)
		if !declared {
			e.set(safeName(key), value)
			continue
		}
		if f.Primitive {
			v, err := coerceScalar(f.Scalar, value)
			if err != nil {
				return nil, &CoercionError{Type: d.Name, Field: f.Local, Value: value, Err: err}
			}
			e.set(f.Local, v)
			continue
		}
		v, err := UnmarshalType(reg, *f.Type, value)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", d.Name, f.Local, err)
		}
		e.set(f.Local, v)
	}
	return e, nil
}

// hydrateArray handles entity types whose payload arrives as a bare
// array: the whole array goes to the first declared field. When that
// field is declared as a list its elements are hydrated, otherwise the
// raw array is kept. Endpoint behavior depends on declaration order
// here, so the first field is authoritative.
func hydrateArray(reg *Registry, d *Descriptor, arr []any) (*Entity, error) {
	e := newEntity(d.Name)
	f, ok := d.first()
	if !ok {
		return e, nil
	}
	if !f.Primitive && f.Type.Kind == RefList {
		v, err := UnmarshalType(reg, *f.Type, arr)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", d.Name, f.Local, err)
		}
		e.set(f.Local, v)
		return e, nil
	}
	e.set(f.Local, arr)
	return e, nil
}

func coerceScalar(k Kind, v any) (any, error) {
	switch k {
	case KindInt:
		return convert.Int64E(v)
	case KindFloat:
		return convert.Float64E(v)
	case KindString:
		return convert.ToString(v), nil
	case KindBool:
		if v == nil {
			return false, nil
		}
		return convert.BoolE(v)
	case KindTime:
		return convert.TimeE(v)
	default:
		return v, nil
	}
}

// safeName appends an underscore when a wire field name collides with
// a language keyword, mirroring how declared renames are handled.
func safeName(key string) string {
	if token.IsKeyword(key) {
		return key + "_"
	}
	return key
}
