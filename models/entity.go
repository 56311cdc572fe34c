package models

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"helixir/internal/convert"
)

// Entity is a hydrated response value: a key-value bag populated from
// JSON per a Descriptor. Keys are local field names plus any
// unrecognized wire fields preserved verbatim. Entities are populated
// once during unmarshalling and should be treated as read-only
// afterwards.
type Entity struct {
	typeName string
	fields   map[string]any
}

func newEntity(typeName string) *Entity {
	return &Entity{typeName: typeName, fields: make(map[string]any)}
}

// Type returns the entity's registered type name.
func (e *Entity) Type() string {
	return e.typeName
}

func (e *Entity) set(name string, v any) {
	e.fields[name] = v
}

// Get returns the raw value of a field and whether it was present in
// the payload.
func (e *Entity) Get(name string) (any, bool) {
	v, ok := e.fields[name]
	return v, ok
}

// Keys returns the populated field names in sorted order.
func (e *Entity) Keys() []string {
	keys := make([]string, 0, len(e.fields))
	for k := range e.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a shallow copy of the populated fields.
func (e *Entity) Map() map[string]any {
	out := make(map[string]any, len(e.fields))
	for k, v := range e.fields {
		out[k] = v
	}
	return out
}

// Int returns the field as int64, zero when absent or unconvertible.
func (e *Entity) Int(name string) int64 {
	return convert.ToInt64(e.fields[name])
}

// Float returns the field as float64, zero when absent or
// unconvertible.
func (e *Entity) Float(name string) float64 {
	return convert.ToFloat64(e.fields[name])
}

// Str returns the field formatted as a string, empty when absent.
func (e *Entity) Str(name string) string {
	return convert.ToString(e.fields[name])
}

// Bool returns the field as bool, false when absent or unconvertible.
func (e *Entity) Bool(name string) bool {
	return convert.ToBool(e.fields[name])
}

// Time returns the field as time.Time, the zero time when absent or
// unconvertible.
func (e *Entity) Time(name string) time.Time {
	return convert.ToTime(e.fields[name])
}

// Nested returns the field as a hydrated sub-entity, nil when absent
// or not an entity.
func (e *Entity) Nested(name string) *Entity {
	v, _ := e.fields[name].(*Entity)
	return v
}

// List returns the field as a hydrated entity slice, nil when absent
// or not one.
func (e *Entity) List(name string) []*Entity {
	v, _ := e.fields[name].([]*Entity)
	return v
}

func (e *Entity) String() string {
	var b strings.Builder
	b.WriteString(e.typeName)
	b.WriteByte('{')
	for i, k := range e.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", k, e.fields[k])
	}
	b.WriteByte('}')
	return b.String()
}
