package models

import "fmt"

// Field describes one declared wire field of an entity.
type Field struct {
	Wire      string
	Local     string   // differs from Wire only when the wire name needs renaming
	Primitive bool
	Scalar    Kind     // coercion for primitive fields, KindRaw passes through
	Type      *TypeRef // nested shape for non-primitive fields
}

// Descriptor is the immutable schema record for one response entity:
// an ordered field table plus per-field coercion info. Field order
// matters, bare-array payloads are assigned to the first declared
// field.
type Descriptor struct {
	Name string

	fields []Field
	byWire map[string]int
}

// NewDescriptor builds a descriptor from ordered field declarations.
// It panics on inconsistent declarations since descriptors are built
// from static tables at startup.
func NewDescriptor(name string, fields ...Field) *Descriptor {
	d := &Descriptor{
		Name:   name,
		fields: fields,
		byWire: make(map[string]int, len(fields)),
	}
	for i, f := range fields {
		if f.Wire == "" {
			panic(fmt.Sprintf("models: %s field %d has no wire name", name, i))
		}
		if !f.Primitive && f.Type == nil {
			panic(fmt.Sprintf("models: %s.%s is non-primitive but has no type", name, f.Wire))
		}
		if _, dup := d.byWire[f.Wire]; dup {
			panic(fmt.Sprintf("models: %s declares %s twice", name, f.Wire))
		}
		if d.fields[i].Local == "" {
			d.fields[i].Local = f.Wire
		}
		d.byWire[f.Wire] = i
	}
	return d
}

// Field looks up a declaration by wire name.
func (d *Descriptor) Field(wire string) (Field, bool) {
	i, ok := d.byWire[wire]
	if !ok {
		return Field{}, false
	}
	return d.fields[i], true
}

// Fields returns the declarations in declared order.
func (d *Descriptor) Fields() []Field {
	out := make([]Field, len(d.fields))
	copy(out, d.fields)
	return out
}

func (d *Descriptor) first() (Field, bool) {
	if len(d.fields) == 0 {
		return Field{}, false
	}
	return d.fields[0], true
}
