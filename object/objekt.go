package object

import (
	"fmt"

	"github.com/simhayoz/dotty/semantics"
)

// Objekt is the abstract heap record of one flow-sensitive object: which
// fields have been assigned so far, and the value of each outer
// reference, one per class in the object's hierarchy that needs one.
//
// Both maps are write-once. Re-assigning a slot with a structurally equal
// value is a no-op (parameter accessors are re-populated identically when
// a Warm object is rebuilt after a heap revert); re-assigning with a
// different value is a soundness violation and is rejected.
type Objekt struct {
	Class  *semantics.Class
	fields map[string]Value
	outers map[*semantics.Class]Value
}

// NewObjekt returns an empty record for the given class.
func NewObjekt(class *semantics.Class) *Objekt {
	return &Objekt{
		Class:  class,
		fields: map[string]Value{},
		outers: map[*semantics.Class]Value{},
	}
}

// HasField reports whether the field has been assigned.
func (o *Objekt) HasField(name string) bool {
	_, ok := o.fields[name]
	return ok
}

// Field returns the field's value; the caller must have checked HasField.
func (o *Objekt) Field(name string) (Value, error) {
	v, ok := o.fields[name]
	if !ok {
		return nil, fmt.Errorf("field %s.%s is not set", o.Class, name)
	}
	return v, nil
}

// UpdateField assigns a field, enforcing the write-once invariant.
func (o *Objekt) UpdateField(name string, v Value) error {
	if old, ok := o.fields[name]; ok {
		if Equal(old, v) {
			return nil
		}
		return fmt.Errorf("field %s.%s assigned twice: %s, then %s", o.Class, name, old.Inspect(), v.Inspect())
	}
	o.fields[name] = v
	return nil
}

// FieldCount returns how many fields have been assigned so far.
func (o *Objekt) FieldCount() int { return len(o.fields) }

// HasOuter reports whether the outer for the given class has been wired.
func (o *Objekt) HasOuter(cls *semantics.Class) bool {
	_, ok := o.outers[cls]
	return ok
}

// Outer returns the outer value for the given class; the caller must have
// checked HasOuter.
func (o *Objekt) Outer(cls *semantics.Class) (Value, error) {
	v, ok := o.outers[cls]
	if !ok {
		return nil, fmt.Errorf("outer of %s for class %s is not set", o.Class, cls)
	}
	return v, nil
}

// UpdateOuter wires an outer value, enforcing the write-once invariant.
func (o *Objekt) UpdateOuter(cls *semantics.Class, v Value) error {
	if old, ok := o.outers[cls]; ok {
		if Equal(old, v) {
			return nil
		}
		return fmt.Errorf("outer of %s for class %s wired twice: %s, then %s", o.Class, cls, old.Inspect(), v.Inspect())
	}
	o.outers[cls] = v
	return nil
}

// Clone deep-copies the record. The heap snapshots rely on clones being
// independent of the originals.
func (o *Objekt) Clone() *Objekt {
	out := NewObjekt(o.Class)
	for k, v := range o.fields {
		out.fields[k] = v
	}
	for k, v := range o.outers {
		out.outers[k] = v
	}
	return out
}
