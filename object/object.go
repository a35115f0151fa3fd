// Package object defines the abstract value domain the initialization
// checker computes over: a small finite lattice of initialization states,
// the heap records tracking which fields of an object are already set,
// and the two-point environment for method parameters.
package object

import (
	"fmt"
	"sort"
	"strings"

	"github.com/simhayoz/dotty/semantics"
)

// ValueKind is a string tag identifying a value variant.
type ValueKind string

const (
	HOT_VALUE    ValueKind = "HOT"
	COLD_VALUE   ValueKind = "COLD"
	WARM_VALUE   ValueKind = "WARM"
	THIS_VALUE   ValueKind = "THIS"
	FUN_VALUE    ValueKind = "FUN"
	REFSET_VALUE ValueKind = "REFSET"
)

// Value is the interface every abstract value implements. The variant set
// is closed: Hot, Cold, Warm, ThisRef, Fun and RefSet.
//
// Key returns a canonical string identity. Warm values and closures are
// compared structurally (class, constructor, outer, arguments), which the
// cache, the heap, RefSet membership and the promotion set all rely on.
type Value interface {
	Kind() ValueKind
	Inspect() string
	Key() string
}

// --- Hot / Cold singletons ---

// Hot is a value proven fully initialized.
type Hot struct{}

// Cold is a value of unknown, unsafe initialization status.
type Cold struct{}

// The two extreme lattice points are shared singletons.
var (
	HOT  = &Hot{}
	COLD = &Cold{}
)

func (*Hot) Kind() ValueKind  { return HOT_VALUE }
func (*Hot) Inspect() string  { return "Hot" }
func (*Hot) Key() string      { return "Hot" }
func (*Cold) Kind() ValueKind { return COLD_VALUE }
func (*Cold) Inspect() string { return "Cold" }
func (*Cold) Key() string     { return "Cold" }

// --- ThisRef ---

// ThisRef is the object currently under construction by a checker task.
// There is exactly one per class check.
type ThisRef struct {
	Class *semantics.Class
}

func (t *ThisRef) Kind() ValueKind { return THIS_VALUE }
func (t *ThisRef) Inspect() string { return t.Class.Name + ".this" }
func (t *ThisRef) Key() string     { return "this:" + t.Class.String() }

// --- Warm ---

// Warm is an object whose own fields are all set but which may still
// reach other objects under construction through its outer or its
// arguments.
type Warm struct {
	Class *semantics.Class
	Outer Value
	Ctor  *semantics.Member
	Args  []Value
}

func (w *Warm) Kind() ValueKind { return WARM_VALUE }

func (w *Warm) Inspect() string {
	return fmt.Sprintf("Warm(%s)", w.Class.Name)
}

func (w *Warm) Key() string {
	var sb strings.Builder
	sb.WriteString("warm:")
	sb.WriteString(w.Class.String())
	sb.WriteString(";ctor=")
	if w.Ctor != nil {
		sb.WriteString(w.Ctor.Name)
	}
	sb.WriteString(";outer=")
	sb.WriteString(w.Outer.Key())
	sb.WriteString(";args=")
	for i, a := range w.Args {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(a.Key())
	}
	return sb.String()
}

// --- Fun ---

// Fun is a suspended closure: a body that has not been evaluated yet,
// together with the captured receiver, class context and environment.
type Fun struct {
	Body   semantics.Tree
	Params []string
	This   Value
	Class  *semantics.Class
	Env    *Env
}

func (f *Fun) Kind() ValueKind { return FUN_VALUE }
func (f *Fun) Inspect() string { return "Fun(" + f.Body.String() + ")" }

func (f *Fun) Key() string {
	// Body identity stands in for the closure's code; the same literal
	// captured under the same receiver and environment is the same value.
	return fmt.Sprintf("fun:%p;this=%s;env=%s", f.Body, f.This.Key(), f.Env.Key())
}

// --- RefSet ---

// RefSet is the join of several reference or function values produced by
// merged control-flow paths. Members are deduplicated by structural key.
type RefSet struct {
	Members []Value
}

func (r *RefSet) Kind() ValueKind { return REFSET_VALUE }

func (r *RefSet) Inspect() string {
	parts := make([]string, len(r.Members))
	for i, m := range r.Members {
		parts[i] = m.Inspect()
	}
	return "RefSet{" + strings.Join(parts, ", ") + "}"
}

func (r *RefSet) Key() string {
	keys := make([]string, len(r.Members))
	for i, m := range r.Members {
		keys[i] = m.Key()
	}
	sort.Strings(keys)
	return "refset:{" + strings.Join(keys, "|") + "}"
}

// IsRef reports whether a value has heap identity (ThisRef or Warm).
func IsRef(v Value) bool {
	switch v.(type) {
	case *ThisRef, *Warm:
		return true
	}
	return false
}

// Equal compares two values structurally.
func Equal(a, b Value) bool { return a.Key() == b.Key() }
