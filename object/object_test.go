package object_test

import (
	"testing"

	"github.com/go-quicktest/qt"

	"github.com/simhayoz/dotty/object"
	"github.com/simhayoz/dotty/semantics"
)

func newClass(name string) *semantics.Class {
	cls := &semantics.Class{Name: name, HasSource: true}
	cls.PrimaryCtor = &semantics.Member{Name: "<init>", Kind: semantics.ConstructorMember, Owner: cls}
	cls.Members = []*semantics.Member{cls.PrimaryCtor}
	return cls
}

func sampleValues() []object.Value {
	a := newClass("A")
	b := newClass("B")
	warmA := &object.Warm{Class: a, Outer: object.HOT}
	warmB := &object.Warm{Class: b, Outer: object.HOT, Args: []object.Value{object.COLD}}
	thisA := &object.ThisRef{Class: a}
	fun := &object.Fun{Body: &semantics.Lit{Text: "()"}, This: thisA, Class: a}
	return []object.Value{
		object.HOT,
		object.COLD,
		warmA,
		warmB,
		thisA,
		fun,
		&object.RefSet{Members: []object.Value{warmA, thisA}},
	}
}

func TestJoinLaws(t *testing.T) {
	for _, v := range sampleValues() {
		// Hot is the identity.
		qt.Assert(t, qt.IsTrue(object.Equal(object.Join(object.HOT, v), v)))
		qt.Assert(t, qt.IsTrue(object.Equal(object.Join(v, object.HOT), v)))
		// Cold absorbs.
		qt.Assert(t, qt.IsTrue(object.Equal(object.Join(object.COLD, v), object.COLD)))
		qt.Assert(t, qt.IsTrue(object.Equal(object.Join(v, object.COLD), object.COLD)))
		// Idempotence.
		qt.Assert(t, qt.IsTrue(object.Equal(object.Join(v, v), v)))
	}
}

func TestJoinCommutative(t *testing.T) {
	vs := sampleValues()
	for _, a := range vs {
		for _, b := range vs {
			ab := object.Join(a, b)
			ba := object.Join(b, a)
			qt.Assert(t, qt.Equals(ab.Key(), ba.Key()), qt.Commentf("Join(%s, %s)", a.Inspect(), b.Inspect()))
		}
	}
}

func TestJoinCollectsRefSets(t *testing.T) {
	a := &object.ThisRef{Class: newClass("A")}
	w := &object.Warm{Class: newClass("B"), Outer: object.HOT}

	v := object.Join(a, w)
	set, ok := v.(*object.RefSet)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(set.Members, 2))

	// Joining an already-present member must not grow the set.
	v = object.Join(v, a)
	set, ok = v.(*object.RefSet)
	qt.Assert(t, qt.IsTrue(ok))
	qt.Assert(t, qt.HasLen(set.Members, 2))

	// A single-member set simplifies to the member itself.
	qt.Assert(t, qt.IsTrue(object.Equal(object.Join(a, a), a)))
}

func TestWarmKeyIsStructural(t *testing.T) {
	cls := newClass("A")
	w1 := &object.Warm{Class: cls, Outer: object.HOT, Ctor: cls.PrimaryCtor, Args: []object.Value{object.HOT}}
	w2 := &object.Warm{Class: cls, Outer: object.HOT, Ctor: cls.PrimaryCtor, Args: []object.Value{object.HOT}}
	w3 := &object.Warm{Class: cls, Outer: object.HOT, Ctor: cls.PrimaryCtor, Args: []object.Value{object.COLD}}

	qt.Assert(t, qt.IsTrue(object.Equal(w1, w2)))
	qt.Assert(t, qt.IsFalse(object.Equal(w1, w3)))
}

func TestWidenArgCollapsesReferences(t *testing.T) {
	cls := newClass("A")
	this := &object.ThisRef{Class: cls}
	warm := &object.Warm{Class: cls, Outer: object.HOT}
	fun := &object.Fun{Body: &semantics.Lit{Text: "()"}, This: this, Class: cls}

	qt.Assert(t, qt.Equals(object.WidenArg(object.HOT), object.Value(object.HOT)))
	qt.Assert(t, qt.Equals(object.WidenArg(object.COLD), object.Value(object.COLD)))
	for _, v := range []object.Value{this, warm, fun, &object.RefSet{Members: []object.Value{this, warm}}} {
		qt.Assert(t, qt.Equals(object.WidenArg(v), object.Value(object.COLD)))
	}
}

func TestWidenBoundsOuterNesting(t *testing.T) {
	a := newClass("A")
	b := newClass("B")
	inner := &object.Warm{Class: a, Outer: object.HOT}
	outerChain := &object.Warm{Class: b, Outer: inner}

	v := object.Widen(outerChain, 1)
	w, ok := v.(*object.Warm)
	qt.Assert(t, qt.IsTrue(ok))
	// One level is kept; the nested outer collapses.
	qt.Assert(t, qt.Equals(w.Outer, object.Value(object.COLD)))

	qt.Assert(t, qt.Equals(object.Widen(inner, 0), object.Value(object.COLD)))
	qt.Assert(t, qt.Equals(object.Widen(&object.ThisRef{Class: a}, 0), object.Value(object.COLD)))
}

func TestObjektFieldsAreWriteOnce(t *testing.T) {
	o := object.NewObjekt(newClass("A"))

	qt.Assert(t, qt.IsFalse(o.HasField("x")))
	qt.Assert(t, qt.IsNil(o.UpdateField("x", object.HOT)))
	qt.Assert(t, qt.IsTrue(o.HasField("x")))
	qt.Assert(t, qt.Equals(o.FieldCount(), 1))

	// An identical rewrite is a no-op; a conflicting one is rejected.
	qt.Assert(t, qt.IsNil(o.UpdateField("x", object.HOT)))
	qt.Assert(t, qt.IsNotNil(o.UpdateField("x", object.COLD)))

	v, err := o.Field("x")
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, object.Value(object.HOT)))
}

func TestObjektOutersAreWriteOnce(t *testing.T) {
	a := newClass("A")
	base := newClass("Base")
	o := object.NewObjekt(a)

	qt.Assert(t, qt.IsFalse(o.HasOuter(base)))
	qt.Assert(t, qt.IsNil(o.UpdateOuter(base, object.HOT)))
	qt.Assert(t, qt.IsNil(o.UpdateOuter(base, object.HOT)))
	qt.Assert(t, qt.IsNotNil(o.UpdateOuter(base, object.COLD)))

	v, err := o.Outer(base)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Equals(v, object.Value(object.HOT)))
}

func TestObjektCloneIsIndependent(t *testing.T) {
	o := object.NewObjekt(newClass("A"))
	qt.Assert(t, qt.IsNil(o.UpdateField("x", object.HOT)))

	c := o.Clone()
	qt.Assert(t, qt.IsNil(c.UpdateField("y", object.HOT)))

	qt.Assert(t, qt.IsTrue(c.HasField("x")))
	qt.Assert(t, qt.IsFalse(o.HasField("y")))
}

func TestEnvBindingsStayTwoPoint(t *testing.T) {
	cls := newClass("A")
	env := object.NewEnv()
	env.Bind("a", object.HOT)
	env.Bind("b", object.COLD)
	// Anything outside {Hot, Cold} degrades to Cold.
	env.Bind("c", &object.ThisRef{Class: cls})

	for name, want := range map[string]object.Value{"a": object.HOT, "b": object.COLD, "c": object.COLD} {
		v, ok := env.Lookup(name)
		qt.Assert(t, qt.IsTrue(ok))
		qt.Assert(t, qt.Equals(v, want))
	}

	clone := env.Clone()
	clone.Bind("d", object.HOT)
	_, ok := env.Lookup("d")
	qt.Assert(t, qt.IsFalse(ok))
	qt.Assert(t, qt.Equals(env.Key(), "{a=Hot,b=Cold,c=Cold}"))
}
