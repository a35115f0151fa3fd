package semantics_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/simhayoz/dotty/checktest"
	"github.com/simhayoz/dotty/semantics"
)

func names(classes []*semantics.Class) []string {
	out := make([]string, len(classes))
	for i, c := range classes {
		out[i] = c.Name
	}
	return out
}

func TestLinearizationDiamond(t *testing.T) {
	b := checktest.NewBuilder()
	s := b.Class("S")
	m1 := b.Trait("M1").Extends(s)
	m2 := b.Trait("M2").Extends(s)
	c := b.Class("C").Extends(s).Extends(m1).Extends(m2)

	// Shared bases appear once, at their last (root-most) position.
	want := []string{"C", "M2", "M1", "S"}
	if diff := cmp.Diff(want, names(c.Sym.Linearization())); diff != "" {
		t.Errorf("linearization mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"M2", "M1", "S"}, names(c.Sym.BaseClasses())); diff != "" {
		t.Errorf("base classes mismatch (-want +got):\n%s", diff)
	}
	if got := c.Sym.SuperClass(); got != s.Sym {
		t.Errorf("superclass: got %v, want %v", got, s.Sym)
	}
}

func TestLinearizationRootClass(t *testing.T) {
	b := checktest.NewBuilder()
	a := b.Class("A")
	if diff := cmp.Diff([]string{"A"}, names(a.Sym.Linearization())); diff != "" {
		t.Errorf("linearization mismatch (-want +got):\n%s", diff)
	}
	if a.Sym.SuperClass() != nil {
		t.Error("root class must have no superclass")
	}
}

func TestResolveVirtualDispatch(t *testing.T) {
	b := checktest.NewBuilder()
	s := b.Class("S")
	sFoo := s.Def("foo", nil, checktest.Lit("0"))
	c := b.Class("C").Extends(s)
	cFoo := c.Def("foo", nil, checktest.Lit("1"))

	if got := semantics.Resolve(c.Sym, "foo"); got != cFoo {
		t.Errorf("Resolve(C, foo): got %v, want the override", got)
	}
	if got := semantics.Resolve(s.Sym, "foo"); got != sFoo {
		t.Errorf("Resolve(S, foo): got %v, want the base definition", got)
	}
	if got := semantics.Resolve(c.Sym, "nope"); got != nil {
		t.Errorf("Resolve(C, nope): got %v, want nil", got)
	}
}

func TestResolveSkipsDeferredMembers(t *testing.T) {
	b := checktest.NewBuilder()
	s := b.Class("S")
	abstract := s.AbstractDef("bar")
	m := b.Trait("M")
	concrete := m.Def("bar", nil, checktest.Lit("1"))
	c := b.Class("C").Extends(s).Extends(m)

	// The deferred declaration sits earlier in the linearization but a
	// concrete definition anywhere below wins.
	if got := semantics.Resolve(c.Sym, "bar"); got != concrete {
		t.Errorf("Resolve(C, bar): got %v, want the concrete mixin member", got)
	}

	// Without any concrete definition the deferred member itself is
	// returned, so the caller can report an unverifiable call.
	d := b.Class("D").Extends(s)
	if got := semantics.Resolve(d.Sym, "bar"); got != abstract {
		t.Errorf("Resolve(D, bar): got %v, want the deferred member", got)
	}
}

func TestResolveSuperStartsAtStaticType(t *testing.T) {
	b := checktest.NewBuilder()
	s := b.Class("S")
	sFoo := s.Def("foo", nil, checktest.Lit("0"))
	m := b.Trait("M")
	mFoo := m.Def("foo", nil, checktest.Lit("1"))
	c := b.Class("C").Extends(s).Extends(m)
	c.Def("foo", nil, checktest.Lit("2"))

	if got := semantics.ResolveSuper(c.Sym, m.Sym, "foo"); got != mFoo {
		t.Errorf("ResolveSuper(C, M, foo): got %v, want M's definition", got)
	}
	if got := semantics.ResolveSuper(c.Sym, s.Sym, "foo"); got != sFoo {
		t.Errorf("ResolveSuper(C, S, foo): got %v, want S's definition", got)
	}
}

func TestAlwaysSafeMethods(t *testing.T) {
	for _, name := range []string{"eq", "ne", "isInstanceOf", "asInstanceOf", "hashCode", "toString", "equals", "getClass"} {
		if !semantics.IsAlwaysSafe(name) {
			t.Errorf("IsAlwaysSafe(%s) = false, want true", name)
		}
	}
	if semantics.IsAlwaysSafe("apply") {
		t.Error("IsAlwaysSafe(apply) = true, want false")
	}
}

func TestMemberLookupIgnoresLocals(t *testing.T) {
	b := checktest.NewBuilder()
	a := b.Class("A")
	val := a.Val("x", checktest.Lit("1"))
	a.Sym.Members = append(a.Sym.Members, &semantics.Member{
		Name:  "tmp",
		Kind:  semantics.LocalMember,
		Owner: a.Sym,
	})

	if got := a.Sym.Member("x"); got != val {
		t.Errorf("Member(x): got %v, want the field", got)
	}
	if got := a.Sym.Member("tmp"); got != nil {
		t.Errorf("Member(tmp): got %v, want nil for a block-local", got)
	}
}
