package evaluator

import (
	"github.com/simhayoz/dotty/object"
	"github.com/simhayoz/dotty/semantics"
)

func (e *Evaluator) evalSelect(n *semantics.Select, thisV object.Value, klass *semantics.Class, env *object.Env) object.Value {
	recv := e.eval(n.Recv, thisV, klass, env, false)
	return e.selectOn(recv, n.Name, n)
}

// selectOn reads a member off an abstract receiver. Every error site
// substitutes Hot so one finding does not cascade into spurious
// Cold-propagation noise downstream.
func (e *Evaluator) selectOn(recv object.Value, name string, node semantics.Tree) object.Value {
	switch recv := recv.(type) {
	case *object.Hot:
		return object.HOT

	case *object.Cold:
		e.reportError(object.AccessCold, "cannot access "+name+" on a value of unknown initialization status", node)
		return object.HOT

	case *object.ThisRef, *object.Warm:
		return e.selectOnRef(recv, name, node)

	case *object.Fun:
		e.reportInternalf(node, "unexpected selection %s on a function value", name)
		return object.HOT

	case *object.RefSet:
		var out object.Value = object.HOT
		for _, m := range recv.Members {
			out = object.Join(out, e.selectOn(m, name, node))
		}
		return out
	}
	return object.HOT
}

func (e *Evaluator) selectOnRef(recv object.Value, name string, node semantics.Tree) object.Value {
	cls := refClass(recv)
	target := semantics.Resolve(cls, name)
	if target == nil {
		e.reportError(object.CallUnknown, "no declaration of "+name+" is visible on "+cls.String(), node)
		return object.HOT
	}

	// Lazy fields compute their value on first read; evaluating the
	// initializer here (memoized) mirrors that.
	if target.Is(semantics.FlagLazy) {
		if !target.HasSource() {
			e.reportError(object.CallUnknown, "lazy field "+name+" has no body the checker can verify", node)
			return object.HOT
		}
		return e.eval(target.Body, recv, target.Owner, object.NewEnv(), true)
	}

	// Selecting a parameterless method is a call.
	if target.Kind == semantics.MethodMember {
		return e.callOn(recv, name, nil, nil, node)
	}

	var obj *object.Objekt
	if w, ok := recv.(*object.Warm); ok {
		obj = e.ensureWarmPopulated(w, node)
	} else {
		obj = e.cache.ensureObjectExists(recv)
	}

	if obj.HasField(target.Name) {
		v, err := obj.Field(target.Name)
		if err != nil {
			e.reportIfInvariant(err, node)
			return object.HOT
		}
		return v
	}

	// A trait's constructor parameters are bound by the concrete class;
	// on a Warm object they are, by construction, already set.
	if _, ok := recv.(*object.Warm); ok && target.Is(semantics.FlagParamAccessor) {
		return object.HOT
	}

	if !target.HasSource() {
		e.reportError(object.CallUnknown, "field "+name+" belongs to a class whose body is unavailable", node)
		return object.HOT
	}

	e.reportError(object.AccessNonInit, "field "+name+" is read before it is assigned", node)
	return object.HOT
}
