package evaluator

import (
	"github.com/simhayoz/dotty/object"
	"github.com/simhayoz/dotty/semantics"
)

// resolveThis computes the value of `target.this` seen from an
// expression whose lexical class is klass and whose `this` is v. The
// walk follows the recorded outer references one lexical-nesting level
// at a time. A missing outer is reported and replaced by Hot so the
// analysis can continue (fail-soft).
func (e *Evaluator) resolveThis(target *semantics.Class, v object.Value, klass *semantics.Class, node semantics.Tree) object.Value {
	if klass == target {
		return v
	}
	// The same object serves as `this` for every class in its hierarchy.
	for _, base := range klass.Linearization() {
		if base == target {
			return v
		}
	}
	switch v := v.(type) {
	case *object.Hot:
		return object.HOT
	case *object.Cold:
		return object.COLD
	case *object.ThisRef, *object.Warm:
		var obj *object.Objekt
		if w, ok := v.(*object.Warm); ok {
			obj = e.ensureWarmPopulated(w, node)
		} else {
			obj = e.cache.ensureObjectExists(v)
		}
		if !obj.HasOuter(klass) {
			e.reportError(object.PromoteError, "outer of "+klass.String()+" is not initialized yet", node)
			return object.HOT
		}
		outer, err := obj.Outer(klass)
		if err != nil {
			e.reportIfInvariant(err, node)
			return object.HOT
		}
		if klass.Owner == nil {
			e.reportInternalf(node, "walked past the outermost class looking for %s", target)
			return object.HOT
		}
		return e.resolveThis(target, outer, klass.Owner, node)
	case *object.RefSet:
		var out object.Value = object.HOT
		for _, m := range v.Members {
			out = object.Join(out, e.resolveThis(target, m, klass, node))
		}
		return out
	case *object.Fun:
		e.reportInternalf(node, "cannot resolve %s.this through a function value", target)
		return object.HOT
	}
	return object.HOT
}

// evalOuterSelect walks a fixed number of outer hops from a receiver.
// This form appears in inlined code where the frontend already counted
// the hops.
func (e *Evaluator) evalOuterSelect(v object.Value, hops int, node semantics.Tree) object.Value {
	cur := v
	for i := 0; i < hops; i++ {
		switch ref := cur.(type) {
		case *object.Hot:
			return object.HOT
		case *object.Cold:
			return object.COLD
		case *object.ThisRef, *object.Warm:
			var obj *object.Objekt
			if w, ok := ref.(*object.Warm); ok {
				obj = e.ensureWarmPopulated(w, node)
			} else {
				obj = e.cache.ensureObjectExists(ref)
			}
			cls := refClass(ref)
			if !obj.HasOuter(cls) {
				e.reportError(object.PromoteError, "outer of "+cls.String()+" is not initialized yet", node)
				return object.HOT
			}
			outer, err := obj.Outer(cls)
			if err != nil {
				e.reportIfInvariant(err, node)
				return object.HOT
			}
			cur = outer
		case *object.RefSet:
			var out object.Value = object.HOT
			for _, m := range ref.Members {
				out = object.Join(out, e.evalOuterSelect(m, hops-i, node))
			}
			return out
		case *object.Fun:
			e.reportInternalf(node, "cannot take the outer of a function value")
			return object.HOT
		}
	}
	return cur
}
