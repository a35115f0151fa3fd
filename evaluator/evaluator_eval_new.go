package evaluator

import (
	"github.com/simhayoz/dotty/object"
	"github.com/simhayoz/dotty/semantics"
)

func (e *Evaluator) evalNew(n *semantics.New, thisV object.Value, klass *semantics.Class, env *object.Env) object.Value {
	var outer object.Value = object.HOT
	if n.Outer != nil {
		outer = e.eval(n.Outer, thisV, klass, env, false)
	}
	// Outer chains are bounded to one level of nesting; anything deeper
	// collapses to Cold. This keeps the value domain finite.
	outer = object.Widen(outer, 1)

	args := e.evalArgs(n.Args, thisV, klass, env)

	// Instantiating a class without source cannot be verified; the
	// result is conservatively treated as fully initialized.
	if !n.Class.HasSource {
		return object.HOT
	}

	ctor := n.Ctor
	if ctor == nil {
		ctor = n.Class.PrimaryCtor
	}

	warm := &object.Warm{Class: n.Class, Outer: outer, Ctor: ctor, Args: args}
	// A structurally identical instance is a single heap record. When it
	// already exists, only its parameters are re-bound; running the class
	// body again would assign its fields a second time. Mutually
	// recursive instantiation lands here on the inner occurrence.
	_, existed := e.cache.objekt(warm)
	e.ensureWarmPopulated(warm, n)
	if existed {
		return warm
	}
	e.logger.Debug("instantiate", "class", n.Class.String(), "key", warm.Key())
	e.callConstructor(warm, n.Class, ctor, args, n)
	return warm
}
