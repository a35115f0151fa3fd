package evaluator

import (
	"github.com/simhayoz/dotty/object"
	"github.com/simhayoz/dotty/semantics"
)

// promote decides whether a value may be treated as fully initialized at
// an escape point: argument passing, assignment, return. Failures are
// reported; the caller continues with the value as-is.
func (e *Evaluator) promote(v object.Value, node semantics.Tree, msg string) {
	switch v := v.(type) {
	case *object.Hot:
		// nothing to prove

	case *object.Cold:
		e.reportError(object.PromoteError, msg+": the value has unknown initialization status", node)

	case *object.ThisRef:
		if e.thisSafe {
			return
		}
		if e.isThisFullyFilled(v) {
			e.thisSafe = true
			return
		}
		e.reportError(object.PromoteError, msg+": `this` is not fully initialized yet", node)

	case *object.Warm:
		e.promoteWarm(v, node, msg)

	case *object.Fun:
		e.promoteFun(v, node, msg)

	case *object.RefSet:
		for _, m := range v.Members {
			e.promote(m, node, msg)
		}
	}
}

// isThisFullyFilled reports whether every non-method, non-lazy,
// non-deferred member declared anywhere in the object's hierarchy has
// been assigned.
func (e *Evaluator) isThisFullyFilled(ref *object.ThisRef) bool {
	obj := e.cache.ensureObjectExists(ref)
	for _, cls := range ref.Class.Linearization() {
		if !cls.HasSource {
			continue
		}
		for _, m := range cls.Members {
			if m.Kind != semantics.FieldMember {
				continue
			}
			if m.Is(semantics.FlagLazy) || m.Is(semantics.FlagDeferred) {
				continue
			}
			if !obj.HasField(m.Name) {
				return false
			}
		}
	}
	return true
}

// promoteWarm speculatively exercises every concrete member of a Warm
// object under fully initialized stand-in arguments and requires every
// result to itself prove fully initialized. The promotion set breaks
// cycles: a value already being promoted is assumed safe, which is what
// makes `val self: A = this` terminate with a definite answer.
func (e *Evaluator) promoteWarm(w *object.Warm, node semantics.Tree, msg string) {
	key := w.Key()
	if e.promoted[key] {
		return
	}
	e.promoted[key] = true

	causes := e.tryPromoteWarm(w, node)
	if len(causes) > 0 {
		delete(e.promoted, key)
		e.reportUnsafePromotion(msg+": "+w.Inspect()+" may reach objects under construction", node, causes)
	}
}

func (e *Evaluator) tryPromoteWarm(w *object.Warm, node semantics.Tree) []*object.Error {
	// Verifying an object with member classes would mean verifying every
	// possible inner instantiation; promotion is disallowed outright.
	for _, cls := range w.Class.Linearization() {
		if len(cls.Inner) > 0 {
			return []*object.Error{{
				Kind:    object.PromoteError,
				Message: "cannot promote " + w.Class.String() + ": it declares member classes",
				Node:    node,
				Trace:   e.snapshotTrace(),
			}}
		}
	}

	e.ensureWarmPopulated(w, node)

	var causes []*object.Error
	for _, cls := range w.Class.Linearization() {
		if !cls.HasSource {
			continue
		}
		for _, m := range cls.Members {
			switch m.Kind {
			case semantics.MethodMember:
				if m.Is(semantics.FlagDeferred) {
					continue
				}
				hotArgs := make([]object.Value, len(m.Params))
				for i := range hotArgs {
					hotArgs[i] = object.HOT
				}
				causes = append(causes, e.captured(func() {
					res := e.callOn(w, m.Name, nil, hotArgs, node)
					e.promote(res, node, "the result of "+m.Name+" must be fully initialized")
				})...)
			case semantics.FieldMember:
				if m.Is(semantics.FlagDeferred) {
					continue
				}
				causes = append(causes, e.captured(func() {
					res := e.selectOn(w, m.Name, node)
					e.promote(res, node, "the value of field "+m.Name+" must be fully initialized")
				})...)
			}
		}
	}
	return causes
}

// promoteFun proves a suspended closure safe by evaluating its body under
// the captured receiver and environment and requiring a fully
// initialized result.
func (e *Evaluator) promoteFun(f *object.Fun, node semantics.Tree, msg string) {
	key := f.Key()
	if e.promoted[key] {
		return
	}
	e.promoted[key] = true

	causes := e.captured(func() {
		env := f.Env.Clone()
		for _, p := range f.Params {
			env.Bind(p, object.HOT)
		}
		res := e.eval(f.Body, f.This, f.Class, env, true)
		e.promote(res, node, "the result of the function must be fully initialized")
	})
	if len(causes) > 0 {
		delete(e.promoted, key)
		e.reportUnsafePromotion(msg+": the function may observe objects under construction", node, causes)
	}
}
