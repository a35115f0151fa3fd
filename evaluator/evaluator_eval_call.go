package evaluator

import (
	"github.com/simhayoz/dotty/object"
	"github.com/simhayoz/dotty/semantics"
)

func (e *Evaluator) evalCall(n *semantics.Call, thisV object.Value, klass *semantics.Class, env *object.Env) object.Value {
	// Once the object under check has been proven fully filled, method
	// calls can no longer observe uninitialized state.
	if e.thisSafe {
		return object.HOT
	}

	recv := e.eval(n.Recv, thisV, klass, env, false)

	// Universal methods never observe receiver state; their arguments
	// are analyzed for effects but not escape-checked.
	if semantics.IsAlwaysSafe(n.Name) {
		for _, a := range n.Args {
			e.eval(a, thisV, klass, env, false)
		}
		return object.HOT
	}

	args := e.evalArgs(n.Args, thisV, klass, env)
	return e.callOn(recv, n.Name, n.Super, args, n)
}

// evalArgs evaluates call arguments, requires each to prove fully
// initialized (a value escapes once it crosses a call boundary) and
// widens them so the callee's environment stays inside {Hot, Cold}.
func (e *Evaluator) evalArgs(args []semantics.Tree, thisV object.Value, klass *semantics.Class, env *object.Env) []object.Value {
	out := make([]object.Value, len(args))
	for i, a := range args {
		v := e.eval(a, thisV, klass, env, false)
		e.promote(v, a, "argument must be fully initialized to cross a call boundary")
		out[i] = object.WidenArg(v)
	}
	return out
}

// callOn dispatches a call on an abstract receiver. Arguments are
// already widened.
func (e *Evaluator) callOn(recv object.Value, name string, super *semantics.Class, args []object.Value, node semantics.Tree) object.Value {
	switch recv := recv.(type) {
	case *object.Hot:
		return object.HOT

	case *object.Cold:
		e.reportError(object.CallCold, "cannot call "+name+" on a value of unknown initialization status", node)
		return object.HOT

	case *object.ThisRef, *object.Warm:
		return e.callOnRef(recv, name, super, args, node)

	case *object.Fun:
		return e.callValue(recv, args, node)

	case *object.RefSet:
		var out object.Value = object.HOT
		for _, m := range recv.Members {
			out = object.Join(out, e.callOn(m, name, super, args, node))
		}
		return out
	}
	return object.HOT
}

func (e *Evaluator) callOnRef(recv object.Value, name string, super *semantics.Class, args []object.Value, node semantics.Tree) object.Value {
	cls := refClass(recv)
	var target *semantics.Member
	if super != nil {
		target = semantics.ResolveSuper(cls, super, name)
	} else {
		target = semantics.Resolve(cls, name)
	}
	if target == nil {
		e.reportError(object.CallUnknown, "no resolvable target for "+name+" on "+cls.String(), node)
		return object.HOT
	}

	switch target.Kind {
	case semantics.ConstructorMember:
		e.callConstructor(recv, target.Owner, target, args, node)
		return object.HOT

	case semantics.FieldMember:
		// Applying a function stored in a field.
		fv := e.selectOn(recv, name, node)
		return e.callValue(fv, args, node)
	}

	if target.Is(semantics.FlagDeferred) || !target.HasSource() {
		e.reportError(object.CallUnknown, "method "+name+" has no body the checker can verify", node)
		return object.HOT
	}

	callEnv := object.NewEnv()
	for i, p := range target.Params {
		var av object.Value = object.HOT
		if i < len(args) {
			av = args[i]
		}
		callEnv.Bind(p, av)
	}
	e.logger.Debug("call", "receiver", recv.Inspect(), "method", name, "owner", target.Owner.String())
	return e.eval(target.Body, recv, target.Owner, callEnv, true)
}

// callValue applies a first-class value: a suspended closure, or a
// reference with an apply member.
func (e *Evaluator) callValue(fn object.Value, args []object.Value, node semantics.Tree) object.Value {
	switch fn := fn.(type) {
	case *object.Hot:
		return object.HOT
	case *object.Cold:
		e.reportError(object.CallCold, "cannot apply a value of unknown initialization status", node)
		return object.HOT
	case *object.Fun:
		callEnv := fn.Env.Clone()
		for i, p := range fn.Params {
			var av object.Value = object.HOT
			if i < len(args) {
				av = args[i]
			}
			callEnv.Bind(p, av)
		}
		return e.eval(fn.Body, fn.This, fn.Class, callEnv, true)
	case *object.ThisRef, *object.Warm:
		return e.callOn(fn, "apply", nil, args, node)
	case *object.RefSet:
		var out object.Value = object.HOT
		for _, m := range fn.Members {
			out = object.Join(out, e.callValue(m, args, node))
		}
		return out
	}
	return object.HOT
}
