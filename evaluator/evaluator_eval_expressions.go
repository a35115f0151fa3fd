package evaluator

import (
	"github.com/simhayoz/dotty/object"
	"github.com/simhayoz/dotty/semantics"
)

func (e *Evaluator) evalAssign(n *semantics.Assign, thisV object.Value, klass *semantics.Class, env *object.Env) object.Value {
	rhs := e.eval(n.RHS, thisV, klass, env, false)
	// A field reachable through local code must never hold anything but
	// a fully initialized value.
	e.promote(rhs, n.RHS, "the right-hand side of an assignment must be fully initialized")
	e.eval(n.Recv, thisV, klass, env, false)
	return object.HOT
}

func (e *Evaluator) evalBlock(n *semantics.Block, thisV object.Value, klass *semantics.Class, env *object.Env) object.Value {
	for _, stmt := range n.Stmts {
		e.eval(stmt, thisV, klass, env, false)
	}
	if n.Expr == nil {
		return object.HOT
	}
	return e.eval(n.Expr, thisV, klass, env, false)
}

// Branches are all analyzed and joined; no path is treated as
// unreachable, so every finding on every path surfaces.
func (e *Evaluator) evalIf(n *semantics.If, thisV object.Value, klass *semantics.Class, env *object.Env) object.Value {
	e.eval(n.Cond, thisV, klass, env, false)
	thenV := e.eval(n.Then, thisV, klass, env, false)
	var elseV object.Value = object.HOT
	if n.Else != nil {
		elseV = e.eval(n.Else, thisV, klass, env, false)
	}
	return object.Join(thenV, elseV)
}

func (e *Evaluator) evalMatch(n *semantics.Match, thisV object.Value, klass *semantics.Class, env *object.Env) object.Value {
	e.eval(n.Selector, thisV, klass, env, false)
	var out object.Value = object.HOT
	for _, c := range n.Cases {
		out = object.Join(out, e.eval(c, thisV, klass, env, false))
	}
	return out
}

func (e *Evaluator) evalTry(n *semantics.Try, thisV object.Value, klass *semantics.Class, env *object.Env) object.Value {
	out := e.eval(n.Expr, thisV, klass, env, false)
	for _, h := range n.Handlers {
		out = object.Join(out, e.eval(h, thisV, klass, env, false))
	}
	if n.Finalizer != nil {
		e.eval(n.Finalizer, thisV, klass, env, false)
	}
	return out
}
