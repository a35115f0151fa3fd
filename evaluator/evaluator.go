// Package evaluator implements the initialization checker's engine: a
// non-executing structural interpreter over resolved trees, driven to a
// fixed point per class by a worklist, with a three-tier memoization
// cache and an abstract heap of partially constructed objects.
package evaluator

import (
	"log/slog"
	"os"

	"github.com/simhayoz/dotty/object"
	"github.com/simhayoz/dotty/semantics"
)

// DefaultMaxIterations bounds the per-class fixpoint loop. Termination is
// an invariant of the lattice design; the cap converts a latent soundness
// bug into a loud Internal diagnostic instead of a hang.
const DefaultMaxIterations = 100

// Evaluator evaluates class templates over the abstract value domain.
// It is strictly single-threaded: one logical writer mutates the cache,
// heap, trace and promotion state at a time.
type Evaluator struct {
	logger        *slog.Logger
	cache         *cache
	maxIterations int

	// per-iteration state, reset by the scheduler
	trace    []semantics.Tree
	errors   []*object.Error
	promoted map[string]bool
	thisSafe bool

	// worklist
	tasks []*object.ThisRef
	seen  map[string]bool
}

// New creates an Evaluator. A nil logger falls back to an error-level
// JSON handler on stderr.
func New(logger *slog.Logger) *Evaluator {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	}
	return &Evaluator{
		logger:        logger,
		cache:         newCache(),
		maxIterations: DefaultMaxIterations,
		promoted:      map[string]bool{},
		seen:          map[string]bool{},
	}
}

// SetMaxIterations overrides the defensive iteration cap.
func (e *Evaluator) SetMaxIterations(n int) {
	if n > 0 {
		e.maxIterations = n
	}
}

// eval evaluates one expression in the given context. Every evaluation
// consults the memo cache first; cacheable evaluations additionally run
// under the optimistic assume protocol so self-referential bodies
// terminate.
func (e *Evaluator) eval(expr semantics.Tree, thisV object.Value, klass *semantics.Class, env *object.Env, cacheable bool) object.Value {
	if v, ok := e.cache.lookup(thisV, expr); ok {
		return v
	}
	if !cacheable {
		return e.evalExpr(expr, thisV, klass, env)
	}
	return e.cache.assume(thisV, expr, func() object.Value {
		return e.evalExpr(expr, thisV, klass, env)
	})
}

// evalExpr is the main dispatch over the closed set of tree forms.
func (e *Evaluator) evalExpr(expr semantics.Tree, thisV object.Value, klass *semantics.Class, env *object.Env) object.Value {
	e.pushTrace(expr)
	defer e.popTrace()

	switch n := expr.(type) {
	case *semantics.Lit:
		return object.HOT
	case *semantics.This:
		return e.resolveThis(n.Class, thisV, klass, n)
	case *semantics.ParamRef:
		if v, ok := env.Lookup(n.Name); ok {
			return v
		}
		return object.HOT
	case *semantics.ValRef:
		return e.evalValRef(n, thisV, klass, env)
	case *semantics.ValDef:
		// A block-local definition: analyze the right-hand side for
		// effects; uses re-derive the value through ValRef.
		e.eval(n.Def.Body, thisV, klass, env, true)
		return object.HOT
	case *semantics.Select:
		return e.evalSelect(n, thisV, klass, env)
	case *semantics.Call:
		return e.evalCall(n, thisV, klass, env)
	case *semantics.New:
		return e.evalNew(n, thisV, klass, env)
	case *semantics.Assign:
		return e.evalAssign(n, thisV, klass, env)
	case *semantics.Closure:
		return &object.Fun{Body: n.Body, Params: n.Params, This: thisV, Class: klass, Env: env.Clone()}
	case *semantics.Block:
		return e.evalBlock(n, thisV, klass, env)
	case *semantics.If:
		return e.evalIf(n, thisV, klass, env)
	case *semantics.Match:
		return e.evalMatch(n, thisV, klass, env)
	case *semantics.While:
		e.eval(n.Cond, thisV, klass, env, false)
		e.eval(n.Body, thisV, klass, env, false)
		return object.HOT
	case *semantics.Try:
		return e.evalTry(n, thisV, klass, env)
	case *semantics.OuterSelect:
		recv := e.eval(n.Recv, thisV, klass, env, false)
		return e.evalOuterSelect(recv, n.Hops, n)
	}
	e.reportInternalf(expr, "evaluation not implemented for %T", expr)
	return object.HOT
}

// evalValRef evaluates a block-local val by re-entering its initializer
// relative to the `this` of the class that owns the definition.
func (e *Evaluator) evalValRef(n *semantics.ValRef, thisV object.Value, klass *semantics.Class, env *object.Env) object.Value {
	owner := n.Def.Owner
	thisOwner := thisV
	if owner != nil && owner != klass {
		thisOwner = e.resolveThis(owner, thisV, klass, n)
	}
	if owner == nil {
		owner = klass
	}
	if n.Def.Body == nil {
		e.reportError(object.CallUnknown, "local value has no initializer the checker can see", n)
		return object.HOT
	}
	return e.eval(n.Def.Body, thisOwner, owner, env, true)
}
