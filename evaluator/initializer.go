package evaluator

import (
	"github.com/simhayoz/dotty/object"
	"github.com/simhayoz/dotty/semantics"
)

// initClass drives the construction of one class template over the
// abstract domain.
//
// Order of operations: constructor parameters are bound as fields first.
// For non-trait classes the whole base chain is then wired in two
// phases: the outer value of every base (superclass first, then mixins
// in reverse linearization order) is computed and stored, and only once
// every outer across the chain is set do the queued constructor bodies
// run, in the same order. Trait-synthesized outer accessors must be
// stable before any user code executes, which is exactly what the split
// guarantees. Finally the class body statements run in declaration
// order.
func (e *Evaluator) initClass(ref object.Value, klass *semantics.Class, args []object.Value, node semantics.Tree) object.Value {
	obj := e.cache.ensureObjectExists(ref)

	env := object.NewEnv()
	if pc := klass.PrimaryCtor; pc != nil {
		for i, p := range pc.Params {
			var av object.Value = object.HOT
			if i < len(args) {
				av = args[i]
			}
			e.reportIfInvariant(obj.UpdateField(p, av), node)
			env.Bind(p, av)
		}
	}

	if !klass.IsTrait() && len(klass.Parents) > 0 {
		var tasks []func()

		superCls := klass.SuperClass()
		e.initParent(ref, klass, klass.Parents[0], env, node, &tasks)

		// Mixins sit between the class and its superclass in the
		// linearization; they are wired (and later constructed)
		// root-most first.
		var mixins []*semantics.Class
		for _, base := range klass.BaseClasses() {
			if base == superCls {
				break
			}
			mixins = append(mixins, base)
		}
		for i := len(mixins) - 1; i >= 0; i-- {
			mixin := mixins[i]
			if pcall := findParentCall(klass, mixin); pcall != nil {
				e.initParent(ref, klass, pcall, env, node, &tasks)
			} else {
				// Not in the explicit parent list: the trait is
				// constructed through its own zero-argument constructor.
				e.wireBase(ref, klass, mixin, mixin.PrimaryCtor, nil, node, &tasks)
			}
		}

		// Phase two: every outer is wired, run the queued bodies.
		for _, task := range tasks {
			task()
		}
	}

	lastFilled := -1
	for _, stmt := range klass.Body {
		if vd, ok := stmt.(*semantics.ValDef); ok && vd.Def.Kind == semantics.FieldMember {
			// A lazy field's initializer runs at its first read, not here.
			if vd.Def.Is(semantics.FlagLazy) {
				continue
			}
			v := e.eval(vd.Def.Body, ref, klass, env, true)
			e.reportIfInvariant(obj.UpdateField(vd.Def.Name, v), vd)
			continue
		}
		// Before any other statement: if fields changed since the last
		// attempt, retry promoting `this` so it can start behaving as
		// fully initialized as soon as it provably is, even
		// mid-constructor.
		if thisRef, ok := ref.(*object.ThisRef); ok && !e.thisSafe && obj.FieldCount() != lastFilled {
			lastFilled = obj.FieldCount()
			if e.isThisFullyFilled(thisRef) {
				e.thisSafe = true
			}
		}
		e.eval(stmt, ref, klass, env, false)
	}
	return ref
}

// initParent evaluates an explicit parent call's arguments (escape-checked
// and widened, like any call boundary) and wires the base.
func (e *Evaluator) initParent(ref object.Value, klass *semantics.Class, pcall *semantics.ParentCall, env *object.Env, node semantics.Tree, tasks *[]func()) {
	args := e.evalArgs(pcall.Args, ref, klass, env)
	ctor := pcall.Ctor
	if ctor == nil {
		ctor = pcall.Class.PrimaryCtor
	}
	e.wireBase(ref, klass, pcall.Class, ctor, args, node, tasks)
}

// wireBase stores the base class's outer value on the object under
// construction and queues the constructor body for phase two.
func (e *Evaluator) wireBase(ref object.Value, klass *semantics.Class, base *semantics.Class, ctor *semantics.Member, args []object.Value, node semantics.Tree, tasks *[]func()) {
	obj := e.cache.ensureObjectExists(ref)
	var outer object.Value = object.HOT
	if base.Owner != nil {
		outer = e.resolveThis(base.Owner, ref, klass, node)
	}
	e.reportIfInvariant(obj.UpdateOuter(base, outer), node)
	*tasks = append(*tasks, func() {
		e.callConstructor(ref, base, ctor, args, node)
	})
}

// callConstructor re-enters the initializer for a constructor. Primary
// constructors re-run the whole template; secondary constructors bind
// their parameters as fields and evaluate the delegating body.
func (e *Evaluator) callConstructor(ref object.Value, cls *semantics.Class, ctor *semantics.Member, args []object.Value, node semantics.Tree) {
	if !cls.HasSource {
		return
	}
	if ctor == nil || ctor == cls.PrimaryCtor {
		e.initClass(ref, cls, args, node)
		return
	}

	obj := e.cache.ensureObjectExists(ref)
	env := object.NewEnv()
	for i, p := range ctor.Params {
		var av object.Value = object.HOT
		if i < len(args) {
			av = args[i]
		}
		e.reportIfInvariant(obj.UpdateField(p, av), node)
		env.Bind(p, av)
	}
	if ctor.Body == nil {
		e.reportError(object.CallUnknown, "constructor "+ctor.Name+" has no body the checker can verify", node)
		return
	}
	e.eval(ctor.Body, ref, ctor.Owner, env, true)
}

func findParentCall(klass *semantics.Class, base *semantics.Class) *semantics.ParentCall {
	for _, p := range klass.Parents {
		if p.Class == base {
			return p
		}
	}
	return nil
}
