package evaluator

import (
	"context"
	"fmt"

	"github.com/simhayoz/dotty/object"
	"github.com/simhayoz/dotty/semantics"
)

// Task is one class check: prove that a fresh instance of the class can
// be constructed without observing uninitialized state.
type Task struct {
	ThisRef *object.ThisRef
}

// AddTask enqueues a class for analysis. Duplicate submissions of the
// same class are dropped.
func (e *Evaluator) AddTask(cls *semantics.Class) {
	ref := &object.ThisRef{Class: cls}
	key := ref.Key()
	if e.seen[key] {
		return
	}
	e.seen[key] = true
	e.tasks = append(e.tasks, ref)
}

// Run drains the worklist. Each task iterates its class to a fixed
// point; once a class converges its memoized results are committed to
// the stable tier and shared with every later task. The returned slice
// holds every surfaced diagnostic, in task order.
func (e *Evaluator) Run(ctx context.Context) ([]*object.Error, error) {
	var all []*object.Error
	for len(e.tasks) > 0 {
		if err := ctx.Err(); err != nil {
			return all, err
		}
		ref := e.tasks[0]
		e.tasks = e.tasks[1:]
		all = append(all, e.doTask(ref)...)
	}
	return all, nil
}

// doTask iterates one class to its fixed point.
//
// Per iteration: promotion state, trace and errors reset, the ThisRef's
// record is rebuilt from scratch, and the whole template is evaluated.
// The loop continues only while the cache is still changing AND the
// iteration was clean; an iteration that reports findings stops the loop
// immediately even if the cache has not converged yet. Diagnostics are
// surfaced once, from the final iteration.
func (e *Evaluator) doTask(ref *object.ThisRef) []*object.Error {
	klass := ref.Class
	if !klass.HasSource {
		return nil
	}

	var hotArgs []object.Value
	if pc := klass.PrimaryCtor; pc != nil {
		hotArgs = make([]object.Value, len(pc.Params))
		for i := range hotArgs {
			hotArgs[i] = object.HOT
		}
	}

	var surfaced []*object.Error
	for iteration := 1; ; iteration++ {
		if iteration > e.maxIterations {
			surfaced = append(surfaced, &object.Error{
				Kind:    object.Internal,
				Message: fmt.Sprintf("analysis of %s did not converge within %d iterations", klass, e.maxIterations),
			})
			break
		}
		e.promoted = map[string]bool{}
		e.thisSafe = false
		e.trace = nil
		e.errors = nil
		// The instance under check is created by the outside world: its
		// constructor arguments and its own enclosing instance are taken
		// to be fully initialized.
		obj := e.cache.ensureFresh(ref)
		e.reportIfInvariant(obj.UpdateOuter(klass, object.HOT), nil)

		e.logger.Debug("check", "class", klass.String(), "iteration", iteration)
		e.initClass(ref, klass, hotArgs, nil)

		if e.cache.hasChanged() && len(e.errors) == 0 {
			e.cache.prepareForNextIteration()
			continue
		}
		surfaced = e.errors
		break
	}

	e.errors = nil
	e.cache.prepareForNextClass()
	return surfaced
}
