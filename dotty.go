// Package dotty is the public entry point of the initialization-safety
// checker: a static analysis that proves, without executing user code,
// that no partially constructed object is observed before it is fully
// initialized, across constructors, superclass and mixin linearization,
// lexical nesting and deferred closures created during construction.
//
// The surrounding compiler enqueues classes with AddTask and drains the
// worklist once per compilation unit with Check; findings stream to the
// configured Reporter and are also returned.
package dotty

import (
	"context"

	"github.com/simhayoz/dotty/evaluator"
	"github.com/simhayoz/dotty/object"
	"github.com/simhayoz/dotty/semantics"
)

// Re-export the core value and diagnostic types for convenience.
type (
	Value   = object.Value
	Error   = object.Error
	Warm    = object.Warm
	ThisRef = object.ThisRef
	Fun     = object.Fun
	RefSet  = object.RefSet
)

// The two extreme lattice points.
var (
	HOT  = object.HOT
	COLD = object.COLD
)

// Checker wraps the evaluator behind the interface the surrounding
// compiler consumes.
type Checker struct {
	eval        *evaluator.Evaluator
	reporter    Reporter
	diagnostics []*object.Error
}

// NewChecker creates a checker. Options configure logging, the
// diagnostic sink and the defensive iteration cap.
func NewChecker(options ...Option) *Checker {
	cfg := newConfig(options...)
	ev := evaluator.New(cfg.Logger)
	if cfg.MaxIterations > 0 {
		ev.SetMaxIterations(cfg.MaxIterations)
	}
	return &Checker{
		eval:     ev,
		reporter: cfg.Reporter,
	}
}

// AddTask enqueues a class for analysis. Duplicates are dropped.
func (c *Checker) AddTask(cls *semantics.Class) {
	c.eval.AddTask(cls)
}

// Check drains the work queue. Every surfaced finding is pushed to the
// reporter and retained; the returned error only reflects context
// cancellation, never analysis findings.
func (c *Checker) Check(ctx context.Context) ([]*object.Error, error) {
	errs, err := c.eval.Run(ctx)
	c.diagnostics = append(c.diagnostics, errs...)
	if c.reporter != nil {
		for _, d := range errs {
			c.reporter.Report(d)
		}
	}
	return errs, err
}

// Diagnostics returns every finding surfaced so far, in task order.
func (c *Checker) Diagnostics() []*object.Error {
	return c.diagnostics
}
