package evaluator

import (
	"fmt"

	"github.com/simhayoz/dotty/object"
	"github.com/simhayoz/dotty/semantics"
)

// pushTrace extends the current call path with the expression under
// evaluation. Every diagnostic snapshots the path at its creation point.
func (e *Evaluator) pushTrace(t semantics.Tree) {
	e.trace = append(e.trace, t)
}

func (e *Evaluator) popTrace() {
	e.trace = e.trace[:len(e.trace)-1]
}

func (e *Evaluator) snapshotTrace() []semantics.Tree {
	return append([]semantics.Tree(nil), e.trace...)
}

// reportError records a finding. The analysis continues; the caller
// substitutes a conservative value at the error site.
func (e *Evaluator) reportError(kind object.ErrorKind, msg string, node semantics.Tree) {
	err := &object.Error{Kind: kind, Message: msg, Node: node, Trace: e.snapshotTrace()}
	e.logger.Debug("finding", "kind", string(kind), "msg", msg)
	e.errors = append(e.errors, err)
}

// reportUnsafePromotion wraps the findings collected while speculatively
// promoting a value into one aggregate diagnostic.
func (e *Evaluator) reportUnsafePromotion(msg string, node semantics.Tree, causes []*object.Error) {
	err := &object.Error{
		Kind:    object.UnsafePromotion,
		Message: msg,
		Node:    node,
		Trace:   e.snapshotTrace(),
		Causes:  causes,
	}
	e.errors = append(e.errors, err)
}

func (e *Evaluator) reportInternalf(node semantics.Tree, format string, args ...any) {
	e.reportError(object.Internal, fmt.Sprintf(format, args...), node)
}

// reportIfInvariant converts a write-once violation into an Internal
// diagnostic. The write-once property is soundness-critical; masking it
// would silently corrupt the analysis.
func (e *Evaluator) reportIfInvariant(err error, node semantics.Tree) {
	if err != nil {
		e.reportError(object.Internal, err.Error(), node)
	}
}

// captured runs f with a fresh error sink and returns what it produced,
// restoring the surrounding sink afterwards. Used by speculative
// promotion, whose findings are aggregated rather than reported directly.
func (e *Evaluator) captured(f func()) []*object.Error {
	saved := e.errors
	e.errors = nil
	f()
	out := e.errors
	e.errors = saved
	return out
}
