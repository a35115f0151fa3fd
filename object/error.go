package object

import (
	"strings"

	"github.com/simhayoz/dotty/semantics"
)

// ErrorKind classifies an initialization-safety finding.
type ErrorKind string

const (
	// AccessCold: a field or method was reached through a Cold receiver.
	AccessCold ErrorKind = "AccessCold"
	// AccessNonInit: a not-yet-set, non-lazy field of a reference was read.
	AccessNonInit ErrorKind = "AccessNonInit"
	// CallCold: a method was invoked on a Cold receiver.
	CallCold ErrorKind = "CallCold"
	// CallUnknown: the call target has no body the checker can verify.
	CallUnknown ErrorKind = "CallUnknown"
	// PromoteError: a value failed to prove fully initialized at an
	// escape point (argument, assignment, return).
	PromoteError ErrorKind = "PromoteError"
	// UnsafePromotion aggregates the findings produced while
	// speculatively promoting a Warm object or a closure.
	UnsafePromotion ErrorKind = "UnsafePromotion"
	// Internal: a checker invariant was violated. Never caused by user
	// code alone; reported loudly instead of masking a soundness bug.
	Internal ErrorKind = "Internal"
)

// Error is one diagnostic: the kind, a human-readable message, the
// expression that triggered it and the call path that led there. Errors
// are values, not control flow; the analysis never aborts on one.
type Error struct {
	Kind    ErrorKind
	Message string
	Node    semantics.Tree
	Trace   []semantics.Tree
	// Causes carries the nested findings of an UnsafePromotion.
	Causes []*Error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Kind))
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if e.Node != nil {
		sb.WriteString(" [")
		sb.WriteString(e.Node.Pos().String())
		sb.WriteString("]")
	}
	for _, c := range e.Causes {
		sb.WriteString("\n  caused by ")
		sb.WriteString(c.Error())
	}
	return sb.String()
}

// CallPath renders the recorded trace, outermost call first.
func (e *Error) CallPath() string {
	parts := make([]string, len(e.Trace))
	for i, t := range e.Trace {
		parts[i] = t.String() + " [" + t.Pos().String() + "]"
	}
	return strings.Join(parts, "\n-> ")
}

// Result pairs the abstract value of an analyzed body with every finding
// produced while computing it.
type Result struct {
	Value  Value
	Errors []*Error
}
