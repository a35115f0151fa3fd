package semantics

import (
	"fmt"
	"strings"
)

// Tree is a resolved expression node. The set of forms is closed; the
// evaluator matches exhaustively over it. Node identity (the pointer) is
// used as part of memoization keys, so trees must not be copied once a
// class has been handed to the checker.
type Tree interface {
	Pos() Pos
	String() string
}

type node struct{ P Pos }

func (n node) Pos() Pos { return n.P }

// Lit is a literal or constant expression. The checker only cares that it
// is fully initialized, so no value is carried beyond a display string.
type Lit struct {
	node
	Text string
}

func (t *Lit) String() string { return t.Text }

// This references `C.this` for the given class.
type This struct {
	node
	Class *Class
}

func (t *This) String() string { return t.Class.Name + ".this" }

// ParamRef references a parameter of the enclosing method or constructor.
type ParamRef struct {
	node
	Name string
}

func (t *ParamRef) String() string { return t.Name }

// ValRef references a block-local val. Its value is recomputed from the
// definition's right-hand side on every use (and memoized by the cache).
type ValRef struct {
	node
	Def *Member
}

func (t *ValRef) String() string { return t.Def.Name }

// ValDef is a definition statement: a class field in a template body, or
// a block-local val. The right-hand side is Def.Body.
type ValDef struct {
	node
	Def *Member
}

func (t *ValDef) String() string { return "val " + t.Def.Name + " = " + t.Def.Body.String() }

// Select is a field selection. The member is resolved by name against the
// receiver's actual class at evaluation time.
type Select struct {
	node
	Recv Tree
	Name string
}

func (t *Select) String() string { return t.Recv.String() + "." + t.Name }

// Call is a method or constructor invocation. Super is the static super
// type for explicit super calls, nil for ordinary virtual calls.
type Call struct {
	node
	Recv  Tree
	Name  string
	Args  []Tree
	Super *Class
}

func (t *Call) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	recv := t.Recv.String()
	if t.Super != nil {
		recv = "super[" + t.Super.Name + "]"
	}
	return fmt.Sprintf("%s.%s(%s)", recv, t.Name, strings.Join(args, ", "))
}

// New instantiates a class. Outer is the enclosing-instance expression for
// nested classes, nil for top-level classes. Ctor selects the constructor;
// nil means the primary constructor.
type New struct {
	node
	Class *Class
	Ctor  *Member
	Args  []Tree
	Outer Tree
}

func (t *New) String() string {
	args := make([]string, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.String()
	}
	return fmt.Sprintf("new %s(%s)", t.Class.Name, strings.Join(args, ", "))
}

// Assign is a field reassignment. The right-hand side must prove fully
// initialized before it may be stored.
type Assign struct {
	node
	Recv Tree
	Name string
	RHS  Tree
}

func (t *Assign) String() string { return t.Recv.String() + "." + t.Name + " = " + t.RHS.String() }

// Closure is a function literal. Its body is not evaluated at the point
// of creation; the checker suspends it together with the captured
// receiver and environment.
type Closure struct {
	node
	Params []string
	Body   Tree
}

func (t *Closure) String() string {
	return fmt.Sprintf("(%s) => %s", strings.Join(t.Params, ", "), t.Body.String())
}

// Block is a statement sequence with a final result expression. Expr may
// be nil for a unit-valued block.
type Block struct {
	node
	Stmts []Tree
	Expr  Tree
}

func (t *Block) String() string { return fmt.Sprintf("{ ... (%d stmts) }", len(t.Stmts)) }

// If is a two-way branch. Else may be nil.
type If struct {
	node
	Cond Tree
	Then Tree
	Else Tree
}

func (t *If) String() string { return "if " + t.Cond.String() + " ..." }

// Match is a multi-way branch over a selector. Every case body is
// analyzed; none is treated as unreachable.
type Match struct {
	node
	Selector Tree
	Cases    []Tree
}

func (t *Match) String() string { return t.Selector.String() + " match { ... }" }

// While is a loop. The condition and body are analyzed once for effects.
type While struct {
	node
	Cond Tree
	Body Tree
}

func (t *While) String() string { return "while " + t.Cond.String() + " ..." }

// Try analyzes the guarded expression, every handler, and the finalizer.
type Try struct {
	node
	Expr      Tree
	Handlers  []Tree
	Finalizer Tree
}

func (t *Try) String() string { return "try " + t.Expr.String() + " ..." }

// OuterSelect walks a fixed number of outer references from the receiver.
// It appears in inlined code where the hop count is known statically.
type OuterSelect struct {
	node
	Recv Tree
	Hops int
}

func (t *OuterSelect) String() string { return fmt.Sprintf("%s.<outer:%d>", t.Recv.String(), t.Hops) }

