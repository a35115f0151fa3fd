// Package checktest provides the test harness for the initialization
// checker: a fluent builder that assembles resolved class symbols the
// way the frontend would, and a runner that checks them and compares
// the surfaced diagnostics.
package checktest

import (
	"github.com/simhayoz/dotty/semantics"
)

// Builder accumulates class declarations for one test program.
type Builder struct {
	classes []*semantics.Class
}

// NewBuilder returns an empty program builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Classes returns every declared class, in declaration order.
func (b *Builder) Classes() []*semantics.Class {
	return b.classes
}

// Class declares an empty class with a zero-parameter primary
// constructor and source available.
func (b *Builder) Class(name string) *ClassDecl {
	cls := &semantics.Class{Name: name, HasSource: true}
	ctor := &semantics.Member{
		Name:  "<init>",
		Kind:  semantics.ConstructorMember,
		Owner: cls,
	}
	cls.PrimaryCtor = ctor
	cls.Members = append(cls.Members, ctor)
	b.classes = append(b.classes, cls)
	return &ClassDecl{Sym: cls}
}

// Trait declares a mixin trait.
func (b *Builder) Trait(name string) *ClassDecl {
	d := b.Class(name)
	d.Sym.Flags |= semantics.FlagTrait
	return d
}

// ClassDecl wraps a class symbol under construction.
type ClassDecl struct {
	Sym *semantics.Class
}

// External marks the class as compiled-only: no body is available and
// the checker treats it conservatively.
func (d *ClassDecl) External() *ClassDecl {
	d.Sym.HasSource = false
	return d
}

// In nests the class lexically inside owner.
func (d *ClassDecl) In(owner *ClassDecl) *ClassDecl {
	d.Sym.Owner = owner.Sym
	owner.Sym.Inner = append(owner.Sym.Inner, d.Sym)
	return d
}

// Params adds primary constructor parameters, each backed by a
// param-accessor field.
func (d *ClassDecl) Params(names ...string) *ClassDecl {
	d.Sym.PrimaryCtor.Params = append(d.Sym.PrimaryCtor.Params, names...)
	for _, name := range names {
		d.Sym.Members = append(d.Sym.Members, &semantics.Member{
			Name:  name,
			Kind:  semantics.FieldMember,
			Flags: semantics.FlagParamAccessor,
			Owner: d.Sym,
		})
	}
	return d
}

// Extends appends an explicit parent call. The first call names the
// superclass; later calls name mixins.
func (d *ClassDecl) Extends(parent *ClassDecl, args ...semantics.Tree) *ClassDecl {
	d.Sym.Parents = append(d.Sym.Parents, &semantics.ParentCall{
		Class: parent.Sym,
		Ctor:  parent.Sym.PrimaryCtor,
		Args:  args,
	})
	return d
}

// Val declares a field and appends its definition to the class body.
func (d *ClassDecl) Val(name string, rhs semantics.Tree) *semantics.Member {
	return d.field(name, rhs, 0)
}

// LazyVal declares a lazily initialized field.
func (d *ClassDecl) LazyVal(name string, rhs semantics.Tree) *semantics.Member {
	return d.field(name, rhs, semantics.FlagLazy)
}

func (d *ClassDecl) field(name string, rhs semantics.Tree, flags semantics.Flags) *semantics.Member {
	m := &semantics.Member{
		Name:  name,
		Kind:  semantics.FieldMember,
		Flags: flags,
		Owner: d.Sym,
		Body:  rhs,
	}
	d.Sym.Members = append(d.Sym.Members, m)
	d.Sym.Body = append(d.Sym.Body, &semantics.ValDef{Def: m})
	return m
}

// AbstractVal declares a field without a definition.
func (d *ClassDecl) AbstractVal(name string) *semantics.Member {
	m := &semantics.Member{
		Name:  name,
		Kind:  semantics.FieldMember,
		Flags: semantics.FlagDeferred,
		Owner: d.Sym,
	}
	d.Sym.Members = append(d.Sym.Members, m)
	return m
}

// Def declares a method.
func (d *ClassDecl) Def(name string, params []string, body semantics.Tree) *semantics.Member {
	m := &semantics.Member{
		Name:   name,
		Kind:   semantics.MethodMember,
		Owner:  d.Sym,
		Params: params,
		Body:   body,
	}
	d.Sym.Members = append(d.Sym.Members, m)
	return m
}

// FinalDef declares a method that cannot be overridden.
func (d *ClassDecl) FinalDef(name string, params []string, body semantics.Tree) *semantics.Member {
	m := d.Def(name, params, body)
	m.Flags |= semantics.FlagFinal
	return m
}

// AbstractDef declares a method without a body.
func (d *ClassDecl) AbstractDef(name string, params ...string) *semantics.Member {
	m := d.Def(name, params, nil)
	m.Flags |= semantics.FlagDeferred
	return m
}

// Secondary declares a secondary constructor. Its body should delegate
// to another constructor of the class.
func (d *ClassDecl) Secondary(name string, params []string, body semantics.Tree) *semantics.Member {
	m := &semantics.Member{
		Name:   name,
		Kind:   semantics.ConstructorMember,
		Owner:  d.Sym,
		Params: params,
		Body:   body,
	}
	d.Sym.Members = append(d.Sym.Members, m)
	return m
}

// Stmt appends a plain statement to the class body.
func (d *ClassDecl) Stmt(t semantics.Tree) *ClassDecl {
	d.Sym.Body = append(d.Sym.Body, t)
	return d
}

// This returns a `C.this` reference for the class.
func (d *ClassDecl) This() semantics.Tree {
	return &semantics.This{Class: d.Sym}
}

// --- tree shorthands ---

// Lit builds a literal expression.
func Lit(text string) semantics.Tree { return &semantics.Lit{Text: text} }

// Param references a parameter of the enclosing method or constructor.
func Param(name string) semantics.Tree { return &semantics.ParamRef{Name: name} }

// Sel builds a field selection.
func Sel(recv semantics.Tree, name string) semantics.Tree {
	return &semantics.Select{Recv: recv, Name: name}
}

// Call builds a virtual method call.
func Call(recv semantics.Tree, name string, args ...semantics.Tree) semantics.Tree {
	return &semantics.Call{Recv: recv, Name: name, Args: args}
}

// SuperCall builds an explicit super call with the given static super type.
func SuperCall(recv semantics.Tree, super *ClassDecl, name string, args ...semantics.Tree) semantics.Tree {
	return &semantics.Call{Recv: recv, Name: name, Args: args, Super: super.Sym}
}

// New builds an instantiation with an explicit outer expression (nil for
// top-level classes).
func New(cls *ClassDecl, outer semantics.Tree, args ...semantics.Tree) semantics.Tree {
	return &semantics.New{Class: cls.Sym, Args: args, Outer: outer}
}

// NewVia builds an instantiation through a secondary constructor.
func NewVia(cls *ClassDecl, ctor *semantics.Member, outer semantics.Tree, args ...semantics.Tree) semantics.Tree {
	return &semantics.New{Class: cls.Sym, Ctor: ctor, Args: args, Outer: outer}
}

// Assign builds a field reassignment.
func Assign(recv semantics.Tree, name string, rhs semantics.Tree) semantics.Tree {
	return &semantics.Assign{Recv: recv, Name: name, RHS: rhs}
}

// Closure builds a function literal.
func Closure(params []string, body semantics.Tree) semantics.Tree {
	return &semantics.Closure{Params: params, Body: body}
}

// Block builds a statement sequence with a result expression.
func Block(expr semantics.Tree, stmts ...semantics.Tree) semantics.Tree {
	return &semantics.Block{Stmts: stmts, Expr: expr}
}

// If builds a two-way branch.
func If(cond, then, els semantics.Tree) semantics.Tree {
	return &semantics.If{Cond: cond, Then: then, Else: els}
}

// Match builds a multi-way branch; every case body is analyzed.
func Match(selector semantics.Tree, cases ...semantics.Tree) semantics.Tree {
	return &semantics.Match{Selector: selector, Cases: cases}
}

// While builds a loop; condition and body are analyzed once for effects.
func While(cond, body semantics.Tree) semantics.Tree {
	return &semantics.While{Cond: cond, Body: body}
}

// Try builds a try expression. The finalizer may be nil; handlers are the
// catch case bodies.
func Try(expr, finalizer semantics.Tree, handlers ...semantics.Tree) semantics.Tree {
	return &semantics.Try{Expr: expr, Handlers: handlers, Finalizer: finalizer}
}

// Outer walks the given number of outer references from the receiver.
func Outer(recv semantics.Tree, hops int) semantics.Tree {
	return &semantics.OuterSelect{Recv: recv, Hops: hops}
}
