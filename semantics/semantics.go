// Package semantics models the resolved symbol table that the surrounding
// compiler hands to the initialization checker: class symbols with their
// linearization, member declarations with their flags, and the resolved
// body trees. The checker never parses source; it consumes these records.
package semantics

import (
	"fmt"
	"sync"
)

// Flags describes properties of a class or member declaration.
type Flags uint16

const (
	// FlagTrait marks a mixin trait. Traits do not re-run their own
	// parent construction when mixed into a class.
	FlagTrait Flags = 1 << iota
	// FlagFinal marks a member that cannot be overridden.
	FlagFinal
	// FlagLazy marks a lazily initialized field.
	FlagLazy
	// FlagDeferred marks a declared-but-undefined (abstract) member.
	FlagDeferred
	// FlagParamAccessor marks a field backing a primary constructor parameter.
	FlagParamAccessor
)

// Is reports whether all bits of f2 are set.
func (f Flags) Is(f2 Flags) bool { return f&f2 == f2 }

// MemberKind is the category of a member declaration.
type MemberKind int

const (
	FieldMember MemberKind = iota
	MethodMember
	ConstructorMember
	// LocalMember is a block-local val inside a method or constructor body.
	LocalMember
)

// Pos is a source position supplied by the frontend, used only for diagnostics.
type Pos struct {
	File string
	Line int
	Col  int
}

func (p Pos) String() string {
	if p.File == "" {
		return "<no position>"
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Col)
}

// Member is a single resolved member declaration: a field, a method, a
// constructor, or a block-local val.
type Member struct {
	Name   string
	Kind   MemberKind
	Flags  Flags
	Owner  *Class
	Params []string // parameter names, for methods and constructors
	// Body is the resolved right-hand side (fields, locals) or body
	// expression (methods, constructors). It is nil for deferred members
	// and for members of classes without source.
	Body Tree
	Pos  Pos
}

// Is reports whether the member carries all the given flags.
func (m *Member) Is(f Flags) bool { return m.Flags.Is(f) }

// HasSource reports whether the member has a body the checker may analyze.
func (m *Member) HasSource() bool {
	return m != nil && m.Body != nil && (m.Owner == nil || m.Owner.HasSource)
}

// ParentCall is one entry of a class's explicit parent list: the parent
// class, the constructor invoked, and the argument trees.
type ParentCall struct {
	Class *Class
	Ctor  *Member
	Args  []Tree
}

// Class is a resolved class or trait symbol.
type Class struct {
	Name string
	// Owner is the lexically enclosing class, nil for top-level classes.
	// Nested instances hold an outer reference to an Owner instance.
	Owner *Class
	Flags Flags
	// HasSource is false for externally-compiled classes whose bodies are
	// unavailable; the checker treats those conservatively.
	HasSource bool
	// Parents is the explicit parent list, superclass first.
	Parents []*ParentCall
	// PrimaryCtor is the primary constructor; nil only for source-less
	// classes and parameterless traits that declare none.
	PrimaryCtor *Member
	// Members holds every declared member, in declaration order.
	Members []*Member
	// Inner lists member classes declared inside this class.
	Inner []*Class
	// Body is the class template: the statements of the class body in
	// declaration order. Field definitions appear as *ValDef nodes.
	Body []Tree
	Pos  Pos

	linOnce sync.Once
	lin     []*Class

	lookupOnce sync.Once
	lookup     map[string]*Member
}

// IsTrait reports whether the class is a mixin trait.
func (c *Class) IsTrait() bool { return c.Flags.Is(FlagTrait) }

// Member finds a member declared directly on this class, or nil.
func (c *Class) Member(name string) *Member {
	c.lookupOnce.Do(func() {
		c.lookup = make(map[string]*Member, len(c.Members))
		for _, m := range c.Members {
			if m.Kind == LocalMember {
				continue
			}
			c.lookup[m.Name] = m
		}
	})
	return c.lookup[name]
}

// Linearization returns the class linearization, most specific first:
// the class itself, then its mixins and superclasses in initialization
// precedence order. The result is computed once and cached.
func (c *Class) Linearization() []*Class {
	c.linOnce.Do(func() {
		c.lin = computeLinearization(c)
	})
	return c.lin
}

// BaseClasses returns the linearization without the class itself.
func (c *Class) BaseClasses() []*Class {
	return c.Linearization()[1:]
}

// computeLinearization follows the language rule: concatenate the
// linearizations of the parents from last to first, keep only the last
// occurrence of each class, and prepend the class itself.
func computeLinearization(c *Class) []*Class {
	var concat []*Class
	for i := len(c.Parents) - 1; i >= 0; i-- {
		concat = append(concat, c.Parents[i].Class.Linearization()...)
	}
	last := make(map[*Class]int, len(concat))
	for i, cls := range concat {
		last[cls] = i
	}
	lin := []*Class{c}
	for i, cls := range concat {
		if last[cls] == i && cls != c {
			lin = append(lin, cls)
		}
	}
	return lin
}

// SuperClass returns the first explicit parent, or nil for a root class.
func (c *Class) SuperClass() *Class {
	if len(c.Parents) == 0 {
		return nil
	}
	return c.Parents[0].Class
}

func (c *Class) String() string {
	if c == nil {
		return "<nil class>"
	}
	if c.Owner != nil {
		return c.Owner.String() + "." + c.Name
	}
	return c.Name
}
