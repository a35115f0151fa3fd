package object

// Join merges two abstract values at a control-flow merge point. Hot is
// the identity, Cold absorbs everything, equal values join to themselves,
// and distinct references or closures collect into a RefSet.
func Join(a, b Value) Value {
	if _, ok := a.(*Hot); ok {
		return b
	}
	if _, ok := b.(*Hot); ok {
		return a
	}
	if _, ok := a.(*Cold); ok {
		return COLD
	}
	if _, ok := b.(*Cold); ok {
		return COLD
	}
	ra, aIsSet := a.(*RefSet)
	rb, bIsSet := b.(*RefSet)
	switch {
	case aIsSet && bIsSet:
		out := &RefSet{Members: append([]Value(nil), ra.Members...)}
		for _, m := range rb.Members {
			out.add(m)
		}
		return out.simplify()
	case aIsSet:
		out := &RefSet{Members: append([]Value(nil), ra.Members...)}
		out.add(b)
		return out.simplify()
	case bIsSet:
		out := &RefSet{Members: append([]Value(nil), rb.Members...)}
		out.add(a)
		return out.simplify()
	}
	if Equal(a, b) {
		return a
	}
	return &RefSet{Members: []Value{a, b}}
}

// JoinAll folds Join over a list, starting from Hot.
func JoinAll(vs []Value) Value {
	var out Value = HOT
	for _, v := range vs {
		out = Join(out, v)
	}
	return out
}

func (r *RefSet) add(v Value) {
	key := v.Key()
	for _, m := range r.Members {
		if m.Key() == key {
			return
		}
	}
	r.Members = append(r.Members, v)
}

func (r *RefSet) simplify() Value {
	if len(r.Members) == 1 {
		return r.Members[0]
	}
	return r
}

// WidenArg widens a value before it crosses a method or constructor
// argument boundary. References and closures collapse to Cold, which
// bounds the state space and guarantees termination of the fixpoint.
func WidenArg(v Value) Value {
	switch v := v.(type) {
	case *Hot, *Cold:
		return v
	case *RefSet:
		var out Value = HOT
		for _, m := range v.Members {
			out = Join(out, WidenArg(m))
		}
		return out
	default: // *Warm, *ThisRef, *Fun
		return COLD
	}
}

// Widen bounds the nesting depth of a value to the given height. It is
// used on the outer value of an instantiation so that outer chains never
// grow beyond one level; anything deeper collapses to Cold.
func Widen(v Value, height int) Value {
	switch v := v.(type) {
	case *Hot, *Cold:
		return v
	case *ThisRef:
		if height == 0 {
			return COLD
		}
		return v
	case *Warm:
		if height == 0 {
			return COLD
		}
		args := make([]Value, len(v.Args))
		for i, a := range v.Args {
			args[i] = WidenArg(a)
		}
		return &Warm{Class: v.Class, Outer: Widen(v.Outer, height-1), Ctor: v.Ctor, Args: args}
	case *Fun:
		if height == 0 {
			return COLD
		}
		return &Fun{Body: v.Body, Params: v.Params, This: Widen(v.This, height-1), Class: v.Class, Env: v.Env}
	case *RefSet:
		var out Value = HOT
		for _, m := range v.Members {
			out = Join(out, Widen(m, height))
		}
		return out
	}
	return COLD
}
