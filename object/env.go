package object

import (
	"sort"
	"strings"
)

// Env binds method and constructor parameters for the body under
// evaluation. Bindings are restricted to the two-point sublattice
// {Hot, Cold}: every argument is widened before it crosses a call
// boundary, so nothing else can ever appear here.
type Env struct {
	store map[string]Value
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return &Env{store: map[string]Value{}}
}

// Bind stores a parameter binding. Values outside {Hot, Cold} are
// degraded to Cold; widening is the caller's job, this is the backstop.
func (e *Env) Bind(name string, v Value) {
	switch v.(type) {
	case *Hot, *Cold:
		e.store[name] = v
	default:
		e.store[name] = COLD
	}
}

// Lookup retrieves a binding.
func (e *Env) Lookup(name string) (Value, bool) {
	v, ok := e.store[name]
	return v, ok
}

// Clone copies the environment. Closures capture a snapshot so later
// calls cannot disturb the suspended bindings.
func (e *Env) Clone() *Env {
	out := NewEnv()
	for k, v := range e.store {
		out.store[k] = v
	}
	return out
}

// Key renders a canonical identity for use inside closure keys.
func (e *Env) Key() string {
	if e == nil || len(e.store) == 0 {
		return "{}"
	}
	entries := make([]string, 0, len(e.store))
	for k, v := range e.store {
		entries = append(entries, k+"="+v.Key())
	}
	sort.Strings(entries)
	return "{" + strings.Join(entries, ",") + "}"
}
