package evaluator

import (
	"strings"

	"github.com/simhayoz/dotty/object"
	"github.com/simhayoz/dotty/semantics"
)

// cacheKey identifies one memoized evaluation: the structural key of the
// value `this` is bound to, and the identity of the expression node.
type cacheKey struct {
	value string
	node  semantics.Tree
}

// cache is the three-tier memo table plus the abstract heap.
//
//   - stable holds flow-insensitive results reusable across all later
//     class checks. It only ever receives entries when a class's analysis
//     converges without change.
//   - current holds provisional results for the iteration in progress.
//   - last is the snapshot from the previous iteration; it seeds
//     self-referential evaluation with an optimistic guess.
//
// The heap maps reference keys to their Objekt records; heapStable is the
// snapshot reverted to whenever an iteration has not converged.
type cache struct {
	stable  map[cacheKey]object.Value
	current map[cacheKey]object.Value
	last    map[cacheKey]object.Value
	changed bool

	heap       map[string]*object.Objekt
	heapStable map[string]*object.Objekt
}

func newCache() *cache {
	return &cache{
		stable:     map[cacheKey]object.Value{},
		current:    map[cacheKey]object.Value{},
		last:       map[cacheKey]object.Value{},
		heap:       map[string]*object.Objekt{},
		heapStable: map[string]*object.Objekt{},
	}
}

// lookup checks current first, then stable.
func (c *cache) lookup(v object.Value, n semantics.Tree) (object.Value, bool) {
	k := cacheKey{value: v.Key(), node: n}
	if out, ok := c.current[k]; ok {
		return out, true
	}
	if out, ok := c.stable[k]; ok {
		return out, true
	}
	return nil, false
}

// assume runs compute under the optimistic protocol: the assumed result
// is the previous iteration's answer, or Hot on first sight. The assumed
// value is visible in current while compute runs, so a self-referential
// body sees its own guess instead of recursing forever. A result that
// differs from the assumption marks the cache changed and is never
// eligible for the stable tier this round.
func (c *cache) assume(v object.Value, n semantics.Tree, compute func() object.Value) object.Value {
	k := cacheKey{value: v.Key(), node: n}
	assumed, ok := c.last[k]
	if !ok {
		assumed = object.HOT
		c.last[k] = assumed
	}
	c.current[k] = assumed

	actual := compute()
	if !object.Equal(actual, assumed) {
		c.changed = true
		c.last[k] = actual
		c.current[k] = actual
	}
	return actual
}

// hasChanged reports whether any assumption was invalidated this iteration.
func (c *cache) hasChanged() bool { return c.changed }

// prepareForNextIteration resets the per-iteration state: provisional
// results are discarded and the heap reverts to the stable snapshot.
// last survives, carrying the refined assumptions forward.
func (c *cache) prepareForNextIteration() {
	c.changed = false
	c.current = map[cacheKey]object.Value{}
	c.revertHeap()
}

// prepareForNextClass finalizes a class check. Converged results for Warm
// keys are committed to the stable tier and the heap is snapshotted;
// an unconverged (errored) run commits nothing and reverts the heap.
// Either way the per-class tiers are discarded.
func (c *cache) prepareForNextClass() {
	if c.changed {
		c.changed = false
		c.revertHeap()
	} else {
		for k, v := range c.current {
			if strings.HasPrefix(k.value, "warm:") {
				c.stable[k] = v
			}
		}
		c.snapshotHeap()
	}
	c.last = map[cacheKey]object.Value{}
	c.current = map[cacheKey]object.Value{}
}

func (c *cache) revertHeap() {
	c.heap = cloneHeap(c.heapStable)
}

func (c *cache) snapshotHeap() {
	c.heapStable = cloneHeap(c.heap)
}

func cloneHeap(src map[string]*object.Objekt) map[string]*object.Objekt {
	out := make(map[string]*object.Objekt, len(src))
	for k, v := range src {
		out[k] = v.Clone()
	}
	return out
}
