package semantics

// alwaysSafe lists universal methods whose calls never observe
// uninitialized state, regardless of the receiver. Calls to these are
// skipped by the checker.
var alwaysSafe = map[string]bool{
	"eq":           true,
	"ne":           true,
	"isInstanceOf": true,
	"asInstanceOf": true,
	"hashCode":     true,
	"toString":     true,
	"equals":       true,
	"getClass":     true,
}

// IsAlwaysSafe reports whether a method name belongs to the universal
// ignore list.
func IsAlwaysSafe(name string) bool { return alwaysSafe[name] }

// Resolve performs virtual dispatch: it finds the most specific member
// with the given name in the receiver's actual class, walking the
// linearization most-specific-first. A final member or a constructor
// found on the way resolves immediately to itself. Returns nil when no
// declaration exists anywhere in the hierarchy.
func Resolve(cls *Class, name string) *Member {
	var deferred *Member
	for _, base := range cls.Linearization() {
		m := base.Member(name)
		if m == nil {
			continue
		}
		if m.Kind == ConstructorMember || m.Is(FlagFinal) {
			return m
		}
		if m.Is(FlagDeferred) {
			if deferred == nil {
				deferred = m
			}
			continue
		}
		return m
	}
	return deferred
}

// ResolveSuper resolves an explicit super call: it walks the base classes
// starting at the static super type and returns the first non-deferred
// declaration of the name.
func ResolveSuper(cls *Class, superType *Class, name string) *Member {
	lin := cls.Linearization()
	start := 0
	for i, base := range lin {
		if base == superType {
			start = i
			break
		}
	}
	for _, base := range lin[start:] {
		m := base.Member(name)
		if m == nil || m.Is(FlagDeferred) {
			continue
		}
		return m
	}
	return nil
}
