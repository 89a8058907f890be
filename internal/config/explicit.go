package config

// ExplicitFlags is the set of option names the user set explicitly. Command
// line flags and MCP arguments use the same names so both layer over the
// configuration file the same way. The set is never mutated after creation.
type ExplicitFlags map[string]bool

// NewExplicitFlags copies the names marked true in flags
func NewExplicitFlags(flags map[string]bool) ExplicitFlags {
	set := make(ExplicitFlags, len(flags))
	for name, on := range flags {
		if on {
			set[name] = true
		}
	}
	return set
}

// Has reports whether name was set
func (f ExplicitFlags) Has(name string) bool { return f[name] }

// Any reports whether at least one of names was set
func (f ExplicitFlags) Any(names ...string) bool {
	for _, name := range names {
		if f[name] {
			return true
		}
	}
	return false
}

// Pick returns override when name was set, otherwise base
func Pick[T any](f ExplicitFlags, name string, base, override T) T {
	if f.Has(name) {
		return override
	}
	return base
}

// PickSlice is Pick for pattern lists; an empty override never replaces base
func PickSlice(f ExplicitFlags, name string, base, override []string) []string {
	if f.Has(name) && len(override) > 0 {
		return override
	}
	return base
}

// PickBoolPtr is Pick for optional booleans. Without an explicit flag a set
// base wins and an unset base falls back to override.
func PickBoolPtr(f ExplicitFlags, name string, base, override *bool) *bool {
	switch {
	case f.Has(name) && override != nil:
		return override
	case base != nil:
		return base
	default:
		return override
	}
}
