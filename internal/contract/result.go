package contract

// Result holds the illegal dependency chains found by one check.
// It maintains the set under subset domination: no recorded chain's
// module set is a subset of another recorded chain's module set.
type Result struct {
	paths [][]string
}

// Kept reports whether the check found no illegal dependencies.
func (r *Result) Kept() bool {
	return len(r.paths) == 0
}

// Paths returns the recorded violation chains. Callers must not mutate
// the returned slices.
func (r *Result) Paths() [][]string {
	return r.paths
}

// record adds a violation chain, keeping the set minimal. A new chain
// whose module set is contained in an existing chain's set replaces it
// (the new chain is more succinct); a new chain that contains an
// existing chain's set is dropped as already implied. Equal sets
// replace the existing entry. Greedy in arrival order, deterministic.
func (r *Result) record(path []string) {
	newSet := moduleSet(path)
	add := true
	kept := r.paths[:0]
	for _, existing := range r.paths {
		existingSet := moduleSet(existing)
		switch {
		case subset(newSet, existingSet):
			// Existing chain is subsumed by the more succinct new one.
		case subset(existingSet, newSet):
			add = false
			kept = append(kept, existing)
		default:
			kept = append(kept, existing)
		}
	}
	r.paths = kept
	if add {
		r.paths = append(r.paths, append([]string(nil), path...))
	}
}

func moduleSet(path []string) map[string]struct{} {
	s := make(map[string]struct{}, len(path))
	for _, m := range path {
		s[m] = struct{}{}
	}
	return s
}

// subset reports whether a ⊆ b.
func subset(a, b map[string]struct{}) bool {
	if len(a) > len(b) {
		return false
	}
	for m := range a {
		if _, ok := b[m]; !ok {
			return false
		}
	}
	return true
}
