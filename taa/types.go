package taa

import (
	"sort"

	"github.com/dam/spot/bddlib"
)

// location is a named node, interned by name. Its essential attribute is its
// outgoing transition list; a location with no outgoing transitions is a
// "well" location (spec §4.2.1, §9 open question) and is dropped from any
// destination set it would otherwise belong to.
type location struct {
	name        string
	id          int // interned identity, assigned in AddLocation order
	transitions []*Transition
}

// Transition owns a destination location set, a symbolic label and an
// acceptance value. Transition is returned by CreateTransition as an opaque
// handle for AddLabel/AddAcceptance to refine further.
type Transition struct {
	dst        []*location // deduplicated, sorted by interned id
	label      bddlib.Node
	acceptance bddlib.Node
}

func dedupSortedLocations(locs []*location) []*location {
	seen := make(map[int]bool, len(locs))
	out := make([]*location, 0, len(locs))
	for _, l := range locs {
		if seen[l.id] {
			continue
		}
		seen[l.id] = true
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// state is the observable State: a set of locations, represented as the
// sorted, deduplicated slice of their interned identities.
type state struct {
	ids []int // sorted ascending, deduplicated
}

func newState(ids []int) *state {
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)
	out := sorted[:0]
	var last int
	for i, v := range sorted {
		if i == 0 || v != last {
			out = append(out, v)
		}
		last = v
	}
	return &state{ids: out}
}

