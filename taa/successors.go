package taa

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dam/spot/automaton"
	"github.com/dam/spot/bddlib"
)

// ErrIteratorExhausted is the panic value raised by succIterator's Current*
// accessors and Advance once the iterator is Done. automaton.SuccIterator's
// signatures (ported verbatim from the original's void-returning
// first/next/done accessors, spec §6) have no room for an error return, so
// this contract violation panics rather than returning an error (design
// note §9).
var ErrIteratorExhausted = errors.New("taa: successor iterator exhausted")

// joint is one fully resolved product transition: a destination state and
// the conjoined label/acceptance that reaches it.
type joint struct {
	dst        *state
	label      bddlib.Node
	acceptance bddlib.Node
}

// Successors implements automaton.Automaton. It jointly expands every
// member location's outgoing transitions into the Cartesian product of
// per-location choices, conjoining labels, disjoining acceptance, unioning
// destinations (dropping well locations, spec §4.2.1), and finally merging
// product transitions that land on the same destination state: equal labels
// merge by ANDing acceptances, equal acceptances merge by ORing labels, and
// any other pair is kept as two transitions (spec §8 scenario 6). The empty
// location set has exactly one successor: itself, under label true and no
// acceptance.
func (a *Automaton) Successors(s automaton.State) automaton.SuccIterator {
	a.mu.Lock()
	defer a.mu.Unlock()

	st := s.(*state)
	if len(st.ids) == 0 {
		// Acceptance false, reported in "missing markers" polarity: all of them.
		all := a.allAcceptanceConditionsLocked()
		return &succIterator{joints: []joint{{dst: newState(nil), label: a.bdd.True(), acceptance: all}}}
	}
	var active []*location
	for _, id := range st.ids {
		loc := a.order[id]
		if len(loc.transitions) > 0 {
			active = append(active, loc)
		}
	}
	if len(active) == 0 {
		return &succIterator{}
	}

	sizes := make([]int, len(active))
	for i, loc := range active {
		sizes[i] = len(loc.transitions)
	}

	byKey := make(map[string][]*joint)
	var order []string

	for _, combo := range cartesianIndices(sizes) {
		label := a.bdd.True()
		acceptance := a.bdd.False()
		var dstIDs []int
		for i, choice := range combo {
			t := active[i].transitions[choice]
			label = a.bdd.And(label, t.label)
			acceptance = a.bdd.Or(acceptance, t.acceptance)
			for _, d := range t.dst {
				if len(d.transitions) > 0 {
					dstIDs = append(dstIDs, d.id)
				}
			}
		}
		dst := newState(dstIDs)
		key := stateKey(dst)

		// Three-way merge rule keyed on the destination set (spec §4.2.1,
		// original's taa.cc add_to_list): identical labels fold by ANDing
		// acceptance, identical acceptances fold by ORing labels, and
		// anything else survives as its own separate transition rather
		// than being collapsed.
		merged := false
		for _, j := range byKey[key] {
			switch {
			case a.bdd.Equal(j.label, label):
				j.acceptance = a.bdd.And(j.acceptance, acceptance)
				merged = true
			case a.bdd.Equal(j.acceptance, acceptance):
				j.label = a.bdd.Or(j.label, label)
				merged = true
			}
			if merged {
				break
			}
		}
		if !merged {
			if _, seen := byKey[key]; !seen {
				order = append(order, key)
			}
			byKey[key] = append(byKey[key], &joint{dst: dst, label: label, acceptance: acceptance})
		}
	}

	all := a.allAcceptanceConditionsLocked()
	var joints []joint
	for _, key := range order {
		for _, j := range byKey[key] {
			j.acceptance = a.bdd.And(all, a.bdd.Not(j.acceptance))
			joints = append(joints, *j)
		}
	}

	return &succIterator{joints: joints}
}

// stateKey renders a deterministic, comparable key for a destination
// location-id set so equal sets merge regardless of discovery order.
func stateKey(s *state) string {
	parts := make([]string, len(s.ids))
	for i, id := range s.ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ",")
}

// cartesianIndices enumerates every position vector over sizes in the same
// right-advances-fastest lexicographic order as a nested loop with the
// rightmost index innermost (mirroring the per-vertex position-iterator
// odometer the original's joint successor constructor advances).
func cartesianIndices(sizes []int) [][]int {
	total := 1
	for _, sz := range sizes {
		total *= sz
	}
	out := make([][]int, 0, total)
	idx := make([]int, len(sizes))
	for n := 0; n < total; n++ {
		combo := make([]int, len(sizes))
		copy(combo, idx)
		out = append(out, combo)
		for i := len(sizes) - 1; i >= 0; i-- {
			idx[i]++
			if idx[i] < sizes[i] {
				break
			}
			idx[i] = 0
		}
	}
	return out
}

// succIterator implements automaton.SuccIterator over a precomputed,
// already-merged list of joint transitions.
type succIterator struct {
	joints []joint
	pos    int
	begun  bool
}

func (it *succIterator) First() {
	it.pos = 0
	it.begun = true
}

func (it *succIterator) Advance() {
	if it.Done() {
		panic(ErrIteratorExhausted)
	}
	it.pos++
}

func (it *succIterator) Done() bool {
	return !it.begun || it.pos >= len(it.joints)
}

func (it *succIterator) current() *joint {
	if it.Done() {
		panic(ErrIteratorExhausted)
	}
	return &it.joints[it.pos]
}

func (it *succIterator) CurrentState() automaton.State { return it.current().dst }

func (it *succIterator) CurrentLabel() bddlib.Node { return it.current().label }

func (it *succIterator) CurrentAcceptance() bddlib.Node { return it.current().acceptance }

var _ automaton.SuccIterator = (*succIterator)(nil)
