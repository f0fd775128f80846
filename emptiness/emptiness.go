package emptiness

import (
	"errors"

	"github.com/dam/spot/automaton"
	"github.com/dam/spot/bddlib"
)

// ErrNotRun is returned by Prefix/Cycle when Check has not yet been called.
var ErrNotRun = errors.New("emptiness: check has not run")

// ErrLanguageEmpty is returned by Prefix/Cycle when the last Check call
// reported the language empty — there is no lasso to reconstruct.
var ErrLanguageEmpty = errors.New("emptiness: language is empty, no counter-example exists")

// visitState is an entry of H: a state's DFS index (0 once purged) and the
// observable State value it was discovered under.
type visitState struct {
	index int
	state automaton.State
}

// rootRecord is one entry of the SCC root-record stack: the DFS index and
// discovery state of the SCC's root, and the OR-accumulated acceptance
// seen so far along both back edges into the component and tree edges
// that later turn out to lie inside it.
type rootRecord struct {
	index int
	acc   bddlib.Node
	state automaton.State
}

// frame is one entry of the explicit DFS stack: a live state, the
// successor enumerator driving its expansion, and arcAcc — the
// "present"-polarity acceptance of the tree edge that pushed this frame
// (spec §4.3's arc_labels: a stack of per-frame incoming-arc acceptance
// values folded into the surviving root when the frame is popped). The
// initial frame has no incoming edge, so its arcAcc is False.
type frame struct {
	key    string
	state  automaton.State
	it     automaton.SuccIterator
	arcAcc bddlib.Node
}

// Checker runs Couvreur's algorithm against a single automaton.Automaton,
// using bdd for the Boolean operations (AND/OR/equality) its accumulator
// step requires — the automaton contract (spec §6) exposes only opaque
// bddlib.Node values, not a Manager, so the caller supplies one explicitly.
type Checker struct {
	bdd *bddlib.Manager
	a   automaton.Automaton

	ran      bool
	nonEmpty bool

	h                  map[string]*visitState
	acceptingRootIndex int
	prefix             []automaton.State
	cycleEntry         automaton.State
}

// New creates a Checker for a over bdd.
func New(bdd *bddlib.Manager, a automaton.Automaton) *Checker {
	return &Checker{bdd: bdd, a: a}
}

// Check runs the algorithm (spec §4.3.1) and reports whether the
// automaton's language is non-empty. It is idempotent: subsequent calls
// return the cached result without re-running the search.
func (c *Checker) Check() bool {
	if c.ran {
		return c.nonEmpty
	}
	c.ran = true

	h := make(map[string]*visitState)
	c.h = h
	nextIndex := 1

	s0 := c.a.InitialState()
	k0 := c.a.FormatState(s0)
	h[k0] = &visitState{index: nextIndex, state: s0}
	roots := []rootRecord{{index: nextIndex, acc: c.bdd.False(), state: s0}}
	nextIndex++

	it0 := c.a.Successors(s0)
	it0.First()
	frames := []frame{{key: k0, state: s0, it: it0, arcAcc: c.bdd.False()}}

	for len(frames) > 0 {
		top := &frames[len(frames)-1]

		if top.it.Done() {
			popped := frames[len(frames)-1]
			frames = frames[:len(frames)-1]
			myIndex := h[popped.key].index
			if myIndex == roots[len(roots)-1].index {
				c.removeComponent(h, popped.state, popped.key)
				roots = roots[:len(roots)-1]
			} else {
				// popped's own root was already folded into an ancestor by
				// an earlier back edge, so popped now lies inside a
				// confirmed SCC: the tree edge that pushed it sits on a
				// cycle through that SCC too, and its acceptance must be
				// folded in just like a back edge's (spec §4.3 arc_labels).
				surviving := &roots[len(roots)-1]
				surviving.acc = c.bdd.Or(surviving.acc, popped.arcAcc)
				if c.bdd.Equal(surviving.acc, c.a.AllAcceptanceConditions()) {
					c.nonEmpty = true
					c.acceptingRootIndex = surviving.index
					c.prefix = make([]automaton.State, len(frames))
					for i, f := range frames {
						c.prefix[i] = f.state
					}
					c.cycleEntry = surviving.state
					return true
				}
			}
			continue
		}

		d := top.it.CurrentState()
		dk := c.a.FormatState(d)
		edgeAcc := top.it.CurrentAcceptance()
		top.it.Advance()

		vs, exists := h[dk]
		switch {
		case !exists:
			h[dk] = &visitState{index: nextIndex, state: d}
			roots = append(roots, rootRecord{index: nextIndex, acc: c.bdd.False(), state: d})
			nextIndex++
			it := c.a.Successors(d)
			it.First()
			// edgeAcc is reported in "missing markers" polarity (spec §6);
			// recover the markers this tree edge actually carries so the
			// frame can fold them into its ancestor's accumulator once
			// it's popped, whether or not it turns out to be its own root.
			present := c.bdd.And(c.a.AllAcceptanceConditions(), c.bdd.Not(edgeAcc))
			frames = append(frames, frame{key: dk, state: d, it: it, arcAcc: present})

		case vs.index == 0:
			// Purged: this edge leads out of the live graph entirely.

		default:
			k := vs.index
			for roots[len(roots)-1].index > k {
				folded := roots[len(roots)-1]
				roots = roots[:len(roots)-1]
				parent := &roots[len(roots)-1]
				parent.acc = c.bdd.Or(parent.acc, folded.acc)
			}
			// edgeAcc is reported in "missing markers" polarity (spec §6);
			// recover the markers this edge actually carries before
			// accumulating, since the accumulator climbs toward "every
			// marker seen", not toward "every marker missing".
			present := c.bdd.And(c.a.AllAcceptanceConditions(), c.bdd.Not(edgeAcc))
			surviving := &roots[len(roots)-1]
			surviving.acc = c.bdd.Or(surviving.acc, present)

			if c.bdd.Equal(surviving.acc, c.a.AllAcceptanceConditions()) {
				c.nonEmpty = true
				c.acceptingRootIndex = surviving.index
				c.prefix = make([]automaton.State, len(frames))
				for i, f := range frames {
					c.prefix[i] = f.state
				}
				c.cycleEntry = vs.state
				return true
			}
		}
	}

	c.nonEmpty = false
	return false
}

// removeComponent zeroes the DFS index of every state reachable from start
// via edges into still-live (nonzero-index) states, matching the original's
// remove_component: a non-accepting SCC's members are purged so later
// back-edges into them are recognised as dead rather than re-explored.
func (c *Checker) removeComponent(h map[string]*visitState, start automaton.State, startKey string) {
	type pair struct {
		state automaton.State
		key   string
	}
	h[startKey].index = 0
	stack := []pair{{start, startKey}}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		it := c.a.Successors(cur.state)
		for it.First(); !it.Done(); it.Advance() {
			d := it.CurrentState()
			dk := c.a.FormatState(d)
			if vs, ok := h[dk]; ok && vs.index != 0 {
				vs.index = 0
				stack = append(stack, pair{d, dk})
			}
		}
	}
}

// Prefix returns the state path from the initial state to the state where
// the accepting root closed (spec §4.3.2). Valid only after a Check call
// that returned true.
func (c *Checker) Prefix() ([]automaton.State, error) {
	if !c.ran {
		return nil, ErrNotRun
	}
	if !c.nonEmpty {
		return nil, ErrLanguageEmpty
	}
	out := make([]automaton.State, len(c.prefix))
	copy(out, c.prefix)
	return out, nil
}
