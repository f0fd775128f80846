package emptiness

import (
	"github.com/dam/spot/automaton"
	"github.com/dam/spot/bddlib"
)

// Step is one edge of a reconstructed cycle: the state it lands on and the
// label guarding the transition taken to reach it.
type Step struct {
	State automaton.State
	Label bddlib.Node
}

// Cycle reconstructs an accepting cycle through the SCC that closed
// non-emptiness (spec §4.3.2): a path that starts and ends at the
// cycle-entry state, stays within the accepting SCC (states whose DFS
// index is >= the accepting root's and not purged), and whose edges
// collectively carry every marker in AllAcceptanceConditions(). Valid only
// after a Check call that returned true.
func (c *Checker) Cycle() ([]Step, error) {
	if !c.ran {
		return nil, ErrNotRun
	}
	if !c.nonEmpty {
		return nil, ErrLanguageEmpty
	}

	target := c.a.AllAcceptanceConditions()
	entryKey := c.a.FormatState(c.cycleEntry)

	type node struct {
		state automaton.State
		acc   bddlib.Node
		path  []Step
	}

	start := node{state: c.cycleEntry, acc: c.bdd.False()}
	queue := []node{start}
	visited := map[string]bool{}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		it := c.a.Successors(cur.state)
		for it.First(); !it.Done(); it.Advance() {
			d := it.CurrentState()
			dk := c.a.FormatState(d)
			if !c.inAcceptingSCC(dk) {
				continue
			}
			present := c.bdd.And(target, c.bdd.Not(it.CurrentAcceptance()))
			nextAcc := c.bdd.Or(cur.acc, present)
			nextPath := append(append([]Step(nil), cur.path...), Step{State: d, Label: it.CurrentLabel()})

			if dk == entryKey && len(nextPath) > 0 && c.bdd.Equal(nextAcc, target) {
				return nextPath, nil
			}

			// Dedup on (state, accumulated acceptance), not state alone: an
			// SCC can need to revisit the same state to pick up a second
			// marker before the cycle closes, and a state-only key would
			// prune that second visit before it could complete the path.
			visitKey := dk + "#" + c.bdd.FormatCube(nextAcc)
			if visited[visitKey] {
				continue
			}
			visited[visitKey] = true
			queue = append(queue, node{state: d, acc: nextAcc, path: nextPath})
		}
	}

	// Check's own fold accounting already proved a qualifying cycle exists,
	// so an exhausted search here means the accepting SCC's reachable
	// (state, acc) space was fully explored without ever closing back on
	// the entry state at the target acceptance — Check and Cycle disagree.
	return nil, ErrLanguageEmpty
}

// inAcceptingSCC reports whether key names a state belonging to the SCC
// that closed non-emptiness: live (not purged) with a DFS index at or
// above the accepting root's (spec §4.3.2).
func (c *Checker) inAcceptingSCC(key string) bool {
	vs, ok := c.h[key]
	return ok && vs.index != 0 && vs.index >= c.acceptingRootIndex
}
