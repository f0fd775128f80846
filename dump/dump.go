package dump

import (
	"fmt"
	"io"

	"github.com/dam/spot/automaton"
	"github.com/dam/spot/bddlib"
)

// WriteReachable serialises every transition reachable from a's initial
// state to w, one record per line: "source", "destination", label_cube,
// acceptance_cube; — matching the original's tgba_save_reachable exactly
// except for the destination io.Writer and the iterative traversal.
func WriteReachable(w io.Writer, bdd *bddlib.Manager, a automaton.Automaton) error {
	seen := make(map[string]bool)

	type frame struct {
		key string
		it  automaton.SuccIterator
	}

	s0 := a.InitialState()
	k0 := a.FormatState(s0)
	seen[k0] = true
	it0 := a.Successors(s0)
	it0.First()
	stack := []frame{{key: k0, it: it0}}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.it.Done() {
			stack = stack[:len(stack)-1]
			continue
		}

		d := top.it.CurrentState()
		dk := a.FormatState(d)
		label := top.it.CurrentLabel()
		acc := top.it.CurrentAcceptance()
		cur := top.key
		top.it.Advance()

		if _, err := fmt.Fprintf(w, "%q, %q, %s, %s;\n",
			cur, dk, bdd.FormatCube(label), bdd.FormatCube(acc)); err != nil {
			return err
		}

		if seen[dk] {
			continue
		}
		seen[dk] = true
		it := a.Successors(d)
		it.First()
		stack = append(stack, frame{key: dk, it: it})
	}

	return nil
}
