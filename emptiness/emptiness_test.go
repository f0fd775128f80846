package emptiness_test

import (
	"testing"

	"github.com/dam/spot/bddlib"
	"github.com/dam/spot/emptiness"
	"github.com/dam/spot/symdict"
	"github.com/dam/spot/taa"
	"github.com/dam/spot/varalloc"
	"github.com/stretchr/testify/require"
)

type bddFormula struct{ n bddlib.Node }

func (f bddFormula) ToBDD(dict symdict.Dictionary, client symdict.Client) bddlib.Node { return f.n }

func newFixture(t *testing.T) (*bddlib.Manager, symdict.Dictionary) {
	t.Helper()
	mgr := bddlib.New()
	alloc := varalloc.New(mgr, varalloc.WithInitialVarnum(0))
	return mgr, symdict.New(alloc)
}

// TestSingletonLassoIsNonEmpty builds spec §8 scenario 3: A -p-> B,
// B -q/alpha-> B, initial {A}. The self-loop on B always carries alpha, so
// the language must be non-empty and the cycle must carry alpha.
func TestSingletonLassoIsNonEmpty(t *testing.T) {
	mgr, dict := newFixture(t)
	a := taa.New(mgr, dict)
	defer a.Close()

	a.SetInitial("A")
	a.AddLocation("B")

	pv, err := dict.RegisterProposition("p", symdict.NewClient())
	require.NoError(t, err)
	qv, err := dict.RegisterProposition("q", symdict.NewClient())
	require.NoError(t, err)
	p, err := mgr.Ithvar(pv)
	require.NoError(t, err)
	q, err := mgr.Ithvar(qv)
	require.NoError(t, err)

	tAB := a.CreateTransition("A", []string{"B"})
	a.AddLabel(tAB, bddFormula{p})

	tBB := a.CreateTransition("B", []string{"B"})
	a.AddLabel(tBB, bddFormula{q})
	a.AddAcceptance(tBB, "alpha")

	c := emptiness.New(mgr, a)
	require.True(t, c.Check(), "a self-loop carrying the only marker makes the language non-empty")

	cyc, err := c.Cycle()
	require.NoError(t, err)
	require.NotEmpty(t, cyc)
	require.Equal(t, "{B}", a.FormatState(cyc[len(cyc)-1].State),
		"the reconstructed cycle must close back on the accepting SCC's own state")
}

// TestNoAcceptingSCCIsEmpty builds spec §8 scenario 4: A -true-> B,
// B -true-> A, with a marker registered but never emitted on any
// transition. check() must report empty.
func TestNoAcceptingSCCIsEmpty(t *testing.T) {
	mgr, dict := newFixture(t)
	a := taa.New(mgr, dict)
	defer a.Close()

	a.SetInitial("A")
	a.AddLocation("B")

	a.CreateTransition("A", []string{"B"})
	a.CreateTransition("B", []string{"A"})

	// Declare the marker on the automaton's own acceptance alphabet without
	// ever calling AddAcceptance on any transition, matching spec §8
	// scenario 4: "alpha" exists but no cycle emits it.
	a.DeclareAcceptance("alpha")

	c := emptiness.New(mgr, a)
	require.False(t, c.Check(), "a cycle that never emits the registered marker must be empty")
}

// TestMultiStateCycleAccumulatesTreeEdgeMarkers builds a three-state SCC
// A -true/alpha-> B -true/beta-> C -true-> A. Neither marker sits on the
// back edge (C->A) that closes the cycle; each sits on a tree edge
// discovered earlier in the DFS. The language is still non-empty, since
// the SCC as a whole visits both alpha and beta, and Check must fold both
// tree edges' acceptance into the surviving root when they are popped.
func TestMultiStateCycleAccumulatesTreeEdgeMarkers(t *testing.T) {
	mgr, dict := newFixture(t)
	a := taa.New(mgr, dict)
	defer a.Close()

	a.SetInitial("A")
	a.AddLocation("B")
	a.AddLocation("C")

	tAB := a.CreateTransition("A", []string{"B"})
	a.AddAcceptance(tAB, "alpha")

	tBC := a.CreateTransition("B", []string{"C"})
	a.AddAcceptance(tBC, "beta")

	a.CreateTransition("C", []string{"A"})

	c := emptiness.New(mgr, a)
	require.True(t, c.Check(),
		"an SCC that visits every marker across tree edges must be non-empty even though the closing back edge carries none")

	cyc, err := c.Cycle()
	require.NoError(t, err)
	require.NotEmpty(t, cyc)
}
