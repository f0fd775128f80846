package taa

import (
	"testing"

	"github.com/dam/spot/bddlib"
	"github.com/dam/spot/symdict"
	"github.com/dam/spot/varalloc"
	"github.com/stretchr/testify/require"
)

func newFixture(t *testing.T) (*bddlib.Manager, symdict.Dictionary) {
	t.Helper()
	mgr := bddlib.New()
	alloc := varalloc.New(mgr, varalloc.WithInitialVarnum(0))
	return mgr, symdict.New(alloc)
}

// bddFormula wraps an already-built BDD node, bypassing proposition lookup.
type bddFormula struct{ n bddlib.Node }

func (f bddFormula) ToBDD(dict symdict.Dictionary, client symdict.Client) bddlib.Node {
	return f.n
}

func TestNewStateSingletonInitialState(t *testing.T) {
	mgr, dict := newFixture(t)
	a := New(mgr, dict)

	a.AddLocation("A")
	a.AddLocation("B")
	a.SetInitial("A")

	init := a.InitialState()
	require.Equal(t, "{A}", a.FormatState(init))
}

func TestJointSuccessorsExpandsCartesianProduct(t *testing.T) {
	mgr, dict := newFixture(t)
	a := New(mgr, dict)

	pv, err := dict.RegisterProposition("p", a.client)
	require.NoError(t, err)
	qv, err := dict.RegisterProposition("q", a.client)
	require.NoError(t, err)
	p, err := mgr.Ithvar(pv)
	require.NoError(t, err)
	q, err := mgr.Ithvar(qv)
	require.NoError(t, err)

	// Location A has two outgoing transitions (to A1, A2); location B has
	// two outgoing transitions (to B1, B2). The joint state {A,B} must
	// expand into the full 2x2 Cartesian product: four product transitions.
	tA1 := a.CreateTransition("A", []string{"A1"})
	a.AddLabel(tA1, bddFormula{p})
	tA2 := a.CreateTransition("A", []string{"A2"})
	a.AddLabel(tA2, bddFormula{mgr.Not(p)})

	tB1 := a.CreateTransition("B", []string{"B1"})
	a.AddLabel(tB1, bddFormula{q})
	tB2 := a.CreateTransition("B", []string{"B2"})
	a.AddLabel(tB2, bddFormula{mgr.Not(q)})

	// A1, A2, B1, B2 each get a self-loop so they are not wells and stay in
	// the destination sets; the four product transitions then land on four
	// distinct destination states and none of them merge.
	for _, n := range []string{"A1", "A2", "B1", "B2"} {
		a.CreateTransition(n, []string{n})
	}
	joint := newState([]int{a.locations["A"].id, a.locations["B"].id})
	it := a.Successors(joint)

	count := 0
	for it.First(); !it.Done(); it.Advance() {
		count++
	}
	require.Equal(t, 4, count, "2x2 joint expansion must produce four product transitions")
}

func TestDeadStateHasNoSuccessors(t *testing.T) {
	mgr, dict := newFixture(t)
	a := New(mgr, dict)
	a.AddLocation("dead")

	s := newState([]int{a.locations["dead"].id})
	it := a.Successors(s)
	it.First()
	require.True(t, it.Done())
}

func TestMergeRuleCombinesTransitionsToSameDestination(t *testing.T) {
	mgr, dict := newFixture(t)
	a := New(mgr, dict)

	pv, err := dict.RegisterProposition("p", a.client)
	require.NoError(t, err)
	qv, err := dict.RegisterProposition("q", a.client)
	require.NoError(t, err)
	p, err := mgr.Ithvar(pv)
	require.NoError(t, err)
	q, err := mgr.Ithvar(qv)
	require.NoError(t, err)

	a.AddLocation("X") // a well, so it vanishes from any destination set

	// Two transitions out of the singleton source that both ultimately
	// reach the same (empty) destination state under different guards
	// must merge into a single product transition whose label is their
	// disjunction.
	src := a.CreateTransition("S", []string{"X"})
	a.AddLabel(src, bddFormula{p})
	src2 := a.CreateTransition("S", []string{"X"})
	a.AddLabel(src2, bddFormula{q})

	s := newState([]int{a.locations["S"].id})
	it := a.Successors(s)

	count := 0
	var label bddlib.Node
	for it.First(); !it.Done(); it.Advance() {
		count++
		label = it.CurrentLabel()
	}
	require.Equal(t, 1, count, "transitions landing on the same destination must merge")
	require.True(t, mgr.Equal(label, mgr.Or(p, q)))
}

func TestAcceptanceMonotonicityAndComplementPolarity(t *testing.T) {
	mgr, dict := newFixture(t)
	a := New(mgr, dict)

	// Y and Z each keep themselves non-well so their product transitions
	// don't vanish, and — having distinct destinations — never trigger
	// the destination-keyed merge rule, keeping this test focused purely
	// on monotonicity and polarity.
	a.AddLocation("Y")
	a.AddLocation("Z")
	a.CreateTransition("Y", []string{"Y"})
	a.CreateTransition("Z", []string{"Z"})

	t1 := a.CreateTransition("S", []string{"Y"})
	a.AddAcceptance(t1, "alpha")
	before := t1.acceptance

	// A second marker introduced afterwards must retroactively widen t1's
	// acceptance representation too (spec §8 acceptance monotonicity),
	// even though alpha is never re-attached to t1.
	t2 := a.CreateTransition("S", []string{"Z"})
	a.AddAcceptance(t2, "beta")
	require.False(t, mgr.Equal(before, t1.acceptance),
		"declaring beta must retroactively widen t1's acceptance representation")

	all := a.AllAcceptanceConditions()
	require.False(t, mgr.IsFalse(all))

	// CurrentAcceptance reports the complement within the full marker set
	// (spec §6, §9): the transition to Y carries only alpha, so it must
	// report beta missing (and vice versa for Z).
	s := newState([]int{a.locations["S"].id})
	it := a.Successors(s)
	seen := map[string]bddlib.Node{}
	for it.First(); !it.Done(); it.Advance() {
		seen[a.FormatState(it.CurrentState())] = it.CurrentAcceptance()
	}
	require.Len(t, seen, 2, "Y and Z are distinct destinations and must not merge")

	betaVar, ok := dict.AccMap("beta")
	require.True(t, ok)
	alphaVar, ok := dict.AccMap("alpha")
	require.True(t, ok)
	betaLit, e := mgr.Ithvar(betaVar)
	require.NoError(t, e)
	alphaLit, e := mgr.Ithvar(alphaVar)
	require.NoError(t, e)

	// Each transition's "present" value is itself a single-hot cube (this
	// marker, and every other declared marker negated), so what's reported
	// missing is the other marker's equivalent cube, not a bare literal.
	wantY := mgr.And(betaLit, mgr.Not(alphaLit))
	wantZ := mgr.And(alphaLit, mgr.Not(betaLit))
	require.True(t, mgr.Equal(seen["{Y}"], wantY), "the alpha-only transition must report beta missing")
	require.True(t, mgr.Equal(seen["{Z}"], wantZ), "the beta-only transition must report alpha missing")
}
