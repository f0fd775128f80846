package automaton

import (
	"github.com/dam/spot/bddlib"
	"github.com/dam/spot/symdict"
)

// State is an observable automaton state, independent of whatever internal
// representation the owning Automaton uses. States compare by a total order
// (Compare), not merely an equivalence, so they can seed ordered maps and
// deterministic tie-breaks (spec §4.2.2, §4.3.2).
type State interface {
	// Compare returns <0, 0 or >0 as the receiver sorts before, the same
	// as, or after other. Comparing states from different Automatons is
	// undefined.
	Compare(other State) int
	// Hash mixes the state's identity into a uint32, stable across calls
	// and consistent with Compare (Compare == 0 implies equal Hash).
	Hash() uint32
	// Clone returns an independent copy whose ownership transfers to the
	// caller (spec §5).
	Clone() State
}

// SuccIterator enumerates the successor transitions of a single state. Its
// lifetime is owned by whichever frame holds it; First must be called
// before the first Current*/Advance, and Advance past the last transition
// is a contract violation surfaced at the call site that detects it
// (spec §7).
type SuccIterator interface {
	First()
	Advance()
	Done() bool
	CurrentState() State
	CurrentLabel() bddlib.Node
	// CurrentAcceptance reports the complement, within the automaton's
	// full marker set, of the transition's acceptance value — "missing
	// markers" rather than "present markers". This polarity is the
	// contract (spec §6) and must not be "fixed".
	CurrentAcceptance() bddlib.Node
}

// Automaton is the successor-iteration contract the emptiness check and the
// dumper are written against.
type Automaton interface {
	InitialState() State
	Successors(s State) SuccIterator
	FormatState(s State) string
	Dict() symdict.Dictionary
	AllAcceptanceConditions() bddlib.Node
	NegAcceptanceConditions() bddlib.Node
	SupportLabels(s State) bddlib.Node
	SupportVariables(s State) bddlib.Node
}
