package taa

import (
	"sync"

	"github.com/dam/spot/automaton"
	"github.com/dam/spot/bddlib"
	"github.com/dam/spot/symdict"
)

var _ automaton.Automaton = (*Automaton)(nil)

// Automaton is a Transition-based Alternating Automaton under construction
// or under query. It exclusively owns its locations and transitions; the
// symdict.Dictionary it registers against is held as a non-owning reference
// (spec §9) and is told to forget this automaton's variables via Close.
type Automaton struct {
	mu sync.Mutex

	bdd    *bddlib.Manager
	dict   symdict.Dictionary
	client symdict.Client

	locations map[string]*location
	order     []*location
	initial   *location

	allTransitions []*Transition

	negAll         bddlib.Node
	markerVars     []int        // acceptance variables declared on this automaton, in introduction order
	declared       map[int]bool // markerVars membership, for O(1) re-declaration checks
	allAcc         bddlib.Node
	allAccComputed bool
}

// New creates an empty Automaton registered against dict through a freshly
// minted client identity.
func New(bdd *bddlib.Manager, dict symdict.Dictionary) *Automaton {
	return &Automaton{
		bdd:       bdd,
		dict:      dict,
		client:    symdict.NewClient(),
		locations: make(map[string]*location),
		negAll:    bdd.True(),
		declared:  make(map[int]bool),
	}
}

// Close releases every BDD variable this automaton holds in its dictionary
// (spec §9: "on automaton destruction, it calls unregister_all(self)").
func (a *Automaton) Close() {
	a.dict.UnregisterAll(a.client)
}

// addLocation interns name, returning the existing location if name was
// already added. The first location ever added becomes the initial
// location unless overridden by SetInitial.
func (a *Automaton) addLocation(name string) *location {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.addLocationLocked(name)
}

func (a *Automaton) addLocationLocked(name string) *location {
	if loc, ok := a.locations[name]; ok {
		return loc
	}
	loc := &location{name: name, id: len(a.order)}
	a.locations[name] = loc
	a.order = append(a.order, loc)
	if a.initial == nil {
		a.initial = loc
	}
	return loc
}

// AddLocation interns name as a location, creating it if this is the first
// reference to it.
func (a *Automaton) AddLocation(name string) {
	a.addLocation(name)
}

// SetInitial interns name (if needed) and makes it the initial location,
// overriding whatever AddLocation ordering would otherwise have chosen.
func (a *Automaton) SetInitial(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.initial = a.addLocationLocked(name)
}

// CreateTransition creates a transition from src to the deduplicated set of
// locations named in dstNames. The label defaults to true and the
// acceptance to false; use AddLabel/AddAcceptance on the returned handle to
// refine them.
func (a *Automaton) CreateTransition(src string, dstNames []string) *Transition {
	a.mu.Lock()
	defer a.mu.Unlock()

	srcLoc := a.addLocationLocked(src)
	dstLocs := make([]*location, 0, len(dstNames))
	for _, n := range dstNames {
		dstLocs = append(dstLocs, a.addLocationLocked(n))
	}
	t := &Transition{
		dst:        dedupSortedLocations(dstLocs),
		label:      a.bdd.True(),
		acceptance: a.bdd.False(),
	}
	srcLoc.transitions = append(srcLoc.transitions, t)
	a.allTransitions = append(a.allTransitions, t)
	return t
}

// AddLabel ANDs the BDD translation of f into t's label.
func (a *Automaton) AddLabel(t *Transition, f Formula) {
	a.mu.Lock()
	defer a.mu.Unlock()
	node := f.ToBDD(a.dict, a.client)
	t.label = a.bdd.And(t.label, node)
}

// DeclareAcceptance registers markerID against the dictionary and, the
// first time this automaton sees it, folds it into all_acceptance_conditions
// and retroactively ANDs its negation into every existing transition's
// acceptance value (acceptance monotonicity, spec §8) — without attaching
// the marker to any particular transition. This is what makes spec §8
// scenario 4 possible: a marker can be part of an automaton's acceptance
// alphabet while no transition ever emits it.
func (a *Automaton) DeclareAcceptance(markerID string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.declareAcceptanceLocked(markerID)
}

func (a *Automaton) declareAcceptanceLocked(markerID string) int {
	v, err := a.dict.RegisterAcceptanceMarker(markerID, a.client)
	if err != nil {
		// The dictionary's own allocator is process-wide and only fails on
		// a contract violation that cannot occur via this registration
		// path; surfacing it silently here would hide a real bug, so make
		// it loud instead of corrupting acceptance bookkeeping.
		panic(err)
	}
	if a.declared[v] {
		return v
	}

	negV, err := a.bdd.NIthvar(v)
	if err != nil {
		panic(err)
	}
	a.negAll = a.bdd.And(a.negAll, negV)
	for _, tr := range a.allTransitions {
		tr.acceptance = a.bdd.And(tr.acceptance, negV)
	}
	a.markerVars = append(a.markerVars, v)
	a.declared[v] = true
	a.allAccComputed = false
	return v
}

// AddAcceptance records that t carries acceptance marker markerID,
// declaring the marker first if this automaton has not seen it before. The
// operation is idempotent on the marker's declaration and additive on t.
func (a *Automaton) AddAcceptance(t *Transition, markerID string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	v := a.declareAcceptanceLocked(markerID)

	posV, err := a.bdd.Ithvar(v)
	if err != nil {
		panic(err)
	}
	withoutV := a.bdd.Exist(a.negAll, []int{v})
	term := a.bdd.And(posV, withoutV)
	t.acceptance = a.bdd.Or(t.acceptance, term)
}

// InitialState implements automaton.Automaton.
func (a *Automaton) InitialState() automaton.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.initial == nil {
		return newState(nil)
	}
	return newState([]int{a.initial.id})
}

// FormatState implements automaton.Automaton, rendering a state as
// "{name1,name2}" in interned-id order, matching the original's
// format_state_set.
func (a *Automaton) FormatState(s automaton.State) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	st := s.(*state)
	if len(st.ids) == 0 {
		return "{}"
	}
	out := "{"
	for i, id := range st.ids {
		if i > 0 {
			out += ","
		}
		out += a.order[id].name
	}
	return out + "}"
}

// Dict implements automaton.Automaton.
func (a *Automaton) Dict() symdict.Dictionary { return a.dict }

// NegAcceptanceConditions implements automaton.Automaton.
func (a *Automaton) NegAcceptanceConditions() bddlib.Node {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.negAll
}

// AllAcceptanceConditions implements automaton.Automaton, lazily
// recomputing the cache whenever a new marker invalidated it (spec §5,
// §9: "a lazily-filled memoised projection invalidated whenever a marker
// is added").
func (a *Automaton) AllAcceptanceConditions() bddlib.Node {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.allAcceptanceConditionsLocked()
}

func (a *Automaton) allAcceptanceConditionsLocked() bddlib.Node {
	if a.allAccComputed {
		return a.allAcc
	}
	res := a.bdd.False()
	for _, v := range a.markerVars {
		posV, _ := a.bdd.Ithvar(v)
		withoutV := a.bdd.Exist(a.negAll, []int{v})
		res = a.bdd.Or(res, a.bdd.And(posV, withoutV))
	}
	a.allAcc = res
	a.allAccComputed = true
	return res
}

// SupportLabels implements automaton.Automaton: the OR of every outgoing
// label from s's member locations.
func (a *Automaton) SupportLabels(s automaton.State) bddlib.Node {
	a.mu.Lock()
	defer a.mu.Unlock()
	res := a.bdd.False()
	for _, id := range s.(*state).ids {
		for _, t := range a.order[id].transitions {
			res = a.bdd.Or(res, t.label)
		}
	}
	return res
}

// SupportVariables implements automaton.Automaton: the AND of the variable
// supports of every outgoing label from s's member locations.
func (a *Automaton) SupportVariables(s automaton.State) bddlib.Node {
	a.mu.Lock()
	defer a.mu.Unlock()
	res := a.bdd.True()
	for _, id := range s.(*state).ids {
		for _, t := range a.order[id].transitions {
			res = a.bdd.And(res, a.bdd.SupportCube(t.label))
		}
	}
	return res
}
