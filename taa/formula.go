package taa

import (
	"github.com/dam/spot/bddlib"
	"github.com/dam/spot/symdict"
)

// Formula is the LTL-sub-formula-to-BDD translation boundary (spec §1, §6:
// the LTL-to-automaton translator is an external collaborator). AddLabel
// consumes a Formula instead of importing any concrete LTL package, so any
// translator that can produce a BDD node for a registered proposition can
// feed a TAA transition's label.
type Formula interface {
	// ToBDD returns the BDD encoding of the formula, registering any
	// propositions it mentions against dict under client.
	ToBDD(dict symdict.Dictionary, client symdict.Client) bddlib.Node
}
