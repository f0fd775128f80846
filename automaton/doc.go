// Package automaton defines the abstract successor-iteration contract (spec
// §4, C3) that emptiness.Check consumes and taa.Automaton implements. It is
// the sole interface between the emptiness check and any concrete
// automaton — a translator that builds something other than a TAA only
// needs to satisfy Automaton to be checkable.
package automaton
