// Package symdict implements the symbolic dictionary boundary (spec §6, C2):
// the shared namespace mapping named propositions and acceptance markers to
// BDD variables, reference-counted per registering client so a variable
// survives as long as any client still holds it.
//
// Spec treats the dictionary as "interface only" (a boundary component); this
// package supplies both the Dictionary interface automata are written
// against and a default implementation so taa.Automaton has something
// concrete to register against without importing taa itself — the "the
// automaton holds a non-owning reference to the dictionary" design note
// (spec §9), modelled the way the teacher's core.Graph holds no back-pointer
// to the structures that reference its vertices.
package symdict
