// Package taa implements the Transition-based Alternating Automaton engine
// (spec §4.2, C4): states are sets of named locations, and successors are
// computed by jointly expanding each member location's transition list into
// product transitions, fusing labels by conjunction and acceptance by
// disjunction, merging transitions that subsume each other.
//
// Ported from tgba/taa.cc. Location identity is interned to a small integer
// at AddLocation time (design note §9: this replaces the original's raw
// state-set pointer identity with an opaque handle, matching the teacher's
// own core.Graph convention of interning vertices by name rather than by
// address) so that observable State values compare and hash deterministically
// across runs.
package taa
