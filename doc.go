// Package spot is a symbolic ω-automata core for LTL model checking: a
// free-list BDD variable allocator, a reference-counted symbolic
// dictionary, a Transition-based Alternating Automaton engine, and
// Couvreur's on-the-fly emptiness check with lasso counter-example
// reconstruction.
//
// Everything lives under focused subpackages:
//
//	bddlib/     — hash-consed BDD engine (constants, Ithvar, AND/OR/NOT, Exist, Support)
//	varalloc/   — best-fit free-list allocator over a bddlib.Manager's variable space
//	symdict/    — reference-counted proposition/acceptance-marker namespace
//	automaton/  — the successor-iteration contract every engine is written against
//	taa/        — the Transition-based Alternating Automaton engine
//	emptiness/  — Couvreur's SCC-based emptiness check and cycle reconstruction
//	dump/       — thin text serialiser for reachable transitions
//
// There is no LTL parser here (spec non-goal): taa.Formula is the seam a
// translator would plug into. The module ships no example program; the
// emptiness tests wire bddlib, varalloc, symdict and taa together by hand.
package spot
