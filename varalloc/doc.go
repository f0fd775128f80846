// Package varalloc implements the symbolic variable allocator (spec §4.1,
// C1): a free-list allocator that hands out contiguous ranges of BDD
// variable indices from a bddlib.Manager, growing the manager's variable
// count only when necessary and coalescing released ranges back together.
//
// Ported from misc/bddalloc.cc, generalised from the original's file-scope
// static state (bdd_allocator::initialized / bdd_allocator::varnum) into a
// guarded struct, per the "isolate global BDD package state behind a single
// initialisation guard" design note: Allocator is the sole component
// permitted to grow its Manager's varnum.
package varalloc
