// Package dump implements the thin text serialiser exposed by the core
// (spec §6): one record per transition, DFS from the initial state,
// duplicates omitted by a seen-state set.
//
// Ported from tgbaalgos/save.cc's save_rec/tgba_save_reachable, generalised
// from a fixed std::ostream to any io.Writer and from recursion to the
// iterative explicit-stack style the rest of the core uses (spec §9).
package dump
