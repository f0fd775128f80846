// Package emptiness implements Couvreur's on-the-fly SCC-based emptiness
// check (spec §4.3, C5) over any automaton.Automaton, plus lasso
// counter-example reconstruction when the language is found non-empty.
//
// Ported from the outline in tgbaalgos/emptinesscheck.hh: the classic
// recursive DFS is rewritten iteratively with an explicit frame stack (spec
// §9), one frame per live state holding its own successor enumerator so
// enumerator lifetimes are explicit and released on pop — the same
// explicit-stack-frame idiom the teacher's dfs/bfs packages use for their
// own traversals.
package emptiness
