// Package bddlib is a minimal, canonical Binary Decision Diagram engine.
//
// Spec treats the BDD package as an external collaborator consumed through a
// small, fixed interface (constant true/false, variable literals, AND/OR,
// equality, existential projection, support extraction, and varnum growth).
// bddlib supplies exactly that surface, hash-consed so that structurally
// equal sub-diagrams collapse onto one Node and Equal reduces to an id
// comparison — the property varalloc, taa and emptiness all rely on.
//
// Nodes are reduced and ordered: a node's variable is strictly less than
// both of its children's variables, and no node has identical low/high
// children. Variable order is simply variable index order, fixed at
// creation time by SetVarnum/ExtVarnum — the core never reorders variables.
package bddlib
