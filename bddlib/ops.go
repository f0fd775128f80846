package bddlib

import "github.com/bits-and-blooms/bitset"

// op identifies a binary Apply operator for the purposes of op-cache keying.
type op uint8

const (
	opAnd op = iota
	opOr
	opNot
)

// opKey is the LRU cache key for a memoised binary (or unary, with b unused)
// operation result.
type opKey struct {
	o    op
	a, b int32
}

// And returns the conjunction of ns. And() (no arguments) is the identity
// for AND, i.e. true.
func (m *Manager) And(ns ...Node) Node {
	if len(ns) == 0 {
		return m.True()
	}
	acc := ns[0]
	for _, n := range ns[1:] {
		acc = m.and2(acc, n)
	}
	return acc
}

// Or returns the disjunction of ns. Or() (no arguments) is the identity for
// OR, i.e. false.
func (m *Manager) Or(ns ...Node) Node {
	if len(ns) == 0 {
		return m.False()
	}
	acc := ns[0]
	for _, n := range ns[1:] {
		acc = m.or2(acc, n)
	}
	return acc
}

// Not returns the negation of n.
func (m *Manager) Not(n Node) Node {
	return Node{m.notRec(n.idx)}
}

func (m *Manager) and2(a, b Node) Node {
	return Node{m.andRec(a.idx, b.idx)}
}

func (m *Manager) or2(a, b Node) Node {
	return Node{m.orRec(a.idx, b.idx)}
}

func (m *Manager) andRec(a, b int32) int32 {
	switch {
	case a == falseIdx || b == falseIdx:
		return falseIdx
	case a == trueIdx:
		return b
	case b == trueIdx:
		return a
	case a == b:
		return a
	}
	if a > b {
		a, b = b, a // canonicalise operand order for better cache reuse
	}
	key := opKey{opAnd, a, b}
	if r, ok := m.opCache.Get(key); ok {
		return r
	}
	na, nb := m.nodes[a], m.nodes[b]
	var v, lo, hi int32
	switch {
	case na.v == nb.v:
		v = na.v
		lo = m.andRec(na.lo, nb.lo)
		hi = m.andRec(na.hi, nb.hi)
	case na.v < nb.v:
		v = na.v
		lo = m.andRec(na.lo, b)
		hi = m.andRec(na.hi, b)
	default:
		v = nb.v
		lo = m.andRec(a, nb.lo)
		hi = m.andRec(a, nb.hi)
	}
	res := m.mk(v, lo, hi)
	m.opCache.Add(key, res)
	return res
}

func (m *Manager) orRec(a, b int32) int32 {
	switch {
	case a == trueIdx || b == trueIdx:
		return trueIdx
	case a == falseIdx:
		return b
	case b == falseIdx:
		return a
	case a == b:
		return a
	}
	if a > b {
		a, b = b, a
	}
	key := opKey{opOr, a, b}
	if r, ok := m.opCache.Get(key); ok {
		return r
	}
	na, nb := m.nodes[a], m.nodes[b]
	var v, lo, hi int32
	switch {
	case na.v == nb.v:
		v = na.v
		lo = m.orRec(na.lo, nb.lo)
		hi = m.orRec(na.hi, nb.hi)
	case na.v < nb.v:
		v = na.v
		lo = m.orRec(na.lo, b)
		hi = m.orRec(na.hi, b)
	default:
		v = nb.v
		lo = m.orRec(a, nb.lo)
		hi = m.orRec(a, nb.hi)
	}
	res := m.mk(v, lo, hi)
	m.opCache.Add(key, res)
	return res
}

func (m *Manager) notRec(a int32) int32 {
	switch a {
	case falseIdx:
		return trueIdx
	case trueIdx:
		return falseIdx
	}
	key := opKey{opNot, a, a}
	if r, ok := m.opCache.Get(key); ok {
		return r
	}
	na := m.nodes[a]
	res := m.mk(na.v, m.notRec(na.lo), m.notRec(na.hi))
	m.opCache.Add(key, res)
	return res
}

// Exist returns the existential quantification of n over vars — the result
// of ORing together the cofactors of n with each variable in vars set to
// false and to true, in turn, over all of vars. A single-variable vars is
// the only shape the core ever needs (projecting one acceptance marker out
// of neg_all), but the general case is implemented since the contract (§6)
// specifies a variable set.
func (m *Manager) Exist(n Node, vars []int) Node {
	if len(vars) == 0 {
		return n
	}
	quantified := make(map[int32]bool, len(vars))
	for _, v := range vars {
		quantified[int32(v)] = true
	}
	memo := make(map[int32]int32)
	return Node{m.existRec(n.idx, quantified, memo)}
}

func (m *Manager) existRec(a int32, quantified map[int32]bool, memo map[int32]int32) int32 {
	if a == falseIdx || a == trueIdx {
		return a
	}
	if r, ok := memo[a]; ok {
		return r
	}
	na := m.nodes[a]
	lo := m.existRec(na.lo, quantified, memo)
	hi := m.existRec(na.hi, quantified, memo)
	var res int32
	if quantified[na.v] {
		res = m.orRec(lo, hi)
	} else {
		res = m.mk(na.v, lo, hi)
	}
	memo[a] = res
	return res
}

// Support returns the sorted list of variables n depends on.
func (m *Manager) Support(n Node) []int {
	bs := bitset.New(uint(m.varnum))
	seen := make(map[int32]bool)
	m.supportRec(n.idx, bs, seen)
	out := make([]int, 0, bs.Count())
	for i, ok := bs.NextSet(0); ok; i, ok = bs.NextSet(i + 1) {
		out = append(out, int(i))
	}
	return out
}

func (m *Manager) supportRec(a int32, bs *bitset.BitSet, seen map[int32]bool) {
	if a == falseIdx || a == trueIdx || seen[a] {
		return
	}
	seen[a] = true
	na := m.nodes[a]
	bs.Set(uint(na.v))
	m.supportRec(na.lo, bs, seen)
	m.supportRec(na.hi, bs, seen)
}

// SupportCube returns n's support as a single positive cube (the AND of
// Ithvar(v) for every v in Support(n)), the representation taa.Automaton
// uses to intersect the variable supports of several labels.
func (m *Manager) SupportCube(n Node) Node {
	res := m.True()
	for _, v := range m.Support(n) {
		iv, err := m.Ithvar(v)
		if err != nil {
			panic(err)
		}
		res = m.And(res, iv)
	}
	return res
}
