package bddlib

import (
	"encoding/binary"
	"errors"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrVariableOutOfRange is returned by Ithvar/NIthvar when the requested
// variable index is not below the manager's current Varnum.
var ErrVariableOutOfRange = errors.New("bddlib: variable index out of range")

// Node is an opaque handle to a canonical BDD node. The zero Node is the
// constant false, exactly like an uninitialized bool defaults to false.
type Node struct {
	idx int32
}

const (
	falseIdx int32 = 0
	trueIdx  int32 = 1
)

// bddNode is an internal (variable, low, high) triple. Terminal nodes (idx 0
// and 1) carry no meaningful var/low/high and are never looked up in the
// unique table.
type bddNode struct {
	v      int32
	lo, hi int32
}

// Manager owns the node table, the hash-consing unique table and the
// operation cache for a single BDD universe. It is not safe for concurrent
// use — mirroring the single-threaded, non-reentrant BDD package assumed by
// spec §5.
type Manager struct {
	varnum int

	nodes  []bddNode
	unique map[uint64][]int32 // hash bucket -> candidate node indices

	opCache *lru.Cache[opKey, int32]
}

// Option configures a Manager at construction time.
type Option func(*managerConfig)

type managerConfig struct {
	cacheCapacity int
	nodeCapacity  int
}

// WithCacheCapacity bounds the Apply/Exist memoisation cache, mirroring the
// cache-size argument of the original package's bdd_init(nodes, cache).
func WithCacheCapacity(n int) Option {
	return func(c *managerConfig) { c.cacheCapacity = n }
}

// WithNodeCapacity pre-sizes the node table, mirroring bdd_init's node-count
// argument. It is only a hint; the table grows past it as needed.
func WithNodeCapacity(n int) Option {
	return func(c *managerConfig) { c.nodeCapacity = n }
}

// New creates a Manager with zero variables. Callers grow the variable space
// via SetVarnum/ExtVarnum — varalloc is the intended (and only expected)
// caller of those two methods.
func New(opts ...Option) *Manager {
	cfg := managerConfig{cacheCapacity: 5000, nodeCapacity: 50000}
	for _, o := range opts {
		o(&cfg)
	}

	cache, err := lru.New[opKey, int32](cfg.cacheCapacity)
	if err != nil {
		// Only fails for a non-positive size; fall back to a minimal cache
		// rather than letting a misconfigured capacity panic the core.
		cache, _ = lru.New[opKey, int32](1)
	}

	m := &Manager{
		nodes:   make([]bddNode, 2, cfg.nodeCapacity),
		unique:  make(map[uint64][]int32),
		opCache: cache,
	}
	m.nodes[falseIdx] = bddNode{}
	m.nodes[trueIdx] = bddNode{}
	return m
}

// True returns the constant true node.
func (m *Manager) True() Node { return Node{trueIdx} }

// False returns the constant false node.
func (m *Manager) False() Node { return Node{falseIdx} }

// Varnum returns the number of variables currently defined.
func (m *Manager) Varnum() int { return m.varnum }

// SetVarnum grows the variable universe to n. It never shrinks it: calls
// with n <= Varnum() are no-ops, matching the underlying package's
// "the allocator never shrinks varnum" contract.
func (m *Manager) SetVarnum(n int) {
	if n <= m.varnum {
		return
	}
	m.varnum = n
}

// ExtVarnum grows the variable universe by k.
func (m *Manager) ExtVarnum(k int) {
	if k <= 0 {
		return
	}
	m.SetVarnum(m.varnum + k)
}

func hashKey(v, lo, hi int32) uint64 {
	var buf [12]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(v))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(lo))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(hi))
	return xxhash.Sum64(buf[:])
}

// mk returns the canonical node for (v, lo, hi), applying the BDD reduction
// rule (a node with lo == hi is redundant and collapses to that child) and
// hash-consing everything else so equal triples always return the same idx.
func (m *Manager) mk(v, lo, hi int32) int32 {
	if lo == hi {
		return lo
	}
	h := hashKey(v, lo, hi)
	for _, cand := range m.unique[h] {
		n := m.nodes[cand]
		if n.v == v && n.lo == lo && n.hi == hi {
			return cand
		}
	}
	idx := int32(len(m.nodes))
	m.nodes = append(m.nodes, bddNode{v: v, lo: lo, hi: hi})
	m.unique[h] = append(m.unique[h], idx)
	return idx
}

// Ithvar returns the node for the positive literal of variable i.
func (m *Manager) Ithvar(i int) (Node, error) {
	if i < 0 || i >= m.varnum {
		return Node{}, ErrVariableOutOfRange
	}
	return Node{m.mk(int32(i), falseIdx, trueIdx)}, nil
}

// NIthvar returns the node for the negative literal of variable i.
func (m *Manager) NIthvar(i int) (Node, error) {
	if i < 0 || i >= m.varnum {
		return Node{}, ErrVariableOutOfRange
	}
	return Node{m.mk(int32(i), trueIdx, falseIdx)}, nil
}

// Equal reports whether a and b denote the same Boolean function. Because
// every node is hash-consed, this is simply an identity comparison.
func (m *Manager) Equal(a, b Node) bool { return a.idx == b.idx }

// IsFalse reports whether n is the constant false.
func (m *Manager) IsFalse(n Node) bool { return n.idx == falseIdx }

// IsTrue reports whether n is the constant true.
func (m *Manager) IsTrue(n Node) bool { return n.idx == trueIdx }
