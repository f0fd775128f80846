package varalloc

import (
	"errors"
	"sync"

	"github.com/dam/spot/bddlib"
)

// ErrInvalidLength is returned when Allocate is called with n < 1.
var ErrInvalidLength = errors.New("varalloc: length must be >= 1")

// ErrOverlappingRelease indicates a release request describes a range that
// overlaps a range already on the free list — a programming error per
// spec §7: releasing unallocated or already-free variables is a contract
// violation, not a recoverable condition.
var ErrOverlappingRelease = errors.New("varalloc: release overlaps a held range")

// Range is a half-open interval [Base, Base+Length) of BDD variable indices.
type Range struct {
	Base   int
	Length int
}

func (r Range) end() int { return r.Base + r.Length }

// Option configures an Allocator at construction time.
type Option func(*config)

type config struct {
	initialVarnum int
}

// WithInitialVarnum sets the number of variables the allocator starts with
// on its first Initialize call. It mirrors the original's file-scope
// "int bdd_allocator::varnum = 2" default.
func WithInitialVarnum(n int) Option {
	return func(c *config) { c.initialVarnum = n }
}

// Allocator is a best-fit free-list allocator over a bddlib.Manager's
// variable space. It is not safe for concurrent use without external
// synchronisation beyond the single mutex it holds for its own bookkeeping;
// the manager itself is assumed process-wide and non-reentrant (spec §5).
type Allocator struct {
	mu sync.Mutex

	mgr    *bddlib.Manager
	varnum int
	free   []Range // sorted by Base, pairwise disjoint and non-adjacent

	initOnce      sync.Once
	initialVarnum int
}

// New creates an Allocator over mgr. Initialize must be called (directly or
// implicitly via the first Allocate/Release) before use.
func New(mgr *bddlib.Manager, opts ...Option) *Allocator {
	cfg := config{initialVarnum: 2}
	for _, o := range opts {
		o(&cfg)
	}
	return &Allocator{mgr: mgr, initialVarnum: cfg.initialVarnum}
}

// Initialize is idempotent. The first call sets the manager's varnum to the
// allocator's configured initial size and places those variables on the
// free list; subsequent calls are no-ops.
func (a *Allocator) Initialize() {
	a.initOnce.Do(func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.mgr.SetVarnum(a.initialVarnum)
		a.varnum = a.mgr.Varnum()
		if a.varnum > 0 {
			a.free = []Range{{Base: 0, Length: a.varnum}}
		}
	})
}

// Varnum returns the manager's current variable count.
func (a *Allocator) Varnum() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.varnum
}

// FreeList returns a copy of the current free list, sorted by Base.
func (a *Allocator) FreeList() []Range {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Range, len(a.free))
	copy(out, a.free)
	return out
}

// Allocate reserves n contiguous variable indices and returns the base of
// the reserved range [base, base+n). It picks the smallest free range of
// length >= n (best-fit), tying by lowest base; if no free range fits it
// grows the manager's varnum, absorbing a free range that directly abuts
// the current varnum rather than leaving it stranded.
func (a *Allocator) Allocate(n int) (int, error) {
	if n < 1 {
		return 0, ErrInvalidLength
	}

	a.Initialize()

	a.mu.Lock()
	defer a.mu.Unlock()

	best := -1
	for i, r := range a.free {
		if r.Length < n {
			continue
		}
		if r.Length == n {
			best = i
			break
		}
		if best == -1 || r.Length < a.free[best].Length {
			best = i
		}
	}

	if best != -1 {
		r := a.free[best]
		base := r.Base
		if r.Length == n {
			a.free = append(a.free[:best], a.free[best+1:]...)
		} else {
			a.free[best] = Range{Base: r.Base + n, Length: r.Length - n}
		}
		return base, nil
	}

	// No free range fits: grow the manager's variable space.
	if len(a.free) > 0 {
		last := a.free[len(a.free)-1]
		if last.end() == a.varnum {
			grow := n - last.Length
			a.mgr.ExtVarnum(grow)
			a.varnum += grow
			a.free = a.free[:len(a.free)-1]
			return last.Base, nil
		}
	}

	base := a.varnum
	a.mgr.ExtVarnum(n)
	a.varnum += n
	return base, nil
}

// Release returns [base, base+n) to the free list, extending or merging
// adjacent ranges so invariants (a)-(c) of spec §3 keep holding. Releasing a
// range that overlaps any range already on the free list is a contract
// violation (ErrOverlappingRelease) — it can only mean the caller is
// releasing variables it never held, or is double-releasing.
func (a *Allocator) Release(base, n int) error {
	if n < 1 {
		return ErrInvalidLength
	}

	a.Initialize()

	a.mu.Lock()
	defer a.mu.Unlock()

	end := base + n
	if base < 0 || end > a.varnum {
		return ErrOverlappingRelease
	}
	for _, r := range a.free {
		if r.Base < end && base < r.end() {
			return ErrOverlappingRelease
		}
	}

	for i, cur := range a.free {
		switch {
		case cur.end() == base:
			cur.Length += n
			if i+1 < len(a.free) && a.free[i+1].Base == cur.end() {
				cur.Length += a.free[i+1].Length
				a.free = append(a.free[:i+1], a.free[i+2:]...)
			}
			a.free[i] = cur
			return nil
		case cur.Base == end:
			cur.Base -= n
			cur.Length += n
			a.free[i] = cur
			return nil
		case cur.Base > end:
			a.free = append(a.free, Range{})
			copy(a.free[i+1:], a.free[i:])
			a.free[i] = Range{Base: base, Length: n}
			return nil
		}
	}

	a.free = append(a.free, Range{Base: base, Length: n})
	return nil
}
