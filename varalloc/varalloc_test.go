package varalloc

import (
	"testing"

	"github.com/dam/spot/bddlib"
	"github.com/stretchr/testify/require"
)

func newFreshAllocator(t *testing.T) *Allocator {
	t.Helper()
	mgr := bddlib.New()
	a := New(mgr, WithInitialVarnum(0))
	a.Initialize()
	return a
}

// Scenario 1 (spec §8): allocate 4, allocate 4, release the first 4,
// allocate 2 must return base 0. The allocator starts with zero variables,
// so afterwards the free list is exactly [(2,2)] and varnum is 8.
func TestAllocatorFragmentation(t *testing.T) {
	a := newFreshAllocator(t)

	base1, err := a.Allocate(4)
	require.NoError(t, err)
	require.Equal(t, 0, base1)

	base2, err := a.Allocate(4)
	require.NoError(t, err)
	require.Equal(t, 4, base2)

	require.NoError(t, a.Release(base1, 4))

	base3, err := a.Allocate(2)
	require.NoError(t, err)
	require.Equal(t, 0, base3)

	free := a.FreeList()
	require.Equal(t, []Range{{Base: 2, Length: 2}}, free)
	require.Equal(t, 8, a.Varnum())
}

// Scenario 2 (spec §8): free list [(0,3),(7,5)], release (3,4) coalesces
// into a single [(0,12)] range.
func TestAllocatorCoalescing(t *testing.T) {
	mgr := bddlib.New()
	a := New(mgr, WithInitialVarnum(0))
	a.Initialize()

	a.mu.Lock()
	a.varnum = 12
	a.free = []Range{{Base: 0, Length: 3}, {Base: 7, Length: 5}}
	a.mu.Unlock()
	mgr.SetVarnum(12)

	require.NoError(t, a.Release(3, 4))

	free := a.FreeList()
	require.Equal(t, []Range{{Base: 0, Length: 12}}, free)
}

func TestAllocatorBestFitTieBreaksOnLowestBase(t *testing.T) {
	mgr := bddlib.New()
	a := New(mgr, WithInitialVarnum(0))
	a.Initialize()

	a.mu.Lock()
	a.varnum = 20
	a.free = []Range{{Base: 0, Length: 4}, {Base: 10, Length: 4}}
	a.mu.Unlock()
	mgr.SetVarnum(20)

	base, err := a.Allocate(4)
	require.NoError(t, err)
	require.Equal(t, 0, base, "two equal-length ranges must tie-break to the lowest base")
}

func TestAllocatorGrowsWithoutAbuttingFreeRange(t *testing.T) {
	a := newFreshAllocator(t)

	base, err := a.Allocate(5)
	require.NoError(t, err)
	require.Equal(t, 0, base)
	require.Equal(t, 5, a.Varnum())

	// The whole initial space was consumed (no abutting free range): a
	// further allocation must extend varnum from scratch.
	base2, err := a.Allocate(3)
	require.NoError(t, err)
	require.Equal(t, 5, base2)
	require.Equal(t, 8, a.Varnum())
}

func TestAllocatorAbsorbsAbuttingFreeRangeOnGrowth(t *testing.T) {
	mgr := bddlib.New()
	a := New(mgr, WithInitialVarnum(0))
	a.Initialize()

	a.mu.Lock()
	a.varnum = 10
	a.free = []Range{{Base: 8, Length: 2}}
	a.mu.Unlock()
	mgr.SetVarnum(10)

	base, err := a.Allocate(5)
	require.NoError(t, err)
	require.Equal(t, 8, base, "allocation should absorb the abutting free range and grow only by the difference")
	require.Equal(t, 13, a.Varnum())
	require.Empty(t, a.FreeList())
}

func TestAllocateInvalidLength(t *testing.T) {
	a := newFreshAllocator(t)
	_, err := a.Allocate(0)
	require.ErrorIs(t, err, ErrInvalidLength)
}

func TestReleaseOverlapIsContractViolation(t *testing.T) {
	a := newFreshAllocator(t)
	base, err := a.Allocate(4)
	require.NoError(t, err)
	require.NoError(t, a.Release(base, 4))

	// Releasing an already-free range is a contract violation.
	err = a.Release(base, 4)
	require.ErrorIs(t, err, ErrOverlappingRelease)
}

func TestVarnumNeverShrinksAcrossReleases(t *testing.T) {
	a := newFreshAllocator(t)
	base, err := a.Allocate(6)
	require.NoError(t, err)
	before := a.Varnum()
	require.NoError(t, a.Release(base, 6))
	require.Equal(t, before, a.Varnum())
}
