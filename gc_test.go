package natrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGCCollectSweepsUnrooted(t *testing.T) {
	cfg := DefaultConfig()
	gc := NewGC(cfg)

	garbage := NewList(gc, 1)
	gc.Root(garbage)
	gc.Unroot(garbage)
	require.Equal(t, 1, gc.ObjectsCount())

	gc.Collect()
	assert.Equal(t, 0, gc.ObjectsCount())
}

func TestGCCollectKeepsRootedAndReachable(t *testing.T) {
	cfg := DefaultConfig()
	gc := NewGC(cfg)

	list := NewList(gc, 2)
	gc.Root(list)
	AppendList(list, NewInt(gc, 1000)) // not cached, linked into the heap
	AppendList(list, NewInt(gc, 2000))
	require.Equal(t, 3, gc.ObjectsCount())

	gc.Collect()
	assert.Equal(t, 3, gc.ObjectsCount(), "list and its elements are all reachable from the root")
	gc.Unroot(list)

	gc.Collect()
	assert.Equal(t, 0, gc.ObjectsCount(), "nothing reachable once the list is unrooted")
}

func TestGCCollectIsIdempotent(t *testing.T) {
	gc := NewGC(DefaultConfig())
	list := NewList(gc, 1)
	gc.Root(list)
	AppendList(list, NewInt(gc, 999))

	gc.Collect()
	first := gc.ObjectsCount()
	gc.Collect()
	second := gc.ObjectsCount()
	assert.Equal(t, first, second)
}

func TestGCUnrootOutOfOrderIsFatal(t *testing.T) {
	gc := NewGC(DefaultConfig())
	a := NewList(gc, 1)
	b := NewList(gc, 1)
	gc.Root(a)
	gc.Root(b)
	assert.Panics(t, func() {
		gc.Unroot(a) // b is on top, not a
	})
}

func TestGCRootStackOverflowIsFatal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GCRootStackCapacity = 2
	gc := NewGC(cfg)

	gc.Root(NewList(gc, 1))
	gc.Root(NewList(gc, 1))
	assert.Panics(t, func() {
		gc.Root(NewList(gc, 1))
	})
}

func TestGCThresholdGrowsWhenSurvivorsStayDense(t *testing.T) {
	// A rooted, densely-occupied heap should survive many Alloc-triggered
	// collections without its object count ever dropping — each
	// collection finds the same objects still reachable from the root,
	// and the threshold must grow past occupancy or Alloc would busy-loop
	// recollecting on every single call.
	cfg := DefaultConfig()
	cfg.GCInitialThreshold = 8
	gc := NewGC(cfg)

	list := NewList(gc, 32)
	gc.Root(list)
	for i := 0; i < 7; i++ {
		AppendList(list, NewInt(gc, int64(10000+i)))
	}
	require.Equal(t, 8, gc.ObjectsCount())

	for i := 0; i < 20; i++ {
		AppendList(list, NewInt(gc, int64(20000+i)))
	}
	assert.Equal(t, 28, gc.ObjectsCount())
}

func TestGCAllocTriggersCollectionAtThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GCInitialThreshold = 2
	gc := NewGC(cfg)

	garbage := NewList(gc, 1)
	gc.Root(garbage)
	gc.Unroot(garbage)
	require.Equal(t, 1, gc.ObjectsCount())

	// Allocating past the threshold triggers a collection that should
	// sweep the now-unrooted garbage before linking in the new object.
	NewList(gc, 1)
	NewList(gc, 1)
	assert.LessOrEqual(t, gc.ObjectsCount(), 2)
}
