package natrix

import "unsafe"

// arenaAlignment matches original_source's NX_ALIGN_UP, which rounds
// every allocation up to a 16-byte boundary regardless of the
// platform's natural alignment, so the accounting math stays simple.
const arenaAlignment = 16

func alignUp(n int) int {
	return (n + arenaAlignment - 1) &^ (arenaAlignment - 1)
}

// Arena accounts for AST-node allocation the way
// original_source/src/util/arena.c's bump allocator does — chunked,
// 16-byte aligned, oversize requests get their own chunk — without
// actually bump-allocating raw bytes for Go values.
//
// A true byte-buffer bump arena is unsound here: AST nodes hold Expr/
// Stmt interfaces and slices, and Go's garbage collector does not scan
// an untyped []byte for the pointers hiding inside values packed into
// it via unsafe.Pointer. Packing them there would let the real GC
// collect a node's referents out from under it. So allocArena
// allocates every node with an ordinary `new(T)` — safe, and exactly
// as the AST's own lifetime already works in Go (kept alive by the
// reachability of the tree itself) — while Arena still tracks the
// chunk/allocation counters spec.md §4.1's stats() exposes, computed
// from the sizes that would have been requested.
type Arena struct {
	defaultSize int
	chunkUsed   int
	chunkCount  int
	oversizeCnt int
	oversizeSum int
	allocCount  int
	allocBytes  int
}

// NewArena creates an arena whose default chunk size is
// cfg.ArenaChunkSize (the spec default is 8 KiB).
func NewArena(cfg Config) *Arena {
	chunkSize := cfg.ArenaChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultConfig().ArenaChunkSize
	}
	return &Arena{defaultSize: chunkSize, chunkCount: 1}
}

// account folds a size-byte request into the chunk/stats model: if it
// exceeds the default chunk size it gets a dedicated chunk (counted
// separately, mirroring alloc_chunk's oversize path); otherwise it
// bumps the current chunk's pointer, opening a new chunk when the
// current one is full.
func (a *Arena) account(size int) {
	size = alignUp(size)
	a.allocCount++
	a.allocBytes += size
	if size > a.defaultSize {
		a.oversizeSum += size
		a.oversizeCnt++
		a.chunkCount++
		return
	}
	if a.chunkUsed+size > a.defaultSize {
		a.chunkCount++
		a.chunkUsed = 0
	}
	a.chunkUsed += size
}

// allocArena places a new T, zero-initialised, recording its size
// against a's chunk/allocation accounting.
func allocArena[T any](a *Arena) *T {
	var zero T
	a.account(int(unsafe.Sizeof(zero)))
	return new(T)
}

// ArenaStats reports the arena's chunk and allocation footprint, for
// the CLI's -gc-stats style diagnostics.
type ArenaStats struct {
	AllocCount int
	ChunkCount int
	AllocSize  int
	ChunkSize  int
}

func (a *Arena) Stats() ArenaStats {
	return ArenaStats{
		AllocCount: a.allocCount,
		ChunkCount: a.chunkCount,
		AllocSize:  a.allocBytes,
		ChunkSize:  a.oversizeSum + (a.chunkCount-a.oversizeCnt)*a.defaultSize,
	}
}
