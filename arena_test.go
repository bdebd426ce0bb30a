package natrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestArenaStatsCountAllocations(t *testing.T) {
	cfg := DefaultConfig()
	a := NewArena(cfg)

	stats := a.Stats()
	assert.Equal(t, 0, stats.AllocCount)

	newPass(a)
	newPass(a)
	newIntLiteral(a, 0, 1)

	stats = a.Stats()
	assert.Equal(t, 3, stats.AllocCount)
	assert.Greater(t, stats.AllocSize, 0)
	assert.GreaterOrEqual(t, stats.ChunkSize, stats.AllocSize)
}

func TestArenaOversizeRequestGetsOwnChunk(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ArenaChunkSize = 1 // every request is now "oversize"
	a := NewArena(cfg)

	before := a.Stats().ChunkCount
	newIntLiteral(a, 0, 1) // exprBase{int,int} is larger than the 1-byte chunk size
	after := a.Stats().ChunkCount
	assert.Greater(t, after, before)
}

func TestArenaDefaultsWhenChunkSizeUnset(t *testing.T) {
	cfg := Config{} // zero value, no ArenaChunkSize
	a := NewArena(cfg)
	assert.Equal(t, DefaultConfig().ArenaChunkSize, a.defaultSize)
}
