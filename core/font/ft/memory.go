package ft

import (
	"sync"

	"github.com/npillmayer/ftlib/core/font/engine"
)

// MaxAllocSize is the largest block the allocator hands out. Requests
// beyond it are answered with nil, which the engine reports as OutOfMemory.
const MaxAllocSize = 1 << 30

var (
	memoryOnce  sync.Once
	memoryTable *engine.Memory
)

// Memory returns the memory record shared by every library of this
// process. Clients must not modify it.
func Memory() *engine.Memory {
	memoryOnce.Do(func() {
		memoryTable = &engine.Memory{
			Alloc:   allocate,
			Free:    release,
			Realloc: reallocate,
		}
	})
	return memoryTable
}

func allocate(_ *engine.Memory, size int) engine.Block {
	if size < 0 || size > MaxAllocSize {
		return nil
	}
	return make(engine.Block, size)
}

// release is a no-op: the block becomes garbage as soon as the engine
// drops it.
func release(_ *engine.Memory, _ engine.Block) {}

func reallocate(mem *engine.Memory, _, newSize int, block engine.Block) engine.Block {
	if block == nil {
		return allocate(mem, newSize)
	}
	if newSize < 0 || newSize > MaxAllocSize {
		return nil
	}
	if newSize <= len(block) {
		return block[:newSize:newSize]
	}
	b := make(engine.Block, newSize)
	copy(b, block)
	return b
}
