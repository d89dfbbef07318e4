package engine

// Block is a chunk of memory handed out by a Memory record.
type Block []byte

// Memory is the record of memory callbacks a library uses for every buffer
// it owns. The callbacks receive the record itself, so implementations may
// keep state in User.
//
// Alloc returns nil if a block of the requested size cannot be provided.
// Free must accept a nil block. Realloc must preserve the first
// min(len(block), newSize) bytes of block; curSize is informational.
type Memory struct {
	User    interface{}
	Alloc   func(mem *Memory, size int) Block
	Free    func(mem *Memory, block Block)
	Realloc func(mem *Memory, curSize, newSize int, block Block) Block
}

func (mem *Memory) valid() bool {
	return mem != nil && mem.Alloc != nil && mem.Free != nil && mem.Realloc != nil
}

// alloc wraps mem.Alloc, translating a nil result into OutOfMemory.
func (mem *Memory) alloc(size int) (Block, Error) {
	if size < 0 {
		return nil, InvalidArgument
	}
	b := mem.Alloc(mem, size)
	if b == nil && size > 0 {
		return nil, OutOfMemory
	}
	return b, Ok
}

func (mem *Memory) realloc(block Block, newSize int) (Block, Error) {
	if newSize < 0 {
		return nil, InvalidArgument
	}
	if block == nil {
		return mem.alloc(newSize)
	}
	b := mem.Realloc(mem, len(block), newSize, block)
	if b == nil && newSize > 0 {
		return nil, OutOfMemory
	}
	return b, Ok
}

func (mem *Memory) free(block Block) {
	if block == nil {
		return
	}
	mem.Free(mem, block)
}
