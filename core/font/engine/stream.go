package engine

import (
	"errors"
	"io"
	"os"
)

// streamChunk is the minimum growth step when reading a stream of unknown
// size.
const streamChunk = 64 * 1024

// readStream reads the file at path into a block allocated from mem.
func readStream(mem *Memory, path string) (Block, Error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, CannotOpenResource
	}
	defer file.Close()
	size := streamChunk
	if info, err := file.Stat(); err == nil {
		if info.IsDir() {
			return nil, CannotOpenResource
		}
		if info.Size() > 0 {
			size = int(info.Size()) + 1 // +1 to see EOF without growing
		}
	}
	return readAll(mem, file, size)
}

// readAll reads r until EOF into a block allocated from mem, starting with
// a block of size bytes and growing it as needed. The returned block is
// trimmed to the number of bytes read.
func readAll(mem *Memory, r io.Reader, size int) (Block, Error) {
	buf, status := mem.alloc(size)
	if status != Ok {
		return nil, status
	}
	n := 0
	for {
		if n == len(buf) {
			grow := len(buf)
			if grow < streamChunk {
				grow = streamChunk
			}
			nbuf, status := mem.realloc(buf, len(buf)+grow)
			if status != Ok {
				mem.free(buf)
				return nil, status
			}
			buf = nbuf
		}
		m, err := r.Read(buf[n:])
		n += m
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			mem.free(buf)
			return nil, InvalidStreamRead
		}
	}
	if n < len(buf) {
		nbuf, status := mem.realloc(buf, n)
		if status != Ok {
			mem.free(buf)
			return nil, status
		}
		buf = nbuf
	}
	return buf, Ok
}
