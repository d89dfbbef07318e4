package engine

import (
	"bytes"
	"compress/gzip"
	"io"
)

// Inflated data may grow to maxInflation times the compressed size, but is
// always allowed minInflationLimit bytes.
const (
	maxInflation      = 100
	minInflationLimit = 1 << 20
)

// gzipFilter inflates gzip-compressed font data, as found e.g. with
// *.pcf.gz or *.ttf.gz files.
type gzipFilter struct{}

func (gzipFilter) Name() string { return "gzip" }
func (gzipFilter) Version() int { return 1 }

func (gzipFilter) FilterStream(mem *Memory, data []byte) (Block, bool, Error) {
	if len(data) < 2 || data[0] != 0x1f || data[1] != 0x8b {
		return data, false, Ok
	}
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, false, InvalidStreamOperation
	}
	defer zr.Close()
	limit := maxInflation * len(data)
	if limit < minInflationLimit {
		limit = minInflationLimit
	}
	size := 4 * len(data) // typical compression ratio for font data
	out, status := readAll(mem, io.LimitReader(zr, int64(limit)+1), size)
	if status == InvalidStreamRead {
		tracer().Debugf("gzip: corrupt compressed stream")
		return nil, false, InvalidFileFormat
	} else if status != Ok {
		return nil, false, status
	}
	if len(out) > limit {
		tracer().Infof("gzip: stream inflates beyond %d bytes", limit)
		mem.free(out)
		return nil, false, ArrayTooLarge
	}
	return out, true, Ok
}
