package engine

import "fmt"

// Error is the status code every engine entry point returns.
// Ok (0) signals success, every other value is a failure.
//
// Modules may report codes outside of the enumeration below; clients must
// be prepared to see them.
type Error int

// Status codes. The numbering follows the one established by classic font
// engines, grouped by category in steps of 0x10.
const (
	Ok Error = 0x00

	// generic errors
	CannotOpenResource   Error = 0x01
	UnknownFileFormat    Error = 0x02
	InvalidFileFormat    Error = 0x03
	InvalidVersion       Error = 0x04
	LowerModuleVersion   Error = 0x05
	InvalidArgument      Error = 0x06
	UnimplementedFeature Error = 0x07
	InvalidTable         Error = 0x08
	InvalidOffset        Error = 0x09
	ArrayTooLarge        Error = 0x0A
	MissingModule        Error = 0x0B
	MissingProperty      Error = 0x0C

	// glyph/character errors
	InvalidGlyphIndex    Error = 0x10
	InvalidCharacterCode Error = 0x11
	InvalidGlyphFormat   Error = 0x12
	CannotRenderGlyph    Error = 0x13
	InvalidOutline       Error = 0x14
	InvalidComposite     Error = 0x15
	TooManyHints         Error = 0x16
	InvalidPixelSize     Error = 0x17

	// handle errors
	InvalidHandle        Error = 0x20
	InvalidLibraryHandle Error = 0x21
	InvalidDriverHandle  Error = 0x22
	InvalidFaceHandle    Error = 0x23
	InvalidSizeHandle    Error = 0x24
	InvalidSlotHandle    Error = 0x25
	InvalidCharMapHandle Error = 0x26
	InvalidCacheHandle   Error = 0x27
	InvalidStreamHandle  Error = 0x28

	// driver errors
	TooManyDrivers    Error = 0x30
	TooManyExtensions Error = 0x31

	// memory errors
	OutOfMemory    Error = 0x40
	UnlistedObject Error = 0x41

	// stream errors
	CannotOpenStream       Error = 0x51
	InvalidStreamSeek      Error = 0x52
	InvalidStreamSkip      Error = 0x53
	InvalidStreamRead      Error = 0x54
	InvalidStreamOperation Error = 0x55
	InvalidFrameOperation  Error = 0x56
	NestedFrameAccess      Error = 0x57
	InvalidFrameRead       Error = 0x58
)

var errorDescriptions = map[Error]string{
	Ok:                     "no error",
	CannotOpenResource:     "cannot open resource",
	UnknownFileFormat:      "unknown file format",
	InvalidFileFormat:      "broken file",
	InvalidVersion:         "invalid engine version",
	LowerModuleVersion:     "module version is too low",
	InvalidArgument:        "invalid argument",
	UnimplementedFeature:   "unimplemented feature",
	InvalidTable:           "broken table",
	InvalidOffset:          "broken offset within table",
	ArrayTooLarge:          "array allocation size too large",
	MissingModule:          "missing module",
	MissingProperty:        "missing property",
	InvalidGlyphIndex:      "invalid glyph index",
	InvalidCharacterCode:   "invalid character code",
	InvalidGlyphFormat:     "unsupported glyph image format",
	CannotRenderGlyph:      "cannot render this glyph format",
	InvalidOutline:         "invalid outline",
	InvalidComposite:       "invalid composite glyph",
	TooManyHints:           "too many hints",
	InvalidPixelSize:       "invalid pixel size",
	InvalidHandle:          "invalid object handle",
	InvalidLibraryHandle:   "invalid library handle",
	InvalidDriverHandle:    "invalid module handle",
	InvalidFaceHandle:      "invalid face handle",
	InvalidSizeHandle:      "invalid size handle",
	InvalidSlotHandle:      "invalid glyph slot handle",
	InvalidCharMapHandle:   "invalid charmap handle",
	InvalidCacheHandle:     "invalid cache manager handle",
	InvalidStreamHandle:    "invalid stream handle",
	TooManyDrivers:         "too many modules",
	TooManyExtensions:      "too many extensions",
	OutOfMemory:            "out of memory",
	UnlistedObject:         "unlisted object",
	CannotOpenStream:       "cannot open stream",
	InvalidStreamSeek:      "invalid stream seek",
	InvalidStreamSkip:      "invalid stream skip",
	InvalidStreamRead:      "invalid stream read",
	InvalidStreamOperation: "invalid stream operation",
	InvalidFrameOperation:  "invalid frame operation",
	NestedFrameAccess:      "nested frame access",
	InvalidFrameRead:       "invalid frame read",
}

// Description returns a short text for a status code and whether the code
// is part of the enumeration.
func Description(code Error) (string, bool) {
	d, ok := errorDescriptions[code]
	return d, ok
}

func (code Error) String() string {
	if d, ok := errorDescriptions[code]; ok {
		return d
	}
	return fmt.Sprintf("status 0x%02x", int(code))
}
