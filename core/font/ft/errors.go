package ft

import (
	"fmt"

	"github.com/npillmayer/ftlib/core"
	"github.com/npillmayer/ftlib/core/font/engine"
)

// ErrorCode is a status code reported by the font engine. Codes are passed
// through verbatim; the constants below name the ones the engine
// documents, but any other value may show up.
type ErrorCode int

// Error codes, mirroring the engine's status codes.
const (
	Ok                     = ErrorCode(engine.Ok)
	CannotOpenResource     = ErrorCode(engine.CannotOpenResource)
	UnknownFileFormat      = ErrorCode(engine.UnknownFileFormat)
	InvalidFileFormat      = ErrorCode(engine.InvalidFileFormat)
	InvalidVersion         = ErrorCode(engine.InvalidVersion)
	LowerModuleVersion     = ErrorCode(engine.LowerModuleVersion)
	InvalidArgument        = ErrorCode(engine.InvalidArgument)
	UnimplementedFeature   = ErrorCode(engine.UnimplementedFeature)
	InvalidTable           = ErrorCode(engine.InvalidTable)
	InvalidOffset          = ErrorCode(engine.InvalidOffset)
	ArrayTooLarge          = ErrorCode(engine.ArrayTooLarge)
	MissingModule          = ErrorCode(engine.MissingModule)
	MissingProperty        = ErrorCode(engine.MissingProperty)
	InvalidGlyphIndex      = ErrorCode(engine.InvalidGlyphIndex)
	InvalidCharacterCode   = ErrorCode(engine.InvalidCharacterCode)
	InvalidGlyphFormat     = ErrorCode(engine.InvalidGlyphFormat)
	CannotRenderGlyph      = ErrorCode(engine.CannotRenderGlyph)
	InvalidOutline         = ErrorCode(engine.InvalidOutline)
	InvalidComposite       = ErrorCode(engine.InvalidComposite)
	TooManyHints           = ErrorCode(engine.TooManyHints)
	InvalidPixelSize       = ErrorCode(engine.InvalidPixelSize)
	InvalidHandle          = ErrorCode(engine.InvalidHandle)
	InvalidLibraryHandle   = ErrorCode(engine.InvalidLibraryHandle)
	InvalidDriverHandle    = ErrorCode(engine.InvalidDriverHandle)
	InvalidFaceHandle      = ErrorCode(engine.InvalidFaceHandle)
	InvalidSizeHandle      = ErrorCode(engine.InvalidSizeHandle)
	InvalidSlotHandle      = ErrorCode(engine.InvalidSlotHandle)
	InvalidCharMapHandle   = ErrorCode(engine.InvalidCharMapHandle)
	InvalidCacheHandle     = ErrorCode(engine.InvalidCacheHandle)
	InvalidStreamHandle    = ErrorCode(engine.InvalidStreamHandle)
	TooManyDrivers         = ErrorCode(engine.TooManyDrivers)
	TooManyExtensions      = ErrorCode(engine.TooManyExtensions)
	OutOfMemory            = ErrorCode(engine.OutOfMemory)
	UnlistedObject         = ErrorCode(engine.UnlistedObject)
	CannotOpenStream       = ErrorCode(engine.CannotOpenStream)
	InvalidStreamSeek      = ErrorCode(engine.InvalidStreamSeek)
	InvalidStreamSkip      = ErrorCode(engine.InvalidStreamSkip)
	InvalidStreamRead      = ErrorCode(engine.InvalidStreamRead)
	InvalidStreamOperation = ErrorCode(engine.InvalidStreamOperation)
	InvalidFrameOperation  = ErrorCode(engine.InvalidFrameOperation)
	NestedFrameAccess      = ErrorCode(engine.NestedFrameAccess)
	InvalidFrameRead       = ErrorCode(engine.InvalidFrameRead)
)

// Known reports whether c is one of the documented engine codes.
func (c ErrorCode) Known() bool {
	_, ok := engine.Description(engine.Error(c))
	return ok
}

func (c ErrorCode) String() string {
	if d, ok := engine.Description(engine.Error(c)); ok {
		return d
	}
	return fmt.Sprintf("unknown error code 0x%02x", int(c))
}

// Error is the error type for every failing call into the font engine.
// It carries the engine's status code unchanged.
//
// Use errors.Is with an *Error template to test for a code:
//
//     if errors.Is(err, &ft.Error{Code: ft.CannotOpenResource}) { … }
//
type Error struct {
	Code ErrorCode
}

func (e *Error) Error() string {
	if !e.Code.Known() {
		return fmt.Sprintf("ft: unknown error code 0x%02x", int(e.Code))
	}
	return fmt.Sprintf("ft: %s (0x%02x)", e.Code, int(e.Code))
}

// Is matches errors by code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t != nil && t.Code == e.Code
}

// ErrorCode is part of interface core.AppError.
func (e *Error) ErrorCode() int {
	return int(e.Code)
}

// UserMessage is part of interface core.AppError.
func (e *Error) UserMessage() string {
	return "font engine: " + e.Code.String()
}

var _ core.AppError = &Error{}

// check converts an engine status into an error. Ok maps to nil.
func check(status engine.Error) error {
	if status == engine.Ok {
		return nil
	}
	return &Error{Code: ErrorCode(status)}
}
