package engine

import (
	"bytes"
	"sort"

	"github.com/benoitkugler/textlayout/fonts"
	"github.com/benoitkugler/textlayout/fonts/bitmap"
	"github.com/benoitkugler/textlayout/fonts/type1"
)

// Drivers for the non-SFNT formats supported by
// github.com/benoitkugler/textlayout: PCF bitmap fonts and Type 1 fonts in
// PFB or PFA form. Both formats hold exactly one face per file.

const pcfMagic = "\x01fcp"

// bitmapDriver loads X11 PCF bitmap fonts.
type bitmapDriver struct{}

func (bitmapDriver) Name() string { return "bitmap" }
func (bitmapDriver) Version() int { return 1 }

func (bitmapDriver) InitFace(data []byte, faceIndex int, rec *FaceRec) (DriverFace, Error) {
	if !bytes.HasPrefix(data, []byte(pcfMagic)) {
		return nil, UnknownFileFormat
	}
	f, err := bitmap.Parse(bytes.NewReader(data))
	if err != nil {
		tracer().Debugf("bitmap: %v", err)
		return nil, InvalidFileFormat
	}
	return initSingleFace(f, faceIndex, rec, FaceFlagFixedSizes, func(gid fonts.GID) bool {
		_, ok := f.GlyphExtents(gid, 0, 0)
		return ok
	})
}

// type1Driver loads Adobe Type 1 fonts.
type type1Driver struct{}

func (type1Driver) Name() string { return "type1" }
func (type1Driver) Version() int { return 1 }

func (type1Driver) InitFace(data []byte, faceIndex int, rec *FaceRec) (DriverFace, Error) {
	if !isType1(data) {
		return nil, UnknownFileFormat
	}
	f, err := type1.Parse(bytes.NewReader(data))
	if err != nil {
		tracer().Debugf("type1: %v", err)
		return nil, InvalidFileFormat
	}
	return initSingleFace(f, faceIndex, rec, FaceFlagScalable, func(gid fonts.GID) bool {
		return f.GlyphName(gid) != ""
	})
}

// isType1 checks for a PFB segment header or the PFA comment line.
func isType1(data []byte) bool {
	if len(data) >= 2 && data[0] == 0x80 && data[1] == 0x01 {
		return true
	}
	return bytes.HasPrefix(data, []byte("%!PS-AdobeFont")) || bytes.HasPrefix(data, []byte("%!FontType"))
}

// initSingleFace fills rec for a single-face font format. hasGlyph reports
// whether a glyph index is in use; glyph indices are dense.
func initSingleFace(f fonts.Face, faceIndex int, rec *FaceRec, flags FaceFlags,
	hasGlyph func(fonts.GID) bool) (DriverFace, Error) {
	//
	rec.NumFaces = 1
	rec.Flags = flags
	if faceIndex < 0 {
		return nil, Ok
	}
	if faceIndex > 0 {
		return nil, InvalidArgument
	}
	summary, err := f.LoadSummary()
	if err != nil {
		return nil, InvalidTable
	}
	rec.FaceIndex = 0
	rec.FamilyName = summary.Familly
	rec.StyleName = summary.Style
	rec.NumGlyphs = sort.Search(1<<16, func(i int) bool { return !hasGlyph(fonts.GID(i)) })
	rec.UnitsPerEM = int(f.Upem())
	return &textlayoutFace{face: f}, Ok
}

type textlayoutFace struct {
	face fonts.Face
}

func (f *textlayoutFace) CharIndex(r rune) uint32 {
	gid, ok := f.face.NominalGlyph(r)
	if !ok {
		return 0
	}
	return uint32(gid)
}

func (f *textlayoutFace) Done() {
	f.face = nil
}
