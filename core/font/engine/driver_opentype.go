package engine

import (
	"bytes"
	"encoding/binary"

	"github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
)

// opentypeDriver loads fonts using github.com/go-text/typesetting. Besides
// the SFNT flavours it understands WOFF containers and PostScript-flavoured
// ('typ1') SFNTs.
type opentypeDriver struct{}

func (opentypeDriver) Name() string { return "opentype" }
func (opentypeDriver) Version() int { return 1 }

func (opentypeDriver) InitFace(data []byte, faceIndex int, rec *FaceRec) (DriverFace, Error) {
	sig, ok := signature(data)
	if !ok {
		return nil, UnknownFileFormat
	}
	switch sig {
	case tagTrueType, tagOpenType, tagAppleTT, tagPostScript, tagCollection, tagWOFF, tagDfont:
	default:
		return nil, UnknownFileFormat
	}
	loaders, err := ot.NewLoaders(bytes.NewReader(data))
	if err != nil {
		tracer().Debugf("opentype: %v", err)
		return nil, InvalidFileFormat
	}
	rec.NumFaces = len(loaders)
	rec.Flags = FaceFlagScalable | FaceFlagSFNT
	if sig == tagCollection {
		rec.Flags |= FaceFlagCollection
	}
	if faceIndex < 0 {
		return nil, Ok
	}
	if faceIndex >= rec.NumFaces {
		return nil, InvalidArgument
	}
	ld := loaders[faceIndex]
	ft, err := font.NewFont(ld)
	if err != nil {
		tracer().Debugf("opentype: face %d: %v", faceIndex, err)
		return nil, InvalidTable
	}
	desc := ft.Describe()
	rec.FaceIndex = faceIndex
	rec.FamilyName = desc.Family
	rec.StyleName = styleName(desc.Aspect)
	rec.NumGlyphs = numGlyphs(ld)
	rec.UnitsPerEM = int(ft.Upem())
	return &opentypeFace{face: font.NewFace(ft)}, Ok
}

// numGlyphs reads the glyph count from the 'maxp' table.
func numGlyphs(ld *ot.Loader) int {
	maxp, err := ld.RawTable(ot.MustNewTag("maxp"))
	if err != nil || len(maxp) < 6 {
		return 0
	}
	return int(binary.BigEndian.Uint16(maxp[4:6]))
}

// styleName derives a style name like "Bold Italic" from a font aspect.
func styleName(aspect font.Aspect) string {
	bold := aspect.Weight >= font.WeightBold
	italic := aspect.Style == font.StyleItalic
	switch {
	case bold && italic:
		return "Bold Italic"
	case bold:
		return "Bold"
	case italic:
		return "Italic"
	}
	return "Regular"
}

type opentypeFace struct {
	face *font.Face
}

func (f *opentypeFace) CharIndex(r rune) uint32 {
	gid, ok := f.face.NominalGlyph(r)
	if !ok {
		return 0
	}
	return uint32(gid)
}

func (f *opentypeFace) Done() {
	f.face = nil
}
