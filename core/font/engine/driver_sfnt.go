package engine

import (
	"errors"

	"golang.org/x/image/font/sfnt"
)

// Container signatures, read from the first four bytes of font data.
const (
	tagTrueType   uint32 = 0x00010000
	tagOpenType   uint32 = 0x4f54544f // 'OTTO'
	tagAppleTT    uint32 = 0x74727565 // 'true'
	tagPostScript uint32 = 0x74797031 // 'typ1'
	tagCollection uint32 = 0x74746366 // 'ttcf'
	tagWOFF       uint32 = 0x774f4646 // 'wOFF'
	tagDfont      uint32 = 0x00000100 // resource fork data offset
)

func signature(data []byte) (uint32, bool) {
	if len(data) < 4 {
		return 0, false
	}
	return uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3]), true
}

// sfntDriver loads TrueType and CFF-flavoured OpenType fonts, collections
// and dfonts, using golang.org/x/image/font/sfnt.
type sfntDriver struct{}

func (sfntDriver) Name() string { return "sfnt" }
func (sfntDriver) Version() int { return 1 }

func (sfntDriver) InitFace(data []byte, faceIndex int, rec *FaceRec) (DriverFace, Error) {
	sig, ok := signature(data)
	if !ok {
		return nil, UnknownFileFormat
	}
	switch sig {
	case tagTrueType, tagOpenType, tagAppleTT, tagCollection, tagDfont:
	default:
		return nil, UnknownFileFormat
	}
	coll, err := sfnt.ParseCollection(data)
	if err != nil {
		tracer().Debugf("sfnt: %v", err)
		return nil, InvalidFileFormat
	}
	rec.NumFaces = coll.NumFonts()
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
	font, err := coll.Font(faceIndex)
	if err != nil {
		tracer().Debugf("sfnt: face %d: %v", faceIndex, err)
		return nil, InvalidFileFormat
	}
	f := &sfntFace{font: font}
	rec.FaceIndex = faceIndex
	rec.FamilyName = f.name(sfnt.NameIDFamily)
	rec.StyleName = f.name(sfnt.NameIDSubfamily)
	rec.NumGlyphs = font.NumGlyphs()
	rec.UnitsPerEM = int(font.UnitsPerEm())
	return f, Ok
}

type sfntFace struct {
	font *sfnt.Font
	buf  sfnt.Buffer
}

func (f *sfntFace) name(id sfnt.NameID) string {
	n, err := f.font.Name(&f.buf, id)
	if err != nil {
		if !errors.Is(err, sfnt.ErrNotFound) {
			tracer().Debugf("sfnt: name %d: %v", id, err)
		}
		return ""
	}
	return n
}

func (f *sfntFace) CharIndex(r rune) uint32 {
	gid, err := f.font.GlyphIndex(&f.buf, r)
	if err != nil {
		return 0
	}
	return uint32(gid)
}

func (f *sfntFace) Done() {
	f.font = nil
}
