package ft

import (
	"fmt"
	"sync"

	"github.com/npillmayer/ftlib/core/font/engine"
)

// Face is a font face created by a Library. Its properties are read once,
// when the face is created.
type Face struct {
	lib  *Library
	raw  engine.Handle
	rec  engine.FaceRec
	once sync.Once
	err  error
}

func newFace(lib *Library, h engine.Handle) (*Face, error) {
	f := &Face{lib: lib, raw: h}
	if err := check(engine.FaceProperties(h, &f.rec)); err != nil {
		engine.DoneFace(h)
		return nil, err
	}
	return f, nil
}

// FamilyName returns the family name of the face, e.g. "Times". It may be
// empty.
func (f *Face) FamilyName() string { return f.rec.FamilyName }

// StyleName returns the style name of the face, e.g. "Bold Italic". It may
// be empty.
func (f *Face) StyleName() string { return f.rec.StyleName }

// NumFaces is the number of faces in the font file f has been loaded from.
func (f *Face) NumFaces() int { return f.rec.NumFaces }

// FaceIndex is the index of f within its font file, or -1 if the face has
// been created with a negative index.
func (f *Face) FaceIndex() int { return f.rec.FaceIndex }

func (f *Face) NumGlyphs() int { return f.rec.NumGlyphs }
func (f *Face) UnitsPerEM() int { return f.rec.UnitsPerEM }
func (f *Face) Flags() engine.FaceFlags { return f.rec.Flags }
func (f *Face) DriverName() string { return f.rec.DriverName }
func (f *Face) Raw() engine.Handle { return f.raw }
func (f *Face) Library() *Library { return f.lib }
func (f *Face) IsScalable() bool { return f.rec.Flags&engine.FaceFlagScalable != 0 }
func (f *Face) HasFlags(ff engine.FaceFlags) bool { return f.rec.Flags&ff == ff }

// CharIndex returns the glyph index for a code point, or 0 if the face has
// no glyph for r (or has already been released).
func (f *Face) CharIndex(r rune) uint32 {
	return engine.GetCharIndex(f.raw, r)
}

// Done releases the face. Only the first call has an effect; subsequent
// calls return the result of the first one.
func (f *Face) Done() error {
	f.once.Do(func() {
		f.err = check(engine.DoneFace(f.raw))
		if f.err != nil {
			tracer().Debugf("releasing face %d: %v", f.raw, f.err)
		}
	})
	return f.err
}

func (f *Face) String() string {
	return fmt.Sprintf("face(%s/%s #%d)", f.rec.FamilyName, f.rec.StyleName, f.rec.FaceIndex)
}
