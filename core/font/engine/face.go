package engine

import "fmt"

// FaceFlags describe properties of a face.
type FaceFlags uint32

// Face flags.
const (
	FaceFlagScalable       FaceFlags = 1 << iota // outline font
	FaceFlagSFNT                                 // SFNT container (TrueType/OpenType)
	FaceFlagExternalStream                       // data is owned by the client
	FaceFlagCollection                           // font file is a collection
	FaceFlagCompressed                           // data was inflated by a filter
	FaceFlagFixedSizes                           // bitmap strikes
)

func (ff FaceFlags) String() string {
	names := []string{"scalable", "sfnt", "external", "collection", "compressed", "fixed-sizes"}
	s := ""
	for i, n := range names {
		if ff&(1<<uint(i)) != 0 {
			if s != "" {
				s += "|"
			}
			s += n
		}
	}
	if s == "" {
		return fmt.Sprintf("0x%x", uint32(ff))
	}
	return s
}

// FaceRec holds the public properties of a face.
type FaceRec struct {
	NumFaces   int       // number of faces in the font file
	FaceIndex  int       // index of this face, -1 for a header-only face
	FamilyName string    // may be empty
	StyleName  string    // may be empty
	NumGlyphs  int       //
	UnitsPerEM int       // design units per EM square
	Flags      FaceFlags //
	DriverName string    // name of the driver which loaded the face
}

// face is the engine object behind a face handle.
type face struct {
	handle   Handle
	lib      *library
	rec      FaceRec
	refcount int
	stream   Block // engine-owned data, nil for client-owned data
	impl     DriverFace
}

// NewFace opens the font file at path and creates face number faceIndex
// from it. For a negative faceIndex, the face only reports NumFaces.
func NewFace(library Handle, path string, faceIndex int, aface *Handle) Error {
	if aface == nil {
		return InvalidArgument
	}
	*aface = 0
	if path == "" {
		return InvalidArgument
	}
	lib := lookupLibrary(library)
	if lib == nil {
		return InvalidLibraryHandle
	}
	lib.Lock()
	defer lib.Unlock()
	if lib.refcount == 0 {
		return InvalidLibraryHandle
	}
	data, err := readStream(lib.memory, path)
	if err != Ok {
		tracer().Debugf("library %d: cannot read %s: %s", lib.handle, path, err)
		return err
	}
	return lib.openFace(data, true, faceIndex, aface)
}

// NewMemoryFace creates face number faceIndex from font data in memory.
// The data is not copied: the client must neither modify nor discard it
// while the face is alive.
func NewMemoryFace(library Handle, base []byte, faceIndex int, aface *Handle) Error {
	if aface == nil {
		return InvalidArgument
	}
	*aface = 0
	lib := lookupLibrary(library)
	if lib == nil {
		return InvalidLibraryHandle
	}
	lib.Lock()
	defer lib.Unlock()
	if lib.refcount == 0 {
		return InvalidLibraryHandle
	}
	return lib.openFace(base, false, faceIndex, aface)
}

// openFace runs filters and drivers on data. If owned is set, data has been
// allocated with lib.memory and is either kept by the new face or freed.
//
// must be called with lib locked
func (lib *library) openFace(data Block, owned bool, faceIndex int, aface *Handle) Error {
	var flags FaceFlags
	if !owned {
		flags |= FaceFlagExternalStream
	}
	for _, m := range lib.modules {
		filter, ok := m.(Filter)
		if !ok {
			continue
		}
		out, applied, err := filter.FilterStream(lib.memory, data)
		if err != Ok {
			if owned {
				lib.memory.free(data)
			}
			return err
		}
		if applied {
			tracer().Debugf("library %d: stream filtered by %q", lib.handle, filter.Name())
			if owned {
				lib.memory.free(data)
			}
			data, owned = out, true
			flags = (flags | FaceFlagCompressed) &^ FaceFlagExternalStream
		}
	}
	var (
		rec    FaceRec
		impl   DriverFace
		status = MissingModule
	)
	for _, m := range lib.modules {
		driver, ok := m.(Driver)
		if !ok {
			continue
		}
		rec = FaceRec{}
		impl, status = driver.InitFace(data, faceIndex, &rec)
		if status == Ok {
			rec.DriverName = driver.Name()
			break
		}
		if status != UnknownFileFormat {
			tracer().Debugf("library %d: driver %q failed: %s", lib.handle, driver.Name(), status)
			break
		}
	}
	if status != Ok {
		if owned {
			lib.memory.free(data)
		}
		return status
	}
	if faceIndex < 0 {
		rec.FaceIndex = -1
	}
	rec.Flags |= flags
	f := &face{
		lib:      lib,
		rec:      rec,
		refcount: 1,
		impl:     impl,
	}
	if owned {
		f.stream = data
	}
	f.handle = handles.register(f)
	lib.faces.Put(f.handle, f)
	*aface = f.handle
	tracer().Debugf("library %d: created face %d (%s/%s, driver %s)", lib.handle, f.handle,
		rec.FamilyName, rec.StyleName, rec.DriverName)
	return Ok
}

// must be called with f.lib locked
func (f *face) destroy() {
	if f.impl != nil {
		f.impl.Done()
		f.impl = nil
	}
	if f.stream != nil {
		f.lib.memory.free(f.stream)
		f.stream = nil
	}
	f.refcount = 0
	handles.retire(f.handle)
}

// withFace looks up a face and calls fn with the face's library locked.
func withFace(h Handle, fn func(f *face) Error) Error {
	f := lookupFace(h)
	if f == nil {
		return InvalidFaceHandle
	}
	f.lib.Lock()
	defer f.lib.Unlock()
	if f.refcount == 0 { // destroyed while we were waiting for the lock
		return InvalidFaceHandle
	}
	return fn(f)
}

// ReferenceFace increments the reference count of a face.
func ReferenceFace(h Handle) Error {
	return withFace(h, func(f *face) Error {
		f.refcount++
		return Ok
	})
}

// DoneFace decrements the reference count of a face and destroys it when
// the count drops to zero.
func DoneFace(h Handle) Error {
	return withFace(h, func(f *face) Error {
		f.refcount--
		if f.refcount > 0 {
			return Ok
		}
		f.lib.faces.Remove(f.handle)
		f.destroy()
		tracer().Debugf("face %d destroyed", h)
		return Ok
	})
}

// FaceProperties copies the public record of a face to out.
func FaceProperties(h Handle, out *FaceRec) Error {
	if out == nil {
		return InvalidArgument
	}
	return withFace(h, func(f *face) Error {
		*out = f.rec
		return Ok
	})
}

// GetCharIndex returns the glyph index of a code point. It returns 0 if
// the glyph is missing, for header-only faces and for invalid handles.
func GetCharIndex(h Handle, charcode rune) uint32 {
	var gid uint32
	withFace(h, func(f *face) Error {
		if f.impl != nil {
			gid = f.impl.CharIndex(charcode)
		}
		return Ok
	})
	return gid
}
