package fontregistry

import (
	"sort"
	"sync"

	"github.com/derekparker/trie"
	"github.com/npillmayer/ftlib/core"
	"github.com/npillmayer/ftlib/core/font"
	"github.com/npillmayer/ftlib/core/font/ft"
	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
)

// Registry is a type for holding loaded faces. All faces of a registry are
// created from one library, which the registry co-owns.
type Registry struct {
	sync.Mutex
	lib      *ft.Library
	faces    map[string]*ft.Face
	names    *trie.Trie // normalized names, for prefix search
	fallback *ft.Face
	closed   bool
}

// NewRegistry creates a registry using library lib. The registry takes a
// shared reference to lib (see ft.Library.Share), thus the client may close
// lib independently of the registry.
func NewRegistry(lib *ft.Library) (*Registry, error) {
	shared, err := lib.Share()
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "font registry needs a valid font library")
	}
	return &Registry{
		lib:   shared,
		faces: make(map[string]*ft.Face),
		names: trie.New(),
	}, nil
}

// StoreFace pushes a face into the registry if it isn't contained yet.
//
// The face will be stored using the normalized font name as a key. If this
// key is already associated with a face, that face will not be overridden
// and StoreFace returns false. The registry takes over responsibility for
// calling Done on a stored face.
func (fr *Registry) StoreFace(normalizedName string, f *ft.Face) bool {
	if f == nil {
		tracer().Errorf("registry cannot store null face")
		return false
	}
	fr.Lock()
	defer fr.Unlock()
	if fr.closed {
		tracer().Errorf("registry is closed, cannot store face %s", normalizedName)
		return false
	}
	if _, ok := fr.faces[normalizedName]; ok {
		return false
	}
	tracer().Debugf("registry stores face %s as %s", f, normalizedName)
	fr.faces[normalizedName] = f
	fr.names.Add(normalizedName, f)
	return true
}

// Face returns the face stored under a normalized name.
func (fr *Registry) Face(normalizedName string) (*ft.Face, error) {
	fr.Lock()
	defer fr.Unlock()
	if f, ok := fr.faces[normalizedName]; ok {
		return f, nil
	}
	return nil, core.Error(core.EMISSING, "font %s not found in registry", normalizedName)
}

// FacesWithPrefix returns the normalized names of all faces starting with
// prefix, sorted.
func (fr *Registry) FacesWithPrefix(prefix string) []string {
	fr.Lock()
	defer fr.Unlock()
	names := fr.names.PrefixSearch(prefix)
	sort.Strings(names)
	return names
}

// LoadFace loads a face from a font file and stores it under a name
// derived from the face's family and style names. If a face is already
// stored under this name, the new face is discarded and the stored one is
// returned.
func (fr *Registry) LoadFace(path string, faceIndex int) (*ft.Face, error) {
	f, err := fr.lib.NewFace(path, faceIndex)
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "cannot load font %s", path)
	}
	return fr.keep(NameOf(f), f)
}

// LoadMemoryFace creates a face from font data and stores it under a name
// derived from name and the face's style. data must stay unmodified for the
// lifetime of the registry.
func (fr *Registry) LoadMemoryFace(name string, data []byte, faceIndex int) (*ft.Face, error) {
	f, err := fr.lib.NewMemoryFace(data, faceIndex)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "cannot create font %s from data", name)
	}
	if name == "" {
		return fr.keep(NameOf(f), f)
	}
	style, weight := font.GuessStyleAndWeight(f.StyleName())
	return fr.keep(font.NormalizeFontname(name, style, weight), f)
}

func (fr *Registry) keep(key string, f *ft.Face) (*ft.Face, error) {
	if !fr.StoreFace(key, f) {
		f.Done()
		return fr.Face(key)
	}
	return f, nil
}

// NameOf returns the normalized name of a face.
func NameOf(f *ft.Face) string {
	style, weight := font.GuessStyleAndWeight(f.StyleName())
	return font.NormalizeFontname(f.FamilyName(), style, weight)
}

// Fallback returns a face to be used if everything else fails. It is
// created from the fallback font data once per registry.
func (fr *Registry) Fallback() (*ft.Face, error) {
	fr.Lock()
	defer fr.Unlock()
	if fr.fallback != nil {
		return fr.fallback, nil
	}
	if fr.closed {
		return nil, core.Error(core.ECLOSED, "font registry is closed")
	}
	f, err := fr.lib.NewMemoryFace(font.FallbackFontData(), 0)
	if err != nil { // cannot happen unless the engine has no sfnt driver
		return nil, core.WrapError(err, core.EINTERNAL, "cannot load fallback font %s", font.FallbackName)
	}
	tracer().Infof("font registry loaded fallback font %s", font.FallbackName)
	fr.fallback = f
	return f, nil
}

// FallbackFor returns the fallback face, style and weight notwithstanding,
// together with an error stating that no face for name is available.
func (fr *Registry) FallbackFor(name string, style xfont.Style, weight xfont.Weight) (*ft.Face, error) {
	f, err := fr.Fallback()
	if err != nil {
		return nil, err
	}
	return f, core.Error(core.EMISSING, "font %s not found, using %s",
		font.NormalizeFontname(name, style, weight), font.FallbackName)
}

// Size returns the number of faces stored.
func (fr *Registry) Size() int {
	fr.Lock()
	defer fr.Unlock()
	return len(fr.faces)
}

// LogFontList is a helper function to dump the list of known faces
// in a registry to the trace-file (log-level Info).
func (fr *Registry) LogFontList() {
	fr.Lock()
	defer fr.Unlock()
	level := tracer().GetTraceLevel()
	tracer().SetTraceLevel(tracing.LevelInfo)
	defer tracer().SetTraceLevel(level)
	tracer().Infof("--- registered fonts ---")
	names := fr.names.PrefixSearch("")
	sort.Strings(names)
	for _, k := range names {
		f := fr.faces[k]
		tracer().Infof("font [%s] = %s (%d glyphs, %s)", k, f, f.NumGlyphs(), f.DriverName())
	}
	if fr.fallback != nil {
		tracer().Infof("fallback = %s", fr.fallback)
	}
	tracer().Infof("------------------------")
}

// Close releases all faces of the registry and the registry's reference
// to the font library.
func (fr *Registry) Close() {
	fr.Lock()
	defer fr.Unlock()
	if fr.closed {
		return
	}
	fr.closed = true
	for name, f := range fr.faces {
		if err := f.Done(); err != nil {
			tracer().Debugf("releasing face %s: %v", name, err)
		}
	}
	if fr.fallback != nil {
		fr.fallback.Done()
	}
	fr.faces = make(map[string]*ft.Face)
	fr.names = trie.New()
	fr.fallback = nil
	fr.lib.Close()
}
