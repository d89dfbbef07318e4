package engine

import "sync"

// Module is a component which may be added to a library. Concrete modules
// are either a Driver or a Filter.
type Module interface {
	Name() string // unique module name, e.g. "sfnt"
	Version() int // a module replaces another of the same name only if newer
}

// Driver is a font driver module. A driver inspects font data and, if it
// understands the format, fills in the public face record.
//
// InitFace must return UnknownFileFormat if it does not recognize the data,
// letting the engine try the next driver. Any other failure ends the search.
// For a negative faceIndex the driver only sets NumFaces and returns a nil
// DriverFace. Drivers must not modify data and may keep references to it.
type Driver interface {
	Module
	InitFace(data []byte, faceIndex int, rec *FaceRec) (DriverFace, Error)
}

// DriverFace is the driver-private part of a face.
type DriverFace interface {
	CharIndex(r rune) uint32 // glyph index for a code point, 0 if missing
	Done()                   // release driver resources
}

// Filter is a stream filter module. Filters get to see font data before
// any driver does. If a filter handles the data, it returns a new block
// allocated with mem, and applied = true. Otherwise it returns data itself
// with applied = false.
type Filter interface {
	Module
	FilterStream(mem *Memory, data []byte) (out Block, applied bool, status Error)
}

// --- Module class registry -------------------------------------------------

type moduleRegistry struct {
	sync.RWMutex
	classes  map[string]Module
	defaults []string
}

var modules = &moduleRegistry{
	classes: make(map[string]Module),
}

func init() {
	RegisterModule(sfntDriver{}, true)
	RegisterModule(opentypeDriver{}, true)
	RegisterModule(bitmapDriver{}, true)
	RegisterModule(type1Driver{}, true)
	RegisterModule(gzipFilter{}, true)
}

// RegisterModule makes a module class known process-wide, so it may be
// found by LookupModule. If asDefault is set, the module will be part of
// the set added by AddDefaultModules. Registering a name twice replaces
// the class, but keeps its position in the default set.
func RegisterModule(m Module, asDefault bool) {
	if m == nil {
		return
	}
	modules.Lock()
	defer modules.Unlock()
	name := m.Name()
	_, known := modules.classes[name]
	modules.classes[name] = m
	if asDefault && !(known && isDefault(name)) {
		modules.defaults = append(modules.defaults, name)
	}
	tracer().Debugf("registered module class %q (default=%v)", name, asDefault)
}

// must be called with modules locked
func isDefault(name string) bool {
	for _, d := range modules.defaults {
		if d == name {
			return true
		}
	}
	return false
}

// LookupModule finds a registered module class by name.
func LookupModule(name string) (Module, bool) {
	modules.RLock()
	defer modules.RUnlock()
	m, ok := modules.classes[name]
	return m, ok
}

// DefaultModules returns the module classes added by AddDefaultModules, in
// the order they will be added.
func DefaultModules() []Module {
	modules.RLock()
	defer modules.RUnlock()
	mods := make([]Module, 0, len(modules.defaults))
	for _, name := range modules.defaults {
		mods = append(mods, modules.classes[name])
	}
	return mods
}
