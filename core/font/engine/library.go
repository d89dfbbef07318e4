package engine

import (
	"sync"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// maxModules is the maximum number of modules a library will accept.
const maxModules = 32

// library is the root object of the engine.
type library struct {
	sync.Mutex
	handle   Handle
	memory   *Memory
	refcount int
	modules  []Module
	faces    *linkedhashmap.Map // Handle → *face, in creation order
}

// NewLibrary creates a new root object, using memory for all engine-owned
// buffers. The new library has a reference count of 1 and no modules; use
// AddDefaultModules or AddModule to make it useful.
//
// The memory record is referenced, not copied, and must stay unchanged
// for the lifetime of the library.
func NewLibrary(memory *Memory, alibrary *Handle) Error {
	if alibrary == nil {
		return InvalidArgument
	}
	*alibrary = 0
	if !memory.valid() {
		return InvalidArgument
	}
	lib := &library{
		memory:   memory,
		refcount: 1,
		faces:    linkedhashmap.New(),
	}
	lib.handle = handles.register(lib)
	*alibrary = lib.handle
	tracer().Debugf("created library %d", lib.handle)
	return Ok
}

// AddDefaultModules adds every module class registered as default.
// Modules already present with an equal or higher version are left alone.
func AddDefaultModules(library Handle) Error {
	lib := lookupLibrary(library)
	if lib == nil {
		return InvalidLibraryHandle
	}
	lib.Lock()
	defer lib.Unlock()
	for _, m := range DefaultModules() {
		if err := lib.addModule(m); err != Ok && err != LowerModuleVersion {
			return err
		}
	}
	return Ok
}

// AddModule adds a single module to a library. If a module with the same
// name is already present, it is replaced if m has a higher version,
// otherwise LowerModuleVersion is returned.
func AddModule(library Handle, m Module) Error {
	if m == nil {
		return InvalidArgument
	}
	lib := lookupLibrary(library)
	if lib == nil {
		return InvalidLibraryHandle
	}
	lib.Lock()
	defer lib.Unlock()
	return lib.addModule(m)
}

// must be called with lib locked
func (lib *library) addModule(m Module) Error {
	switch m.(type) {
	case Driver, Filter:
	default:
		return InvalidDriverHandle
	}
	for i, present := range lib.modules {
		if present.Name() != m.Name() {
			continue
		}
		if m.Version() <= present.Version() {
			return LowerModuleVersion
		}
		lib.modules[i] = m
		tracer().Debugf("library %d: module %q replaced by version %d", lib.handle, m.Name(), m.Version())
		return Ok
	}
	if len(lib.modules) >= maxModules {
		return TooManyDrivers
	}
	lib.modules = append(lib.modules, m)
	tracer().Debugf("library %d: added module %q", lib.handle, m.Name())
	return Ok
}

// LibraryModules returns the names of the modules of a library, in the
// order they are consulted.
func LibraryModules(library Handle) ([]string, Error) {
	lib := lookupLibrary(library)
	if lib == nil {
		return nil, InvalidLibraryHandle
	}
	lib.Lock()
	defer lib.Unlock()
	names := make([]string, len(lib.modules))
	for i, m := range lib.modules {
		names[i] = m.Name()
	}
	return names, Ok
}

// ReferenceLibrary increments the reference count of a library. Every
// call must be matched by a call to DoneLibrary.
func ReferenceLibrary(library Handle) Error {
	lib := lookupLibrary(library)
	if lib == nil {
		return InvalidLibraryHandle
	}
	lib.Lock()
	defer lib.Unlock()
	if lib.refcount == 0 { // destroyed concurrently
		return InvalidLibraryHandle
	}
	lib.refcount++
	return Ok
}

// DoneLibrary decrements the reference count of a library. When it drops
// to zero, all faces of the library are destroyed and the handle becomes
// invalid.
func DoneLibrary(library Handle) Error {
	lib := lookupLibrary(library)
	if lib == nil {
		return InvalidLibraryHandle
	}
	lib.Lock()
	defer lib.Unlock()
	if lib.refcount == 0 {
		return InvalidLibraryHandle
	}
	lib.refcount--
	if lib.refcount > 0 {
		tracer().Debugf("library %d: reference count now %d", lib.handle, lib.refcount)
		return Ok
	}
	lib.destroy()
	return Ok
}

// must be called with lib locked
func (lib *library) destroy() {
	n := lib.faces.Size()
	for _, v := range lib.faces.Values() {
		v.(*face).destroy()
	}
	lib.faces.Clear()
	lib.modules = nil
	handles.retire(lib.handle)
	tracer().Debugf("library %d destroyed, %d face(s) closed with it", lib.handle, n)
}

// LibraryRefCount reports the current reference count of a library.
func LibraryRefCount(library Handle) (int, Error) {
	lib := lookupLibrary(library)
	if lib == nil {
		return 0, InvalidLibraryHandle
	}
	lib.Lock()
	defer lib.Unlock()
	return lib.refcount, Ok
}

// LibraryVersion reports the engine version. It fails for an invalid
// library handle, as clients are expected to ask a live library.
func LibraryVersion(library Handle) (major, minor, patch int, err Error) {
	if lookupLibrary(library) == nil {
		return 0, 0, 0, InvalidLibraryHandle
	}
	return VersionMajor, VersionMinor, VersionPatch, Ok
}
