package ft

import (
	"runtime"
	"strings"
	"sync"

	"github.com/npillmayer/ftlib/core/font/engine"
	"github.com/npillmayer/schuko/gconf"
)

// ModulesKey is the configuration key for a comma separated list of engine
// modules. If set, Init adds these modules instead of the default set.
const ModulesKey = "ft.modules"

// Library owns one reference to an engine library object.
type Library struct {
	mu     sync.Mutex
	raw    engine.Handle
	closed bool
}

// Init creates a new engine library, using the process-wide memory record,
// and adds the default modules (or the ones configured with ModulesKey).
func Init() (*Library, error) {
	var h engine.Handle
	if err := check(engine.NewLibrary(Memory(), &h)); err != nil {
		tracer().Errorf("cannot create font library: %v", err)
		return nil, err
	}
	if err := addModules(h); err != nil {
		if status := engine.DoneLibrary(h); status != engine.Ok {
			tracer().Errorf("cannot release half-created library %d: %v", h, check(status))
		}
		return nil, err
	}
	tracer().Debugf("font library %d initialized", h)
	return newOwner(h), nil
}

func addModules(h engine.Handle) error {
	names := configuredModules()
	if len(names) == 0 {
		return check(engine.AddDefaultModules(h))
	}
	for _, name := range names {
		m, ok := engine.LookupModule(name)
		if !ok {
			tracer().Errorf("configured font module %q is unknown", name)
			return &Error{Code: MissingModule}
		}
		status := engine.AddModule(h, m)
		if status == engine.LowerModuleVersion { // listed twice
			continue
		}
		if err := check(status); err != nil {
			return err
		}
	}
	return nil
}

func configuredModules() []string {
	var names []string
	for _, name := range strings.Split(gconf.GetString(ModulesKey), ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func newOwner(h engine.Handle) *Library {
	lib := &Library{raw: h}
	runtime.SetFinalizer(lib, func(lib *Library) {
		tracer().Infof("font library %d has not been closed", lib.raw)
		lib.Close()
	})
	return lib
}

// handle returns the engine handle, or an error if lib is closed.
func (lib *Library) handle() (engine.Handle, error) {
	if lib == nil {
		return 0, &Error{Code: InvalidLibraryHandle}
	}
	lib.mu.Lock()
	defer lib.mu.Unlock()
	if lib.closed {
		return 0, &Error{Code: InvalidLibraryHandle}
	}
	return lib.raw, nil
}

// Raw returns the engine handle of lib, for binding code which has to call
// the engine directly. After Close, Raw returns the nil handle.
func (lib *Library) Raw() engine.Handle {
	h, _ := lib.handle()
	return h
}

// NewFace loads face number faceIndex from the font file at path. For a
// negative faceIndex, the face reports the number of faces in the file and
// nothing else.
func (lib *Library) NewFace(path string, faceIndex int) (*Face, error) {
	h, err := lib.handle()
	if err != nil {
		return nil, err
	}
	var fh engine.Handle
	if err := check(engine.NewFace(h, path, faceIndex, &fh)); err != nil {
		tracer().Debugf("cannot load face #%d of %s: %v", faceIndex, path, err)
		return nil, err
	}
	return newFace(lib, fh)
}

// NewMemoryFace creates face number faceIndex from font data in buffer.
// The engine may use buffer in place: it must stay unmodified for as long
// as the face is alive.
func (lib *Library) NewMemoryFace(buffer []byte, faceIndex int) (*Face, error) {
	h, err := lib.handle()
	if err != nil {
		return nil, err
	}
	var fh engine.Handle
	if err := check(engine.NewMemoryFace(h, buffer, faceIndex, &fh)); err != nil {
		tracer().Debugf("cannot load face #%d from %d bytes: %v", faceIndex, len(buffer), err)
		return nil, err
	}
	return newFace(lib, fh)
}

// IncRef increments the reference count of the engine library.
func (lib *Library) IncRef() error {
	h, err := lib.handle()
	if err != nil {
		return err
	}
	return check(engine.ReferenceLibrary(h))
}

// DecRef decrements the reference count of the engine library, which is
// destroyed when the count reaches zero. DecRef does not close lib.
func (lib *Library) DecRef() error {
	h, err := lib.handle()
	if err != nil {
		return err
	}
	return check(engine.DoneLibrary(h))
}

// RefCount reports the current reference count of the engine library.
func (lib *Library) RefCount() (int, error) {
	h, err := lib.handle()
	if err != nil {
		return 0, err
	}
	n, status := engine.LibraryRefCount(h)
	return n, check(status)
}

// Share returns a second owner of the same engine library. Both lib and
// the returned value have to be closed.
func (lib *Library) Share() (*Library, error) {
	h, err := lib.handle()
	if err != nil {
		return nil, err
	}
	if err := check(engine.ReferenceLibrary(h)); err != nil {
		return nil, err
	}
	return newOwner(h), nil
}

// Version returns the version of the font engine.
func (lib *Library) Version() (major, minor, patch int, err error) {
	h, err := lib.handle()
	if err != nil {
		return 0, 0, 0, err
	}
	major, minor, patch, status := engine.LibraryVersion(h)
	return major, minor, patch, check(status)
}

// Close releases the reference owned by lib. It is safe to call Close more
// than once; only the first call has an effect. A failing release is
// traced and otherwise ignored.
func (lib *Library) Close() {
	if lib == nil {
		return
	}
	lib.mu.Lock()
	if lib.closed {
		lib.mu.Unlock()
		return
	}
	lib.closed = true
	h := lib.raw
	lib.mu.Unlock()
	runtime.SetFinalizer(lib, nil)
	if err := check(engine.DoneLibrary(h)); err != nil {
		tracer().Errorf("releasing font library %d failed: %v", h, err)
		return
	}
	tracer().Debugf("font library %d released", h)
}
