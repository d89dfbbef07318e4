package ft

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/npillmayer/ftlib/core"
	"github.com/npillmayer/ftlib/core/font/engine"
	"github.com/npillmayer/schuko/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func TestInitDistinctHandles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftlib.library")
	defer teardown()
	//
	lib1, err := Init()
	require.NoError(t, err)
	defer lib1.Close()
	lib2, err := Init()
	require.NoError(t, err)
	defer lib2.Close()
	assert.NotZero(t, lib1.Raw())
	assert.NotZero(t, lib2.Raw())
	assert.NotEqual(t, lib1.Raw(), lib2.Raw(), "expected every Init to create a new engine library")
	major, _, _, err := lib1.Version()
	assert.NoError(t, err)
	assert.Equal(t, engine.VersionMajor, major)
}

func TestCloseReleasesOnce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftlib.library")
	defer teardown()
	//
	before := engine.LiveObjects()
	lib, err := Init()
	require.NoError(t, err)
	h := lib.Raw()
	other, err := lib.Share()
	require.NoError(t, err)
	assert.Equal(t, h, other.Raw())
	n, _ := other.RefCount()
	assert.Equal(t, 2, n)
	lib.Close()
	lib.Close()
	n, err = other.RefCount()
	require.NoError(t, err)
	assert.Equal(t, 1, n, "expected Close to release exactly one reference")
	other.Close()
	_, status := engine.LibraryRefCount(h)
	assert.Equal(t, engine.InvalidLibraryHandle, status)
	assert.Equal(t, before, engine.LiveObjects())
}

func TestClosedOwner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftlib.library")
	defer teardown()
	//
	lib, err := Init()
	require.NoError(t, err)
	lib.Close()
	invalid := &Error{Code: InvalidLibraryHandle}
	assert.Zero(t, lib.Raw())
	_, err = lib.NewMemoryFace(goregular.TTF, 0)
	assert.ErrorIs(t, err, invalid)
	_, err = lib.NewFace("whatever.ttf", 0)
	assert.ErrorIs(t, err, invalid)
	assert.ErrorIs(t, lib.IncRef(), invalid)
	assert.ErrorIs(t, lib.DecRef(), invalid)
	_, err = lib.Share()
	assert.ErrorIs(t, err, invalid)
	var nolib *Library
	assert.ErrorIs(t, nolib.IncRef(), invalid)
	nolib.Close()
}

func TestNewFaceMissingPath(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftlib.library")
	defer teardown()
	//
	lib, err := Init()
	require.NoError(t, err)
	defer lib.Close()
	face, err := lib.NewFace(filepath.Join(t.TempDir(), "missing.ttf"), 0)
	assert.Nil(t, face)
	require.Error(t, err)
	var fterr *Error
	require.True(t, errors.As(err, &fterr))
	assert.Equal(t, CannotOpenResource, fterr.Code)
}

func TestNewFaceFromFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftlib.library")
	defer teardown()
	//
	path := filepath.Join(t.TempDir(), "go.ttf")
	require.NoError(t, os.WriteFile(path, goregular.TTF, 0o644))
	lib, err := Init()
	require.NoError(t, err)
	defer lib.Close()
	face, err := lib.NewFace(path, 0)
	require.NoError(t, err)
	assert.Equal(t, "Go", face.FamilyName())
	assert.False(t, face.HasFlags(engine.FaceFlagExternalStream))
	assert.NoError(t, face.Done())
}

func TestNewMemoryFaceEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftlib.library")
	defer teardown()
	//
	lib, err := Init()
	require.NoError(t, err)
	defer lib.Close()
	for _, data := range [][]byte{nil, {}} {
		face, err := lib.NewMemoryFace(data, 0)
		assert.Nil(t, face)
		assert.ErrorIs(t, err, &Error{Code: UnknownFileFormat})
	}
}

func TestMemoryFace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftlib.library")
	defer teardown()
	//
	lib, err := Init()
	require.NoError(t, err)
	face, err := lib.NewMemoryFace(goregular.TTF, 0)
	require.NoError(t, err)
	assert.Equal(t, "Go", face.FamilyName())
	assert.Equal(t, "Regular", face.StyleName())
	assert.Equal(t, 1, face.NumFaces())
	assert.Equal(t, 0, face.FaceIndex())
	assert.Greater(t, face.NumGlyphs(), 0)
	assert.Greater(t, face.UnitsPerEM(), 0)
	assert.True(t, face.IsScalable())
	assert.True(t, face.HasFlags(engine.FaceFlagSFNT|engine.FaceFlagExternalStream))
	assert.Equal(t, "sfnt", face.DriverName())
	assert.Same(t, lib, face.Library())
	assert.NotZero(t, face.CharIndex('g'))
	assert.Equal(t, "face(Go/Regular #0)", face.String())
	//
	_, err = lib.NewMemoryFace(goregular.TTF, 3)
	assert.ErrorIs(t, err, &Error{Code: InvalidArgument})
	header, err := lib.NewMemoryFace(goregular.TTF, -1)
	require.NoError(t, err)
	assert.Equal(t, -1, header.FaceIndex())
	assert.Equal(t, 1, header.NumFaces())
	//
	lib.Close()
	assert.Zero(t, face.CharIndex('g'), "expected face to be gone with its library")
	err = face.Done()
	assert.ErrorIs(t, err, &Error{Code: InvalidFaceHandle})
	assert.Equal(t, err, face.Done(), "expected Done to report the first result")
}

func TestIncRefDecRef(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftlib.library")
	defer teardown()
	//
	lib, err := Init()
	require.NoError(t, err)
	defer lib.Close()
	h := lib.Raw()
	require.NoError(t, lib.IncRef())
	n, _ := lib.RefCount()
	assert.Equal(t, 2, n)
	require.NoError(t, lib.DecRef())
	n, _ = lib.RefCount()
	assert.Equal(t, 1, n, "expected first DecRef to keep the library alive")
	require.NoError(t, lib.DecRef())
	_, status := engine.LibraryRefCount(h)
	assert.Equal(t, engine.InvalidLibraryHandle, status, "expected second DecRef to free the library")
	assert.ErrorIs(t, lib.DecRef(), &Error{Code: InvalidLibraryHandle})
	_, err = lib.NewMemoryFace(goregular.TTF, 0)
	assert.ErrorIs(t, err, &Error{Code: InvalidLibraryHandle})
}

func TestCloseFailureIsTraced(t *testing.T) {
	rec := &recorder{}
	tracing.SetTraceSelector(rec)
	defer tracing.SetTraceSelector(nil)
	//
	lib, err := Init()
	require.NoError(t, err)
	require.NoError(t, lib.DecRef())
	assert.NotPanics(t, lib.Close)
	require.Len(t, rec.errors, 1, "expected one traced error from Close")
	assert.Contains(t, rec.errors[0], "invalid library handle")
	lib.Close()
	assert.Len(t, rec.errors, 1, "expected second Close to be silent")
}

func TestFinalizerReleasesLibrary(t *testing.T) {
	rec := &recorder{}
	tracing.SetTraceSelector(rec)
	defer tracing.SetTraceSelector(nil)
	//
	before := engine.LiveObjects()
	var raw engine.Handle
	func() {
		lib, err := Init()
		require.NoError(t, err)
		raw = lib.Raw()
	}()
	require.NotZero(t, raw)
	msg := fmt.Sprintf("font library %d has not been closed", raw)
	assert.Eventually(t, func() bool {
		runtime.GC()
		return rec.hasInfo(msg) && engine.LiveObjects() <= before
	}, 5*time.Second, 10*time.Millisecond, "expected unclosed library to be released by the garbage collector")
	_, status := engine.LibraryRefCount(raw)
	assert.Equal(t, engine.InvalidLibraryHandle, status)
}

func TestConfiguredModules(t *testing.T) {
	teardown := testconfig.QuickConfig(t, map[string]string{
		ModulesKey: "sfnt, gzip,,sfnt",
	})
	defer func() {
		teardown()
		testconfig.QuickConfig(t)() // clear ft.modules for other tests
	}()
	//
	lib, err := Init()
	require.NoError(t, err)
	names, status := engine.LibraryModules(lib.Raw())
	require.Equal(t, engine.Ok, status)
	assert.Equal(t, []string{"sfnt", "gzip"}, names)
	lib.Close()
	//
	before := engine.LiveObjects()
	teardown2 := testconfig.QuickConfig(t, map[string]string{ModulesKey: "sfnt,nosuchmodule"})
	defer teardown2()
	lib, err = Init()
	assert.Nil(t, lib)
	assert.ErrorIs(t, err, &Error{Code: MissingModule})
	assert.Equal(t, before, engine.LiveObjects(), "expected half-created library to be released")
}

func TestUnknownErrorCode(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftlib.library")
	defer teardown()
	//
	lib, err := Init()
	require.NoError(t, err)
	defer lib.Close()
	require.Equal(t, engine.Ok, engine.AddModule(lib.Raw(), oddDriver{}))
	face, err := lib.NewMemoryFace([]byte("ODD!"), 0)
	assert.Nil(t, face)
	var fterr *Error
	require.True(t, errors.As(err, &fterr))
	assert.Equal(t, ErrorCode(0xA7), fterr.Code)
	assert.False(t, fterr.Code.Known())
	assert.Equal(t, "ft: unknown error code 0xa7", err.Error())
}

func TestErrors(t *testing.T) {
	err := error(&Error{Code: CannotOpenResource})
	assert.Equal(t, "ft: cannot open resource (0x01)", err.Error())
	assert.True(t, CannotOpenResource.Known())
	assert.Equal(t, int(CannotOpenResource), core.Code(err))
	assert.Equal(t, "font engine: cannot open resource", core.UserMessage(err))
	wrapped := fmt.Errorf("loading font: %w", err)
	assert.ErrorIs(t, wrapped, &Error{Code: CannotOpenResource})
	assert.NotErrorIs(t, wrapped, &Error{Code: OutOfMemory})
	assert.Nil(t, check(engine.Ok))
}

func TestAllocator(t *testing.T) {
	mem := Memory()
	require.Same(t, mem, Memory(), "expected one memory record per process")
	for i := 0; i < 100; i++ {
		b := mem.Alloc(mem, 1024)
		require.Len(t, b, 1024)
		mem.Free(mem, b)
	}
	mem.Free(mem, nil)
	assert.NotNil(t, mem.Alloc(mem, 0))
	assert.Nil(t, mem.Alloc(mem, -1))
	assert.Nil(t, mem.Alloc(mem, MaxAllocSize+1))
	//
	b := mem.Alloc(mem, 16)
	copy(b, "0123456789abcdef")
	grown := mem.Realloc(mem, 16, 4096, b)
	require.Len(t, grown, 4096)
	assert.True(t, bytes.HasPrefix(grown, []byte("0123456789abcdef")))
	shrunk := mem.Realloc(mem, 4096, 4, grown)
	assert.Equal(t, []byte("0123"), []byte(shrunk))
	assert.Len(t, mem.Realloc(mem, 0, 8, nil), 8)
	assert.Nil(t, mem.Realloc(mem, 4, -1, shrunk))
}

// --- Helpers ----------------------------------------------------------

// recorder is a tracer remembering error and info messages.
type recorder struct {
	sync.Mutex
	errors []string
	infos  []string
}

func (r *recorder) Select(string) tracing.Trace { return r }

func (r *recorder) Errorf(format string, args ...interface{}) {
	r.Lock()
	defer r.Unlock()
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recorder) Infof(format string, args ...interface{}) {
	r.Lock()
	defer r.Unlock()
	r.infos = append(r.infos, fmt.Sprintf(format, args...))
}

func (r *recorder) hasInfo(msg string) bool {
	r.Lock()
	defer r.Unlock()
	for _, m := range r.infos {
		if m == msg {
			return true
		}
	}
	return false
}

func (r *recorder) Debugf(string, ...interface{}) {}
func (r *recorder) P(string, interface{}) tracing.Trace { return r }
func (r *recorder) SetTraceLevel(tracing.TraceLevel) {}
func (r *recorder) GetTraceLevel() tracing.TraceLevel { return tracing.LevelDebug }
func (r *recorder) SetOutput(io.Writer) {}

// oddDriver answers data starting with "ODD" with an undocumented code.
type oddDriver struct{}

func (oddDriver) Name() string { return "odd" }
func (oddDriver) Version() int { return 1 }

func (oddDriver) InitFace(data []byte, _ int, _ *engine.FaceRec) (engine.DriverFace, engine.Error) {
	if !strings.HasPrefix(string(data), "ODD") {
		return nil, engine.UnknownFileFormat
	}
	return nil, engine.Error(0xA7)
}
