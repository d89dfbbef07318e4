package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/ftlib/core"
	"github.com/npillmayer/ftlib/core/font/fontregistry"
	"github.com/npillmayer/ftlib/core/font/ft"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/gobold"
)

func TestLoadFace(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftlib.cli")
	defer teardown()
	reg := newRegistry(t)
	defer reg.Close()
	//
	fontpath := filepath.Join(t.TempDir(), "gobold.ttf")
	require.NoError(t, os.WriteFile(fontpath, gobold.TTF, 0o644))
	face, err := loadFace(context.Background(), testconfig.Conf{}, reg, fontpath, 0)
	require.NoError(t, err)
	assert.Equal(t, "Bold", face.StyleName())
	//
	face, err = loadFace(context.Background(), testconfig.Conf{}, reg, "", 0)
	require.NoError(t, err)
	assert.Equal(t, "Regular", face.StyleName())
	//
	_, err = loadFace(context.Background(), testconfig.Conf{}, reg, fontpath, 3)
	assert.ErrorIs(t, err, &ft.Error{Code: ft.InvalidArgument})
}

func TestLoadFaceByName(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftlib.cli")
	defer teardown()
	reg := newRegistry(t)
	defer reg.Close()
	//
	face, err := loadFace(context.Background(), testconfig.Conf{}, reg, "Ftlib No Such Font", 0)
	require.NotNil(t, face, "expected fallback face")
	assert.Equal(t, core.EMISSING, core.Code(err))
}

func TestFaceTable(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftlib.cli")
	defer teardown()
	reg := newRegistry(t)
	defer reg.Close()
	//
	face, err := reg.Fallback()
	require.NoError(t, err)
	data := faceTable(face)
	require.Len(t, data, 9)
	assert.Equal(t, []string{"Family", "Go"}, data[1])
	assert.Equal(t, []string{"Face index", "0 of 1"}, data[3])
	assert.Equal(t, "Library", data[8][0])
	//
	glyphs := glyphTable(face, "A͸")
	require.Len(t, glyphs, 3)
	assert.Equal(t, "U+0041", glyphs[1][1])
	assert.NotEqual(t, "–", glyphs[1][2])
	assert.Equal(t, "–", glyphs[2][2], "unassigned code point has no glyph")
}

func TestUnknownAdapter(t *testing.T) {
	_, err := setupTracing("syslog", "Info")
	assert.Error(t, err)
}

func newRegistry(t *testing.T) *fontregistry.Registry {
	lib, err := ft.Init()
	require.NoError(t, err)
	defer lib.Close()
	reg, err := fontregistry.NewRegistry(lib)
	require.NoError(t, err)
	return reg
}
