package resources

import (
	"context"
	"regexp"

	"github.com/flopp/go-findfont"
	"github.com/npillmayer/ftlib/core/font"
	"github.com/npillmayer/ftlib/core/font/fontregistry"
	"github.com/npillmayer/ftlib/core/font/ft"
	"github.com/npillmayer/schuko"
	xfont "golang.org/x/image/font"
)

// FacePromise is returned by ResolveFace. Calling Face blocks until the
// face has been resolved.
type FacePromise interface {
	Face() (*ft.Face, error)
	FaceContext(ctx context.Context) (*ft.Face, error)
}

type faceLoader struct {
	done chan struct{}
	face *ft.Face
	err  error
}

func (loader *faceLoader) Face() (*ft.Face, error) {
	return loader.FaceContext(context.Background())
}

func (loader *faceLoader) FaceContext(ctx context.Context) (*ft.Face, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-loader.done:
		return loader.face, loader.err
	}
}

// ResolveFace resolves a font face by name, style and weight. Resolution
// runs in the background; the result is delivered by the returned promise.
//
// Faces are searched for
//
// ▪︎ in registry reg,
//
// ▪︎ among the fonts installed on the system (by file name),
//
// ▪︎ with fontconfig, if configured in conf (key 'fontconfig', together
// with 'app-key' to locate a cache directory).
//
// A face found on the system is stored in reg under its normalized name. If
// all of this fails, the promise returns the registry's fallback face,
// together with an error of code core.EMISSING.
func ResolveFace(conf schuko.Configuration, reg *fontregistry.Registry, name string,
	style xfont.Style, weight xfont.Weight) FacePromise {
	//
	loader := &faceLoader{done: make(chan struct{})}
	go func() {
		defer close(loader.done)
		loader.face, loader.err = resolveFace(conf, reg, name, style, weight)
	}()
	return loader
}

func resolveFace(conf schuko.Configuration, reg *fontregistry.Registry, name string,
	style xfont.Style, weight xfont.Weight) (*ft.Face, error) {
	//
	key := font.NormalizeFontname(name, style, weight)
	if f, err := reg.Face(key); err == nil {
		tracer().Debugf("font %s found in registry", key)
		return f, nil
	}
	if fpath, err := findfont.Find(name); err == nil && fpath != "" {
		tracer().Debugf("%s is a system font: %s", name, fpath)
		if f, err := loadAs(reg, key, fpath); err == nil {
			return f, nil
		}
	}
	if conf != nil {
		desc, variant := findFontConfigFont(conf, regexp.QuoteMeta(name), style, weight)
		if desc.Path != "" {
			tracer().Debugf("fontconfig found %s|%s: %s", desc.Family, variant, desc.Path)
			if f, err := loadAs(reg, key, desc.Path); err == nil {
				return f, nil
			}
		}
	}
	tracer().Infof("font %s not found, using fallback font", key)
	return reg.FallbackFor(name, style, weight)
}

// loadAs loads a face from a font file and registers it under key, in
// addition to the face's own name.
func loadAs(reg *fontregistry.Registry, key, fpath string) (*ft.Face, error) {
	f, err := reg.LoadFace(fpath, 0)
	if err != nil {
		tracer().Errorf("cannot load font file %s: %v", fpath, err)
		return nil, err
	}
	reg.StoreFace(key, f)
	return f, nil
}
