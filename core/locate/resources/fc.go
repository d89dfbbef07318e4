package resources

import (
	"bufio"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/npillmayer/ftlib/core"
	"github.com/npillmayer/ftlib/core/font"
	"github.com/npillmayer/schuko"
	xfont "golang.org/x/image/font"
)

func findFontConfigBinary(conf schuko.Configuration) (string, error) {
	path := conf.GetString("fontconfig")
	if path == "" {
		tracer().Infof("fontconfig not configured: key 'fontconfig' should point to location of 'fc-list' binary")
		return "", core.Error(core.EMISSING, "fontconfig not configured")
	}
	if !filepath.IsAbs(path) {
		return "", core.Error(core.EINVALID, "fontconfig binary fc-list must point to absolute path: %s", path)
	}
	if fi, err := os.Stat(path); err != nil || (fi.Mode().Perm()&0100) == 0 {
		return "", core.WrapError(err, core.EINVALID,
			"fontconfig configuration points to an invalid binary: %s", path)
	}
	return path, nil
}

// cacheFontConfigList runs fc-list and stores its output in the cache
// directory, unless a list is already present and update is false.
func cacheFontConfigList(conf schuko.Configuration, update bool) (string, error) {
	dir, err := CacheDirPath(conf)
	if err != nil {
		return "", err
	}
	fcListFilename := filepath.Join(dir, "fontlist.txt")
	if _, err := os.Stat(fcListFilename); err == nil && !update {
		return fcListFilename, nil
	}
	fcpath, err := findFontConfigBinary(conf)
	if err != nil {
		return "", err
	}
	fontlistFile, err := os.Create(fcListFilename)
	if err == nil {
		fccmd := exec.Command(fcpath)
		fccmd.Stdout = fontlistFile
		err = fccmd.Run()
		if cerr := fontlistFile.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		os.Remove(fcListFilename)
		return "", core.WrapError(err, core.EINVALID,
			"fontconfig output file cannot be created: %s", fcListFilename)
	}
	tracer().Infof("cached fontconfig font list in %s", fcListFilename)
	return fcListFilename, nil
}

func loadFontConfigList(conf schuko.Configuration) ([]font.Descriptor, error) {
	fclist, err := cacheFontConfigList(conf, false)
	if err != nil {
		return nil, err
	}
	fc, err := os.Open(fclist)
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID,
			"fontconfig font list cannot be opened: %s", fclist)
	}
	defer fc.Close()
	descs, ttc, err := parseFontConfigList(fc)
	if err != nil {
		return descs, core.WrapError(err, core.EINVALID,
			"encountered a problem during reading of fontconfig font list: %s", fclist)
	}
	if ttc > 0 {
		tracer().Infof("fontconfig lists %d collection font(s), using face 0 of each", ttc)
	}
	return descs, nil
}

// parseFontConfigList reads lines of fc-list output of the form
//
//     /path/to/font.ttf: Family Name:style=Bold
//
func parseFontConfigList(fc io.Reader) (descs []font.Descriptor, ttc int, err error) {
	scanner := bufio.NewScanner(fc)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ":")
		if len(fields) < 3 {
			continue
		}
		fontpath := strings.TrimSpace(fields[0])
		fontname := strings.TrimSpace(fields[1])
		fontname = strings.TrimPrefix(fontname, ".")
		if comma := strings.IndexByte(fontname, ','); comma > 0 { // localized names
			fontname = fontname[:comma]
		}
		fontvari := strings.ToLower(fields[2])
		if strings.HasSuffix(strings.ToLower(fontpath), ".ttc") {
			ttc++
		}
		desc := font.Descriptor{
			Family: fontname,
			Path:   fontpath,
		}
		switch {
		case strings.Contains(fontvari, "regular"), strings.Contains(fontvari, "text"),
			strings.Contains(fontvari, "book"):
			desc.Variants = []string{"regular"}
		case strings.Contains(fontvari, "light"):
			desc.Variants = []string{"light"}
		case strings.Contains(fontvari, "italic"), strings.Contains(fontvari, "oblique"):
			desc.Variants = []string{"italic"}
		case strings.Contains(fontvari, "bold"), strings.Contains(fontvari, "black"):
			desc.Variants = []string{"bold"}
		}
		descs = append(descs, desc)
	}
	return descs, ttc, scanner.Err()
}

// fcList is a fontconfig font list, loaded once per configuration. A failed
// load is retried on the next search.
type fcList struct {
	sync.Mutex
	descs  []font.Descriptor
	loaded bool
}

var fcLists sync.Map // fontconfig binary + app-key → *fcList

// findFontConfigFont searches for a locally installed font variant using the fontconfig
// system (https://www.freedesktop.org/wiki/Software/fontconfig/).
// fontconfig has to be configured by setting the absolute path of the
// 'fc-list' binary as key 'fontconfig'.
//
// findFontConfigFont will copy the output of fc-list to the user's cache
// directory once. Subsequent calls will use the cached entries to search for
// a font, given a name pattern, a style and a weight.
//
// We call the binary instead of using the C library because of possible version
// issues. If fontconfig is not configured, findFontConfigFont will silently return an
// empty font descriptor and an empty variant name.
func findFontConfigFont(conf schuko.Configuration, pattern string, style xfont.Style, weight xfont.Weight) (
	desc font.Descriptor, variant string) {
	//
	key := conf.GetString("fontconfig") + "|" + conf.GetString("app-key")
	v, _ := fcLists.LoadOrStore(key, &fcList{})
	list := v.(*fcList)
	list.Lock()
	if !list.loaded {
		descs, err := loadFontConfigList(conf)
		if err != nil {
			list.Unlock()
			tracer().Debugf("fontconfig unavailable: %v", err)
			return
		}
		list.descs, list.loaded = descs, true
		tracer().Infof("loaded fontconfig list with %d entries", len(descs))
	}
	descs := list.descs
	list.Unlock()
	var confidence font.MatchConfidence
	desc, variant, confidence = font.ClosestMatch(descs, pattern, style, weight)
	tracer().Debugf("closest fontconfig match confidence for %s|%s = %d", desc.Family, variant, confidence)
	if confidence > font.LowConfidence {
		return
	}
	return font.Descriptor{}, ""
}
