/*
Package font holds naming and matching helpers for fonts, shared by the
font registry and the resource resolver.

We stick to the nomenclature of the font engine: a "face" is one font of a
font file (a variant of a typeface with a certain weight, slant, etc.), a
font file may contain more than one face (TrueType collections, *.ttc).
Please note that package golang.org/x/image/font uses the terms "font" and
"face" in a different manner.

Font names are normalized before they are used as keys. A normalized name
is the case-folded family name with blanks replaced by underscores, plus
suffixes for style and weight, e.g.

    "Gill Sans MT", italic, bold  →  "gill_sans_mt-italic-bold"

Styles and weights are the ones of golang.org/x/image/font.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package font

import (
	"path"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/text/cases"
)

// tracer traces with key 'ftlib.font'.
func tracer() tracing.Trace {
	return tracing.Select("ftlib.font")
}

// Descriptor describes a font family found on the system, together with
// the variants available for it.
type Descriptor struct {
	Family   string   // family name, e.g. "Helvetica Neue"
	Path     string   // path of the font file
	Variants []string // variant names, e.g. "regular", "bold", "italic"
}

// FallbackName is the name of the fallback font.
const FallbackName = "Go Sans"

// FallbackFontData returns the font data of a font to use if everything else
// fails. It is always present. Currently we use Go Sans.
//
// Clients must not modify the returned bytes.
func FallbackFontData() []byte {
	return goregular.TTF
}

// fold applies Unicode case folding. Casers are stateful, so we do not
// share one.
func fold(s string) string {
	return cases.Fold().String(s)
}

// fontExtensions are the file extensions stripped from font names.
var fontExtensions = []string{".ttf", ".otf", ".ttc", ".otc", ".woff", ".dfont", ".pcf", ".pfb", ".pfa"}

// stripFontExtension removes a font file extension from name, including a
// trailing ".gz" for compressed fonts. Other dots are part of the name.
func stripFontExtension(name string) string {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".gz") {
		name, lower = name[:len(name)-3], lower[:len(lower)-3]
	}
	for _, ext := range fontExtensions {
		if strings.HasSuffix(lower, ext) {
			return name[:len(name)-len(ext)]
		}
	}
	return name
}

// NormalizeFontname creates a registry key for a font name, style and
// weight. Font file extensions are stripped from fname.
func NormalizeFontname(fname string, style xfont.Style, weight xfont.Weight) string {
	fname = stripFontExtension(strings.TrimSpace(fname))
	fname = strings.Join(strings.Fields(fname), "_")
	fname = fold(fname)
	switch style {
	case xfont.StyleItalic, xfont.StyleOblique:
		fname += "-italic"
	}
	switch weight {
	case xfont.WeightThin, xfont.WeightLight, xfont.WeightExtraLight:
		fname += "-light"
	case xfont.WeightBold, xfont.WeightExtraBold, xfont.WeightSemiBold, xfont.WeightBlack:
		fname += "-bold"
	}
	return fname
}

// GuessStyleAndWeight tries to guess a font's style and weight from the
// font's file name or style name.
func GuessStyleAndWeight(fontfilename string) (xfont.Style, xfont.Weight) {
	fontfilename = fold(stripFontExtension(path.Base(fontfilename)))
	s := strings.Split(fontfilename, "-")
	if len(s) > 1 {
		switch s[len(s)-1] {
		case "light", "xlight":
			return xfont.StyleNormal, xfont.WeightLight
		case "normal", "medium", "regular", "r":
			return xfont.StyleNormal, xfont.WeightNormal
		case "bold", "b":
			return xfont.StyleNormal, xfont.WeightBold
		case "xbold", "black":
			return xfont.StyleNormal, xfont.WeightExtraBold
		}
	}
	style, weight := xfont.StyleNormal, xfont.WeightNormal
	if strings.Contains(fontfilename, "italic") || strings.Contains(fontfilename, "oblique") {
		style = xfont.StyleItalic
	}
	if strings.Contains(fontfilename, "light") {
		weight = xfont.WeightLight
	}
	if strings.Contains(fontfilename, "bold") {
		weight = xfont.WeightBold
	}
	return style, weight
}

// Matches returns true if a font's filename contains pattern and indicators
// for a given style and weight.
func Matches(fontfilename, pattern string, style xfont.Style, weight xfont.Weight) bool {
	basename := fold(stripFontExtension(path.Base(fontfilename)))
	if !strings.Contains(basename, fold(pattern)) {
		return false
	}
	s, w := GuessStyleAndWeight(basename)
	tracer().Debugf("font %s has style %d and weight %d", basename, s, w)
	return s == style && w == weight
}
