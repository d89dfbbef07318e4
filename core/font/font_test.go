package font

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
)

type sw struct {
	s xfont.Style
	w xfont.Weight
}

func TestGuess(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftlib.font")
	defer teardown()
	//
	for k, v := range map[string]sw{
		"fonts/Clarendon-bold.ttf":               {xfont.StyleNormal, xfont.WeightBold},
		"Microsoft/Gill Sans MT Bold Italic.ttf": {xfont.StyleItalic, xfont.WeightBold},
		"Cambria Math.ttf":                       {xfont.StyleNormal, xfont.WeightNormal},
		"GentiumPlus-R.ttf":                      {xfont.StyleNormal, xfont.WeightNormal},
		"Helvetica Oblique":                      {xfont.StyleItalic, xfont.WeightNormal},
	} {
		style, weight := GuessStyleAndWeight(k)
		t.Logf("style = %d, weight = %d", style, weight)
		if style != v.s || weight != v.w {
			t.Errorf("expected different style or weight for %s", k)
		}
	}
}

func TestMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftlib.font")
	defer teardown()
	//
	if !Matches("fonts/Clarendon-bold.ttf",
		"clarendon", xfont.StyleNormal, xfont.WeightBold) {
		t.Errorf("expected match for Clarendon, haven't")
	}
	if !Matches("Microsoft/Gill Sans MT Bold Italic.ttf",
		"Gill Sans", xfont.StyleItalic, xfont.WeightBold) {
		t.Errorf("expected match for Gill, haven't")
	}
	if Matches("Cambria Math.ttf",
		"cambria", xfont.StyleItalic, xfont.WeightNormal) {
		t.Errorf("expected Cambria Math not to match italic style")
	}
}

func TestNormalizeFont(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftlib.font")
	defer teardown()
	//
	for _, c := range []struct {
		name   string
		style  xfont.Style
		weight xfont.Weight
		norm   string
	}{
		{"Clarendon", xfont.StyleItalic, xfont.WeightBold, "clarendon-italic-bold"},
		{" Gill  Sans MT ", xfont.StyleNormal, xfont.WeightNormal, "gill_sans_mt"},
		{"GentiumPlus-R.ttf", xfont.StyleNormal, xfont.WeightLight, "gentiumplus-r-light"},
		{"Straße", xfont.StyleNormal, xfont.WeightNormal, "strasse"},
		{"Dr. X", xfont.StyleNormal, xfont.WeightNormal, "dr._x"},
		{"Univers 55.Roman", xfont.StyleNormal, xfont.WeightNormal, "univers_55.roman"},
		{"helvB18.pcf.gz", xfont.StyleNormal, xfont.WeightNormal, "helvb18"},
		{"Texgyre.OTF", xfont.StyleNormal, xfont.WeightNormal, "texgyre"},
	} {
		if n := NormalizeFontname(c.name, c.style, c.weight); n != c.norm {
			t.Errorf("expected %q to normalize to %q, is %q", c.name, c.norm, n)
		}
	}
}

func TestClosestMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ftlib.font")
	defer teardown()
	//
	descs := []Descriptor{
		{Family: "Antic", Path: "/fonts/antic.ttf", Variants: []string{"regular"}},
		{Family: "Gentium Plus", Path: "/fonts/gp-r.ttf", Variants: []string{"regular"}},
		{Family: "Gentium Plus", Path: "/fonts/gp-b.ttf", Variants: []string{"bold"}},
	}
	desc, variant, conf := ClosestMatch(descs, "gentium", xfont.StyleNormal, xfont.WeightBold)
	if conf <= LowConfidence {
		t.Fatalf("expected a confident match for Gentium bold, confidence is %d", conf)
	}
	if desc.Path != "/fonts/gp-b.ttf" || variant != "bold" {
		t.Errorf("expected bold variant of Gentium, got %s|%s", desc.Path, variant)
	}
	if _, _, conf = ClosestMatch(descs, "helvetica", xfont.StyleNormal, xfont.WeightNormal); conf != NoConfidence {
		t.Errorf("expected no match for Helvetica")
	}
	if _, _, conf = ClosestMatch(descs, "[", xfont.StyleNormal, xfont.WeightNormal); conf != NoConfidence {
		t.Errorf("expected invalid pattern not to match")
	}
}

func TestFallbackFont(t *testing.T) {
	f, err := sfnt.Parse(FallbackFontData())
	if err != nil {
		t.Fatal(err)
	}
	name, _ := f.Name(nil, sfnt.NameIDFamily)
	if name != "Go" {
		t.Errorf("expected fallback font to be Go Sans, is %q", name)
	}
}
