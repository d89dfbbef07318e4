package font

import (
	"regexp"
	"strconv"
	"strings"

	xfont "golang.org/x/image/font"
)

// MatchConfidence is a type for expressing the confidence level of font matching.
type MatchConfidence int

// Confidence levels, ordered.
const (
	NoConfidence      MatchConfidence = 0
	LowConfidence     MatchConfidence = 2
	HighConfidence    MatchConfidence = 3
	PerfectConfidence MatchConfidence = 4
)

// ClosestMatch scans a list of font descriptors and returns the closest
// match for a family name pattern (a regular expression, matched case
// insensitive), a style and a weight.
// If no variant matches, it returns NoConfidence.
func ClosestMatch(fdescs []Descriptor, pattern string, style xfont.Style,
	weight xfont.Weight) (match Descriptor, variant string, confidence MatchConfidence) {
	//
	r, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		tracer().Errorf("invalid font name pattern %q: %v", pattern, err)
		return
	}
	for _, fdesc := range fdescs {
		if !r.MatchString(fdesc.Family) {
			continue
		}
		for _, v := range fdesc.Variants {
			s := MatchStyle(v, style)
			w := MatchWeight(v, weight)
			if (s+w)/2 > confidence {
				confidence = (s + w) / 2
				variant = v
				match = fdesc
			}
		}
	}
	return
}

// MatchStyle tries to match a font variant to a given style.
func MatchStyle(variantName string, style xfont.Style) MatchConfidence {
	variantName = strings.ToLower(variantName)
	switch style {
	case xfont.StyleNormal:
		switch variantName {
		case "regular", "400", "normal", "text":
			return PerfectConfidence
		case "100", "200", "300", "500", "light", "bold", "700":
			return HighConfidence
		}
		return NoConfidence
	case xfont.StyleItalic:
		if strings.Contains(variantName, "italic") {
			return PerfectConfidence
		}
		if strings.Contains(variantName, "obliq") {
			return HighConfidence
		}
		return NoConfidence
	case xfont.StyleOblique:
		if strings.Contains(variantName, "obliq") {
			return PerfectConfidence
		}
		if strings.Contains(variantName, "italic") {
			return HighConfidence
		}
		return NoConfidence
	}
	return NoConfidence
}

// MatchWeight tries to match a font variant to a given weight.
//
// Weights of package x/image/font map to CSS font-weight values:
// WeightThin (-3) = 100, …, WeightNormal (0) = 400, …, WeightBlack (+5) = 900.
func MatchWeight(variantName string, weight xfont.Weight) MatchConfidence {
	variantName = strings.ToLower(variantName)
	if strconv.Itoa((int(weight)+4)*100) == variantName {
		return PerfectConfidence
	}
	switch variantName {
	case "regular", "400", "italic", "oblique", "normal", "text":
		switch weight {
		case xfont.WeightNormal, xfont.WeightMedium:
			return PerfectConfidence
		case xfont.WeightThin, xfont.WeightExtraLight, xfont.WeightLight:
			return LowConfidence
		}
		return NoConfidence
	case "100", "200", "300", "light":
		switch weight {
		case xfont.WeightThin, xfont.WeightExtraLight, xfont.WeightLight:
			return PerfectConfidence
		case xfont.WeightNormal, xfont.WeightMedium:
			return LowConfidence
		}
		return NoConfidence
	case "500":
		switch weight {
		case xfont.WeightMedium:
			return PerfectConfidence
		case xfont.WeightSemiBold:
			return HighConfidence
		case xfont.WeightNormal, xfont.WeightBold:
			return LowConfidence
		}
		return NoConfidence
	case "bold", "700":
		switch weight {
		case xfont.WeightBold:
			return PerfectConfidence
		case xfont.WeightSemiBold, xfont.WeightExtraBold:
			return HighConfidence
		}
		return NoConfidence
	case "extrabold", "600", "800", "900":
		switch weight {
		case xfont.WeightSemiBold:
			return LowConfidence
		case xfont.WeightBold:
			return HighConfidence
		}
		return NoConfidence
	}
	return NoConfidence
}
