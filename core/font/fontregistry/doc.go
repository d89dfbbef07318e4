/*
Package fontregistry manages a registry for loaded font faces.

A registry co-owns a font library and keeps the faces created from it,
keyed by normalized font names (see font.NormalizeFontname). Closing the
registry releases every face and the registry's library reference.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontregistry

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'ftlib.font'
func tracer() tracing.Trace {
	return tracing.Select("ftlib.font")
}
