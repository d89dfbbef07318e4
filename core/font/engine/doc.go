/*
Package engine is the font engine sitting behind package ft.

The engine exposes a deliberately low-level surface, modelled after the
entry points of classic C font libraries: objects are referred to by opaque
Handle tokens, every entry point reports an integer status of type Error,
and results are returned through out-parameters. No Go pointer to an engine
object ever leaves this package; clients keep handles and hand them back.

A library object is the root of everything. It carries

▪︎ a Memory record of three callbacks (allocate, free, reallocate), used
for every buffer the engine owns (font file contents, inflated streams),

▪︎ a list of modules, either font drivers or stream filters, and

▪︎ a reference count, together with the set of faces created from it.

Faces are created from a file path or from a memory buffer. Filters get
the first look at the data (e.g., to inflate gzip-compressed fonts), then
drivers are tried in the order they were added. A driver answering
UnknownFileFormat passes the data on to the next one. The default drivers
delegate parsing to golang.org/x/image/font/sfnt,
github.com/go-text/typesetting (adding WOFF) and
github.com/benoitkugler/textlayout (PCF bitmap fonts and Type 1).

When the reference count of a library drops to zero, every face still
alive is destroyed and its handle retired. Stale handles are answered with
InvalidLibraryHandle or InvalidFaceHandle, never with a crash.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package engine

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ftlib.engine'.
func tracer() tracing.Trace {
	return tracing.Select("ftlib.engine")
}

// Engine version, reported by LibraryVersion.
const (
	VersionMajor = 1
	VersionMinor = 2
	VersionPatch = 0
)
