/*
Package ft is the client side binding to the font engine in package
engine.

The engine speaks in handles and status codes. Package ft wraps this into
Go values: a *Library owns one reference to an engine library object, a
*Face wraps a face created from it, and every non-zero status becomes an
*Error carrying the code unchanged.

	lib, err := ft.Init()
	if err != nil {
		return err
	}
	defer lib.Close()
	face, err := lib.NewFace("/Library/Fonts/Georgia.ttf", 0)

Ownership

A *Library value owns exactly one reference count of the engine object.
Close releases it; further calls to Close are no-ops. As there is no way
to report a failure from a deferred Close, failures are traced with level
Error (key 'ftlib.library') and otherwise ignored. A finalizer performs the
same release for values which become unreachable without having been
closed, but clients should not rely on it.

To hand out the same engine library to a second owner, call Share. Each
owner calls Close once, and the engine object goes away with the last of
them. IncRef and DecRef adjust the count without creating owners and are
meant for binding code which keeps track of references itself.

Faces depend on their library. When the last reference to a library is
released, all of its faces are closed with it and will answer
InvalidFaceHandle from then on.

Memory

Every engine library created by this package uses one memory record,
returned by Memory. It is created once per process and never changes.
Blocks are ordinary Go byte slices, so releasing a block merely drops a
reference and the garbage collector does the rest.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ft

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'ftlib.library'.
func tracer() tracing.Trace {
	return tracing.Select("ftlib.library")
}
