/*
Package resources resolves font faces for an application.

As locating and loading a font may be a time-consuming task, resolving
works in an async/await fashion. ResolveFace returns a promise, which the
client will call later to receive the loaded face:

	promise := resources.ResolveFace(conf, registry, "Gentium Plus", xfont.StyleNormal, xfont.WeightNormal)
	…
	face, err := promise.Face()

The call to the promise-function will block until loading has completed.
Resolution never comes back empty-handed: if a font cannot be found, the
registry's fallback face is delivered, together with an error.

Configuration keys

	fontconfig   absolute path of the 'fc-list' binary (optional)
	app-key      application key, names the cache folder for fc-list output

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resources

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to tracing key 'ftlib.resources'.
func tracer() tracing.Trace {
	return tracing.Select("ftlib.resources")
}
