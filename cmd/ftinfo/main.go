/*
Command ftinfo loads a font face through the ftlib font engine and prints its
properties. Fonts may be given as a file path or as a font name, which will be
resolved from the fonts installed on the system.

	ftinfo -font /usr/share/fonts/truetype/dejavu/DejaVuSans.ttf
	ftinfo -font "Gentium Plus" -fontconfig /usr/bin/fc-list
	ftinfo -i

With flag -i, ftinfo enters interactive mode and looks up the glyph index of
every character typed.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/ftlib/core"
	"github.com/npillmayer/ftlib/core/font"
	"github.com/npillmayer/ftlib/core/font/fontregistry"
	"github.com/npillmayer/ftlib/core/font/ft"
	"github.com/npillmayer/ftlib/core/locate/resources"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/logrusadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"
)

// tracer traces with key 'ftlib.cli'
func tracer() tracing.Trace {
	return tracing.Select("ftlib.cli")
}

// tracing keys of the ftlib packages
var traceKeys = []string{"ftlib.cli", "ftlib.library", "ftlib.font", "ftlib.resources", "ftlib.engine"}

func main() {
	initDisplay()

	// command line flags
	tlevel := flag.String("trace", "Error", "Trace level [Debug|Info|Error]")
	adapter := flag.String("log", "go", "Tracing adapter [go|logrus]")
	fontname := flag.String("font", "", "Font file or font name to load")
	index := flag.Int("index", 0, "Face index within a font collection")
	fcpath := flag.String("fontconfig", "", "Absolute path of the fc-list binary")
	interactive := flag.Bool("i", false, "Look up glyph indices interactively")
	flag.Parse()

	// set up logging
	conf, err := setupTracing(*adapter, *tlevel)
	if err != nil {
		pterm.Error.Println(err.Error())
		os.Exit(1)
	}
	conf["fontconfig"] = *fcpath
	conf["app-key"] = "ftinfo"
	os.Exit(run(conf, *fontname, *index, *interactive))
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
	pterm.Warning.Prefix = pterm.Prefix{
		Text:  " Warn ",
		Style: pterm.NewStyle(pterm.BgYellow, pterm.FgBlack),
	}
}

// setupTracing configures a root tracer with adapter "go" or "logrus" and
// sets level for all of the ftlib tracers.
func setupTracing(adapter string, level string) (testconfig.Conf, error) {
	switch adapter {
	case "go":
		tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	case "logrus":
		tracing.RegisterTraceAdapter("logrus", logrusadapter.GetAdapter(), false)
	default:
		return nil, fmt.Errorf("unknown tracing adapter: %s", adapter)
	}
	conf := testconfig.Conf{"tracing.adapter": adapter}
	for _, key := range traceKeys {
		conf["trace."+key] = level
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		return nil, fmt.Errorf("error configuring tracing: %w", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	lvl := tracing.TraceLevelFromString(level)
	for _, key := range traceKeys {
		tracing.Select(key).SetTraceLevel(lvl)
	}
	return conf, nil
}

// run returns the exit code of the command: 0 on success, 2 if no face
// could be loaded.
func run(conf schuko.Configuration, fontname string, index int, interactive bool) int {
	lib, err := ft.Init()
	if err != nil {
		core.UserError(os.Stderr, err)
		return 2
	}
	defer lib.Close()
	reg, err := fontregistry.NewRegistry(lib)
	if err != nil {
		core.UserError(os.Stderr, err)
		return 2
	}
	defer reg.Close()
	//
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	face, err := loadFace(ctx, conf, reg, fontname, index)
	if face == nil {
		core.UserError(os.Stderr, err)
		return 2
	} else if err != nil {
		pterm.Warning.Printfln("%s, showing %s instead", core.UserMessage(err), face)
	}
	if err = pterm.DefaultTable.WithHasHeader().WithData(faceTable(face)).Render(); err != nil {
		tracer().Errorf(err.Error())
	}
	if interactive {
		if err = glyphREPL(face); err != nil {
			core.UserError(os.Stderr, err)
			return 2
		}
	}
	return 0
}

// loadFace loads a face from a font file, if fontname names an existing file.
// Otherwise fontname is resolved as the name of an installed font. An empty
// font name selects the fallback font.
func loadFace(ctx context.Context, conf schuko.Configuration, reg *fontregistry.Registry,
	fontname string, index int) (*ft.Face, error) {
	//
	if fontname == "" {
		return reg.Fallback()
	}
	if fi, err := os.Stat(fontname); err == nil && !fi.IsDir() {
		tracer().Debugf("loading font file %s, face #%d", fontname, index)
		return reg.LoadFace(fontname, index)
	}
	style, weight := font.GuessStyleAndWeight(fontname)
	tracer().Debugf("resolving font %s", fontname)
	return resources.ResolveFace(conf, reg, fontname, style, weight).FaceContext(ctx)
}

// faceTable lists the properties of face f, including the library version.
func faceTable(f *ft.Face) pterm.TableData {
	data := pterm.TableData{
		{"Property", "Value"},
		{"Family", f.FamilyName()},
		{"Style", f.StyleName()},
		{"Face index", fmt.Sprintf("%d of %d", f.FaceIndex(), f.NumFaces())},
		{"Glyphs", strconv.Itoa(f.NumGlyphs())},
		{"Units per EM", strconv.Itoa(f.UnitsPerEM())},
		{"Flags", f.Flags().String()},
		{"Driver", f.DriverName()},
	}
	if major, minor, patch, err := f.Library().Version(); err == nil {
		data = append(data, []string{"Library", fmt.Sprintf("%d.%d.%d", major, minor, patch)})
	}
	return data
}

// glyphTable lists the glyph index of every character of s.
func glyphTable(f *ft.Face, s string) pterm.TableData {
	data := pterm.TableData{{"Char", "Code point", "Glyph"}}
	for _, r := range s {
		gid := f.CharIndex(r)
		g := strconv.FormatUint(uint64(gid), 10)
		if gid == 0 {
			g = "–"
		}
		data = append(data, []string{strconv.QuoteRune(r), fmt.Sprintf("U+%04X", r), g})
	}
	return data
}

// glyphREPL reads lines of text and prints the glyph indices for them.
func glyphREPL(f *ft.Face) error {
	repl, err := readline.New("ftinfo > ")
	if err != nil {
		return err
	}
	defer repl.Close()
	pterm.Info.Println("Quit with <ctrl>D")
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if err = pterm.DefaultTable.WithHasHeader().WithData(glyphTable(f, line)).Render(); err != nil {
			tracer().Errorf(err.Error())
		}
	}
	pterm.Info.Println("Good bye!")
	return nil
}
