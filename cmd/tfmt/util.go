package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/tagfmt/tfmt"
	"github.com/tagfmt/tfmt/errz"
)

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// useColor reports whether output written to w should be colored.
func (a *app) useColor(w io.Writer) bool {
	if a.v.GetBool("no-color") {
		return false
	}
	f, ok := w.(*os.File)
	return ok && isTerminal(f)
}

func (a *app) logger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(a.v.GetString("log-level"))
	if err != nil {
		return zerolog.Nop(), err
	}
	out := zerolog.ConsoleWriter{Out: w, NoColor: !a.useColor(w)}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}

func (a *app) tfmtOptions(w io.Writer) ([]tfmt.Option, error) {
	logger, err := a.logger(w)
	if err != nil {
		return nil, err
	}
	return []tfmt.Option{
		tfmt.WithMaxDepth(a.v.GetInt("max-depth")),
		tfmt.WithLogger(logger),
	}, nil
}

// printError renders err with a caret under the offending column when it
// points into a script.
func (a *app) printError(w io.Writer, err error) {
	fmt.Fprintln(w, errz.NewFormatter(a.useColor(w)).Format(err))
}

func (a *app) green(w io.Writer, s string) string {
	if !a.useColor(w) {
		return s
	}
	c := color.New(color.FgGreen)
	c.EnableColor()
	return c.Sprint(s)
}

func (a *app) red(w io.Writer, s string) string {
	if !a.useColor(w) {
		return s
	}
	c := color.New(color.FgRed)
	c.EnableColor()
	return c.Sprint(s)
}

func (a *app) marshalJSON(w io.Writer, v any) ([]byte, error) {
	if !a.useColor(w) {
		return json.MarshalIndent(v, "", "  ")
	}
	return prettyjson.Marshal(v)
}
