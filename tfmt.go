// Package tfmt compiles and runs TFMT scripts, which compute the destination
// path of an audio file from its tags.
//
// A script is compiled once, bound to one set of arguments, and then run
// against any number of files:
//
//	script, err := tfmt.Compile(`simple(sep = " - ") { <artist> $(sep) <title> }`)
//	inv, err := script.Bind()
//	target, err := inv.Target(tags.Map{"artist": "A", "title": "T"}, "in.mp3")
//	// target == "A - T.mp3"
package tfmt

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/tagfmt/tfmt/ast"
	"github.com/tagfmt/tfmt/interpreter"
	"github.com/tagfmt/tfmt/parser"
	"github.com/tagfmt/tfmt/semantic"
	"github.com/tagfmt/tfmt/tags"
)

// Script is a parsed TFMT program. It is immutable and safe for concurrent
// use.
type Script struct {
	program *ast.Program
	opts    *options
}

// Compile parses source into a Script.
func Compile(source string, opts ...Option) (*Script, error) {
	o := collectOptions(opts...)
	program, err := parser.Parse(source, o.parserOpts()...)
	if err != nil {
		return nil, err
	}
	return &Script{program: program, opts: o}, nil
}

// CompileFile reads and compiles the script at path. Windows line endings
// are converted, since the lexer rejects carriage returns.
func CompileFile(path string, opts ...Option) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Compile(strings.ReplaceAll(string(data), "\r\n", "\n"), opts...)
}

// Program returns the script's syntax tree.
func (s *Script) Program() *ast.Program {
	return s.program
}

// Name returns the name declared by the script.
func (s *Script) Name() string {
	return s.program.Name.Literal
}

// Description returns the script's description, or "" if it has none.
func (s *Script) Description() string {
	if s.program.Description == nil {
		return ""
	}
	return s.program.Description.Literal
}

// Parameters returns the names of the script's parameters in declaration
// order.
func (s *Script) Parameters() []string {
	names := make([]string, len(s.program.Parameters))
	for i, p := range s.program.Parameters {
		names[i] = p.Name.Literal
	}
	return names
}

// Bind checks the script and binds args to its parameters in order.
func (s *Script) Bind(args ...string) (*Invocation, error) {
	env, err := semantic.Analyze(s.program, args)
	if err != nil {
		return nil, err
	}
	return &Invocation{
		script: s,
		env:    env,
		interp: interpreter.New(s.program, env.Symbols),
	}, nil
}

// Invocation is a Script bound to a set of arguments. It is safe for
// concurrent use.
type Invocation struct {
	script *Script
	env    *semantic.Environment
	interp *interpreter.Interpreter
}

// Symbols returns a copy of the bound parameter values.
func (inv *Invocation) Symbols() semantic.SymbolTable {
	symbols := make(semantic.SymbolTable, len(inv.env.Symbols))
	for k, v := range inv.env.Symbols {
		symbols[k] = v
	}
	return symbols
}

// Run evaluates the script against the tags of one file and returns the
// destination path without an extension.
func (inv *Invocation) Run(p tags.Provider) (string, error) {
	return inv.interp.Interpret(p)
}

// Target evaluates the script and appends the extension of originalPath.
func (inv *Invocation) Target(p tags.Provider, originalPath string) (string, error) {
	out, err := inv.Run(p)
	if err != nil {
		return "", err
	}
	return out + filepath.Ext(originalPath), nil
}
