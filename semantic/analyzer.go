// Package semantic checks a parsed TFMT program and binds its parameters to
// the arguments of one invocation.
package semantic

import (
	"strconv"

	"github.com/tagfmt/tfmt/ast"
	"github.com/tagfmt/tfmt/internal/token"
)

// SymbolTable maps parameter names to their bound values.
type SymbolTable map[string]string

// Environment is the result of analyzing a program for one invocation.
type Environment struct {
	Name        string
	Description string
	Symbols     SymbolTable
}

type symbol struct {
	param *ast.Parameter
	refs  int
}

// Analyze checks that every declared parameter is used and that every
// used symbol is declared, then binds args positionally to the parameters.
// Parameters without an argument take their default.
func Analyze(program *ast.Program, args []string) (*Environment, error) {
	env := &Environment{
		Name:    program.Name.Literal,
		Symbols: SymbolTable{},
	}
	if program.Description != nil {
		env.Description = program.Description.Literal
	}

	declared := make([]*symbol, 0, len(program.Parameters))
	byName := make(map[string]*symbol, len(program.Parameters))
	for _, param := range program.Parameters {
		name := param.Name.Literal
		if _, ok := byName[name]; ok {
			return nil, newError(ErrDuplicateParameter, program, param.Name,
				"parameter %q is declared more than once", name)
		}
		sym := &symbol{param: param}
		declared = append(declared, sym)
		byName[name] = sym
	}

	if program.Block != nil {
		for node := range ast.Preorder(program.Block) {
			ref, ok := node.(*ast.Symbol)
			if !ok {
				continue
			}
			sym, ok := byName[ref.Token.Literal]
			if !ok {
				return nil, newError(ErrUndeclaredSymbol, program, ref.Token,
					"%q is not a parameter of %s", ref.Token.Literal, env.Name)
			}
			sym.refs++
		}
	}

	for _, sym := range declared {
		if sym.refs == 0 {
			return nil, newError(ErrSymbolNotUsed, program, sym.param.Name,
				"parameter %q is never used", sym.param.Name.Literal)
		}
	}

	if len(args) > len(declared) {
		err := newError(ErrTooManyArguments, program, program.Name,
			"%s takes %d arguments, got %d", env.Name, len(declared), len(args))
		err.Symbol = ""
		return nil, err
	}

	for i, sym := range declared {
		name := sym.param.Name.Literal
		switch {
		case i < len(args):
			env.Symbols[name] = args[i]
		case sym.param.Default != nil:
			env.Symbols[name] = literal(*sym.param.Default)
		default:
			return nil, newError(ErrArgumentRequired, program, sym.param.Name,
				"no argument for %q and it has no default", name)
		}
	}
	return env, nil
}

func literal(tok token.Token) string {
	if tok.Type == token.INT {
		return strconv.FormatInt(tok.Int, 10)
	}
	return tok.Literal
}
