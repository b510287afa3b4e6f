// Package interpreter evaluates a parsed TFMT program against the tags of
// an audio file, producing the file's destination path.
//
// Every expression evaluates to a string. A string is "truthy" when it is
// not empty; arithmetic operators parse their operands as 64-bit integers.
package interpreter

import (
	"errors"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tagfmt/tfmt/ast"
	"github.com/tagfmt/tfmt/errz"
	"github.com/tagfmt/tfmt/internal/token"
	"github.com/tagfmt/tfmt/semantic"
	"github.com/tagfmt/tfmt/tags"
)

// Interpreter evaluates one program with one set of bound symbols. It never
// modifies either, so a single Interpreter may be used from many goroutines.
type Interpreter struct {
	program *ast.Program
	symbols semantic.SymbolTable
}

// New returns an Interpreter for the program. The symbols are usually the
// result of semantic.Analyze.
func New(program *ast.Program, symbols semantic.SymbolTable) *Interpreter {
	return &Interpreter{program: program, symbols: symbols}
}

// Interpret evaluates the program against the given tags and returns the
// destination path, without extension, using the host path separator.
func (i *Interpreter) Interpret(p tags.Provider) (string, error) {
	e := &evaluator{Interpreter: i, tags: p}
	var out strings.Builder
	for _, expr := range i.program.Block.Exprs {
		value, err := e.eval(expr)
		if err != nil {
			return "", err
		}
		out.WriteString(value)
	}
	return filepath.FromSlash(out.String()), nil
}

// evaluator holds the state of a single Interpret call.
type evaluator struct {
	*Interpreter
	tags tags.Provider
}

func (e *evaluator) eval(node ast.Expr) (string, error) {
	switch node := node.(type) {
	case *ast.Ternary:
		return e.evalTernary(node)
	case *ast.Binary:
		return e.evalBinary(node)
	case *ast.Unary:
		return e.evalUnary(node)
	case *ast.Group:
		return e.evalGroup(node)
	case *ast.Function:
		return e.evalFunction(node)
	case *ast.String:
		return node.Token.Literal, nil
	case *ast.Integer:
		return strconv.FormatInt(node.Token.Int, 10), nil
	case *ast.Symbol:
		return e.evalSymbol(node)
	case *ast.Tag:
		return e.evalTag(node)
	default:
		panic("interpreter: unexpected expression type")
	}
}

func (e *evaluator) evalTernary(node *ast.Ternary) (string, error) {
	cond, err := e.eval(node.Cond)
	if err != nil {
		return "", err
	}
	if cond != "" {
		return e.eval(node.True)
	}
	return e.eval(node.False)
}

func (e *evaluator) evalGroup(node *ast.Group) (string, error) {
	var out strings.Builder
	for _, expr := range node.Exprs {
		value, err := e.eval(expr)
		if err != nil {
			return "", err
		}
		out.WriteString(value)
	}
	return out.String(), nil
}

func (e *evaluator) evalBinary(node *ast.Binary) (string, error) {
	left, err := e.eval(node.X)
	if err != nil {
		return "", err
	}
	right, err := e.eval(node.Y)
	if err != nil {
		return "", err
	}
	switch node.Op.Type {
	case token.PIPE:
		if left != "" {
			return left, nil
		}
		return right, nil
	case token.OR:
		if left != "" {
			return left + right, nil
		}
		return right, nil
	case token.AMPERSAND:
		if left != "" {
			return right, nil
		}
		return left, nil
	case token.AND:
		if left != "" {
			return left + right, nil
		}
		return left, nil
	case token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.MOD, token.POW, token.CARET:
		return e.evalArithmetic(node, left, right)
	default:
		return "", e.newError(ErrInvalidTokenType, node, node.Op.StartPosition, nil,
			"%s is not a binary operator", token.Describe(node.Op.Type))
	}
}

func (e *evaluator) evalArithmetic(node *ast.Binary, left, right string) (string, error) {
	x, err := e.parseOperand(node.X, left)
	if err != nil {
		return "", err
	}
	y, err := e.parseOperand(node.Y, right)
	if err != nil {
		return "", err
	}
	var result int64
	var ok bool
	switch node.Op.Type {
	case token.PLUS:
		result, ok = addInt(x, y)
	case token.MINUS:
		result, ok = subInt(x, y)
	case token.ASTERISK:
		result, ok = mulInt(x, y)
	case token.SLASH, token.MOD:
		if y == 0 {
			return "", e.newError(ErrDivisionByZero, node, node.Op.StartPosition, nil, "%d %s 0", x, node.Op.Type)
		}
		if node.Op.Type == token.SLASH {
			result, ok = divInt(x, y)
		} else {
			result, ok = x%y, true
		}
	case token.POW, token.CARET:
		if y < 0 {
			return "", e.newError(ErrInvalidArgument, node, node.Op.StartPosition, nil, "negative exponent %d", y)
		}
		result, ok = powInt(x, y)
	}
	if !ok {
		return "", e.newError(ErrOverflow, node, node.Op.StartPosition, nil, "%d %s %d", x, node.Op.Type, y)
	}
	return strconv.FormatInt(result, 10), nil
}

func (e *evaluator) parseOperand(node ast.Expr, value string) (int64, error) {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, e.newError(ErrInvalidNumber, node, node.Pos(), err, "%q is not an integer", value)
	}
	return n, nil
}

func (e *evaluator) evalUnary(node *ast.Unary) (string, error) {
	operand, err := e.eval(node.X)
	if err != nil {
		return "", err
	}
	switch node.Op.Type {
	case token.PLUS:
		return operand, nil
	case token.MINUS:
		n, err := e.parseOperand(node.X, operand)
		if err != nil {
			return "", err
		}
		result, ok := subInt(0, n)
		if !ok {
			return "", e.newError(ErrOverflow, node, node.Op.StartPosition, nil, "-(%d)", n)
		}
		return strconv.FormatInt(result, 10), nil
	default:
		return "", e.newError(ErrInvalidTokenType, node, node.Op.StartPosition, nil,
			"%s is not a unary operator", token.Describe(node.Op.Type))
	}
}

func (e *evaluator) evalFunction(node *ast.Function) (string, error) {
	args := make([]string, len(node.Args))
	for i, arg := range node.Args {
		value, err := e.eval(arg)
		if err != nil {
			return "", err
		}
		args[i] = value
	}
	name := node.Name.Literal
	fn, ok := builtins[name]
	if !ok {
		fnErr := newFunctionError(name, ErrUnknownFunction, nil, "%s", name)
		if hint := errz.FormatSuggestions(errz.SuggestSimilar(name, BuiltinNames())); hint != "" {
			fnErr.Detail += " (" + hint + ")"
		}
		return "", e.functionError(node, fnErr)
	}
	result, err := fn.Call(args...)
	if err != nil {
		var fnErr *FunctionError
		if errors.As(err, &fnErr) {
			return "", e.functionError(node, fnErr)
		}
		return "", e.functionError(node, newFunctionError(name, ErrInvalidArgument, err, "%s", err))
	}
	return result, nil
}

func (e *evaluator) evalSymbol(node *ast.Symbol) (string, error) {
	value, ok := e.symbols[node.Token.Literal]
	if !ok {
		return "", e.newError(ErrUnknownSymbol, node, node.Token.StartPosition, nil, "%s", node.Token.Literal)
	}
	return value, nil
}

func (e *evaluator) evalTag(node *ast.Tag) (string, error) {
	value, ok := resolveTag(e.tags, node.Name.Literal)
	if !ok {
		err := e.newError(ErrUnknownTag, node, node.Name.StartPosition, nil, "%s", node.Name.Literal)
		if hint := errz.FormatSuggestions(errz.SuggestSimilar(node.Name.Literal, TagNames())); hint != "" {
			err.Detail += " (" + hint + ")"
		}
		return "", err
	}
	return value, nil
}
