package parser

import (
	"github.com/tagfmt/tfmt/ast"
	"github.com/tagfmt/tfmt/internal/token"
)

// parseExpression parses a ternary expression:
//
//	Or ("?" Or ":" Expression)?
//
// The false branch recurses, so "a ? b : c ? d : e" parses as
// "a ? b : (c ? d : e)".
func (p *Parser) parseExpression() (ast.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	cond, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	if !p.curTokenIs(token.QUESTION) {
		return cond, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	whenTrue, err := p.parseBinary(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	whenFalse, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Ternary{Cond: cond, True: whenTrue, False: whenFalse}, nil
}

// parseBinary parses the binary operators at the given precedence level.
// The right operand recurses into the same level rather than looping, so
// every operator is right-associative.
func (p *Parser) parseBinary(level int) (ast.Expr, error) {
	if level == len(precedences) {
		return p.parseUnary()
	}
	left, err := p.parseBinary(level + 1)
	if err != nil {
		return nil, err
	}
	if !p.curTokenIs(precedences[level]...) {
		return left, nil
	}
	op := p.curToken
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	right, err := p.parseBinary(level)
	if err != nil {
		return nil, err
	}
	return &ast.Binary{X: left, Op: op, Y: right}, nil
}

// parseUnary parses:
//
//	"+" Unary | "-" Unary | "(" Expression+ ")" | Statement
func (p *Parser) parseUnary() (ast.Expr, error) {
	switch p.curToken.Type {
	case token.PLUS, token.MINUS:
		op := p.curToken
		if err := p.advance(); err != nil {
			return nil, err
		}
		if err := p.enter(); err != nil {
			return nil, err
		}
		defer p.leave()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op, X: operand}, nil
	case token.LPAREN:
		return p.parseGroup()
	default:
		return p.parseStatement()
	}
}

func (p *Parser) parseGroup() (ast.Expr, error) {
	lparen, err := p.expect(token.LPAREN)
	if err != nil {
		return nil, err
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()
	group := &ast.Group{Lparen: lparen.StartPosition}
	for !p.curTokenIs(token.RPAREN) {
		if p.curTokenIs(token.EOF) {
			return nil, p.unexpected(p.curToken, token.RPAREN)
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		group.Exprs = append(group.Exprs, expr)
	}
	if len(group.Exprs) == 0 {
		return nil, p.tokenError(ErrEmptyGroup, lparen, "a group needs at least one expression")
	}
	rparen, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, err
	}
	group.Rparen = rparen.StartPosition
	return group, nil
}

// parseStatement parses the leaves of an expression:
//
//	"$(" ID ")" | "$" ID "(" Expression ("," Expression)* ")" |
//	"<" ID ">" | Integer | String
func (p *Parser) parseStatement() (ast.Expr, error) {
	tok := p.curToken
	switch tok.Type {
	case token.DOLLAR:
		return p.parseDollar()
	case token.LT:
		return p.parseTag()
	case token.INT:
		return &ast.Integer{Token: tok}, p.advance()
	case token.STRING:
		return &ast.String{Token: tok}, p.advance()
	case token.EOF:
		return nil, p.unexpected(tok, token.DOLLAR, token.LT, token.INT, token.STRING)
	default:
		return nil, p.tokenError(ErrUnrecognizedToken, tok,
			"%s cannot start an expression", token.Describe(tok.Type))
	}
}

// parseDollar parses a symbol reference or a function call.
func (p *Parser) parseDollar() (ast.Expr, error) {
	dollar, err := p.expect(token.DOLLAR)
	if err != nil {
		return nil, err
	}
	switch p.curToken.Type {
	case token.LPAREN:
		if err := p.advance(); err != nil {
			return nil, err
		}
		name, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return &ast.Symbol{Token: name}, nil
	case token.IDENT:
		return p.parseFunction(dollar)
	default:
		return nil, p.unexpected(p.curToken, token.LPAREN, token.IDENT)
	}
}

func (p *Parser) parseFunction(dollar token.Token) (ast.Expr, error) {
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	fn := &ast.Function{Start: dollar, Name: name}
	for {
		arg, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		fn.Args = append(fn.Args, arg)
		if !p.curTokenIs(token.COMMA) {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	end, err := p.expect(token.RPAREN)
	if err != nil {
		return nil, err
	}
	fn.End = end
	return fn, nil
}

func (p *Parser) parseTag() (ast.Expr, error) {
	start, err := p.expect(token.LT)
	if err != nil {
		return nil, err
	}
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.GT); err != nil {
		return nil, err
	}
	return &ast.Tag{Start: start, Name: name}, nil
}
