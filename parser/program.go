package parser

import (
	"github.com/tagfmt/tfmt/ast"
	"github.com/tagfmt/tfmt/internal/token"
)

// parseProgram parses:
//
//	ID "(" Parameters ")" String? "{" Block "}"
func (p *Parser) parseProgram() (*ast.Program, error) {
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	params, err := p.parseParameters()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	var description *token.Token
	if p.curTokenIs(token.STRING) {
		tok := p.curToken
		description = &tok
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if !p.curTokenIs(token.EOF) {
		return nil, p.unexpected(p.curToken, token.EOF)
	}
	return &ast.Program{
		Name:        name,
		Parameters:  params,
		Description: description,
		Block:       block,
	}, nil
}

func (p *Parser) parseParameters() ([]*ast.Parameter, error) {
	var params []*ast.Parameter
	if p.curTokenIs(token.RPAREN) {
		return params, nil
	}
	for {
		param, err := p.parseParameter()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
		if !p.curTokenIs(token.COMMA) {
			return params, nil
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
}

// parseParameter parses:
//
//	ID ("=" (Integer | String))?
func (p *Parser) parseParameter() (*ast.Parameter, error) {
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	param := &ast.Parameter{Name: name}
	if !p.curTokenIs(token.ASSIGN) {
		return param, nil
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	switch p.curToken.Type {
	case token.INT, token.STRING:
		tok := p.curToken
		param.Default = &tok
		return param, p.advance()
	case token.EOF:
		return nil, p.unexpected(p.curToken, token.INT, token.STRING)
	default:
		return nil, p.tokenError(ErrInvalidDefault, p.curToken,
			"default of %q must be an integer or a string, found %s",
			name.Literal, token.Describe(p.curToken.Type))
	}
}

// parseBlock parses expressions between braces.
func (p *Parser) parseBlock() (*ast.Block, error) {
	lbrace, err := p.expect(token.LBRACE)
	if err != nil {
		return nil, err
	}
	block := &ast.Block{Lbrace: lbrace.StartPosition}
	for !p.curTokenIs(token.RBRACE) {
		if p.curTokenIs(token.EOF) {
			return nil, p.unexpected(p.curToken, token.RBRACE)
		}
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		block.Exprs = append(block.Exprs, expr)
	}
	rbrace, err := p.expect(token.RBRACE)
	if err != nil {
		return nil, err
	}
	block.Rbrace = rbrace.StartPosition
	return block, nil
}
