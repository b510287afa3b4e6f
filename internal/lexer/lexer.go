// Package lexer splits TFMT source code into tokens.
//
// The lexer works on Unicode extended grapheme clusters, so positions and
// the forbidden character checks stay correct for multi-byte clusters.
package lexer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/tagfmt/tfmt/internal/token"
)

// ForbiddenRunes lists the characters that may not appear in a string
// literal because they are illegal in file paths.
const ForbiddenRunes = `<>:"|?*~`

// IsForbidden reports whether the grapheme cluster g contains a forbidden
// rune. A forbidden character followed by combining marks still counts.
func IsForbidden(g string) bool {
	return strings.ContainsAny(g, ForbiddenRunes)
}

// Lexer produces tokens from TFMT source code. A Lexer is single use: once
// it has reached the end of the input (or failed) it keeps returning the
// same result.
type Lexer struct {
	input     string
	graphemes []string
	pos       int // index of the current grapheme
	line      int
	column    int
	lineStart int
	err       error
}

// New returns a Lexer for the given input. Input containing a carriage
// return is rejected on the first call to Next; callers must normalize
// newlines before lexing.
func New(input string) *Lexer {
	l := &Lexer{input: input}
	gr := uniseg.NewGraphemes(input)
	for gr.Next() {
		l.graphemes = append(l.graphemes, gr.Str())
	}
	if strings.ContainsRune(input, '\r') {
		l.err = l.carriageReturnError()
	}
	return l
}

// Input returns the source code being lexed.
func (l *Lexer) Input() string {
	return l.input
}

func (l *Lexer) carriageReturnError() error {
	probe := &Lexer{input: l.input, graphemes: l.graphemes}
	for !probe.atEnd() {
		if strings.ContainsRune(probe.peek(0), '\r') {
			break
		}
		probe.advance()
	}
	return l.newError(ErrInputContainsCr, probe.position(), nil,
		"normalize line endings to \\n before lexing")
}

// Next returns the next token in the input. Whitespace is skipped. Comment
// tokens are returned and marked as ignored.
func (l *Lexer) Next() (token.Token, error) {
	if l.err != nil {
		return token.Token{}, l.err
	}
	tok, err := l.next()
	if err != nil {
		l.err = err
		return token.Token{}, err
	}
	return tok, nil
}

// Tokens lexes the remaining input, returning every token up to and
// including EOF.
func (l *Lexer) Tokens() ([]token.Token, error) {
	var tokens []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) next() (token.Token, error) {
	l.skipWhitespace()
	start := l.position()
	if l.atEnd() {
		return token.Token{Type: token.EOF, StartPosition: start, EndPosition: start}, nil
	}
	g := l.peek(0)
	switch {
	case g == `"` || g == "'":
		return l.readString(g)
	case g == "/" && l.peek(1) == "/":
		return l.readLineComment(), nil
	case g == "/" && l.peek(1) == "*":
		return l.readBlockComment()
	}
	if tok, ok := l.readOperator(); ok {
		return tok, nil
	}
	return l.readWord()
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.graphemes)
}

// peek returns the grapheme n places ahead of the current one, or "" past
// the end of the input.
func (l *Lexer) peek(n int) string {
	if l.pos+n >= len(l.graphemes) {
		return ""
	}
	return l.graphemes[l.pos+n]
}

func (l *Lexer) advance() string {
	g := l.graphemes[l.pos]
	l.pos++
	if g == "\n" {
		l.line++
		l.column = 0
		l.lineStart = l.pos
	} else {
		l.column++
	}
	return g
}

func (l *Lexer) position() token.Position {
	return token.Position{
		Char:      l.pos,
		LineStart: l.lineStart,
		Line:      l.line,
		Column:    l.column,
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.atEnd() && isWhitespace(l.peek(0)) {
		l.advance()
	}
}

func (l *Lexer) newToken(t token.Type, literal string, start token.Position) token.Token {
	return token.Token{
		Type:          t,
		Literal:       literal,
		StartPosition: start,
		EndPosition:   l.position(),
	}
}

type located struct {
	grapheme string
	pos      token.Position
}

// readString reads a single or triple quoted string starting at the
// current quote grapheme.
func (l *Lexer) readString(quote string) (token.Token, error) {
	start := l.position()
	var value []located
	if l.peek(1) == quote && l.peek(2) == quote {
		l.advance()
		l.advance()
		l.advance()
		for {
			if l.atEnd() {
				if n := len(value); n > 0 && value[n-1].grapheme == quote {
					return token.Token{}, l.newError(ErrWrongTerminatorAtEOF, value[n-1].pos, nil,
						"multi-line string must be closed with %s", strings.Repeat(quote, 3))
				}
				return token.Token{}, l.newError(ErrExhaustedText, start, nil,
					"unterminated multi-line string")
			}
			if l.peek(0) == quote && l.peek(1) == quote && l.peek(2) == quote {
				l.advance()
				l.advance()
				l.advance()
				break
			}
			value = append(value, located{l.peek(0), l.position()})
			l.advance()
		}
	} else {
		l.advance()
		for {
			if l.atEnd() {
				return token.Token{}, l.newError(ErrExhaustedText, start, nil,
					"unterminated string")
			}
			g := l.peek(0)
			if g == "\n" {
				return token.Token{}, l.newError(ErrNewlineInString, l.position(), nil,
					"use a %s string for multi-line text", strings.Repeat(quote, 3))
			}
			if g == quote {
				l.advance()
				break
			}
			value = append(value, located{g, l.position()})
			l.advance()
		}
	}
	var b strings.Builder
	for _, v := range value {
		if IsForbidden(v.grapheme) {
			return token.Token{}, l.newError(ErrForbiddenGrapheme, v.pos, nil,
				"%q is not allowed in strings", v.grapheme)
		}
		b.WriteString(v.grapheme)
	}
	return l.newToken(token.STRING, b.String(), start), nil
}

func (l *Lexer) readLineComment() token.Token {
	start := l.position()
	l.advance()
	l.advance()
	var b strings.Builder
	for !l.atEnd() && l.peek(0) != "\n" {
		b.WriteString(l.advance())
	}
	return l.newToken(token.COMMENT, b.String(), start)
}

func (l *Lexer) readBlockComment() (token.Token, error) {
	start := l.position()
	l.advance()
	l.advance()
	var b strings.Builder
	for {
		if l.atEnd() {
			text := b.String()
			if strings.HasSuffix(text, "*") {
				return token.Token{}, l.newError(ErrWrongTerminatorAtEOF, start, nil,
					"comment must be closed with */")
			}
			return token.Token{}, l.newError(ErrExhaustedText, start, nil,
				"unterminated comment")
		}
		if l.peek(0) == "*" && l.peek(1) == "/" {
			l.advance()
			l.advance()
			return l.newToken(token.COMMENT, b.String(), start), nil
		}
		b.WriteString(l.advance())
	}
}

// readOperator matches the longest operator lexeme at the current position.
func (l *Lexer) readOperator() (token.Token, bool) {
	start := l.position()
	for n := token.MaxOperatorLength; n > 0; n-- {
		if l.pos+n > len(l.graphemes) {
			continue
		}
		lexeme := strings.Join(l.graphemes[l.pos:l.pos+n], "")
		t, err := token.LookupOperator(lexeme)
		if err != nil {
			continue
		}
		for i := 0; i < n; i++ {
			l.advance()
		}
		return l.newToken(t, lexeme, start), true
	}
	return token.Token{}, false
}

// readWord crawls alphanumeric graphemes and classifies the result as an
// identifier or an integer.
func (l *Lexer) readWord() (token.Token, error) {
	start := l.position()
	var b strings.Builder
	for !l.atEnd() && isWordGrapheme(l.peek(0)) {
		b.WriteString(l.advance())
	}
	word := b.String()
	if word == "" {
		g := l.peek(0)
		_, err := token.LookupOperator(g)
		return token.Token{}, l.newError(ErrInvalidToken, start, err,
			"unexpected %q", g)
	}
	first, _ := utf8.DecodeRuneInString(word)
	if unicode.IsLetter(first) {
		return l.newToken(token.IDENT, word, start), nil
	}
	if isInteger(word) {
		value, err := strconv.ParseInt(word, 10, 64)
		if err != nil {
			return token.Token{}, l.newError(ErrInvalidToken, start, err,
				"integer %s is out of range", word)
		}
		tok := l.newToken(token.INT, word, start)
		tok.Int = value
		return tok, nil
	}
	return token.Token{}, l.newError(ErrInvalidToken, start, &token.Error{Lexeme: word},
		"%q is neither an identifier nor an integer", word)
}

func isWhitespace(g string) bool {
	for _, r := range g {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return g != ""
}

func isWordGrapheme(g string) bool {
	r, _ := utf8.DecodeRuneInString(g)
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isInteger(word string) bool {
	for i := 0; i < len(word); i++ {
		if word[i] < '0' || word[i] > '9' {
			return false
		}
	}
	return true
}
