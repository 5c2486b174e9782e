package lambda

import (
	"fmt"
	"strings"
	"unicode"
)

type TokenType int

const (
	TokenVar TokenType = iota
	TokenParam
	TokenLParen
	TokenRParen
	TokenLet
)

func (t TokenType) String() string {
	switch t {
	case TokenVar:
		return "Var"
	case TokenParam:
		return "Param"
	case TokenLParen:
		return "LParen"
	case TokenRParen:
		return "RParen"
	case TokenLet:
		return "Let"
	default:
		return fmt.Sprintf("TokenType(%d)", int(t))
	}
}

// Token is one lexical unit. Literal holds the identifier for Var, Param and
// Let tokens (for Let it is the name being bound) and is empty otherwise.
type Token struct {
	Type    TokenType
	Literal string
}

func (t Token) String() string {
	switch t.Type {
	case TokenLParen:
		return "("
	case TokenRParen:
		return ")"
	case TokenParam:
		return `\` + t.Literal
	case TokenLet:
		return "let " + t.Literal
	default:
		return t.Literal
	}
}

// LexError reports a tokenizer failure. Remaining is the number of characters
// that had not been consumed when the error was detected, so the offending
// character sits at len(Input)-Remaining.
type LexError struct {
	Msg       string
	Remaining int
	Input     string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%d: %s", e.Offset(), e.Msg)
}

// Offset is the character position the error points at.
func (e *LexError) Offset() int {
	return len([]rune(e.Input)) - e.Remaining
}

// Diagnostic renders the input with a caret under the offending character:
//
//	error:1
//	\.x
//	_^ variable must be at least 1 character
func (e *LexError) Diagnostic() string {
	off := e.Offset()
	return fmt.Sprintf("error:%d\n%s\n%s^ %s", off, e.Input, strings.Repeat("_", off), e.Msg)
}

type lexer struct {
	input []rune
	pos   int
}

func (l *lexer) peek() (rune, bool) {
	if l.pos >= len(l.input) {
		return 0, false
	}
	return l.input[l.pos], true
}

func (l *lexer) errorf(format string, args ...any) *LexError {
	return &LexError{
		Msg:       fmt.Sprintf(format, args...),
		Remaining: len(l.input) - l.pos,
		Input:     string(l.input),
	}
}

func (l *lexer) skipSpaces() {
	for l.pos < len(l.input) && l.input[l.pos] == ' ' {
		l.pos++
	}
}

// ident scans an identifier: a letter followed by letters or digits. It
// returns "" without consuming anything if the lookahead is not a letter.
func (l *lexer) ident() string {
	if ch, ok := l.peek(); !ok || !unicode.IsLetter(ch) {
		return ""
	}
	start := l.pos
	for l.pos < len(l.input) && isIdentChar(l.input[l.pos]) {
		l.pos++
	}
	return string(l.input[start:l.pos])
}

func isIdentChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

// Tokenize converts one line of input into tokens.
//
// `\x y.` produces one Param token per name. `let` is reserved: it absorbs the
// following identifier (and an optional `=`) into a single Let token.
func Tokenize(input string) ([]Token, error) {
	l := &lexer{input: []rune(input)}
	var tokens []Token

	for {
		ch, ok := l.peek()
		if !ok {
			return tokens, nil
		}
		switch {
		case ch == ' ':
			l.pos++
		case ch == '(':
			tokens = append(tokens, Token{Type: TokenLParen})
			l.pos++
		case ch == ')':
			tokens = append(tokens, Token{Type: TokenRParen})
			l.pos++
		case ch == '\\':
			l.pos++
			params, err := l.params()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, params...)
		case unicode.IsLetter(ch):
			name := l.ident()
			if name != "let" {
				tokens = append(tokens, Token{Type: TokenVar, Literal: name})
				continue
			}
			l.skipSpaces()
			bound := l.ident()
			if bound == "" {
				return nil, l.errorf("let requires a name")
			}
			l.skipSpaces()
			if next, ok := l.peek(); ok && next == '=' {
				l.pos++
			}
			tokens = append(tokens, Token{Type: TokenLet, Literal: bound})
		default:
			return nil, l.errorf("invalid char:'%c'", ch)
		}
	}
}

// params scans the parameter list of an abstraction header up to and
// including the terminating '.'.
func (l *lexer) params() ([]Token, error) {
	var params []Token
	for {
		name := l.ident()
		if name == "" {
			return nil, l.errorf("variable must be at least 1 character")
		}
		l.skipSpaces()
		params = append(params, Token{Type: TokenParam, Literal: name})

		ch, ok := l.peek()
		switch {
		case !ok:
			return nil, l.errorf("expected '.',found EOF")
		case ch == '.':
			l.pos++
			return params, nil
		case !unicode.IsLetter(ch):
			return nil, l.errorf("expected '.',found '%c'", ch)
		}
	}
}
