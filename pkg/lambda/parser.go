package lambda

import "fmt"

// SyntaxError reports a structural problem in an otherwise well-formed token
// stream. Pos is the index of the offending token (len(tokens) at end of input).
type SyntaxError struct {
	Msg string
	Pos int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at token %d: %s", e.Pos, e.Msg)
}

// Parser is a recursive-descent parser over the token stream of one line.
// The cursor is reset by every call to Parse.
type Parser struct {
	tokens []Token
	cur    int
	len    int
}

func NewParser() *Parser {
	return &Parser{}
}

// Parse tokenizes input and parses it into a Statement.
// Lexical failures are returned as *LexError, structural ones as *SyntaxError.
func (p *Parser) Parse(input string) (Statement, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return nil, err
	}
	p.tokens = tokens
	p.cur = 0
	p.len = len(tokens)
	return p.parseStatement()
}

// Statement ::= Let Expression | Expression
func (p *Parser) parseStatement() (Statement, error) {
	if p.len == 0 {
		return nil, p.errorf("empty input")
	}

	// A ')' with no matching '(' ends the statement; what follows is ignored.
	if tok := p.tokens[0]; tok.Type == TokenLet {
		p.cur++
		val, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return Let{Name: tok.Literal, Val: val}, nil
	}
	val, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return Expr{Val: val}, nil
}

// Expression ::= (Term | Param Expression)+
//
// Application is left-associative. A Param token takes the whole rest of the
// enclosing expression as its body, so `\x y.b` nests as `\x.\y.b`.
func (p *Parser) parseExpression() (Term, error) {
	var left Term
	for p.cur < p.len && p.tokens[p.cur].Type != TokenRParen {
		var right Term
		if tok := p.tokens[p.cur]; tok.Type == TokenParam {
			p.cur++
			body, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			right = Abs{Arg: tok.Literal, Body: body}
		} else {
			term, err := p.parseTerm()
			if err != nil {
				return nil, err
			}
			right = term
		}

		if left == nil {
			left = right
		} else {
			left = App{Fun: left, Arg: right}
		}
	}

	if left == nil {
		if p.cur < p.len {
			return nil, p.errorf("unexpected ')'")
		}
		return nil, p.errorf("unexpected end of input")
	}
	return left, nil
}

// Term ::= '(' Expression ')' | Var
func (p *Parser) parseTerm() (Term, error) {
	tok := p.tokens[p.cur]
	switch tok.Type {
	case TokenLParen:
		p.cur++
		term, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if p.cur >= p.len || p.tokens[p.cur].Type != TokenRParen {
			return nil, p.errorf("unterminated (")
		}
		p.cur++
		return term, nil
	case TokenVar:
		p.cur++
		return Var{Name: tok.Literal}, nil
	case TokenLet:
		return nil, p.errorf("let must start the statement")
	default:
		return nil, p.errorf("unexpected token: %v", tok)
	}
}

func (p *Parser) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Pos: p.cur}
}

// Parse parses one line into a Statement.
func Parse(input string) (Statement, error) {
	return NewParser().Parse(input)
}

// ParseTerm parses one line and returns its expression. A let prefix is
// accepted and its name ignored.
func ParseTerm(input string) (Term, error) {
	stmt, err := Parse(input)
	if err != nil {
		return nil, err
	}
	return stmt.Expression(), nil
}
