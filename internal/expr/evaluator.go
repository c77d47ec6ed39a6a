// Package expr evaluates the restricted arithmetic shorthand that users
// embed in magic notes ("50*8+20"). The grammar is fixed and tiny:
//
//	expression → term (('+' | '-') term)*
//	term       → factor (('*' | '/') factor)*
//	factor     → NUMBER | '(' expression ')' | '-' factor
//
// Input is validated against a character whitelist before any parsing
// happens, so no general-purpose evaluation path exists.
package expr

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Evaluation errors.
var (
	// ErrInvalidExpression indicates disallowed characters or malformed syntax.
	ErrInvalidExpression = errors.New("invalid expression")
	// ErrNonFiniteResult indicates division by zero or a non-finite intermediate value.
	ErrNonFiniteResult = errors.New("non-finite result")
)

type tokenKind int

const (
	tokenNumber tokenKind = iota
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenLParen
	tokenRParen
)

type token struct {
	text string
	kind tokenKind
}

// Evaluate parses and evaluates an arithmetic expression with standard
// operator precedence. No rounding is applied; callers format for display.
func Evaluate(input string) (decimal.Decimal, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return decimal.Zero, err
	}
	if len(tokens) == 0 {
		return decimal.Zero, fmt.Errorf("%w: empty expression", ErrInvalidExpression)
	}

	p := &parser{tokens: tokens}
	result, err := p.parseExpression()
	if err != nil {
		return decimal.Zero, err
	}
	if p.pos != len(p.tokens) {
		return decimal.Zero, fmt.Errorf("%w: unexpected %q after expression", ErrInvalidExpression, p.tokens[p.pos].text)
	}

	return result, nil
}

// tokenize splits the input into number and operator tokens. Every
// character must be on the whitelist; anything else fails immediately.
func tokenize(input string) ([]token, error) {
	var tokens []token

	runes := []rune(input)
	for i := 0; i < len(runes); {
		c := runes[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c >= '0' && c <= '9' || c == '.':
			start := i
			for i < len(runes) && (runes[i] >= '0' && runes[i] <= '9' || runes[i] == '.') {
				i++
			}
			tokens = append(tokens, token{kind: tokenNumber, text: string(runes[start:i])})
		case c == '+':
			tokens = append(tokens, token{kind: tokenPlus, text: "+"})
			i++
		case c == '-':
			tokens = append(tokens, token{kind: tokenMinus, text: "-"})
			i++
		case c == '*':
			tokens = append(tokens, token{kind: tokenStar, text: "*"})
			i++
		case c == '/':
			tokens = append(tokens, token{kind: tokenSlash, text: "/"})
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokenLParen, text: "("})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokenRParen, text: ")"})
			i++
		default:
			return nil, fmt.Errorf("%w: disallowed character %q", ErrInvalidExpression, string(c))
		}
	}

	return tokens, nil
}

type parser struct {
	tokens []token
	pos    int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.tokens) {
		return token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) advance() token {
	tok := p.tokens[p.pos]
	p.pos++
	return tok
}

// parseExpression handles addition and subtraction (lowest precedence).
func (p *parser) parseExpression() (decimal.Decimal, error) {
	left, err := p.parseTerm()
	if err != nil {
		return decimal.Zero, err
	}

	for {
		tok, ok := p.peek()
		if !ok || (tok.kind != tokenPlus && tok.kind != tokenMinus) {
			break
		}
		p.advance()

		right, err := p.parseTerm()
		if err != nil {
			return decimal.Zero, err
		}

		if tok.kind == tokenPlus {
			left = left.Add(right)
		} else {
			left = left.Sub(right)
		}
	}

	return left, nil
}

// parseTerm handles multiplication and division (higher precedence).
func (p *parser) parseTerm() (decimal.Decimal, error) {
	left, err := p.parseFactor()
	if err != nil {
		return decimal.Zero, err
	}

	for {
		tok, ok := p.peek()
		if !ok || (tok.kind != tokenStar && tok.kind != tokenSlash) {
			break
		}
		p.advance()

		right, err := p.parseFactor()
		if err != nil {
			return decimal.Zero, err
		}

		if tok.kind == tokenStar {
			left = left.Mul(right)
		} else {
			if right.IsZero() {
				return decimal.Zero, fmt.Errorf("%w: division by zero", ErrNonFiniteResult)
			}
			left = left.Div(right)
		}
	}

	return left, nil
}

// parseFactor handles numbers, parenthesized expressions, and unary minus.
func (p *parser) parseFactor() (decimal.Decimal, error) {
	tok, ok := p.peek()
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: incomplete expression", ErrInvalidExpression)
	}

	switch tok.kind {
	case tokenLParen:
		p.advance()
		result, err := p.parseExpression()
		if err != nil {
			return decimal.Zero, err
		}
		closing, ok := p.peek()
		if !ok || closing.kind != tokenRParen {
			return decimal.Zero, fmt.Errorf("%w: missing closing parenthesis", ErrInvalidExpression)
		}
		p.advance()
		return result, nil

	case tokenMinus:
		p.advance()
		value, err := p.parseFactor()
		if err != nil {
			return decimal.Zero, err
		}
		return value.Neg(), nil

	case tokenNumber:
		p.advance()
		d, err := decimal.NewFromString(tok.text)
		if err != nil {
			return decimal.Zero, fmt.Errorf("%w: malformed number %q", ErrInvalidExpression, tok.text)
		}
		return d, nil

	default:
		return decimal.Zero, fmt.Errorf("%w: expected number or '(', got %q", ErrInvalidExpression, tok.text)
	}
}
