package verify

import (
	"fmt"
	"strconv"
	"strings"
)

// rational is an exact numerator/denominator pair. Fractions in student
// input ("3/4") stay exact through evaluation and only collapse to a
// float at comparison time, so "3/4" and "0.75" verify identically.
type rational struct {
	num int64
	den int64
}

func (r rational) float() float64 {
	return float64(r.num) / float64(r.den)
}

// reduce normalizes the sign onto the numerator and divides out the gcd.
func (r rational) reduce() rational {
	if r.den < 0 {
		r.num = -r.num
		r.den = -r.den
	}
	g := gcd(abs(r.num), r.den)
	if g > 1 {
		r.num /= g
		r.den /= g
	}
	return r
}

func (a rational) add(b rational) rational {
	return rational{a.num*b.den + b.num*a.den, a.den * b.den}.reduce()
}

func (a rational) sub(b rational) rational {
	return rational{a.num*b.den - b.num*a.den, a.den * b.den}.reduce()
}

func (a rational) mul(b rational) rational {
	return rational{a.num * b.num, a.den * b.den}.reduce()
}

func (a rational) div(b rational) (rational, error) {
	if b.num == 0 {
		return rational{}, fmt.Errorf("division by zero")
	}
	return rational{a.num * b.den, a.den * b.num}.reduce(), nil
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}

// evaluate parses and evaluates an arithmetic expression: integers,
// decimals, fractions, the four basic operators (ASCII and × ÷ forms),
// unary minus, and parentheses.
func evaluate(expr string) (rational, error) {
	toks, err := tokenize(expr)
	if err != nil {
		return rational{}, err
	}
	if len(toks) == 0 {
		return rational{}, fmt.Errorf("empty expression")
	}
	p := &parser{toks: toks}
	v, err := p.parseExpr()
	if err != nil {
		return rational{}, err
	}
	if p.pos != len(p.toks) {
		return rational{}, fmt.Errorf("unexpected trailing input %q", p.toks[p.pos].text)
	}
	return v, nil
}

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
}

func tokenize(expr string) ([]token, error) {
	var toks []token
	rs := []rune(expr)
	for i := 0; i < len(rs); {
		c := rs[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c >= '0' && c <= '9' || c == '.':
			j := i
			for j < len(rs) && (rs[j] >= '0' && rs[j] <= '9' || rs[j] == '.') {
				j++
			}
			toks = append(toks, token{tokNumber, string(rs[i:j])})
			i = j
		case c == '+' || c == '-' || c == '*' || c == '/':
			toks = append(toks, token{tokOp, string(c)})
			i++
		case c == '×':
			toks = append(toks, token{tokOp, "*"})
			i++
		case c == '÷':
			toks = append(toks, token{tokOp, "/"})
			i++
		case c == '(':
			toks = append(toks, token{tokLParen, "("})
			i++
		case c == ')':
			toks = append(toks, token{tokRParen, ")"})
			i++
		default:
			return nil, fmt.Errorf("unexpected character %q", string(c))
		}
	}
	return toks, nil
}

type parser struct {
	toks []token
	pos  int
}

func (p *parser) peek() (token, bool) {
	if p.pos >= len(p.toks) {
		return token{}, false
	}
	return p.toks[p.pos], true
}

// parseExpr handles + and - at the lowest precedence.
func (p *parser) parseExpr() (rational, error) {
	left, err := p.parseTerm()
	if err != nil {
		return rational{}, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOp || (t.text != "+" && t.text != "-") {
			return left, nil
		}
		p.pos++
		right, err := p.parseTerm()
		if err != nil {
			return rational{}, err
		}
		if t.text == "+" {
			left = left.add(right)
		} else {
			left = left.sub(right)
		}
	}
}

// parseTerm handles * and /.
func (p *parser) parseTerm() (rational, error) {
	left, err := p.parseFactor()
	if err != nil {
		return rational{}, err
	}
	for {
		t, ok := p.peek()
		if !ok || t.kind != tokOp || (t.text != "*" && t.text != "/") {
			return left, nil
		}
		p.pos++
		right, err := p.parseFactor()
		if err != nil {
			return rational{}, err
		}
		if t.text == "*" {
			left = left.mul(right)
		} else {
			left, err = left.div(right)
			if err != nil {
				return rational{}, err
			}
		}
	}
}

// parseFactor handles unary minus, parentheses, and number literals.
func (p *parser) parseFactor() (rational, error) {
	t, ok := p.peek()
	if !ok {
		return rational{}, fmt.Errorf("unexpected end of expression")
	}
	switch {
	case t.kind == tokOp && t.text == "-":
		p.pos++
		v, err := p.parseFactor()
		if err != nil {
			return rational{}, err
		}
		v.num = -v.num
		return v, nil
	case t.kind == tokOp && t.text == "+":
		p.pos++
		return p.parseFactor()
	case t.kind == tokLParen:
		p.pos++
		v, err := p.parseExpr()
		if err != nil {
			return rational{}, err
		}
		t, ok = p.peek()
		if !ok || t.kind != tokRParen {
			return rational{}, fmt.Errorf("missing closing parenthesis")
		}
		p.pos++
		return v, nil
	case t.kind == tokNumber:
		p.pos++
		return parseNumber(t.text)
	default:
		return rational{}, fmt.Errorf("unexpected token %q", t.text)
	}
}

// parseNumber converts an integer or decimal literal to an exact rational.
// "0.75" becomes 3/4, so decimal and fraction forms of the same value
// compare equal.
func parseNumber(s string) (rational, error) {
	if strings.Count(s, ".") > 1 {
		return rational{}, fmt.Errorf("invalid number %q", s)
	}
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return rational{}, fmt.Errorf("invalid number %q", s)
		}
		return rational{n, 1}, nil
	}

	intPart := s[:dot]
	fracPart := s[dot+1:]
	if intPart == "" && fracPart == "" {
		return rational{}, fmt.Errorf("invalid number %q", s)
	}
	if intPart == "" {
		intPart = "0"
	}

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return rational{}, fmt.Errorf("invalid number %q", s)
	}
	v := rational{n, 1}
	if fracPart != "" {
		f, err := strconv.ParseInt(fracPart, 10, 64)
		if err != nil {
			return rational{}, fmt.Errorf("invalid number %q", s)
		}
		den := int64(1)
		for range fracPart {
			den *= 10
		}
		v = v.add(rational{f, den})
	}
	return v.reduce(), nil
}
