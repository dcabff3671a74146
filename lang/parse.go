package lang

import "log/slog"

// Parse lexes and parses src as a single expression. The whole input must be
// consumed: trailing tokens yield [ErrUnexpected] and empty input yields
// [ErrExpected].
func Parse(src string) (Node, error) {
	p := &parser{lex: NewLexer(src)}

	if err := p.advance(); err != nil {
		return nil, err
	}

	n, err := p.expr(true)
	if err != nil {
		return nil, err
	}

	if p.ok {
		return nil, unexpected(p.tok)
	}

	return n, nil
}

// parser holds one token of look-ahead over a [Lexer].
type parser struct {
	lex *Lexer
	tok Token
	ok  bool // tok holds a token; false at end of input
}

func (p *parser) advance() (err error) {
	p.tok, p.ok, err = p.lex.Next()

	return err
}

// expect consumes a token of the given kind.
func (p *parser) expect(kind Kind) error {
	if !p.ok {
		return expected(kind.String(), eofDescription)
	}

	if p.tok.Kind != kind {
		return expected(kind.String(), p.tok.String()).With(slog.Int("pos", p.tok.Pos))
	}

	return p.advance()
}

// simple parses a primary expression:
//
//	S := literal | "?" | "_" | "(" E ")" | "#" S | "$" S
func (p *parser) simple() (Node, error) {
	if !p.ok {
		return nil, expected("expression", eofDescription)
	}

	tok := p.tok

	switch tok.Kind {
	case KindLiteral, KindQuestionMark, KindUnderscore:
		if err := p.advance(); err != nil {
			return nil, err
		}

		switch tok.Kind {
		case KindQuestionMark:
			return &Prompt{}, nil
		case KindUnderscore:
			return &Var{}, nil
		default:
			return &Literal{Text: tok.Text}, nil
		}

	case KindOpenParen:
		if err := p.advance(); err != nil {
			return nil, err
		}

		inner, err := p.expr(true)
		if err != nil {
			return nil, err
		}

		if err := p.expect(KindCloseParen); err != nil {
			return nil, err
		}

		return &Group{Inner: inner}, nil

	case KindHash, KindDollar:
		if err := p.advance(); err != nil {
			return nil, err
		}

		operand, err := p.simple()
		if err != nil {
			return nil, err
		}

		if tok.Kind == KindHash {
			return &Length{Operand: operand}, nil
		}

		return &Eval{Operand: operand}, nil

	default:
		return nil, expected("expression", tok.String()).With(slog.Int("pos", tok.Pos))
	}
}

// expr parses a primary expression followed by any number of trailing
// operators:
//
//	E := S ( ":" E | "+" S | "[" E? ":" E? "]" | "=" S )*
//
// When closures is false a ":" ends the expression instead, which is how a
// slice's bounds are kept apart.
func (p *parser) expr(closures bool) (Node, error) {
	left, err := p.simple()
	if err != nil {
		return nil, err
	}

	for p.ok {
		var op Node

		switch p.tok.Kind {
		case KindColon:
			if !closures {
				return left, nil
			}

			if err := p.advance(); err != nil {
				return nil, err
			}

			right, err := p.expr(true)
			if err != nil {
				return nil, err
			}

			op = &Closure{Right: right}

		case KindPlus, KindEqual:
			kind := p.tok.Kind

			if err := p.advance(); err != nil {
				return nil, err
			}

			right, err := p.simple()
			if err != nil {
				return nil, err
			}

			if kind == KindPlus {
				op = &Concat{Items: []Node{right}}
			} else {
				op = &Equal{Right: right}
			}

		case KindOpenBracket:
			if op, err = p.slice(); err != nil {
				return nil, err
			}

		default:
			return left, nil
		}

		left = merge(left, op)
	}

	return left, nil
}

// slice parses the bracketed bounds following a slice's source.
func (p *parser) slice() (*Slice, error) {
	var (
		s   Slice
		err error
	)

	if err = p.advance(); err != nil {
		return nil, err
	}

	if p.ok && p.tok.Kind != KindColon {
		if s.Lower, err = p.expr(false); err != nil {
			return nil, err
		}
	}

	if err = p.expect(KindColon); err != nil {
		return nil, err
	}

	if p.ok && p.tok.Kind != KindCloseBracket {
		if s.Upper, err = p.expr(false); err != nil {
			return nil, err
		}
	}

	if err = p.expect(KindCloseBracket); err != nil {
		return nil, err
	}

	return &s, nil
}

// merge combines left with op, an operator node still missing its left
// operand. If op binds at least as tightly as left, it is pushed down into
// left's right-most operand. Otherwise left becomes op's left operand.
func merge(left, op Node) Node {
	if left.Precedence() <= op.Precedence() {
		switch l := left.(type) {
		case *Concat:
			if o, ok := op.(*Concat); ok {
				l.Items = append(l.Items, o.Items...)

				return l
			}

			last := len(l.Items) - 1
			l.Items[last] = merge(l.Items[last], op)

			return l

		case *Equal:
			// Chained equality grows to the left.
			if _, ok := op.(*Equal); !ok {
				l.Right = merge(l.Right, op)

				return l
			}

		case *Closure:
			l.Right = merge(l.Right, op)

			return l

		case *Length:
			l.Operand = merge(l.Operand, op)

			return l

		case *Eval:
			l.Operand = merge(l.Operand, op)

			return l
		}
	}

	return attach(left, op)
}

// attach installs left as the left operand of op.
func attach(left, op Node) Node {
	switch o := op.(type) {
	case *Closure:
		o.Left = left
	case *Concat:
		o.Items = append([]Node{left}, o.Items...)
	case *Slice:
		o.Src = left
	case *Equal:
		o.Left = left
	}

	return op
}

func expected(what, found string) *Error {
	return ErrExpected.Reword("expected %s, found %s", what, found)
}

func unexpected(tok Token) *Error {
	return ErrUnexpected.Reword("unexpected %s", tok).With(slog.Int("pos", tok.Pos))
}
