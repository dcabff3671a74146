package lang

import (
	"iter"
	"log/slog"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer splits source text into tokens on demand.
//
// A Lexer holds no state beyond its read offset, so restarting a pass is just
// a matter of creating a new one.
type Lexer struct {
	src string
	pos int
}

// NewLexer returns a Lexer positioned at the start of src.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src}
}

// Next returns the next token. At the end of input it returns ok == false
// and a nil error.
func (l *Lexer) Next() (tok Token, ok bool, err error) {
	for l.pos < len(l.src) {
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])
		if !unicode.IsSpace(r) {
			break
		}

		l.pos += size
	}

	if l.pos >= len(l.src) {
		return Token{}, false, nil
	}

	start := l.pos
	r, size := utf8.DecodeRuneInString(l.src[start:])

	switch r {
	case '"':
		end := strings.IndexByte(l.src[start+1:], '"')
		if end < 0 {
			return Token{}, false, l.unclosed(start)
		}

		l.pos = start + 1 + end + 1

		return Token{Kind: KindLiteral, Text: l.src[start+1 : start+1+end], Pos: start}, true, nil

	case '{':
		depth := 0

		for i := start; i < len(l.src); i++ {
			switch l.src[i] {
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					l.pos = i + 1

					return Token{Kind: KindLiteral, Text: l.src[start+1 : i], Pos: start}, true, nil
				}
			}
		}

		return Token{}, false, l.unclosed(start)
	}

	kind, known := symbolKind[r]
	if !known {
		return Token{}, false, ErrUnknownSymbol.
			Reword("unknown symbol %q", r).
			With(slog.Int("pos", start))
	}

	l.pos = start + size

	return Token{Kind: kind, Pos: start}, true, nil
}

func (l *Lexer) unclosed(start int) error {
	// The rest of the input is the unterminated literal.
	l.pos = len(l.src)

	return ErrUnclosedLiteral.With(slog.Int("pos", start))
}

// Tokens returns an iterator over the remaining tokens. Iteration stops after
// the first error, which is yielded with a zero Token.
func (l *Lexer) Tokens() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, ok, err := l.Next()
			if err != nil {
				yield(Token{}, err)

				return
			}

			if !ok || !yield(tok, nil) {
				return
			}
		}
	}
}

// Lex tokenizes all of src.
func Lex(src string) ([]Token, error) {
	var tokens []Token

	for tok, err := range NewLexer(src).Tokens() {
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)
	}

	return tokens, nil
}
