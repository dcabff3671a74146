package lang

import (
	"errors"
	"slices"
	"testing"
)

func TestLex(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Token
	}{
		{
			name: "empty",
			src:  "",
			want: nil,
		},
		{
			name: "whitespace only",
			src:  " \t\r\n ",
			want: nil,
		},
		{
			name: "quoted",
			src:  `"Hello world"`,
			want: []Token{{Kind: KindLiteral, Text: "Hello world"}},
		},
		{
			name: "quoted keeps backslashes and newlines",
			src:  "\"a\\n\nb\"",
			want: []Token{{Kind: KindLiteral, Text: "a\\n\nb"}},
		},
		{
			name: "braced nests",
			src:  `{say "{hi}"}`,
			want: []Token{{Kind: KindLiteral, Text: `say "{hi}"`}},
		},
		{
			name: "empty literals",
			src:  `""{}`,
			want: []Token{
				{Kind: KindLiteral, Text: ""},
				{Kind: KindLiteral, Text: "", Pos: 2},
			},
		},
		{
			name: "every symbol",
			src:  "()?_:+[]=#$",
			want: []Token{
				{Kind: KindOpenParen, Pos: 0},
				{Kind: KindCloseParen, Pos: 1},
				{Kind: KindQuestionMark, Pos: 2},
				{Kind: KindUnderscore, Pos: 3},
				{Kind: KindColon, Pos: 4},
				{Kind: KindPlus, Pos: 5},
				{Kind: KindOpenBracket, Pos: 6},
				{Kind: KindCloseBracket, Pos: 7},
				{Kind: KindEqual, Pos: 8},
				{Kind: KindHash, Pos: 9},
				{Kind: KindDollar, Pos: 10},
			},
		},
		{
			name: "mixed",
			src:  `"ab" [ "1" : ]`,
			want: []Token{
				{Kind: KindLiteral, Text: "ab", Pos: 0},
				{Kind: KindOpenBracket, Pos: 5},
				{Kind: KindLiteral, Text: "1", Pos: 7},
				{Kind: KindColon, Pos: 11},
				{Kind: KindCloseBracket, Pos: 13},
			},
		},
		{
			name: "multibyte content",
			src:  `"héllo"+_`,
			want: []Token{
				{Kind: KindLiteral, Text: "héllo"},
				{Kind: KindPlus, Pos: 8},
				{Kind: KindUnderscore, Pos: 9},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Lex(tt.src)
			if err != nil {
				t.Fatalf("Lex(%q) error: %v", tt.src, err)
			}

			if !slices.Equal(got, tt.want) {
				t.Errorf("Lex(%q)\n got %v\nwant %v", tt.src, got, tt.want)
			}
		})
	}
}

func TestLexerStopsAtLiteralEnd(t *testing.T) {
	tests := []struct {
		src  string
		text string
		next int
	}{
		{`"in"out`, "in", 4},
		{`{{}{{}}}out`, "{}{{}}", 8},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			l := NewLexer(tt.src)

			tok, ok, err := l.Next()
			if err != nil || !ok {
				t.Fatalf("Next() = %v, %v, %v", tok, ok, err)
			}

			if tok.Text != tt.text {
				t.Errorf("literal %q, want %q", tok.Text, tt.text)
			}

			if l.pos != tt.next {
				t.Errorf("stopped at %d, want %d", l.pos, tt.next)
			}
		})
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		src  string
		want error
		msg  string
	}{
		{`"abc`, ErrUnclosedLiteral, "unclosed literal"},
		{`{abc`, ErrUnclosedLiteral, "unclosed literal"},
		{`{a{b}`, ErrUnclosedLiteral, "unclosed literal"},
		{`"a" + b`, ErrUnknownSymbol, `unknown symbol 'b'`},
		{`}`, ErrUnknownSymbol, `unknown symbol '}'`},
		{`"x" ; "y"`, ErrUnknownSymbol, `unknown symbol ';'`},
		{`é`, ErrUnknownSymbol, `unknown symbol 'é'`},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			_, err := Lex(tt.src)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Lex(%q) error = %v, want %v", tt.src, err, tt.want)
			}

			if err.Error() != tt.msg {
				t.Errorf("message %q, want %q", err.Error(), tt.msg)
			}
		})
	}
}

func TestTokensIsLazy(t *testing.T) {
	// The bad symbol is never reached.
	l := NewLexer(`"first" !`)

	for tok, err := range l.Tokens() {
		if err != nil {
			t.Fatalf("unexpected error %v", err)
		}

		if tok.Text != "first" {
			t.Errorf("token %v, want literal first", tok)
		}

		break
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: KindLiteral, Text: "a b"}, `literal "a b"`},
		{Token{Kind: KindOpenParen}, `'('`},
		{Token{Kind: KindDollar}, `'$'`},
	}

	for _, tt := range tests {
		if got := tt.tok.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
