package lang

import "strconv"

// Kind identifies the type of a [Token].
type Kind int

const (
	KindLiteral      Kind = iota // literal
	KindOpenParen                // (
	KindCloseParen               // )
	KindQuestionMark             // ?
	KindUnderscore               // _
	KindColon                    // :
	KindPlus                     // +
	KindOpenBracket              // [
	KindCloseBracket             // ]
	KindEqual                    // =
	KindHash                     // #
	KindDollar                   // $
)

var symbolKind = map[rune]Kind{
	'(': KindOpenParen,
	')': KindCloseParen,
	'?': KindQuestionMark,
	'_': KindUnderscore,
	':': KindColon,
	'+': KindPlus,
	'[': KindOpenBracket,
	']': KindCloseBracket,
	'=': KindEqual,
	'#': KindHash,
	'$': KindDollar,
}

var kindSymbol = func() map[Kind]rune {
	m := make(map[Kind]rune, len(symbolKind))
	for r, k := range symbolKind {
		m[k] = r
	}

	return m
}()

// Symbol returns the source character of a symbol kind, or 0 for
// [KindLiteral].
func (k Kind) Symbol() rune { return kindSymbol[k] }

// String describes the kind the way parse errors refer to it.
func (k Kind) String() string {
	if k == KindLiteral {
		return "literal"
	}

	if r, ok := kindSymbol[k]; ok {
		return strconv.QuoteRune(r)
	}

	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Token is one lexical unit of source text.
type Token struct {
	// Text is the literal content without its delimiters. It is empty for
	// symbols.
	Text string
	// Pos is the byte offset of the token's first character in the source.
	Pos  int
	Kind Kind
}

// String describes the token for error messages.
func (t Token) String() string {
	if t.Kind == KindLiteral {
		return "literal " + strconv.Quote(t.Text)
	}

	return t.Kind.String()
}

// eofDescription stands in for a token when the source runs out.
const eofDescription = "EOF"
