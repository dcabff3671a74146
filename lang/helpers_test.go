package lang

import (
	"strings"
	"testing"
)

func lit(text string) *Literal { return &Literal{Text: text} }

func group(inner Node) *Group { return &Group{Inner: inner} }

func concat(items ...Node) *Concat { return &Concat{Items: items} }

func closure(left, right Node) *Closure { return &Closure{Left: left, Right: right} }

func equal(left, right Node) *Equal { return &Equal{Left: left, Right: right} }

func slice(src, lower, upper Node) *Slice { return &Slice{Src: src, Lower: lower, Upper: upper} }

func length(operand Node) *Length { return &Length{Operand: operand} }

func eval(operand Node) *Eval { return &Eval{Operand: operand} }

// mustParse parses src or fails the test.
func mustParse(t testing.TB, src string) Node {
	t.Helper()

	n, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}

	return n
}

// dumpString renders a tree for failure messages.
func dumpString(n Node) string {
	var b strings.Builder

	_ = Print(&b, n)

	return b.String()
}
