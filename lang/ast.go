package lang

// Binding strength of each node kind. A trailing operator whose precedence is
// at least that of the node to its left attaches inside that node rather
// than wrapping it.
const (
	PrecEval    = 0
	PrecClosure = 1
	PrecEqual   = 2
	PrecConcat  = 3
	PrecSlice   = 4
	PrecLength  = 5
	PrecGroup   = 6
	PrecAtom    = 7
)

// Node is an element of the syntax tree. Every child is owned by exactly one
// parent.
type Node interface {
	// Precedence returns the node's binding strength.
	Precedence() int

	node()
}

type (
	// Literal is a quoted or braced string constant.
	Literal struct{ Text string }

	// Group is a parenthesized expression. It only affects how later
	// operators attach and is transparent at run time.
	Group struct{ Inner Node }

	// Prompt reads one line of input.
	Prompt struct{}

	// Var reads the innermost scope value.
	Var struct{}

	// Closure evaluates Left, makes it the innermost scope, and evaluates
	// Right inside that scope.
	Closure struct{ Left, Right Node }

	// Concat joins its items left to right.
	Concat struct{ Items []Node }

	// Slice extracts Src[Lower:Upper]. Either bound may be nil.
	Slice struct{ Src, Lower, Upper Node }

	// Equal yields "true" when both sides are identical, otherwise "false".
	Equal struct{ Left, Right Node }

	// Length yields the length of its operand in decimal.
	Length struct{ Operand Node }

	// Eval parses the value of its operand as a program and runs it in
	// place.
	Eval struct{ Operand Node }
)

func (*Literal) Precedence() int { return PrecAtom }
func (*Group) Precedence() int   { return PrecGroup }
func (*Prompt) Precedence() int  { return PrecAtom }
func (*Var) Precedence() int     { return PrecAtom }
func (*Closure) Precedence() int { return PrecClosure }
func (*Concat) Precedence() int  { return PrecConcat }
func (*Slice) Precedence() int   { return PrecSlice }
func (*Equal) Precedence() int   { return PrecEqual }
func (*Length) Precedence() int  { return PrecLength }
func (*Eval) Precedence() int    { return PrecEval }

func (*Literal) node() {}
func (*Group) node()   {}
func (*Prompt) node()  {}
func (*Var) node()     {}
func (*Closure) node() {}
func (*Concat) node()  {}
func (*Slice) node()   {}
func (*Equal) node()   {}
func (*Length) node()  {}
func (*Eval) node()    {}

// KindOf returns the lower-case name of a node's type, as used in tree dumps
// and structured encodings.
func KindOf(n Node) string {
	switch n.(type) {
	case *Literal:
		return "literal"
	case *Group:
		return "group"
	case *Prompt:
		return "prompt"
	case *Var:
		return "var"
	case *Closure:
		return "closure"
	case *Concat:
		return "concat"
	case *Slice:
		return "slice"
	case *Equal:
		return "equal"
	case *Length:
		return "length"
	case *Eval:
		return "eval"
	default:
		return "unknown"
	}
}

// Walk visits n and its descendants depth-first, left to right. Returning
// false from visit skips the node's children.
func Walk(n Node, visit func(Node) bool) {
	if n == nil || !visit(n) {
		return
	}

	switch n := n.(type) {
	case *Group:
		Walk(n.Inner, visit)
	case *Closure:
		Walk(n.Left, visit)
		Walk(n.Right, visit)
	case *Concat:
		for _, item := range n.Items {
			Walk(item, visit)
		}
	case *Slice:
		Walk(n.Src, visit)
		Walk(n.Lower, visit)
		Walk(n.Upper, visit)
	case *Equal:
		Walk(n.Left, visit)
		Walk(n.Right, visit)
	case *Length:
		Walk(n.Operand, visit)
	case *Eval:
		Walk(n.Operand, visit)
	}
}
