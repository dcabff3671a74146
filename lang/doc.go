// Package lang implements the stringed language: a lexer, a parser producing
// a syntax tree, and a resumable stack machine that runs programs one
// observable step at a time.
//
// Every value is a string. Programs are expressions built from literals,
// prompts for input, scoped values, and a handful of operators.
//
// # Grammar
//
//	S := literal | "?" | "_" | "(" E ")" | "#" S | "$" S
//	E := S ( ":" E | "+" S | "[" E? ":" E? "]" | "=" S )*
//	literal := '"' any-chars-except-quote '"' | "{" balanced-braces "}"
//
// Literals have no escapes. A braced literal may contain nested pairs of
// braces, so {say "{hi}"} is the text `say "{hi}"`.
//
//	?         one line of input
//	_         the innermost scope value (the root scope is "")
//	V: E      evaluate V, make it the scope value while E runs
//	A + B     concatenation
//	S[L:U]    runes L through U-1 of S; either bound may be omitted
//	A = B     "true" when A and B are identical, otherwise "false"
//	#S        length of S in runes, in decimal
//	$S        parse the value of S as a program and run it in place
//
// Operators bind in the order slice, concatenation, equality, closure, with
// a closure's body extending as far right as possible. Parentheses group.
//
// # Statements and expressions
//
// A program is run as a statement. Concatenations and closures at statement
// position run each part as its own statement, $S at statement position runs
// the value of S as a statement, and any other expression is evaluated and
// its value emitted as one chunk of output. This makes
//
//	"Hello " + ? + "!"
//
// emit "Hello " before asking for input.
//
// # Running programs
//
// [Start] creates a [Machine]. [Machine.Step] runs until the program emits
// output, asks for input, fails, or finishes. After [StatusInput] the caller
// answers with [Machine.Resume]. [Interpreter] wraps this loop for callers
// that supply input and output as functions.
//
//	m := lang.Start(`"Name? " + ? + "!"`)
//	for res := m.Step(); res.Status != lang.StatusDone; {
//		switch res.Status {
//		case lang.StatusOutput:
//			fmt.Print(res.Value)
//			res = m.Step()
//		case lang.StatusInput:
//			res = m.Resume(readLine())
//		case lang.StatusError:
//			return res.Err
//		}
//	}
package lang
