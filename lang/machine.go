package lang

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ardnew/stringed/log"
)

// Status classifies the outcome of one machine step.
type Status int

const (
	StatusOutput Status = iota // output
	StatusInput                // input
	StatusError                // error
	StatusDone                 // done
)

func (s Status) String() string {
	switch s {
	case StatusOutput:
		return "output"
	case StatusInput:
		return "input"
	case StatusError:
		return "error"
	case StatusDone:
		return "done"
	default:
		return "Status(" + strconv.Itoa(int(s)) + ")"
	}
}

// Result is the observable outcome of [Machine.Step] or [Machine.Resume].
type Result struct {
	// Err is set when Status is StatusError.
	Err error
	// Value is the produced chunk when Status is StatusOutput.
	Value  string
	Status Status
}

// opcode is a primitive machine instruction.
type opcode uint8

const (
	opOutput     opcode = iota // pop a value and emit it
	opExec                     // pop source, parse it, run it as a statement
	opEval                     // pop source, parse it, evaluate it in place
	opStmt                     // lower step.node as a statement
	opExpr                     // lower step.node as an expression
	opPrompt                   // push one line of input
	opOpenScope                // move the top value onto the scope stack
	opCloseScope               // drop the innermost scope
	opConcat                   // join the top step.n values
	opSlice                    // slice with step.n bound flags
	opEqual                    // compare the top two values
	opLength                   // replace the top value with its length
)

var opName = [...]string{
	opOutput:     "output",
	opExec:       "exec",
	opEval:       "eval",
	opStmt:       "stmt",
	opExpr:       "expr",
	opPrompt:     "prompt",
	opOpenScope:  "open-scope",
	opCloseScope: "close-scope",
	opConcat:     "concat",
	opSlice:      "slice",
	opEqual:      "equal",
	opLength:     "length",
}

func (op opcode) String() string {
	if int(op) < len(opName) {
		return opName[op]
	}

	return "opcode(" + strconv.Itoa(int(op)) + ")"
}

// Bound flags carried by opSlice.
const (
	sliceLower = 1 << iota
	sliceUpper
)

// step is one pending instruction on the operation stack.
type step struct {
	node Node
	n    int
	op   opcode
}

// Machine is a resumable evaluator. All computation that remains to be done
// lives on its operation stack, so it can stop whenever a program produces
// output or needs input and pick up again on the next call.
//
// A Machine is not safe for concurrent use. Distinct machines share nothing
// but the parse cache.
type Machine struct {
	ctx      context.Context
	logger   log.Logger
	err      error
	cache    *Cache
	values   stack[string]
	scopes   stack[string]
	ops      stack[step]
	awaiting bool
	trace    bool
}

// Option configures a [Machine].
type Option func(*Machine)

// WithLogger sets the logger that receives trace records for every
// instruction. The zero Logger discards them.
func WithLogger(logger log.Logger) Option {
	return func(m *Machine) { m.logger = logger }
}

// WithCache sets the parse cache consulted by exec and eval. A nil cache
// disables caching. Machines use [DefaultCache] unless told otherwise.
func WithCache(cache *Cache) Option {
	return func(m *Machine) { m.cache = cache }
}

// WithContext makes a step fail with the context's cancellation cause once
// ctx is done. Programs can loop forever without output, so this is the only
// way to abandon such a step from outside.
func WithContext(ctx context.Context) Option {
	return func(m *Machine) { m.ctx = ctx }
}

// cancelCheckInterval is the number of instructions run between checks of
// the machine's context.
const cancelCheckInterval = 1024

// Start returns a machine that will run source as a program in a root scope
// whose value is the empty string.
func Start(source string, opts ...Option) *Machine {
	m := &Machine{ctx: context.Background(), cache: DefaultCache()}

	for _, opt := range opts {
		opt(m)
	}

	m.trace = m.logger.Enabled(m.ctx, log.LevelTrace)

	m.values.push(source)
	m.scopes.push("")
	m.ops.push(step{op: opCloseScope}, step{op: opExec})

	return m
}

// Done reports whether the machine has finished, successfully or not.
func (m *Machine) Done() bool { return m.err != nil || len(m.ops) == 0 }

// Awaiting reports whether the machine is waiting for [Machine.Resume].
func (m *Machine) Awaiting() bool { return m.awaiting }

// Depth returns the current sizes of the value, scope, and operation stacks.
func (m *Machine) Depth() (values, scopes, ops int) {
	return len(m.values), len(m.scopes), len(m.ops)
}

// Step runs until the program produces output, requests input, fails, or
// finishes. Calling Step while input is pending repeats the request.
// A failed machine keeps returning its error and a finished one keeps
// returning StatusDone.
func (m *Machine) Step() Result {
	return m.run(nil)
}

// Resume supplies the line requested by the previous step and continues.
// It panics unless the previous step returned StatusInput.
func (m *Machine) Resume(input string) Result {
	if !m.awaiting {
		panic("lang: input supplied without a pending request")
	}

	m.awaiting = false

	return m.run(&input)
}

func (m *Machine) run(input *string) Result {
	if m.err != nil {
		return Result{Status: StatusError, Err: m.err}
	}

	for count := 1; len(m.ops) > 0; count++ {
		if count%cancelCheckInterval == 0 && m.ctx.Err() != nil {
			return m.fail(context.Cause(m.ctx))
		}

		s := m.ops.pop()

		if input != nil && s.op != opPrompt {
			panic("lang: pending input not consumed by a prompt")
		}

		if m.trace {
			m.logger.Trace("step",
				slog.String("op", s.op.String()),
				slog.Int("values", len(m.values)),
				slog.Int("scopes", len(m.scopes)),
				slog.Int("ops", len(m.ops)),
			)
		}

		switch s.op {
		case opOutput:
			return Result{Status: StatusOutput, Value: m.values.pop()}

		case opPrompt:
			if input == nil {
				m.ops.push(s)
				m.awaiting = true

				if m.trace {
					m.logger.Trace("suspend", slog.String("reason", "input"))
				}

				return Result{Status: StatusInput}
			}

			m.values.push(*input)
			input = nil

		case opExec, opEval:
			node, err := m.parse(m.values.pop())
			if err != nil {
				return m.fail(err)
			}

			if s.op == opExec {
				m.ops.push(step{op: opStmt, node: node})
			} else {
				m.ops.push(step{op: opExpr, node: node})
			}

		case opStmt:
			m.lowerStmt(s.node)

		case opExpr:
			m.lowerExpr(s.node)

		case opOpenScope:
			m.scopes.push(m.values.pop())

		case opCloseScope:
			m.scopes.pop()

		case opConcat:
			m.values.push(strings.Join(m.values.popN(s.n), ""))

		case opSlice:
			v, err := m.slice(s.n)
			if err != nil {
				return m.fail(err)
			}

			m.values.push(v)

		case opEqual:
			right, left := m.values.pop(), m.values.pop()
			m.values.push(strconv.FormatBool(left == right))

		case opLength:
			m.values.push(strconv.Itoa(utf8.RuneCountInString(m.values.pop())))

		default:
			panic("lang: unknown " + s.op.String())
		}
	}

	if len(m.values) != 0 || len(m.scopes) != 0 {
		panic("lang: machine finished with values or scopes left over")
	}

	return Result{Status: StatusDone}
}

// lowerStmt schedules node for execution as a statement. Pushes happen in
// reverse so the instructions run left to right.
func (m *Machine) lowerStmt(node Node) {
	switch n := node.(type) {
	case *Group:
		m.ops.push(step{op: opStmt, node: n.Inner})

	case *Closure:
		m.ops.push(
			step{op: opCloseScope},
			step{op: opStmt, node: n.Right},
			step{op: opOpenScope},
			step{op: opExpr, node: n.Left},
		)

	case *Concat:
		for i := len(n.Items) - 1; i >= 0; i-- {
			m.ops.push(step{op: opStmt, node: n.Items[i]})
		}

	case *Eval:
		m.ops.push(step{op: opExec}, step{op: opExpr, node: n.Operand})

	default:
		m.ops.push(step{op: opOutput}, step{op: opExpr, node: node})
	}
}

// lowerExpr schedules node for evaluation, leaving exactly one value on the
// value stack once its instructions have run. Constants are pushed at once.
func (m *Machine) lowerExpr(node Node) {
	switch n := node.(type) {
	case *Literal:
		m.values.push(n.Text)

	case *Var:
		m.values.push(m.scopes.peek())

	case *Prompt:
		m.ops.push(step{op: opPrompt})

	case *Group:
		m.ops.push(step{op: opExpr, node: n.Inner})

	case *Closure:
		m.ops.push(
			step{op: opCloseScope},
			step{op: opExpr, node: n.Right},
			step{op: opOpenScope},
			step{op: opExpr, node: n.Left},
		)

	case *Concat:
		m.ops.push(step{op: opConcat, n: len(n.Items)})

		for i := len(n.Items) - 1; i >= 0; i-- {
			m.ops.push(step{op: opExpr, node: n.Items[i]})
		}

	case *Slice:
		var flags int

		if n.Lower != nil {
			flags |= sliceLower
		}

		if n.Upper != nil {
			flags |= sliceUpper
		}

		m.ops.push(step{op: opSlice, n: flags})

		if n.Upper != nil {
			m.ops.push(step{op: opExpr, node: n.Upper})
		}

		if n.Lower != nil {
			m.ops.push(step{op: opExpr, node: n.Lower})
		}

		m.ops.push(step{op: opExpr, node: n.Src})

	case *Equal:
		m.ops.push(
			step{op: opEqual},
			step{op: opExpr, node: n.Right},
			step{op: opExpr, node: n.Left},
		)

	case *Length:
		m.ops.push(step{op: opLength}, step{op: opExpr, node: n.Operand})

	case *Eval:
		m.ops.push(step{op: opEval}, step{op: opExpr, node: n.Operand})

	default:
		panic("lang: cannot evaluate " + KindOf(node))
	}
}

// slice pops the bounds named by flags and the source, and returns the
// selected runes.
func (m *Machine) slice(flags int) (string, error) {
	var (
		lower, upper uint64
		err          error
	)

	hasUpper := flags&sliceUpper != 0
	if hasUpper {
		if upper, err = parseBound(m.values.pop()); err != nil {
			return "", err
		}
	}

	if flags&sliceLower != 0 {
		if lower, err = parseBound(m.values.pop()); err != nil {
			return "", err
		}
	}

	src := []rune(m.values.pop())
	length := uint64(len(src))

	if !hasUpper {
		upper = length
	}

	if lower > upper || upper > length {
		return "", ErrInvalidIndex.With(
			slog.Uint64("lower", lower),
			slog.Uint64("upper", upper),
			slog.Uint64("length", length),
		)
	}

	return string(src[lower:upper]), nil
}

// parseBound accepts a non-empty string of decimal digits.
func parseBound(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, strconv.IntSize-1)
	if err != nil {
		return 0, ErrInvalidBound.Wrap(err).With(slog.String("bound", s))
	}

	return n, nil
}

func (m *Machine) parse(src string) (Node, error) {
	if m.cache == nil {
		return Parse(src)
	}

	return m.cache.Parse(src, m.logger)
}

// fail records a terminal error and abandons all pending work.
func (m *Machine) fail(err error) Result {
	m.err = err
	m.values, m.scopes, m.ops = nil, nil, nil
	m.awaiting = false

	if m.trace {
		m.logger.Trace("fail", slog.Any("error", err))
	}

	return Result{Status: StatusError, Err: err}
}
