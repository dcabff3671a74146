package lang

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Format writes node as source text that parses back into the same tree.
//
// The language has no escapes, so a literal is quoted when it contains no
// double quote, braced when its braces balance, and [ErrUnformattable]
// otherwise.
func Format(w io.Writer, node Node) error {
	var b strings.Builder

	if err := format(&b, node); err != nil {
		return err
	}

	_, err := io.WriteString(w, b.String())

	return err
}

// FormatString returns the source text of node. See [Format].
func FormatString(node Node) (string, error) {
	var b strings.Builder

	err := format(&b, node)

	return b.String(), err
}

func format(b *strings.Builder, node Node) error {
	switch n := node.(type) {
	case *Literal:
		return formatLiteral(b, n.Text)

	case *Group:
		b.WriteByte('(')

		if err := format(b, n.Inner); err != nil {
			return err
		}

		b.WriteByte(')')

	case *Prompt:
		b.WriteByte('?')

	case *Var:
		b.WriteByte('_')

	case *Closure:
		return formatBinary(b, n.Left, ": ", n.Right)

	case *Concat:
		for i, item := range n.Items {
			if i > 0 {
				b.WriteString(" + ")
			}

			if err := format(b, item); err != nil {
				return err
			}
		}

	case *Slice:
		if err := format(b, n.Src); err != nil {
			return err
		}

		b.WriteByte('[')

		if n.Lower != nil {
			if err := format(b, n.Lower); err != nil {
				return err
			}
		}

		b.WriteByte(':')

		if n.Upper != nil {
			if err := format(b, n.Upper); err != nil {
				return err
			}
		}

		b.WriteByte(']')

	case *Equal:
		return formatBinary(b, n.Left, " = ", n.Right)

	case *Length:
		b.WriteByte('#')

		return format(b, n.Operand)

	case *Eval:
		b.WriteByte('$')

		return format(b, n.Operand)

	default:
		return ErrUnformattable.Reword("cannot format %s node", KindOf(node))
	}

	return nil
}

func formatBinary(b *strings.Builder, left Node, sep string, right Node) error {
	if err := format(b, left); err != nil {
		return err
	}

	b.WriteString(sep)

	return format(b, right)
}

func formatLiteral(b *strings.Builder, text string) error {
	if !strings.Contains(text, `"`) {
		b.WriteByte('"')
		b.WriteString(text)
		b.WriteByte('"')

		return nil
	}

	if balanced(text) {
		b.WriteByte('{')
		b.WriteString(text)
		b.WriteByte('}')

		return nil
	}

	return ErrUnformattable.With(slog.String("text", text))
}

// balanced reports whether every '}' in s closes an earlier '{'.
func balanced(s string) bool {
	depth := 0

	for i := range len(s) {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth--; depth < 0 {
				return false
			}
		}
	}

	return depth == 0
}

// Print writes an indented dump of the tree, one node per line.
func Print(w io.Writer, node Node) error {
	var b strings.Builder

	dump(&b, "", node, 0)

	_, err := io.WriteString(w, b.String())

	return err
}

func dump(b *strings.Builder, label string, node Node, depth int) {
	b.WriteString(strings.Repeat("  ", depth))

	if label != "" {
		b.WriteString(label)
		b.WriteString(": ")
	}

	b.WriteString(KindOf(node))

	if lit, ok := node.(*Literal); ok {
		b.WriteByte(' ')
		b.WriteString(strconv.Quote(lit.Text))
	}

	b.WriteByte('\n')

	switch n := node.(type) {
	case *Group:
		dump(b, "", n.Inner, depth+1)
	case *Closure:
		dump(b, "left", n.Left, depth+1)
		dump(b, "right", n.Right, depth+1)
	case *Concat:
		for _, item := range n.Items {
			dump(b, "", item, depth+1)
		}
	case *Slice:
		dump(b, "src", n.Src, depth+1)

		if n.Lower != nil {
			dump(b, "lower", n.Lower, depth+1)
		}

		if n.Upper != nil {
			dump(b, "upper", n.Upper, depth+1)
		}
	case *Equal:
		dump(b, "left", n.Left, depth+1)
		dump(b, "right", n.Right, depth+1)
	case *Length:
		dump(b, "", n.Operand, depth+1)
	case *Eval:
		dump(b, "", n.Operand, depth+1)
	}
}

// FormatJSON writes the tree encoding of node (see [ToMap]) as JSON. A
// positive indent pretty-prints with that many spaces per level.
func FormatJSON(w io.Writer, node Node, indent int) error {
	var (
		data []byte
		err  error
	)

	if indent > 0 {
		data, err = json.MarshalIndent(ToMap(node), "", strings.Repeat(" ", indent))
	} else {
		data, err = json.Marshal(ToMap(node))
	}

	if err != nil {
		return err
	}

	_, err = w.Write(append(data, '\n'))

	return err
}

// FormatYAML writes the tree encoding of node (see [ToMap]) as YAML. A
// positive indent uses block style with that indentation, otherwise flow
// style is used.
func FormatYAML(ctx context.Context, w io.Writer, node Node, indent int) error {
	var opts []yaml.EncodeOption

	if indent > 0 {
		opts = append(opts, yaml.Indent(indent), yaml.IndentSequence(true))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalContext(ctx, ToMap(node), opts...)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}
