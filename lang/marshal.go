package lang

// ToMap converts node into nested maps and slices for structured encoders.
// Every map has a "kind" key naming the node type (see [KindOf]); child
// nodes appear under their field names, and absent slice bounds are omitted.
func ToMap(node Node) map[string]any {
	m := map[string]any{"kind": KindOf(node)}

	switch n := node.(type) {
	case *Literal:
		m["text"] = n.Text
	case *Group:
		m["inner"] = ToMap(n.Inner)
	case *Closure:
		m["left"] = ToMap(n.Left)
		m["right"] = ToMap(n.Right)
	case *Concat:
		items := make([]any, len(n.Items))
		for i, item := range n.Items {
			items[i] = ToMap(item)
		}

		m["items"] = items
	case *Slice:
		m["src"] = ToMap(n.Src)

		if n.Lower != nil {
			m["lower"] = ToMap(n.Lower)
		}

		if n.Upper != nil {
			m["upper"] = ToMap(n.Upper)
		}
	case *Equal:
		m["left"] = ToMap(n.Left)
		m["right"] = ToMap(n.Right)
	case *Length:
		m["operand"] = ToMap(n.Operand)
	case *Eval:
		m["operand"] = ToMap(n.Operand)
	}

	return m
}
