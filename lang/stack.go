package lang

// stack is a LIFO of values. Popping or peeking an empty stack means the
// machine lowered a program incorrectly, so both panic.
type stack[T any] []T

func (s *stack[T]) push(v ...T) { *s = append(*s, v...) }

func (s *stack[T]) pop() T {
	n := len(*s) - 1
	if n < 0 {
		panic("lang: stack underflow")
	}

	v := (*s)[n]

	var zero T
	(*s)[n] = zero
	*s = (*s)[:n]

	return v
}

// popN removes the top n values and returns them bottom first.
func (s *stack[T]) popN(n int) []T {
	if n > len(*s) {
		panic("lang: stack underflow")
	}

	top := len(*s) - n
	out := make([]T, n)
	copy(out, (*s)[top:])
	clear((*s)[top:])
	*s = (*s)[:top]

	return out
}

func (s stack[T]) peek() T {
	if len(s) == 0 {
		panic("lang: stack underflow")
	}

	return s[len(s)-1]
}
