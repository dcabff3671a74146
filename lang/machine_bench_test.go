package lang

import "testing"

func drain(b *testing.B, src string, opts ...Option) {
	b.Helper()

	m := Start(src, opts...)
	res := m.Step()

	for {
		switch res.Status {
		case StatusOutput:
			res = m.Step()
		case StatusInput:
			res = m.Resume("input")
		default:
			return
		}
	}
}

func BenchmarkMachine(b *testing.B) {
	benchmarks := []struct {
		name string
		src  string
	}{
		{"literal", `"Hello world"`},
		{"scoping", `"a": "b" + _ + ("n" + _ + "n": _) + _`},
		{"loop", `({_["55":][:"1"] + (_[:"55"] + _["55":]["1":]: $_[:"55"])} + "abcdefghijklmnopqrstuvwxyz"): $_[:"55"]`},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name+"/cached", func(b *testing.B) {
			cache := NewCache(0)

			for b.Loop() {
				drain(b, bm.src, WithCache(cache))
			}
		})

		b.Run(bm.name+"/uncached", func(b *testing.B) {
			for b.Loop() {
				drain(b, bm.src, WithCache(nil))
			}
		})
	}
}

func BenchmarkParse(b *testing.B) {
	src := `"a": "b" + _ + ("n" + _ + "n": _)["1":#"xy"] + $_ = "a"`

	for b.Loop() {
		if _, err := Parse(src); err != nil {
			b.Fatal(err)
		}
	}
}
