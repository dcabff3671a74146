package lang_test

import (
	"context"
	"fmt"
	"os"

	"github.com/ardnew/stringed/lang"
)

func ExampleInterpreter() {
	it := lang.Interpreter{
		Input:  lang.QueueInput(nil, "Ada"),
		Output: lang.WriterOutput(os.Stdout),
	}

	if err := it.Run(context.Background(), `"Hello, " + ? + "!"`); err != nil {
		fmt.Println(err)
	}

	// Output: Hello, Ada!
}

func ExampleMachine_Step() {
	m := lang.Start(`"a" + ("b": _ + _)`)

	for res := m.Step(); res.Status != lang.StatusDone; res = m.Step() {
		fmt.Println(res.Status, res.Value)
	}

	// Output:
	// output a
	// output b
	// output b
}

func ExampleMachine_Resume() {
	m := lang.Start(`("you said " + ?)[:]`)

	res := m.Step()
	fmt.Println(res.Status)

	res = m.Resume("hi")
	fmt.Println(res.Status, res.Value)

	// Output:
	// input
	// output you said hi
}

func ExampleFormat() {
	node, err := lang.Parse(`{x}+"y" [ "1": ]`)
	if err != nil {
		fmt.Println(err)

		return
	}

	if err := lang.Format(os.Stdout, node); err != nil {
		fmt.Println(err)
	}

	// Output: "x" + "y"["1":]
}
