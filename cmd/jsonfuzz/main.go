package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/xarantolus/jsonfuzz"
)

var (
	engine = flag.String("engine", "strict", `Parsing engine to exercise, either "strict" or "js"`)
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage: jsonfuzz [flags] < input")
		flag.PrintDefaults()
	}
	flag.Parse()

	// The harness writes nothing to stdout; the exit status is its only
	// observable output
	var e jsonfuzz.Engine
	switch *engine {
	case "strict":
		e = jsonfuzz.Tokener{}
	case "js":
		e = jsonfuzz.JSTokener{}
	default:
		flag.Usage()
		os.Exit(2)
	}

	os.Exit(jsonfuzz.Run(os.Stdin, e))
}
