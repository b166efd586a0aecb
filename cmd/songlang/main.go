// Command songlang runs a single SongLang script to completion and
// prints its output, one line at a time. It is a one-shot runner, not
// a REPL: the interactive shell is a host-level concern outside the
// language core.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lowtek7/songlang"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s <script.song>\n", os.Args[0])
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	path := flag.Arg(0)
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading %s: %v\n", path, err)
		os.Exit(1)
	}

	_, _, err = songlang.Run(string(source), func(line string) {
		fmt.Println(line)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
