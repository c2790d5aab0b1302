// Package main implements the quizgen worker, which turns stored documents
// into quiz questions and summaries.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newCLI(os.Stdout).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "quizgen-worker:", err)
		os.Exit(1)
	}
}
