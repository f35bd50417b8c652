package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\x1b[0m"
	ansiGreen = "\x1b[32m"
)

// highlight wraps value in color when out is an interactive terminal, so
// summary lines stand out above a rendered table without polluting piped
// output.
func highlight(out io.Writer, value string) string {
	if !shouldColorize(out) {
		return value
	}
	return ansiGreen + value + ansiReset
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
