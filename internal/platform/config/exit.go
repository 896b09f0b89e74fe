package config

import (
	"fmt"
	"os"
)

// Exitf prints a formatted error line to stderr and terminates the process
// with status 1. CLI entry points use it for fatal errors.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
