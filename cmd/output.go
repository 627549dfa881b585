package cmd

import (
	"fmt"
	"io"
	"os"
)

// ── Unified output helpers ────────────────────────────────────────────────────
// All commands use these functions to ensure consistent icon usage and
// indentation throughout colorname's CLI output.
//
// Icon semantics:
//   ✓  success / healthy
//   ✗  error / failure          (written to stderr)
//   ⚠  warning
//   ○  skipped / not applicable
//   -  not found / missing
//   ~  neutral info / state change

// stdout and stderr are swapped out by tests.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// printSection prints a top-level section header, e.g. "=== photo.jpg ===".
func printSection(title string) {
	fmt.Fprintf(stdout, "\n=== %s ===\n", title)
}

// printLine writes one icon line.
//
//	name = "" → "  ✓  msg"
//	name set  → "  ✓  [name] msg"
func printLine(w io.Writer, icon, name, msg string) {
	if name == "" {
		fmt.Fprintf(w, "  %s  %s\n", icon, msg)
		return
	}
	fmt.Fprintf(w, "  %s  [%s] %s\n", icon, name, msg)
}

func printOK(name, msg string)   { printLine(stdout, "✓", name, msg) }
func printErr(name, msg string)  { printLine(stderr, "✗", name, msg) }
func printWarn(name, msg string) { printLine(stdout, "⚠", name, msg) }
func printSkip(name, msg string) { printLine(stdout, "○", name, msg) }
func printMiss(name, msg string) { printLine(stdout, "-", name, msg) }
func printInfo(name, msg string) { printLine(stdout, "~", name, msg) }
