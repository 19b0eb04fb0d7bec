//go:build vecdebug

// Package debug holds assertions for caller contracts that are unchecked in
// release builds. Build with -tags vecdebug to enable them.
package debug

import "fmt"

// Enabled reports whether assertions are compiled in.
const Enabled = true

// Assert panics with the formatted message when cond is false.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic("assertion failed: " + fmt.Sprintf(format, args...))
	}
}
