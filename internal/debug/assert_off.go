//go:build !vecdebug

// Package debug holds assertions for caller contracts that are unchecked in
// release builds. Build with -tags vecdebug to enable them.
package debug

// Enabled reports whether assertions are compiled in.
const Enabled = false

// Assert is a no-op without the vecdebug build tag.
func Assert(bool, string, ...any) {}
