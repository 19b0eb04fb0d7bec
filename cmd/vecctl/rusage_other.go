//go:build !unix

package main

// maxRSS is not available on this platform.
func maxRSS() (int64, bool) {
	return 0, false
}
