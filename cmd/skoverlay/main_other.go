//go:build !windows

// Command skoverlay is a windows DLL; on other platforms it only reports
// that.
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "skoverlay: build with GOOS=windows -buildmode=c-shared")
	os.Exit(1)
}
