//go:build !windows

// Command sksound is a windows DLL; on other platforms it only reports
// that.
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Fprintln(os.Stderr, "sksound: build with GOOS=windows -buildmode=c-shared")
	os.Exit(1)
}
