// Command gettags prints the tags of audio files.
//
// Usage:
//
//	gettags [options] {files...}
//
// With no options every tag is printed as "ID value", one per line. Binary
// tags are shown as "(binary)". See gettags --longhelp for the options.
package main

import (
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
