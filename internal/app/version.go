package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is the release version, set at build time with
// -ldflags "-X github.com/agbru/bigntt/internal/app.Version=v1.2.3".
var Version = "dev"

// HasVersionFlag reports whether args ask for the version.
func HasVersionFlag(args []string) bool {
	for _, a := range args {
		switch a {
		case "-version", "--version", "-V", "version":
			return true
		}
	}
	return false
}

// PrintVersion writes the version line.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "bigntt %s (%s %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
