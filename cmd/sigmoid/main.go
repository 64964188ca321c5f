// Command sigmoid evaluates the fixed-point sigmoid on simulated hardware
// units.
package main

import (
	"github.com/sarchlab/sigmoid/cmd/sigmoid/cmd"
	"github.com/tebeka/atexit"
)

func main() {
	code := cmd.Execute()
	atexit.Exit(code)
}
