// Command doseorder serves the dose ordering API or prints a one-off order
// recommendation from a seed catalog.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
