// Command membership-check runs the login membership hook for one user against
// the CRM and prints the resulting role decision.
package main

import (
	"os"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
