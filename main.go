// main is the entry point for the swaydash CLI.
package main

import (
	"fmt"
	"os"

	"github.com/BrettEastman/sway-leader-dashboard/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
