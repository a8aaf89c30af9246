package main

import (
	"os"

	"github.com/amalmed/opstrack/internal/cli"
)

func main() {
	// If no args, launch TUI; otherwise route to CLI
	var err error
	if len(os.Args) == 1 {
		err = cli.RunUI()
	} else {
		err = cli.Execute()
	}
	if err != nil {
		os.Exit(1)
	}
}
