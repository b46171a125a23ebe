// Command devconnect is the command line client for the DevConnect API.
package main

import (
	"os"

	"devconnect/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
