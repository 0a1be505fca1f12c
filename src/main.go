package main

import (
	"os"

	"github.com/eriklarko/propositions/src/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
