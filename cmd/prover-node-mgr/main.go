package main

import (
	"fmt"
	"os"

	"prover-node-mgr/internal/cli"
	clog "prover-node-mgr/utils/log"
)

func main() {
	clog.LogSet()

	app := cli.New()
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
