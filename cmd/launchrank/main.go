package main

import (
	"fmt"
	"os"

	"github.com/dshills/launchrank/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "launchrank: %v\n", err)
		os.Exit(1)
	}
}
