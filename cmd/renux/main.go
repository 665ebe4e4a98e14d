package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/example/renux/internal/cli"
)

func main() {
	os.Exit(run())
}

func run() int {
	defer cli.Shutdown()

	if err := cli.RootCmd().Execute(); err != nil {
		fmt.Fprintf(color.Error, "%s %v\n", color.RedString("Error:"), err)
		return 1
	}
	return 0
}
