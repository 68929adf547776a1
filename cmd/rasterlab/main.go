package main

import (
	"fmt"
	"os"

	"github.com/Fepozopo/rasterlab/pkg/cli"
)

func main() {
	if err := cli.Execute(os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "rasterlab: %v\n", err)
		os.Exit(1)
	}
}
