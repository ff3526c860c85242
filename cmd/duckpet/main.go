package main

import (
	"os"

	"github.com/pondside/duckpet/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
