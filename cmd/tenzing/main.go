package main

import (
	"os"

	"github.com/cfmeyers/tenzing/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
