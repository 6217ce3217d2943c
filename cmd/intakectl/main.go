package main

import (
	"os"

	"github.com/brockcsc/volunteer-intake/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
