package main

import (
	"os"

	"github.com/rawdex-labs/rawdex-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
