package main

import (
	"os"

	"github.com/DannyChee1/Two-Host-AI-Newscast/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
