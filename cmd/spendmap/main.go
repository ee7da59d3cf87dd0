package main

import (
	"os"

	"github.com/spendmap/spendmap/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
