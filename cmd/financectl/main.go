package main

import (
	"os"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
