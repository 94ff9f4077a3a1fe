package main

import (
	"os"

	"github.com/vcrobe/nojs-counter/cmd/counter/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
