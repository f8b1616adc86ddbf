package main

import (
	"os"

	"github.com/ArYaNDaNy/ingres-proto-model/cmd/ingres/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
