// Package main is the entry point for the htmlcase CLI.
package main

import (
	"os"

	"github.com/mrjoshuak/htmlcase/cmd/htmlcase/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
