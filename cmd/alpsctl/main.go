package main

import (
	"os"

	"backend-alpsconnect/cmd/alpsctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
