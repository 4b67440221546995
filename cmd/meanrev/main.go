package main

import (
	"os"

	"github.com/rustyeddy/meanrev/cmd/meanrev/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
