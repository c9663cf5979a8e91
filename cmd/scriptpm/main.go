package main

import (
	"os"

	"github.com/bianoble/scriptpm/cmd/scriptpm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
