package main

import (
	"os"

	"github.com/tknbr/ocivet/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
