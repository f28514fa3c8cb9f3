package main

import (
	"os"

	"github.com/arnavk07/mocksmith/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
