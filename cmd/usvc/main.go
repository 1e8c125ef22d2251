package main

import (
	"os"

	"github.com/ahmabora1/usvc/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
