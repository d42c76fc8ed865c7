package main

import (
	"os"

	"github.com/chalix/coursehub/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
