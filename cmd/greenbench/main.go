package main

import (
	"os"

	"github.com/ygrebnov/greenthreads/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
