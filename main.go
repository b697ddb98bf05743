package main

import (
	"os"

	"github.com/logpare/logpare/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
