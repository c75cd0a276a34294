package main

import (
	"os"

	"github.com/dmitrymomot/onboarding/cmd/dfsa/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
