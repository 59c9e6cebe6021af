package main

import (
	"os"

	"github.com/YassineDev91/smart-contract-eval/cmd/sceval/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(2)
	}
}
