package main

import (
	"fmt"
	"os"

	"github.com/santhoshkumar20044/HOI-Activity-New/cmd/hoictl/commands"
)

func main() {
	if err := commands.NewRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
