package main

import (
	"os"

	"github.com/jdepscheck/jdepscheck/internal/adapters/inbound/cli"
)

func main() {
	os.Exit(cli.ExitCode(cli.Execute()))
}
