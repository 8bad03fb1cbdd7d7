package main

import (
	"os"

	"lr1cc/internal/cli"
)

func main() {
	os.Exit(cli.Main())
}
