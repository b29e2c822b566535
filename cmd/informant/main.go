package main

import (
	"os"

	"informant/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
