package main

import (
	"os"

	"github.com/mgijax/tabletools/cli"
)

func main() {
	os.Exit(cli.Main())
}
