package main

import (
	"os"

	"github.com/dshills/lgtm/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
