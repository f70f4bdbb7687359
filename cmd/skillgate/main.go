package main

import (
	"os"

	"github.com/skillworks/skillgate/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
