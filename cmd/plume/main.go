package main

import (
	"os"

	"github.com/simonhull/firebird-suite/plume/internal/commands"
)

func main() {
	os.Exit(commands.Run(commands.NewApp()))
}
