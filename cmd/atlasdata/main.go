package main

import (
	"os"

	"github.com/atlasforge/atlasdata/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
