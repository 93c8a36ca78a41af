package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/atlasforge/atlasdata/internal/version"
)

// Main runs the CLI with the given arguments and returns the exit code.
func Main(args []string) int {
	name := filepath.Base(args[0])

	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	initCommands(hclog.New(&hclog.LoggerOptions{Name: name}), ui)

	c := &cli.CLI{
		Name:     name,
		Args:     normalizeArgs(args[1:]),
		Version:  version.Version,
		Commands: Commands,
	}

	exitCode, err := c.Run()
	if err != nil {
		ui.Error(fmt.Sprintf("error running command: %v", err))
		return 1
	}

	return exitCode
}

// normalizeArgs maps the bare -version and -v flags onto the version
// subcommand so both spellings work.
func normalizeArgs(args []string) []string {
	if len(args) == 1 && (args[0] == "-version" || args[0] == "-v") {
		return []string{"version"}
	}
	return args
}
