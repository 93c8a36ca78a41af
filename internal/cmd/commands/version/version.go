// Package version implements the version subcommand.
package version

import (
	"github.com/atlasforge/atlasdata/internal/cmd/base"
	appversion "github.com/atlasforge/atlasdata/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the CLI version"
}

func (c *Command) Help() string {
	return "Usage: atlasdata version"
}

func (c *Command) Run(args []string) int {
	c.UI.Output(appversion.Version)
	return 0
}
