package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"

	"github.com/atlasforge/atlasdata/internal/cmd/base"
	"github.com/atlasforge/atlasdata/internal/cmd/commands/aggregate"
	"github.com/atlasforge/atlasdata/internal/cmd/commands/find"
	"github.com/atlasforge/atlasdata/internal/cmd/commands/insert"
	"github.com/atlasforge/atlasdata/internal/cmd/commands/remove"
	"github.com/atlasforge/atlasdata/internal/cmd/commands/update"
	versioncmd "github.com/atlasforge/atlasdata/internal/cmd/commands/version"
)

// Commands is the mapping of subcommand names to command factories.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	baseCommand := &base.Command{
		UI:  ui,
		Log: log,
		FS:  afero.NewOsFs(),
	}

	Commands = map[string]cli.CommandFactory{
		"find": func() (cli.Command, error) {
			return &find.Command{Command: baseCommand}, nil
		},
		"find-one": func() (cli.Command, error) {
			return &find.OneCommand{Command: baseCommand}, nil
		},
		"insert": func() (cli.Command, error) {
			return &insert.Command{Command: baseCommand}, nil
		},
		"update": func() (cli.Command, error) {
			return &update.Command{Command: baseCommand}, nil
		},
		"replace": func() (cli.Command, error) {
			return &update.ReplaceCommand{Command: baseCommand}, nil
		},
		"delete": func() (cli.Command, error) {
			return &remove.Command{Command: baseCommand}, nil
		},
		"aggregate": func() (cli.Command, error) {
			return &aggregate.Command{Command: baseCommand}, nil
		},
		"version": func() (cli.Command, error) {
			return &versioncmd.Command{Command: baseCommand}, nil
		},
	}
}
