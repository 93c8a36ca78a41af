// Package remove implements the delete subcommand.
package remove

import (
	"context"
	"flag"
	"fmt"

	"github.com/atlasforge/atlasdata/internal/cmd/base"
	"github.com/atlasforge/atlasdata/pkg/dataapi"
)

// Command deletes documents matching a filter.
type Command struct {
	*base.Command

	flagConfig     string
	flagCollection string
	flagFilter     string
	flagFilterFile string
	flagMany       bool
}

func (c *Command) Synopsis() string {
	return "Delete documents matching a filter"
}

func (c *Command) Help() string {
	return `Usage: atlasdata delete [options]

Deletes the first document matching the filter, or every match with -many.
A filter matching nothing reports zero deletions and exits successfully.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("delete", flag.ContinueOnError))

	f.StringVar(&c.flagConfig, "config", "",
		fmt.Sprintf("[%s] Path to the HCL configuration file", base.ConfigEnvVar))
	f.StringVar(&c.flagCollection, "collection", "",
		"Collection name, overriding the configured default")
	f.StringVar(&c.flagFilter, "filter", "",
		"Query filter as extended JSON (required)")
	f.StringVar(&c.flagFilterFile, "filter-file", "",
		"Path to a file holding the query filter")
	f.BoolVar(&c.flagMany, "many", false,
		"Delete every matching document instead of the first")

	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	cfg, err := c.LoadConfig(c.flagConfig)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	coll, err := base.ResolveCollection(cfg.Selector(), c.flagCollection)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	filter, err := c.ReadDocument(c.flagFilter, c.flagFilterFile)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if filter == nil {
		c.UI.Error("a filter is required (-filter or -filter-file)")
		return 1
	}

	client, err := c.NewClient(cfg)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	ctx := context.Background()
	var res *dataapi.DeleteResult
	if c.flagMany {
		res, err = client.DeleteMany(ctx, c.HTTPClientFor(cfg), coll, filter)
	} else {
		res, err = client.DeleteOne(ctx, c.HTTPClientFor(cfg), coll, filter)
	}
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	c.UI.Output(fmt.Sprintf("deleted: %d", res.DeletedCount))
	return 0
}
