// Package update implements the update and replace subcommands.
package update

import (
	"context"
	"flag"
	"fmt"

	"github.com/atlasforge/atlasdata/internal/cmd/base"
	"github.com/atlasforge/atlasdata/pkg/dataapi"
)

// Command applies an update expression to matching documents.
type Command struct {
	*base.Command

	flagConfig     string
	flagCollection string
	flagFilter     string
	flagFilterFile string
	flagUpdate     string
	flagUpdateFile string
	flagMany       bool
	flagUpsert     bool
}

func (c *Command) Synopsis() string {
	return "Update documents matching a filter"
}

func (c *Command) Help() string {
	return `Usage: atlasdata update [options]

Applies a MongoDB update expression to the first document matching the
filter, or to every match with -many. With -upsert a new document is
inserted when nothing matches.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("update", flag.ContinueOnError))

	f.StringVar(&c.flagConfig, "config", "",
		fmt.Sprintf("[%s] Path to the HCL configuration file", base.ConfigEnvVar))
	f.StringVar(&c.flagCollection, "collection", "",
		"Collection name, overriding the configured default")
	f.StringVar(&c.flagFilter, "filter", "",
		"Query filter as extended JSON (required)")
	f.StringVar(&c.flagFilterFile, "filter-file", "",
		"Path to a file holding the query filter")
	f.StringVar(&c.flagUpdate, "update", "",
		"Update expression as extended JSON (required)")
	f.StringVar(&c.flagUpdateFile, "update-file", "",
		"Path to a file holding the update expression")
	f.BoolVar(&c.flagMany, "many", false,
		"Update every matching document instead of the first")
	f.BoolVar(&c.flagUpsert, "upsert", false,
		"Insert a new document when the filter matches nothing")

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
	updateDoc, err := c.ReadDocument(c.flagUpdate, c.flagUpdateFile)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if filter == nil || updateDoc == nil {
		c.UI.Error("both a filter and an update expression are required")
		return 1
	}

	var opts *dataapi.UpdateOptions
	if c.flagUpsert {
		upsert := true
		opts = &dataapi.UpdateOptions{Upsert: &upsert}
	}

	client, err := c.NewClient(cfg)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	ctx := context.Background()
	var res *dataapi.UpdateResult
	if c.flagMany {
		res, err = client.UpdateMany(ctx, c.HTTPClientFor(cfg), coll, filter, updateDoc, opts)
	} else {
		res, err = client.UpdateOne(ctx, c.HTTPClientFor(cfg), coll, filter, updateDoc, opts)
	}
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	printUpdateResult(c.Command, res)
	return 0
}

// ReplaceCommand overwrites one document with a replacement document.
type ReplaceCommand struct {
	*base.Command

	flagConfig          string
	flagCollection      string
	flagFilter          string
	flagFilterFile      string
	flagReplacement     string
	flagReplacementFile string
	flagUpsert          bool
}

func (c *ReplaceCommand) Synopsis() string {
	return "Replace the first document matching a filter"
}

func (c *ReplaceCommand) Help() string {
	return `Usage: atlasdata replace [options]

Overwrites the first document matching the filter with the replacement
document. With -upsert the replacement is inserted when nothing matches.` + c.Flags().Help()
}

func (c *ReplaceCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("replace", flag.ContinueOnError))

	f.StringVar(&c.flagConfig, "config", "",
		fmt.Sprintf("[%s] Path to the HCL configuration file", base.ConfigEnvVar))
	f.StringVar(&c.flagCollection, "collection", "",
		"Collection name, overriding the configured default")
	f.StringVar(&c.flagFilter, "filter", "",
		"Query filter as extended JSON (required)")
	f.StringVar(&c.flagFilterFile, "filter-file", "",
		"Path to a file holding the query filter")
	f.StringVar(&c.flagReplacement, "replacement", "",
		"Replacement document as extended JSON (required)")
	f.StringVar(&c.flagReplacementFile, "replacement-file", "",
		"Path to a file holding the replacement document")
	f.BoolVar(&c.flagUpsert, "upsert", false,
		"Insert the replacement when the filter matches nothing")

	return f
}

func (c *ReplaceCommand) Run(args []string) int {
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
	replacement, err := c.ReadDocument(c.flagReplacement, c.flagReplacementFile)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if filter == nil || replacement == nil {
		c.UI.Error("both a filter and a replacement document are required")
		return 1
	}

	var opts *dataapi.UpdateOptions
	if c.flagUpsert {
		upsert := true
		opts = &dataapi.UpdateOptions{Upsert: &upsert}
	}

	client, err := c.NewClient(cfg)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	res, err := client.ReplaceOne(context.Background(), c.HTTPClientFor(cfg), coll, filter, replacement, opts)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	printUpdateResult(c.Command, res)
	return 0
}

func printUpdateResult(c *base.Command, res *dataapi.UpdateResult) {
	c.UI.Output(fmt.Sprintf("matched: %d, modified: %d", res.MatchedCount, res.ModifiedCount))
	if res.UpsertedID != nil {
		c.UI.Output(fmt.Sprintf("upserted: %s", res.UpsertedID.Hex()))
	}
}
