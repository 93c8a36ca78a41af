// Package find implements the find and find-one subcommands.
package find

import (
	"context"
	"flag"
	"fmt"

	"github.com/atlasforge/atlasdata/internal/cmd/base"
	"github.com/atlasforge/atlasdata/pkg/dataapi"
)

// Command queries for multiple documents.
type Command struct {
	*base.Command

	flagConfig     string
	flagCollection string
	flagFilter     string
	flagFilterFile string
	flagProjection string
	flagSort       string
	flagLimit      int64
	flagSkip       int64
}

func (c *Command) Synopsis() string {
	return "Find documents matching a filter"
}

func (c *Command) Help() string {
	return `Usage: atlasdata find [options]

Returns the documents matching the filter, up to the server's per-request
cap of 50000; use -skip on follow-up calls to page through larger result
sets.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("find", flag.ContinueOnError))

	f.StringVar(&c.flagConfig, "config", "",
		fmt.Sprintf("[%s] Path to the HCL configuration file", base.ConfigEnvVar))
	f.StringVar(&c.flagCollection, "collection", "",
		"Collection name, overriding the configured default")
	f.StringVar(&c.flagFilter, "filter", "",
		"Query filter as extended JSON; matches everything when omitted")
	f.StringVar(&c.flagFilterFile, "filter-file", "",
		"Path to a file holding the query filter")
	f.StringVar(&c.flagProjection, "projection", "",
		"Projection document as extended JSON")
	f.StringVar(&c.flagSort, "sort", "",
		"Sort expression as extended JSON")
	f.Int64Var(&c.flagLimit, "limit", 0,
		"Maximum number of documents to return (server cap 50000)")
	f.Int64Var(&c.flagSkip, "skip", 0,
		"Number of matched documents to skip")

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
	projection, err := c.ReadDocument(c.flagProjection, "")
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	sort, err := c.ReadDocument(c.flagSort, "")
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	opts := &dataapi.FindOptions{
		Filter:     filter,
		Projection: projection,
		Sort:       sort,
	}
	if c.flagLimit > 0 {
		opts.Limit = &c.flagLimit
	}
	if c.flagSkip > 0 {
		opts.Skip = &c.flagSkip
	}

	client, err := c.NewClient(cfg)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	res, err := client.Find(context.Background(), c.HTTPClientFor(cfg), coll, opts)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	for _, doc := range res.Documents {
		if err := c.PrintDocument(doc); err != nil {
			c.UI.Error(err.Error())
			return 1
		}
	}
	return 0
}

// OneCommand queries for a single document.
type OneCommand struct {
	*base.Command

	flagConfig     string
	flagCollection string
	flagFilter     string
	flagFilterFile string
	flagProjection string
}

func (c *OneCommand) Synopsis() string {
	return "Find the first document matching a filter"
}

func (c *OneCommand) Help() string {
	return `Usage: atlasdata find-one [options]

Returns the first document matching the filter, or nothing when no document
matches.` + c.Flags().Help()
}

func (c *OneCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("find-one", flag.ContinueOnError))

	f.StringVar(&c.flagConfig, "config", "",
		fmt.Sprintf("[%s] Path to the HCL configuration file", base.ConfigEnvVar))
	f.StringVar(&c.flagCollection, "collection", "",
		"Collection name, overriding the configured default")
	f.StringVar(&c.flagFilter, "filter", "",
		"Query filter as extended JSON; matches everything when omitted")
	f.StringVar(&c.flagFilterFile, "filter-file", "",
		"Path to a file holding the query filter")
	f.StringVar(&c.flagProjection, "projection", "",
		"Projection document as extended JSON")

	return f
}

func (c *OneCommand) Run(args []string) int {
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
	projection, err := c.ReadDocument(c.flagProjection, "")
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	client, err := c.NewClient(cfg)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	res, err := client.FindOne(context.Background(), c.HTTPClientFor(cfg), coll, &dataapi.FindOneOptions{
		Filter:     filter,
		Projection: projection,
	})
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	if res.Document == nil {
		c.UI.Warn("no document matched")
		return 0
	}
	if err := c.PrintDocument(res.Document); err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	return 0
}
