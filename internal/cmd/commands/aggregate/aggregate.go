// Package aggregate implements the aggregate subcommand.
package aggregate

import (
	"context"
	"flag"
	"fmt"

	"github.com/atlasforge/atlasdata/internal/cmd/base"
)

// Command runs an aggregation pipeline.
type Command struct {
	*base.Command

	flagConfig       string
	flagCollection   string
	flagPipeline     string
	flagPipelineFile string
}

func (c *Command) Synopsis() string {
	return "Run an aggregation pipeline"
}

func (c *Command) Help() string {
	return `Usage: atlasdata aggregate [options]

Runs an aggregation pipeline (an extended JSON array of stage documents)
and prints the resulting documents.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("aggregate", flag.ContinueOnError))

	f.StringVar(&c.flagConfig, "config", "",
		fmt.Sprintf("[%s] Path to the HCL configuration file", base.ConfigEnvVar))
	f.StringVar(&c.flagCollection, "collection", "",
		"Collection name, overriding the configured default")
	f.StringVar(&c.flagPipeline, "pipeline", "",
		"Pipeline stages as an extended JSON array (required)")
	f.StringVar(&c.flagPipelineFile, "pipeline-file", "",
		"Path to a file holding the pipeline stages")

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

	pipeline, err := c.ReadDocumentList(c.flagPipeline, c.flagPipelineFile)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	if len(pipeline) == 0 {
		c.UI.Error("a pipeline is required (-pipeline or -pipeline-file)")
		return 1
	}

	client, err := c.NewClient(cfg)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	res, err := client.Aggregate(context.Background(), c.HTTPClientFor(cfg), coll, pipeline)
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
