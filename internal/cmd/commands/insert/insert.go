// Package insert implements the insert subcommand.
package insert

import (
	"context"
	"flag"
	"fmt"

	"github.com/atlasforge/atlasdata/internal/cmd/base"
)

// Command inserts one document or a batch of documents, depending on which
// flags are given.
type Command struct {
	*base.Command

	flagConfig        string
	flagCollection    string
	flagDocument      string
	flagDocumentFile  string
	flagDocuments     string
	flagDocumentsFile string
}

func (c *Command) Synopsis() string {
	return "Insert one or more documents"
}

func (c *Command) Help() string {
	return `Usage: atlasdata insert [options]

Inserts a single document (-document / -document-file) or a batch
(-documents / -documents-file, an extended JSON array). Batch inserts report
the assigned ids in input order.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("insert", flag.ContinueOnError))

	f.StringVar(&c.flagConfig, "config", "",
		fmt.Sprintf("[%s] Path to the HCL configuration file", base.ConfigEnvVar))
	f.StringVar(&c.flagCollection, "collection", "",
		"Collection name, overriding the configured default")
	f.StringVar(&c.flagDocument, "document", "",
		"Document to insert, as extended JSON")
	f.StringVar(&c.flagDocumentFile, "document-file", "",
		"Path to a file holding the document to insert")
	f.StringVar(&c.flagDocuments, "documents", "",
		"Array of documents to insert, as extended JSON")
	f.StringVar(&c.flagDocumentsFile, "documents-file", "",
		"Path to a file holding an array of documents to insert")

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

	client, err := c.NewClient(cfg)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	batch := c.flagDocuments != "" || c.flagDocumentsFile != ""
	single := c.flagDocument != "" || c.flagDocumentFile != ""
	if batch == single {
		c.UI.Error("exactly one of -document/-document-file or -documents/-documents-file is required")
		return 1
	}

	ctx := context.Background()

	if batch {
		documents, err := c.ReadDocumentList(c.flagDocuments, c.flagDocumentsFile)
		if err != nil {
			c.UI.Error(err.Error())
			return 1
		}

		res, err := client.InsertMany(ctx, c.HTTPClientFor(cfg), coll, documents)
		if err != nil {
			c.UI.Error(err.Error())
			return 1
		}
		for _, id := range res.InsertedIDs {
			c.UI.Output(id.Hex())
		}
		return 0
	}

	document, err := c.ReadDocument(c.flagDocument, c.flagDocumentFile)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}

	res, err := client.InsertOne(ctx, c.HTTPClientFor(cfg), coll, document)
	if err != nil {
		c.UI.Error(err.Error())
		return 1
	}
	c.UI.Output(res.InsertedID.Hex())
	return 0
}
