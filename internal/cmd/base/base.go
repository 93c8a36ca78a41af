// Package base carries the pieces shared by every CLI command: the UI and
// logger handles, the config flag plumbing, and helpers for reading extended
// JSON documents from flags or files.
package base

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/atlasforge/atlasdata/internal/config"
	"github.com/atlasforge/atlasdata/pkg/dataapi"
)

// ConfigEnvVar names the environment variable consulted when the -config
// flag is not given.
const ConfigEnvVar = "ATLASDATA_CONFIG"

// Command is embedded by every CLI command.
type Command struct {
	UI  cli.Ui
	Log hclog.Logger

	// FS abstracts file reads so command tests can substitute an in-memory
	// filesystem.
	FS afero.Fs

	// HTTPClient, when set, is used for every request instead of the client
	// built from the configuration. Tests use it to point commands at a stub
	// server.
	HTTPClient *http.Client
}

// LoadConfig resolves the config path from the flag value or the
// environment and loads it.
func (c *Command) LoadConfig(flagValue string) (*config.Config, error) {
	path := flagValue
	if val, ok := os.LookupEnv(ConfigEnvVar); ok && path == "" {
		path = val
	}
	if path == "" {
		return nil, fmt.Errorf("config file is required (-config or %s)", ConfigEnvVar)
	}
	return config.Load(c.FS, path)
}

// HTTPClientFor returns the injected HTTP client when one is set, otherwise
// one built from the configuration.
func (c *Command) HTTPClientFor(cfg *config.Config) *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return cfg.HTTPClient()
}

// NewClient builds a Data API client from the loaded configuration, wiring
// in the command's logger.
func (c *Command) NewClient(cfg *config.Config) (*dataapi.Client, error) {
	clientConfig := cfg.ClientConfig()
	clientConfig.Logger = c.Log
	return dataapi.NewClient(clientConfig)
}

// ResolveCollection applies a -collection override to the configured
// selector; one of the two must name a collection.
func ResolveCollection(coll dataapi.Collection, override string) (dataapi.Collection, error) {
	if override != "" {
		coll.Collection = override
	}
	if coll.Collection == "" {
		return coll, fmt.Errorf("collection is required (config file or -collection)")
	}
	return coll, nil
}

// ReadDocument parses one extended JSON document from an inline flag value
// or, when that is empty, from a file. Both empty yields a nil document.
func (c *Command) ReadDocument(inline, file string) (bson.D, error) {
	data, err := c.readInput(inline, file)
	if err != nil || data == nil {
		return nil, err
	}

	var doc bson.D
	if err := bson.UnmarshalExtJSON(data, false, &doc); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	return doc, nil
}

// ReadDocumentList parses an extended JSON array of documents from an inline
// flag value or a file.
func (c *Command) ReadDocumentList(inline, file string) ([]bson.D, error) {
	data, err := c.readInput(inline, file)
	if err != nil || data == nil {
		return nil, err
	}

	// The extended JSON decoder wants a document at the top level, so the
	// array is wrapped in one before decoding.
	wrapped := make([]byte, 0, len(data)+6)
	wrapped = append(wrapped, `{"v":`...)
	wrapped = append(wrapped, data...)
	wrapped = append(wrapped, '}')

	var out struct {
		V []bson.D `bson:"v"`
	}
	if err := bson.UnmarshalExtJSON(wrapped, false, &out); err != nil {
		return nil, fmt.Errorf("invalid document array: %w", err)
	}
	return out.V, nil
}

func (c *Command) readInput(inline, file string) ([]byte, error) {
	if inline != "" {
		return []byte(inline), nil
	}
	if file == "" {
		return nil, nil
	}
	data, err := afero.ReadFile(c.FS, file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file, err)
	}
	return data, nil
}

// PrintDocument writes doc to the UI as relaxed extended JSON.
func (c *Command) PrintDocument(doc interface{}) error {
	out, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return fmt.Errorf("failed to render document: %w", err)
	}
	c.UI.Output(string(out))
	return nil
}

// FlagSet wraps flag.FlagSet with help rendering for command Help() output.
type FlagSet struct {
	*flag.FlagSet
}

// NewFlagSet silences the wrapped flag set's own output; errors surface
// through the UI instead.
func NewFlagSet(fs *flag.FlagSet) *FlagSet {
	fs.SetOutput(io.Discard)
	return &FlagSet{FlagSet: fs}
}

// Help renders the defined flags, sorted by name.
func (f *FlagSet) Help() string {
	var flags []*flag.Flag
	f.VisitAll(func(fl *flag.Flag) {
		flags = append(flags, fl)
	})
	sort.Slice(flags, func(i, j int) bool { return flags[i].Name < flags[j].Name })

	var b strings.Builder
	b.WriteString("\n\nOptions:\n")
	for _, fl := range flags {
		fmt.Fprintf(&b, "  -%s\n      %s\n", fl.Name, fl.Usage)
	}
	return b.String()
}
