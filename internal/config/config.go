// Package config loads and validates the HCL configuration used by the
// atlasdata CLI.
//
// Example configuration:
//
//	app_id      = "data-abcde"
//	api_key_env = "ATLAS_API_KEY"
//	region      = "us-east-1.aws"
//
//	data_source = "Cluster0"
//	database    = "db"
//	collection  = "users"
//	timeout     = "30s"
package config

import (
	"fmt"
	"net/http"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/spf13/afero"

	"github.com/atlasforge/atlasdata/pkg/dataapi"
)

// DefaultTimeout bounds CLI requests when the config file does not set one.
// The library itself imposes no timeout; this only configures the
// *http.Client the CLI hands to it.
const DefaultTimeout = 30 * time.Second

// Config is the atlasdata CLI configuration.
type Config struct {
	// AppID is the Atlas App Services application ID.
	AppID string `hcl:"app_id"`

	// APIKey is the Data API key. Prefer APIKeyEnv so the key stays out of
	// the config file.
	APIKey string `hcl:"api_key,optional"`

	// APIKeyEnv names an environment variable holding the API key. Used when
	// APIKey is empty.
	APIKeyEnv string `hcl:"api_key_env,optional"`

	// Region is the optional deployment region ("<Region>.<Cloud>"); empty
	// for globally deployed apps.
	Region string `hcl:"region,optional"`

	// DataSource, Database and Collection form the default collection
	// selector for commands; each command can override the collection.
	DataSource string `hcl:"data_source"`
	Database   string `hcl:"database"`
	Collection string `hcl:"collection,optional"`

	// Timeout is a duration string for the CLI's HTTP client; defaults to
	// DefaultTimeout.
	Timeout string `hcl:"timeout,optional"`

	timeout time.Duration
}

// Load reads an HCL configuration file through fs, resolves the API key
// from the environment when api_key_env is set, applies defaults, and
// validates.
func Load(fs afero.Fs, path string) (*Config, error) {
	src, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration from %s: %w", path, err)
	}

	var cfg Config
	if err := hclsimple.Decode(path, src, nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration from %s: %w", path, err)
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// finish resolves the API key, parses the timeout and validates the result.
// Split from Load so tests can build a Config directly.
func (c *Config) finish() error {
	if c.APIKey == "" && c.APIKeyEnv != "" {
		c.APIKey = os.Getenv(c.APIKeyEnv)
	}

	c.timeout = DefaultTimeout
	if c.Timeout != "" {
		d, err := time.ParseDuration(c.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", c.Timeout, err)
		}
		c.timeout = d
	}

	return c.Validate()
}

// Validate checks the configuration, reporting every problem at once.
func (c *Config) Validate() error {
	var result *multierror.Error

	if err := validation.ValidateStruct(c,
		validation.Field(&c.AppID, validation.Required),
		validation.Field(&c.DataSource, validation.Required),
		validation.Field(&c.Database, validation.Required),
	); err != nil {
		result = multierror.Append(result, err)
	}

	if c.APIKey == "" {
		if c.APIKeyEnv != "" {
			result = multierror.Append(result,
				fmt.Errorf("api_key_env %q is set but the environment variable is empty", c.APIKeyEnv))
		} else {
			result = multierror.Append(result,
				fmt.Errorf("one of api_key or api_key_env is required"))
		}
	}

	return result.ErrorOrNil()
}

// ClientConfig maps the CLI configuration onto the library's Config.
func (c *Config) ClientConfig() dataapi.Config {
	return dataapi.Config{
		AppID:            c.AppID,
		APIKey:           c.APIKey,
		DeploymentRegion: c.Region,
	}
}

// Selector returns the default collection selector. An empty collection name
// is allowed here; commands require it via flag when the config omits it.
func (c *Config) Selector() dataapi.Collection {
	return dataapi.Collection{
		DataSource: c.DataSource,
		Database:   c.Database,
		Collection: c.Collection,
	}
}

// HTTPClient builds the HTTP client the CLI hands to the library on every
// call. Pooling and timeout policy live here, not in the library.
func (c *Config) HTTPClient() *http.Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &http.Client{
		Timeout:   c.timeout,
		Transport: transport,
	}
}
