// Package cmdtest provides scaffolding for command tests: a stub endpoint
// standing in for the remote service, and a base command wired to it through
// an in-memory filesystem.
package cmdtest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/atlasforge/atlasdata/internal/cmd/base"
)

// ConfigPath is where New places the config file on the command's
// filesystem.
const ConfigPath = "/config.hcl"

const configHCL = `
app_id      = "data-abcde"
api_key     = "secret"
data_source = "Cluster0"
database    = "db"
collection  = "users"
`

// New starts a stub server running handler and returns a base command whose
// HTTP requests are rewritten to it. The request path is left intact so
// tests can assert on the derived action URL. The command's filesystem
// already holds a config file at ConfigPath.
func New(t *testing.T, handler http.HandlerFunc) (*base.Command, *cli.MockUi) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	target, err := url.Parse(server.URL)
	require.NoError(t, err)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, ConfigPath, []byte(configHCL), 0o600))

	ui := cli.NewMockUi()
	return &base.Command{
		UI:         ui,
		Log:        hclog.NewNullLogger(),
		FS:         fs,
		HTTPClient: &http.Client{Transport: rewriteTransport{target: target}},
	}, ui
}

// Unreached returns a handler that fails the test when the stub server
// receives any request; error-path tests use it to prove nothing was sent.
func Unreached(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

// rewriteTransport redirects requests to the stub server while preserving
// the original path and headers.
type rewriteTransport struct {
	target *url.URL
}

func (t rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = t.target.Scheme
	req.URL.Host = t.target.Host
	return http.DefaultTransport.RoundTrip(req)
}
