package config

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) (afero.Fs, string) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/config.hcl", []byte(contents), 0o600))
	return fs, "/config.hcl"
}

func TestLoad(t *testing.T) {
	fs, path := writeConfig(t, `
app_id      = "data-abcde"
api_key     = "secret"
region      = "us-east-1.aws"
data_source = "Cluster0"
database    = "db"
collection  = "users"
timeout     = "5s"
`)

	cfg, err := Load(fs, path)
	require.NoError(t, err)

	assert.Equal(t, "data-abcde", cfg.AppID)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, "us-east-1.aws", cfg.Region)
	assert.Equal(t, "users", cfg.Selector().Collection)
	assert.Equal(t, 5*time.Second, cfg.HTTPClient().Timeout)
}

func TestLoad_APIKeyFromEnvironment(t *testing.T) {
	t.Setenv("ATLASDATA_TEST_KEY", "env-secret")

	fs, path := writeConfig(t, `
app_id      = "data-abcde"
api_key_env = "ATLASDATA_TEST_KEY"
data_source = "Cluster0"
database    = "db"
`)

	cfg, err := Load(fs, path)
	require.NoError(t, err)
	assert.Equal(t, "env-secret", cfg.APIKey)
}

func TestLoad_DefaultTimeout(t *testing.T) {
	fs, path := writeConfig(t, `
app_id      = "data-abcde"
api_key     = "secret"
data_source = "Cluster0"
database    = "db"
`)

	cfg, err := Load(fs, path)
	require.NoError(t, err)
	assert.Equal(t, DefaultTimeout, cfg.HTTPClient().Timeout)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	fs, path := writeConfig(t, `
app_id      = "data-abcde"
api_key     = "secret"
data_source = "Cluster0"
database    = "db"
timeout     = "soon"
`)

	_, err := Load(fs, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timeout")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(afero.NewMemMapFs(), "/nope.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read configuration")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "valid",
			cfg:  Config{AppID: "data-abcde", APIKey: "secret", DataSource: "Cluster0", Database: "db"},
		},
		{
			name:    "missing app_id",
			cfg:     Config{APIKey: "secret", DataSource: "Cluster0", Database: "db"},
			wantErr: "AppID",
		},
		{
			name:    "missing key entirely",
			cfg:     Config{AppID: "data-abcde", DataSource: "Cluster0", Database: "db"},
			wantErr: "api_key or api_key_env",
		},
		{
			name:    "empty key env var",
			cfg:     Config{AppID: "data-abcde", APIKeyEnv: "ATLASDATA_UNSET_KEY", DataSource: "Cluster0", Database: "db"},
			wantErr: "environment variable is empty",
		},
		{
			name:    "missing selector fields",
			cfg:     Config{AppID: "data-abcde", APIKey: "secret"},
			wantErr: "DataSource",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()

			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsAllProblems(t *testing.T) {
	err := (&Config{}).Validate()
	require.Error(t, err)

	assert.Contains(t, err.Error(), "AppID")
	assert.Contains(t, err.Error(), "DataSource")
	assert.Contains(t, err.Error(), "api_key")
}
