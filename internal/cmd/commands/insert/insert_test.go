package insert

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasforge/atlasdata/internal/cmd/cmdtest"
)

func TestRun_InsertOne(t *testing.T) {
	var gotPath, gotBody string
	b, ui := cmdtest.New(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		fmt.Fprint(w, `{"insertedId":"64d2a0f5e1b2c3d4e5f60718"}`)
	})
	c := &Command{Command: b}

	code := c.Run([]string{"-config", cmdtest.ConfigPath, "-document", `{"name":"a"}`})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	assert.Equal(t, "/app/data-abcde/endpoint/data/v1/action/insertOne", gotPath)
	assert.Contains(t, gotBody, `"name":"a"`)
	assert.Equal(t, "64d2a0f5e1b2c3d4e5f60718\n", ui.OutputWriter.String())
}

func TestRun_InsertMany(t *testing.T) {
	var gotPath string
	b, ui := cmdtest.New(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"insertedIds":["64d2a0f5e1b2c3d4e5f60718","64d2a0f5e1b2c3d4e5f60719"]}`)
	})
	c := &Command{Command: b}

	code := c.Run([]string{"-config", cmdtest.ConfigPath, "-documents", `[{"name":"a"},{"name":"b"}]`})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	assert.Equal(t, "/app/data-abcde/endpoint/data/v1/action/insertMany", gotPath)
	assert.Equal(t, "64d2a0f5e1b2c3d4e5f60718\n64d2a0f5e1b2c3d4e5f60719\n", ui.OutputWriter.String())
}

func TestRun_RequiresExactlyOneMode(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"neither", nil},
		{"both", []string{"-document", `{"a":1}`, "-documents", `[{"a":1}]`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ui := cmdtest.New(t, cmdtest.Unreached(t))
			c := &Command{Command: b}

			code := c.Run(append([]string{"-config", cmdtest.ConfigPath}, tt.args...))
			assert.Equal(t, 1, code)
			assert.Contains(t, ui.ErrorWriter.String(), "exactly one of")
		})
	}
}
