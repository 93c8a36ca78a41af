package update

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atlasforge/atlasdata/internal/cmd/cmdtest"
)

func TestRun_UpdateOne(t *testing.T) {
	var gotPath, gotBody string
	b, ui := cmdtest.New(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		fmt.Fprint(w, `{"matchedCount":1,"modifiedCount":1}`)
	})
	c := &Command{Command: b}

	code := c.Run([]string{
		"-config", cmdtest.ConfigPath,
		"-filter", `{"name":"a"}`,
		"-update", `{"$set":{"qty":5}}`,
	})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	assert.Equal(t, "/app/data-abcde/endpoint/data/v1/action/updateOne", gotPath)
	assert.Contains(t, gotBody, `"$set"`)
	assert.NotContains(t, gotBody, "upsert")
	assert.Equal(t, "matched: 1, modified: 1\n", ui.OutputWriter.String())
}

func TestRun_UpdateManyWithUpsert(t *testing.T) {
	var gotPath, gotBody string
	b, ui := cmdtest.New(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		fmt.Fprint(w, `{"matchedCount":0,"modifiedCount":0,"upsertedId":"64d2a0f5e1b2c3d4e5f60718"}`)
	})
	c := &Command{Command: b}

	code := c.Run([]string{
		"-config", cmdtest.ConfigPath,
		"-many", "-upsert",
		"-filter", `{"name":"nope"}`,
		"-update", `{"$set":{"qty":5}}`,
	})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	assert.Equal(t, "/app/data-abcde/endpoint/data/v1/action/updateMany", gotPath)
	assert.Contains(t, gotBody, `"upsert":true`)

	out := ui.OutputWriter.String()
	assert.Contains(t, out, "matched: 0, modified: 0")
	assert.Contains(t, out, "upserted: 64d2a0f5e1b2c3d4e5f60718")
}

func TestRun_UpdateRequiresFilterAndUpdate(t *testing.T) {
	b, ui := cmdtest.New(t, cmdtest.Unreached(t))
	c := &Command{Command: b}

	code := c.Run([]string{"-config", cmdtest.ConfigPath, "-filter", `{"name":"a"}`})
	assert.Equal(t, 1, code)
	assert.Contains(t, ui.ErrorWriter.String(), "update expression are required")
}

func TestRun_Replace(t *testing.T) {
	var gotPath, gotBody string
	b, ui := cmdtest.New(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		fmt.Fprint(w, `{"matchedCount":1,"modifiedCount":1}`)
	})
	c := &ReplaceCommand{Command: b}

	code := c.Run([]string{
		"-config", cmdtest.ConfigPath,
		"-filter", `{"name":"a"}`,
		"-replacement", `{"name":"a","qty":9}`,
	})
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	assert.Equal(t, "/app/data-abcde/endpoint/data/v1/action/replaceOne", gotPath)
	assert.Contains(t, gotBody, `"replacement"`)
	assert.Equal(t, "matched: 1, modified: 1\n", ui.OutputWriter.String())
}

func TestRun_ReplaceRequiresReplacement(t *testing.T) {
	b, ui := cmdtest.New(t, cmdtest.Unreached(t))
	c := &ReplaceCommand{Command: b}

	code := c.Run([]string{"-config", cmdtest.ConfigPath, "-filter", `{"name":"a"}`})
	assert.Equal(t, 1, code)
	assert.Contains(t, ui.ErrorWriter.String(), "replacement document are required")
}
