package augur

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelsGet(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/acme/whisper", r.URL.Path)
		fmt.Fprint(w, `{
			"owner": "acme",
			"name": "whisper",
			"visibility": "public",
			"latest_version": {"id": "v1"}
		}`)
	}))

	model, err := c.Models.Get(context.Background(), "acme/whisper")
	require.NoError(t, err)
	assert.Equal(t, "acme", model.Owner)
	assert.Equal(t, "whisper", model.Name)
	require.NotNil(t, model.LatestVersion)
	assert.Equal(t, "v1", model.LatestVersion.ID)
}

func TestModelsGetInvalidRef(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made")
	}))

	_, err := c.Models.Get(context.Background(), "no-slash")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestModelsListPagination(t *testing.T) {
	var cursors []string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cursor := r.URL.Query().Get("cursor")
		cursors = append(cursors, cursor)
		if cursor == "" {
			fmt.Fprint(w, `{"results": [{"owner": "acme", "name": "one"}], "next": "page2"}`)
			return
		}
		fmt.Fprint(w, `{"results": [{"owner": "acme", "name": "two"}]}`)
	}))

	page, err := c.Models.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "one", page.Results[0].Name)
	require.Equal(t, "page2", page.Next)

	page, err = c.Models.List(context.Background(), page.Next)
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "two", page.Results[0].Name)
	assert.Empty(t, page.Next)

	assert.Equal(t, []string{"", "page2"}, cursors)
}

func TestModelsCreate(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/models", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"owner": "acme", "name": "fresh"}`)
	}))

	model, err := c.Models.Create(context.Background(), "acme", "fresh", &ModelCreateOptions{
		Visibility: "private",
		Hardware:   "gpu-a40-large",
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", model.Name)
	assert.Equal(t, "private", body["visibility"])
	assert.Equal(t, "gpu-a40-large", body["hardware"])
	assert.NotContains(t, body, "description")

	_, err = c.Models.Create(context.Background(), "", "fresh", nil)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestModelsVersion(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/acme/whisper/versions/v1", r.URL.Path)
		fmt.Fprint(w, `{"id": "v1", "cog_version": "0.9.0"}`)
	}))

	version, err := c.Models.Version(context.Background(), "acme", "whisper", "v1")
	require.NoError(t, err)
	assert.Equal(t, "v1", version.ID)

	_, err = c.Models.Version(context.Background(), "acme", "whisper", "")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestModelsVersions(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/acme/whisper/versions", r.URL.Path)
		fmt.Fprint(w, `{"results": [{"id": "v2"}, {"id": "v1"}]}`)
	}))

	versions, err := c.Models.Versions(context.Background(), "acme", "whisper")
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, "v2", versions[0].ID)
}
