package augur

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// modelAPIHandler fakes the model, version, and prediction endpoints for a
// single model whose prediction walks through the given states.
func modelAPIHandler(t *testing.T, outputType string, states []string) http.Handler {
	t.Helper()
	var polls atomic.Int32

	schema, err := json.Marshal(schemaWithOutputType(outputType))
	require.NoError(t, err)
	versionBody := fmt.Sprintf(`{"id": "v1", "openapi_schema": %s}`, schema)

	mux := http.NewServeMux()
	mux.HandleFunc("/models/acme/whisper", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"owner": "acme", "name": "whisper", "latest_version": %s}`, versionBody)
	})
	mux.HandleFunc("/models/acme/whisper/versions/v1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, versionBody)
	})
	mux.HandleFunc("/predictions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, states[0])
	})
	mux.HandleFunc("/predictions/p1", func(w http.ResponseWriter, r *http.Request) {
		i := int(polls.Add(1))
		if i >= len(states) {
			i = len(states) - 1
		}
		fmt.Fprint(w, states[i])
	})
	return mux
}

func TestRunAtomicWaitsForOutput(t *testing.T) {
	c := newTestClient(t, modelAPIHandler(t, "string", []string{
		`{"id": "p1", "status": "starting"}`,
		`{"id": "p1", "status": "processing"}`,
		`{"id": "p1", "status": "succeeded", "output": "hello world"}`,
	}))

	output, err := c.Run(context.Background(), "acme/whisper:v1", map[string]any{"prompt": "hi"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "hello world", output)
}

func TestRunIterableReturnsIteratorImmediately(t *testing.T) {
	c := newTestClient(t, modelAPIHandler(t, "array", []string{
		`{"id": "p1", "status": "starting", "output": []}`,
		`{"id": "p1", "status": "succeeded", "output": ["a", "b"]}`,
	}))

	output, err := c.Run(context.Background(), "acme/whisper:v1", map[string]any{"prompt": "hi"}, nil)
	require.NoError(t, err)

	it, ok := output.(*OutputIterator)
	require.True(t, ok, "expected an *OutputIterator, got %T", output)

	// The iterator is handed back before the job settles; elements arrive
	// as it polls.
	got, err := collect(t, it)
	assert.ErrorIs(t, err, ErrDone)
	assert.Equal(t, []any{"a", "b"}, got)
}

func TestRunResolvesLatestVersion(t *testing.T) {
	c := newTestClient(t, modelAPIHandler(t, "string", []string{
		`{"id": "p1", "status": "succeeded", "output": "done"}`,
	}))

	output, err := c.Run(context.Background(), "acme/whisper", map[string]any{"prompt": "hi"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "done", output)
}

func TestRunFailedJob(t *testing.T) {
	c := newTestClient(t, modelAPIHandler(t, "string", []string{
		`{"id": "p1", "status": "starting"}`,
		`{"id": "p1", "status": "failed", "error": "CUDA out of memory"}`,
	}))

	_, err := c.Run(context.Background(), "acme/whisper:v1", map[string]any{"prompt": "hi"}, nil)

	var modelErr *ModelError
	require.ErrorAs(t, err, &modelErr)
	assert.Equal(t, "CUDA out of memory", modelErr.Message)
}

func TestRunInvalidReference(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made")
	}))

	_, err := c.Run(context.Background(), "not-a-reference", map[string]any{}, nil)
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestRunModelWithoutVersions(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/models/acme/empty", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"owner": "acme", "name": "empty"}`)
	})
	c := newTestClient(t, mux)

	_, err := c.Run(context.Background(), "acme/empty", map[string]any{}, nil)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "no versions")
}

func TestRunBatch(t *testing.T) {
	c := newTestClient(t, modelAPIHandler(t, "string", []string{
		`{"id": "p1", "status": "succeeded", "output": "done"}`,
	}))

	inputs := []map[string]any{
		{"prompt": "one"},
		{"prompt": "two"},
		{"prompt": "three"},
	}
	results, err := c.RunBatch(context.Background(), "acme/whisper:v1", inputs, 2, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)
	for _, result := range results {
		assert.Equal(t, "done", result)
	}
}

func TestRunBatchCollectsErrors(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made")
	}))

	inputs := []map[string]any{{"prompt": "one"}, {"prompt": "two"}}
	results, err := c.RunBatch(context.Background(), "bad-ref", inputs, 2, nil)

	require.Error(t, err)
	require.Len(t, results, 2)
	assert.Nil(t, results[0])
	assert.Nil(t, results[1])
}
