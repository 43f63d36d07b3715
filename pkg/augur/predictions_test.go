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

func TestPredictionsCreate(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predictions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": "p1", "version": "v1", "status": "starting"}`)
	}))

	p, err := c.Predictions.Create(context.Background(), "v1", map[string]any{"prompt": "hi"}, nil)
	require.NoError(t, err)

	assert.Equal(t, "p1", p.ID)
	assert.Equal(t, StatusStarting, p.Status)
	assert.Equal(t, "v1", body["version"])
	assert.Equal(t, map[string]any{"prompt": "hi"}, body["input"])

	// Optional fields are omitted entirely when unset.
	assert.NotContains(t, body, "webhook")
	assert.NotContains(t, body, "webhook_completed")
	assert.NotContains(t, body, "webhook_events_filter")
	assert.NotContains(t, body, "stream")
}

func TestPredictionsCreateWithOptions(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fmt.Fprint(w, `{"id": "p1", "status": "starting"}`)
	}))

	_, err := c.Predictions.Create(context.Background(), "v1", map[string]any{"prompt": "hi"}, &PredictionOptions{
		Webhook:             "https://hooks.example.com/done",
		WebhookEventsFilter: []string{"completed"},
		Stream:              true,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://hooks.example.com/done", body["webhook"])
	assert.Equal(t, []any{"completed"}, body["webhook_events_filter"])
	assert.Equal(t, true, body["stream"])
	assert.NotContains(t, body, "webhook_completed")
}

func TestPredictionsCreateValidation(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made")
	}))

	var verr *ValidationError

	_, err := c.Predictions.Create(context.Background(), "", map[string]any{"prompt": "hi"}, nil)
	assert.ErrorAs(t, err, &verr)

	_, err = c.Predictions.Create(context.Background(), "v1", nil, nil)
	assert.ErrorAs(t, err, &verr)
}

func TestPredictionsGet(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predictions/p1", r.URL.Path)
		fmt.Fprint(w, `{"id": "p1", "status": "succeeded", "output": "done"}`)
	}))

	p, err := c.Predictions.Get(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, StatusSucceeded, p.Status)
	assert.Equal(t, "done", p.Output)

	_, err = c.Predictions.Get(context.Background(), "")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestPredictionsList(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"results": [
			{"id": "p1", "status": "succeeded"},
			{"id": "p2", "status": "processing"}
		]}`)
	}))

	predictions, err := c.Predictions.List(context.Background())
	require.NoError(t, err)
	require.Len(t, predictions, 2)
	assert.Equal(t, "p1", predictions[0].ID)
	assert.Equal(t, "p2", predictions[1].ID)
}

func TestPredictionsReloadPreservesVersion(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id": "p1", "version": "v1", "status": "succeeded", "output": "done"}`)
	}))

	version := &Version{ID: "v1"}
	p := &Prediction{ID: "p1", Status: StatusProcessing, Version: version}

	require.NoError(t, c.Predictions.Reload(context.Background(), p))
	assert.Equal(t, StatusSucceeded, p.Status)
	assert.Equal(t, "done", p.Output)
	assert.Same(t, version, p.Version)
}

func TestPredictionsCancelUsesServerURL(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/custom/cancel/path", r.URL.Path)
		fmt.Fprint(w, `{}`)
	}))

	p := &Prediction{ID: "p1", URLs: map[string]string{"cancel": "/custom/cancel/path"}}
	require.NoError(t, c.Predictions.Cancel(context.Background(), p))
}

func TestPredictionsCancelFallbackPath(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predictions/p1/cancel", r.URL.Path)
		fmt.Fprint(w, `{}`)
	}))

	p := &Prediction{ID: "p1"}
	require.NoError(t, c.Predictions.Cancel(context.Background(), p))
}
