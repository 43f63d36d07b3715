package augur

import (
	"context"
	"encoding/json"
	"net/http"
)

// PredictionsService groups the prediction operations.
type PredictionsService struct {
	client *Client
}

// PredictionOptions are the optional arguments to Create.
type PredictionOptions struct {
	// Webhook receives a POST request with prediction updates.
	Webhook string

	// WebhookCompleted receives a POST request when the prediction
	// completes.
	WebhookCompleted string

	// WebhookEventsFilter restricts which events trigger webhooks.
	WebhookEventsFilter []string

	// Stream enables server-sent-event streaming for the prediction. When
	// set, the created prediction carries a "stream" URL.
	Stream bool
}

// Create starts a new prediction for the given model version. A version
// identifier and an input are both required; missing either is a
// ValidationError raised before any network call.
//
// The returned prediction is typically still in the starting state.
func (s *PredictionsService) Create(ctx context.Context, versionID string, input map[string]any, opts *PredictionOptions) (*Prediction, error) {
	if versionID == "" {
		return nil, &ValidationError{Message: "a version identifier must be provided"}
	}
	if input == nil {
		return nil, &ValidationError{Message: "an input must be provided"}
	}

	encoded, err := encodeInput(input)
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"version": versionID,
		"input":   encoded,
	}
	if opts != nil {
		if opts.Webhook != "" {
			body["webhook"] = opts.Webhook
		}
		if opts.WebhookCompleted != "" {
			body["webhook_completed"] = opts.WebhookCompleted
		}
		if len(opts.WebhookEventsFilter) > 0 {
			body["webhook_events_filter"] = opts.WebhookEventsFilter
		}
		if opts.Stream {
			body["stream"] = true
		}
	}

	var raw json.RawMessage
	if err := s.client.request(ctx, http.MethodPost, "/predictions", body, &raw); err != nil {
		return nil, err
	}
	return UnmarshalPrediction(raw)
}

// Get fetches a prediction by ID.
func (s *PredictionsService) Get(ctx context.Context, id string) (*Prediction, error) {
	if id == "" {
		return nil, &ValidationError{Message: "a prediction ID must be provided"}
	}

	var raw json.RawMessage
	if err := s.client.request(ctx, http.MethodGet, "/predictions/"+id, nil, &raw); err != nil {
		return nil, err
	}
	return UnmarshalPrediction(raw)
}

// List returns your predictions.
func (s *PredictionsService) List(ctx context.Context) ([]*Prediction, error) {
	var page struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := s.client.request(ctx, http.MethodGet, "/predictions", nil, &page); err != nil {
		return nil, err
	}

	predictions := make([]*Prediction, 0, len(page.Results))
	for _, raw := range page.Results {
		p, err := UnmarshalPrediction(raw)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, p)
	}
	return predictions, nil
}

// Reload re-fetches the prediction and refreshes it in place with the
// latest status, output, and logs. The attached Version record, if any, is
// preserved.
func (s *PredictionsService) Reload(ctx context.Context, p *Prediction) error {
	fresh, err := s.Get(ctx, p.ID)
	if err != nil {
		return err
	}
	fresh.Version = p.Version
	*p = *fresh
	return nil
}

// Cancel requests cancellation of a running prediction. Cancelling a job
// that already reached a terminal state is a server-side no-op, not an
// error.
func (s *PredictionsService) Cancel(ctx context.Context, p *Prediction) error {
	path := p.URLs["cancel"]
	if path == "" {
		path = "/predictions/" + p.ID + "/cancel"
	}
	return s.client.request(ctx, http.MethodPost, path, nil, nil)
}
