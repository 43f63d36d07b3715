package augur

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Deployment is a named deployment of a model version with dedicated
// capacity. Predictions created against a deployment pick up its pinned
// version server-side.
type Deployment struct {
	Owner string
	Name  string

	client *Client
}

// DeploymentsService groups the deployment operations.
type DeploymentsService struct {
	client *Client
}

// Get resolves a deployment reference ("owner/name"). Resolution is local;
// the deployment's existence is verified by the first prediction created
// against it.
func (s *DeploymentsService) Get(_ context.Context, ref string) (*Deployment, error) {
	id, err := ParseIdentifier(ref)
	if err != nil {
		return nil, err
	}
	if id.Version != "" {
		return nil, &ValidationError{Message: "a deployment reference must not include a version"}
	}
	return &Deployment{Owner: id.Owner, Name: id.Name, client: s.client}, nil
}

// CreatePrediction starts a prediction against the deployment. The version
// is chosen by the deployment, so only an input is required.
func (d *Deployment) CreatePrediction(ctx context.Context, input map[string]any, opts *PredictionOptions) (*Prediction, error) {
	if input == nil {
		return nil, &ValidationError{Message: "an input must be provided"}
	}

	encoded, err := encodeInput(input)
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"input": encoded,
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

	path := fmt.Sprintf("/deployments/%s/%s/predictions", d.Owner, d.Name)
	var raw json.RawMessage
	if err := d.client.request(ctx, http.MethodPost, path, body, &raw); err != nil {
		return nil, err
	}
	return UnmarshalPrediction(raw)
}
