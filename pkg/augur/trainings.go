package augur

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// TrainingsService groups the training operations. Trainings share the
// prediction lifecycle: they start, process, and settle into the same
// terminal states.
type TrainingsService struct {
	client *Client
}

// TrainingOptions are the optional arguments to Create.
type TrainingOptions struct {
	Webhook             string
	WebhookCompleted    string
	WebhookEventsFilter []string
}

// Create starts a new training using the base version named by ref
// ("owner/name:version") and pushes the result to destination
// ("owner/name"). Both references and the input are validated locally
// before any network call.
func (s *TrainingsService) Create(ctx context.Context, ref, destination string, input map[string]any, opts *TrainingOptions) (*Training, error) {
	id, err := ParseIdentifier(ref)
	if err != nil {
		return nil, err
	}
	if id.Version == "" {
		return nil, &ValidationError{Message: "a training reference must include a version, in the form owner/name:version"}
	}
	if destination == "" {
		return nil, &ValidationError{Message: "a destination must be provided"}
	}
	dest, err := ParseIdentifier(destination)
	if err != nil {
		return nil, err
	}
	if dest.Version != "" {
		return nil, &ValidationError{Message: "a destination must not include a version"}
	}
	if input == nil {
		return nil, &ValidationError{Message: "an input must be provided"}
	}

	encoded, err := encodeInput(input)
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"input":       encoded,
		"destination": destination,
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
	}

	path := fmt.Sprintf("/models/%s/%s/versions/%s/trainings", id.Owner, id.Name, id.Version)
	var raw json.RawMessage
	if err := s.client.request(ctx, http.MethodPost, path, body, &raw); err != nil {
		return nil, err
	}
	return UnmarshalTraining(raw)
}

// Get fetches a training by ID.
func (s *TrainingsService) Get(ctx context.Context, id string) (*Training, error) {
	if id == "" {
		return nil, &ValidationError{Message: "a training ID must be provided"}
	}

	var raw json.RawMessage
	if err := s.client.request(ctx, http.MethodGet, "/trainings/"+id, nil, &raw); err != nil {
		return nil, err
	}
	return UnmarshalTraining(raw)
}

// List returns your trainings.
func (s *TrainingsService) List(ctx context.Context) ([]*Training, error) {
	var page struct {
		Results []json.RawMessage `json:"results"`
	}
	if err := s.client.request(ctx, http.MethodGet, "/trainings", nil, &page); err != nil {
		return nil, err
	}

	trainings := make([]*Training, 0, len(page.Results))
	for _, raw := range page.Results {
		t, err := UnmarshalTraining(raw)
		if err != nil {
			return nil, err
		}
		trainings = append(trainings, t)
	}
	return trainings, nil
}

// Reload re-fetches the training and refreshes it in place.
func (s *TrainingsService) Reload(ctx context.Context, t *Training) error {
	fresh, err := s.Get(ctx, t.ID)
	if err != nil {
		return err
	}
	fresh.Version = t.Version
	*t = *fresh
	return nil
}

// Cancel requests cancellation of a running training.
func (s *TrainingsService) Cancel(ctx context.Context, t *Training) error {
	path := t.URLs["cancel"]
	if path == "" {
		path = "/trainings/" + t.ID + "/cancel"
	}
	return s.client.request(ctx, http.MethodPost, path, nil, nil)
}
