package augur

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ModelsService groups the model and version operations.
type ModelsService struct {
	client *Client
}

// ModelPage is one page of a model listing. Next and Previous are opaque
// cursors passed back to List.
type ModelPage struct {
	Results  []*Model `json:"results"`
	Next     string   `json:"next"`
	Previous string   `json:"previous"`
}

// Get fetches a model by reference ("owner/name").
func (s *ModelsService) Get(ctx context.Context, ref string) (*Model, error) {
	id, err := ParseIdentifier(ref)
	if err != nil {
		return nil, err
	}

	var model Model
	path := fmt.Sprintf("/models/%s/%s", id.Owner, id.Name)
	if err := s.client.request(ctx, http.MethodGet, path, nil, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// List returns a page of public models. Pass the previous page's Next
// cursor to continue, or an empty cursor for the first page.
func (s *ModelsService) List(ctx context.Context, cursor string) (*ModelPage, error) {
	path := "/models"
	if cursor != "" {
		path += "?cursor=" + url.QueryEscape(cursor)
	}

	var page ModelPage
	if err := s.client.request(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// ModelCreateOptions are the optional arguments to Create.
type ModelCreateOptions struct {
	Visibility  string
	Hardware    string
	Description string
}

// Create registers a new model under the given owner and name.
func (s *ModelsService) Create(ctx context.Context, owner, name string, opts *ModelCreateOptions) (*Model, error) {
	if owner == "" || name == "" {
		return nil, &ValidationError{Message: "an owner and a name must be provided"}
	}

	body := map[string]any{
		"owner": owner,
		"name":  name,
	}
	if opts != nil {
		if opts.Visibility != "" {
			body["visibility"] = opts.Visibility
		}
		if opts.Hardware != "" {
			body["hardware"] = opts.Hardware
		}
		if opts.Description != "" {
			body["description"] = opts.Description
		}
	}

	var model Model
	if err := s.client.request(ctx, http.MethodPost, "/models", body, &model); err != nil {
		return nil, err
	}
	return &model, nil
}

// Version fetches a specific version of a model.
func (s *ModelsService) Version(ctx context.Context, owner, name, versionID string) (*Version, error) {
	if owner == "" || name == "" || versionID == "" {
		return nil, &ValidationError{Message: "an owner, a name, and a version ID must be provided"}
	}

	var version Version
	path := fmt.Sprintf("/models/%s/%s/versions/%s", owner, name, versionID)
	if err := s.client.request(ctx, http.MethodGet, path, nil, &version); err != nil {
		return nil, err
	}
	return &version, nil
}

// Versions lists all versions of a model, newest first.
func (s *ModelsService) Versions(ctx context.Context, owner, name string) ([]*Version, error) {
	if owner == "" || name == "" {
		return nil, &ValidationError{Message: "an owner and a name must be provided"}
	}

	var page struct {
		Results []*Version `json:"results"`
	}
	path := fmt.Sprintf("/models/%s/%s/versions", owner, name)
	if err := s.client.request(ctx, http.MethodGet, path, nil, &page); err != nil {
		return nil, err
	}
	return page.Results, nil
}
