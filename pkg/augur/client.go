// Package augur is a client for a hosted model-inference API. It tracks
// long-running remote jobs (predictions and trainings) from creation through
// a terminal state, and exposes their output either as one awaited value or
// as an incrementally growing sequence.
package augur

import (
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultBaseURL is the production API endpoint.
const DefaultBaseURL = "https://api.augur.run/v1"

// DefaultPollInterval is the delay between successive status re-fetches
// while waiting on a job.
const DefaultPollInterval = 500 * time.Millisecond

// Config holds client configuration. The zero value of every field selects
// a default; only APIToken is required to talk to the real service.
type Config struct {
	// APIToken is the bearer token sent on every request.
	APIToken string

	// BaseURL overrides the API endpoint. Defaults to DefaultBaseURL.
	BaseURL string

	// PollInterval is the delay between polls in Wait and output
	// iteration. It is read-mostly process-wide configuration shared by
	// all concurrently resolving jobs. Defaults to DefaultPollInterval.
	PollInterval time.Duration

	// HTTPClient overrides the underlying HTTP client.
	HTTPClient *http.Client

	// Retry overrides the transport retry policy.
	Retry *RetryPolicy

	// Logger receives debug-level request and polling logs. Silent by
	// default.
	Logger logrus.FieldLogger
}

// Client is the API client. All methods are safe for concurrent use; each
// job record and its polling loop is independent.
type Client struct {
	baseURL      string
	token        string
	pollInterval time.Duration
	httpClient   *http.Client
	retry        *RetryPolicy
	log          logrus.FieldLogger

	// Predictions, Trainings, Models, Deployments, and Files group the
	// operations for each resource.
	Predictions *PredictionsService
	Trainings   *TrainingsService
	Models      *ModelsService
	Deployments *DeploymentsService
	Files       *FilesService
}

// New creates a Client from the given configuration. A nil config selects
// all defaults.
func New(cfg *Config) *Client {
	if cfg == nil {
		cfg = &Config{}
	}

	c := &Client{
		baseURL:      strings.TrimSuffix(cfg.BaseURL, "/"),
		token:        cfg.APIToken,
		pollInterval: cfg.PollInterval,
		httpClient:   cfg.HTTPClient,
		retry:        cfg.Retry,
		log:          cfg.Logger,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.pollInterval <= 0 {
		c.pollInterval = DefaultPollInterval
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if c.retry == nil {
		c.retry = DefaultRetryPolicy()
	}
	if c.log == nil {
		silent := logrus.New()
		silent.SetOutput(io.Discard)
		c.log = silent
	}

	c.Predictions = &PredictionsService{client: c}
	c.Trainings = &TrainingsService{client: c}
	c.Models = &ModelsService{client: c}
	c.Deployments = &DeploymentsService{client: c}
	c.Files = &FilesService{client: c}
	return c
}

// PollInterval returns the configured delay between status re-fetches.
func (c *Client) PollInterval() time.Duration {
	return c.pollInterval
}
