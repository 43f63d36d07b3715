package augur

// Status is the lifecycle state of a remote job.
type Status string

const (
	StatusStarting   Status = "starting"
	StatusProcessing Status = "processing"
	StatusSucceeded  Status = "succeeded"
	StatusFailed     Status = "failed"
	StatusCanceled   Status = "canceled"
)

// Terminal reports whether the status is absorbing: once a job is observed
// in a terminal state it never transitions again. Both the blocking and
// channel-based resolvers share this single predicate.
func (s Status) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusCanceled:
		return true
	}
	return false
}

// Prediction is a single inference job running against a model version.
type Prediction struct {
	ID string `json:"id"`

	// VersionID is the server-reported version identifier. Version is the
	// full record, attached only when the caller already holds it; it is
	// never re-fetched during decoding.
	VersionID string   `json:"version"`
	Version   *Version `json:"-"`

	Status Status         `json:"status"`
	Input  map[string]any `json:"input"`

	// Output is absent until the job makes progress. For array-typed
	// outputs it is a monotonically growing []any.
	Output any `json:"output"`

	// Logs is the latest snapshot of the job's log text, not an
	// incremental diff.
	Logs string `json:"logs"`

	Error   string         `json:"error"`
	Metrics map[string]any `json:"metrics"`

	CreatedAt   string `json:"created_at"`
	StartedAt   string `json:"started_at"`
	CompletedAt string `json:"completed_at"`

	// URLs includes at least "get" and "cancel", and "stream" for
	// streaming-enabled predictions.
	URLs map[string]string `json:"urls"`
}

// Training is a fine-tuning job. It shares the prediction lifecycle but is
// created against a different endpoint and pushes its result to a
// destination model.
type Training struct {
	ID string `json:"id"`

	VersionID string   `json:"version"`
	Version   *Version `json:"-"`

	Destination string         `json:"destination"`
	Status      Status         `json:"status"`
	Input       map[string]any `json:"input"`
	Output      any            `json:"output"`
	Logs        string         `json:"logs"`
	Error       string         `json:"error"`

	CreatedAt   string `json:"created_at"`
	StartedAt   string `json:"started_at"`
	CompletedAt string `json:"completed_at"`

	URLs map[string]string `json:"urls"`
}

// Version is an immutable snapshot of a model version.
type Version struct {
	ID            string         `json:"id"`
	CreatedAt     string         `json:"created_at"`
	CogVersion    string         `json:"cog_version"`
	OpenAPISchema map[string]any `json:"openapi_schema"`
}

// Model is a named model owned by a user or organization.
type Model struct {
	Owner         string         `json:"owner"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Visibility    string         `json:"visibility"`
	URL           string         `json:"url"`
	RunCount      int            `json:"run_count"`
	CoverImageURL string         `json:"cover_image_url"`
	LatestVersion *Version       `json:"latest_version"`
	DefaultExample map[string]any `json:"default_example"`
}

// File is a file stored on the server.
type File struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	ContentType string            `json:"content_type"`
	Size        int64             `json:"size"`
	ETag        string            `json:"etag"`
	Checksum    string            `json:"checksum"`
	Metadata    map[string]any    `json:"metadata"`
	CreatedAt   string            `json:"created_at"`
	ExpiresAt   string            `json:"expires_at"`
	URLs        map[string]string `json:"urls"`
}

// Progress is structured progress extracted from a job's log text. It is
// derived on demand and never cached.
type Progress struct {
	// Percentage is the fraction complete, in [0, 1].
	Percentage float64

	// Current and Total are the item counts from the progress bar.
	Current int
	Total   int
}
