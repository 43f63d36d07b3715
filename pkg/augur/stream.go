package augur

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/user/augur/pkg/sse"
)

// Recognized stream event types. Servers may emit additional custom types;
// the decoder passes them through unchanged.
const (
	EventOutput = "output"
	EventLogs   = "logs"
	EventError  = "error"
	EventDone   = "done"
)

// Stream runs a model and streams its output live as server-sent events.
// It creates a streaming-enabled prediction and attaches to its stream URL.
func (c *Client) Stream(ctx context.Context, ref string, input map[string]any, opts *PredictionOptions) (<-chan sse.Event, <-chan error, error) {
	version, err := c.resolveVersion(ctx, ref)
	if err != nil {
		return nil, nil, err
	}

	streamOpts := PredictionOptions{Stream: true}
	if opts != nil {
		streamOpts = *opts
		streamOpts.Stream = true
	}

	p, err := c.Predictions.Create(ctx, version.ID, input, &streamOpts)
	if err != nil {
		return nil, nil, err
	}
	p.Version = version

	return c.StreamPrediction(ctx, p)
}

// StreamPrediction attaches to the prediction's stream endpoint and decodes
// it into discrete events, delivered strictly in arrival order. The event
// channel closes when the server sends a done event or the stream ends,
// whichever comes first; error events and transport failures arrive on the
// error channel. The sequence is not restartable.
func (c *Client) StreamPrediction(ctx context.Context, p *Prediction) (<-chan sse.Event, <-chan error, error) {
	streamURL := p.URLs["stream"]
	if streamURL == "" {
		return nil, nil, &ValidationError{Message: "prediction has no stream URL; create it with the Stream option"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, streamURL, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-store")
	req.Header.Set("X-Request-ID", uuid.NewString())

	// The streaming transport bypasses the retry policy and the client
	// timeout: the connection is expected to stay open for the life of
	// the job.
	transport := c.httpClient.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	resp, err := transport.RoundTrip(req)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to stream: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, nil, &APIError{StatusCode: resp.StatusCode, Detail: errorDetail(body), Body: body}
	}

	events := make(chan sse.Event)
	errc := make(chan error, 1)

	go func() {
		defer close(events)
		defer resp.Body.Close()

		decoder := sse.NewDecoder(resp.Body)
		for {
			ev, err := decoder.Next()
			if err == io.EOF {
				return
			}
			if err != nil {
				errc <- fmt.Errorf("decoding stream: %w", err)
				return
			}

			if ev.Type == EventError {
				errc <- &ModelError{Message: ev.Data}
				return
			}

			select {
			case events <- ev:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}

			if ev.Type == EventDone {
				return
			}
		}
	}()

	return events, errc, nil
}
