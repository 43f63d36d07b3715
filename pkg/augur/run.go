package augur

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/semaphore"
)

// Run executes a model end-to-end: it resolves ref ("owner/name" or
// "owner/name:version") to a version, creates a prediction, and returns its
// output.
//
// For versions with an array-typed output schema the return value is an
// *OutputIterator, handed back immediately while the job may still be
// starting. For every other schema (including missing or malformed ones)
// Run waits for a terminal state and returns the output once; a failed job
// becomes a ModelError.
func (c *Client) Run(ctx context.Context, ref string, input map[string]any, opts *PredictionOptions) (any, error) {
	version, err := c.resolveVersion(ctx, ref)
	if err != nil {
		return nil, err
	}

	p, err := c.Predictions.Create(ctx, version.ID, input, opts)
	if err != nil {
		return nil, err
	}
	p.Version = version

	if version.OutputIsIterable() {
		return c.OutputIterator(p), nil
	}

	if err := c.Wait(ctx, p); err != nil {
		return nil, err
	}
	if p.Status == StatusFailed {
		return nil, &ModelError{Message: p.Error}
	}
	return p.Output, nil
}

// resolveVersion turns a model reference into a Version record, fetching
// the model's latest version when the reference does not pin one.
func (c *Client) resolveVersion(ctx context.Context, ref string) (*Version, error) {
	id, err := ParseIdentifier(ref)
	if err != nil {
		return nil, err
	}

	if id.Version != "" {
		return c.Models.Version(ctx, id.Owner, id.Name, id.Version)
	}

	model, err := c.Models.Get(ctx, id.Owner+"/"+id.Name)
	if err != nil {
		return nil, err
	}
	if model.LatestVersion == nil {
		return nil, &ValidationError{Message: fmt.Sprintf("model %s has no versions", ref)}
	}
	return model.LatestVersion, nil
}

// RunBatch runs the same model over several inputs with at most
// maxConcurrent predictions resolving at a time. Results are returned in
// input order; failed runs leave a nil result and their errors are joined.
func (c *Client) RunBatch(ctx context.Context, ref string, inputs []map[string]any, maxConcurrent int64, opts *PredictionOptions) ([]any, error) {
	if maxConcurrent <= 0 {
		maxConcurrent = 1
	}

	sem := semaphore.NewWeighted(maxConcurrent)
	results := make([]any, len(inputs))
	errs := make([]error, len(inputs))

	var wg sync.WaitGroup
	for i, input := range inputs {
		if err := sem.Acquire(ctx, 1); err != nil {
			errs[i] = err
			break
		}

		wg.Add(1)
		go func(i int, input map[string]any) {
			defer wg.Done()
			defer sem.Release(1)
			results[i], errs[i] = c.Run(ctx, ref, input, opts)
		}(i, input)
	}
	wg.Wait()

	return results, errors.Join(errs...)
}
