package augur

import "context"

// OutputIterator consumes a prediction's array-typed output as it grows.
// The sequence is lazy, finite, and not restartable: each element is
// yielded exactly once, in arrival order, even when successive polls return
// overlapping views of the output.
type OutputIterator struct {
	client *Client
	p      *Prediction

	// prev is the length of the output already yielded; the suffix past
	// it is new.
	prev    int
	pending []any
}

// OutputIterator returns an iterator over the prediction's incremental
// output. Use it for versions whose output schema is array-typed (see
// Version.OutputIsIterable).
func (c *Client) OutputIterator(p *Prediction) *OutputIterator {
	return &OutputIterator{client: c, p: p}
}

// Next returns the next output element, polling the prediction until one
// appears or the job settles. It returns ErrDone when the sequence is
// complete, or a ModelError if the job failed; any elements that arrived
// before the failure are yielded first.
func (it *OutputIterator) Next(ctx context.Context) (any, error) {
	for {
		if len(it.pending) > 0 {
			v := it.pending[0]
			it.pending = it.pending[1:]
			return v, nil
		}

		out := outputList(it.p.Output)
		if len(out) > it.prev {
			it.pending = append(it.pending, out[it.prev:]...)
			it.prev = len(out)
			continue
		}

		if it.p.Status.Terminal() {
			if it.p.Status == StatusFailed {
				return nil, &ModelError{Message: it.p.Error}
			}
			return nil, ErrDone
		}

		if err := sleep(ctx, it.client.pollInterval); err != nil {
			return nil, err
		}
		if err := it.client.Predictions.Reload(ctx, it.p); err != nil {
			return nil, err
		}
	}
}

// Channel runs the iterator on a goroutine and delivers elements over a
// channel. The output channel closes when the sequence ends; a failure or
// cancellation is delivered on the error channel first.
func (it *OutputIterator) Channel(ctx context.Context) (<-chan any, <-chan error) {
	outc := make(chan any)
	errc := make(chan error, 1)

	go func() {
		defer close(outc)
		for {
			v, err := it.Next(ctx)
			if err == ErrDone {
				return
			}
			if err != nil {
				errc <- err
				return
			}
			select {
			case outc <- v:
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
	}()

	return outc, errc
}

// outputList views a prediction output as a list. Absent output is an
// empty list; a non-list output means the caller picked the wrong
// consumption mode and yields nothing rather than panicking.
func outputList(output any) []any {
	if output == nil {
		return nil
	}
	list, ok := output.([]any)
	if !ok {
		return nil
	}
	return list
}
