package augur

import "context"

// Wait blocks until the prediction reaches a terminal state, polling at the
// client's poll interval. The terminal status check happens before each
// sleep, so a job already observed terminal is never polled again. The only
// exits besides a terminal status are context cancellation and a transport
// error.
func (c *Client) Wait(ctx context.Context, p *Prediction) error {
	for !p.Status.Terminal() {
		if err := sleep(ctx, c.pollInterval); err != nil {
			return err
		}
		if err := c.Predictions.Reload(ctx, p); err != nil {
			return err
		}
		c.log.WithField("prediction", p.ID).WithField("status", p.Status).Debug("polled")
	}
	return nil
}

// WaitTraining blocks until the training reaches a terminal state. It runs
// the same loop as Wait against the trainings endpoint.
func (c *Client) WaitTraining(ctx context.Context, t *Training) error {
	for !t.Status.Terminal() {
		if err := sleep(ctx, c.pollInterval); err != nil {
			return err
		}
		if err := c.Trainings.Reload(ctx, t); err != nil {
			return err
		}
		c.log.WithField("training", t.ID).WithField("status", t.Status).Debug("polled")
	}
	return nil
}

// WaitResult is delivered by WaitAsync when the wait finishes.
type WaitResult struct {
	Prediction *Prediction
	Err        error
}

// WaitAsync runs Wait on its own goroutine and delivers the result over a
// channel, so many jobs can resolve concurrently without blocking their
// callers. Abandoning the channel after canceling ctx releases the loop;
// the remote job keeps running unless Cancel is called explicitly.
func (c *Client) WaitAsync(ctx context.Context, p *Prediction) <-chan WaitResult {
	ch := make(chan WaitResult, 1)
	go func() {
		defer close(ch)
		err := c.Wait(ctx, p)
		ch <- WaitResult{Prediction: p, Err: err}
	}()
	return ch
}
