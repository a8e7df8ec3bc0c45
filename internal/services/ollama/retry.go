package ollama

import (
	"context"
	"errors"

	"github.com/cenkalti/backoff/v4"
)

// execute drives send up to MaxAttempts times. Connection and timeout
// failures wait RetryBackoff and try again; everything else is returned
// as soon as it happens. When the attempts run out the last transport
// failure is converted into a ConnectionFailure or TimeoutFailure.
func (c *Client) execute(ctx context.Context, build func() Request) (Reply, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	attempts := c.cfg.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.cfg.RetryBackoff), uint64(attempts-1)),
		ctx,
	)

	var (
		reply Reply
		tries int
	)
	operation := func() error {
		tries++
		r, err := c.send(ctx, build())
		if err == nil {
			reply = r
			return nil
		}
		var transportErr *TransportError
		if errors.As(err, &transportErr) && transportErr.Retryable() {
			return err
		}
		return backoff.Permanent(err)
	}

	var timer backoff.Timer
	if c.newTimer != nil {
		timer = c.newTimer()
	}
	err := backoff.RetryNotifyWithTimer(operation, policy, nil, timer)
	if err == nil {
		return reply, nil
	}
	return Reply{}, c.terminalError(err, tries)
}

func (c *Client) terminalError(err error, tries int) error {
	var transportErr *TransportError
	if !errors.As(err, &transportErr) {
		return err
	}
	switch transportErr.Kind {
	case KindConnectionRefused:
		return &ConnectionFailure{BaseURL: c.cfg.BaseURL, Attempts: tries, Err: err}
	case KindTimeout:
		return &TimeoutFailure{Timeout: c.cfg.Timeout, Attempts: tries, Err: err}
	default:
		return err
	}
}
