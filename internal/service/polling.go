package service

import (
	"context"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v4"

	"forage/internal/api"
	"forage/model"
)

// Poll tuning defaults. Ten one-second attempts covers the processor's
// normal async completion window.
const (
	DefaultPollInterval    = time.Second
	DefaultPollMaxAttempts = 10
)

// PollConfig bounds the message polling loop. Zero values take the defaults.
type PollConfig struct {
	Interval    time.Duration
	MaxAttempts int
}

func (c PollConfig) withDefaults() PollConfig {
	if c.Interval <= 0 {
		c.Interval = DefaultPollInterval
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultPollMaxAttempts
	}
	return c
}

var errStillPending = errors.New("message still pending")

// pollMessage re-fetches the async job message at a constant interval until
// it reaches a terminal state or the attempt budget runs out. A job that
// outlives the budget fails with the poll-timeout kind; the processor may
// still complete it server-side.
func (s *Service) pollMessage(ctx context.Context, auth api.Auth, contentID string) (*model.Message, error) {
	cfg := s.poll.withDefaults()

	var msg model.Message
	attempt := func() error {
		if err := s.provider.Execute(ctx, api.Message(s.env, auth, contentID), &msg); err != nil {
			return backoff.Permanent(err)
		}
		if msg.Failed {
			return backoff.Permanent(msg.Err())
		}
		if msg.Pending() {
			return errStillPending
		}
		return nil
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(cfg.Interval), uint64(cfg.MaxAttempts-1)),
		ctx,
	)
	if err := backoff.Retry(attempt, b); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if errors.Is(err, errStillPending) {
			return nil, model.ErrPollTimeout
		}
		return nil, err
	}
	return &msg, nil
}
