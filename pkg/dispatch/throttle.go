package dispatch

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// SleepFunc pauses for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// throttle paces successive recipients: a fixed delay plus an optional rate cap.
type throttle struct {
	limiter *rate.Limiter
	sleep   SleepFunc
	delay   time.Duration
}

func newThrottle(delay time.Duration, perSecond float64, sleep SleepFunc) *throttle {
	t := &throttle{delay: delay, sleep: sleep}
	if t.sleep == nil {
		t.sleep = sleepContext
	}
	if perSecond > 0 {
		t.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
	return t
}

// start consumes the limiter token for the first recipient, which is never throttled.
func (t *throttle) start() {
	if t.limiter != nil {
		t.limiter.Allow()
	}
}

func (t *throttle) wait(ctx context.Context) error {
	if t.delay > 0 {
		if err := t.sleep(ctx, t.delay); err != nil {
			return err
		}
	}
	if t.limiter != nil {
		return t.limiter.Wait(ctx)
	}
	return ctx.Err()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
