package utils

import (
	"context"
	"time"
)

// Retry runs fn up to attempts times, doubling the wait between tries
// starting from base. The last error is returned if every attempt fails.
// Context cancellation stops the loop early.
func Retry(ctx context.Context, attempts int, base time.Duration, fn func() error) error {
	var err error
	wait := base

	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
		wait *= 2
	}

	return err
}
