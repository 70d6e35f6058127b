package mongo

import (
	"context"
	"sync"
)

// readyOnce runs a setup step until it first succeeds; later calls are no-ops.
type readyOnce struct {
	mu   sync.Mutex
	done bool
}

func (o *readyOnce) Do(ctx context.Context, fn func(context.Context) error) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.done {
		return nil
	}
	if err := fn(ctx); err != nil {
		return err
	}
	o.done = true
	return nil
}
