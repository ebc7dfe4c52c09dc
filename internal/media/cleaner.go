// Package media runs background maintenance for remotely stored assets.
package media

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ObjectDeleter removes a single remote asset by its key.
type ObjectDeleter interface {
	Delete(ctx context.Context, key string) error
}

// CleanerConfig controls the concurrency characteristics of the cleaner.
type CleanerConfig struct {
	QueueSize int
	Workers   int
}

// Cleaner deletes superseded or orphaned remote assets best-effort in the
// background, so request handlers never wait on provider round-trips for
// objects nothing references anymore.
type Cleaner struct {
	deleter ObjectDeleter
	logger  *slog.Logger

	jobs chan string
	wg   sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

var errCleanerClosed = errors.New("media cleaner closed")

// NewCleaner constructs a background worker pool that deletes remote assets.
func NewCleaner(deleter ObjectDeleter, cfg CleanerConfig, logger *slog.Logger) *Cleaner {
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}

	c := &Cleaner{
		deleter: deleter,
		logger:  logger,
		jobs:    make(chan string, cfg.QueueSize),
	}

	c.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go c.worker()
	}

	return c
}

// Enqueue schedules deletion of the remote object with the provided key.
// Blank keys are ignored.
func (c *Cleaner) Enqueue(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	// The read lock holds the channel open against a concurrent Shutdown.
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errCleanerClosed
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case c.jobs <- key:
		return nil
	}
}

// Shutdown waits for the worker pool to drain outstanding deletions.
func (c *Cleaner) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	if !c.closed {
		c.closed = true
		close(c.jobs)
	}
	c.mu.Unlock()

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

func (c *Cleaner) worker() {
	defer c.wg.Done()

	for key := range c.jobs {
		c.deleteObject(key)
	}
}

func (c *Cleaner) deleteObject(key string) {
	if c.deleter == nil {
		c.logger.Error("media cleaner missing deleter", "key", key)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := c.deleter.Delete(ctx, key); err != nil {
		c.logger.Error("delete remote asset", "key", key, "error", err)
	}
}
