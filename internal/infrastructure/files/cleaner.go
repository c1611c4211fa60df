package files

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/miniblog/blog-api/internal/api/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Cleaner performs best-effort asynchronous local file deletions. Paths are
// routed to a fixed set of workers by consistent hashing on the path, so
// deletes targeting the same file never race each other. Failures are
// counted and logged, never propagated.
type Cleaner struct {
	workers []chan string
	manager *Manager
	log     zerolog.Logger
}

// NewCleaner creates a Cleaner with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewCleaner(numWorkers int, manager *Manager, log zerolog.Logger) *Cleaner {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	c := &Cleaner{
		workers: make([]chan string, numWorkers),
		manager: manager,
		log:     log,
	}
	for i := range c.workers {
		c.workers[i] = make(chan string, channelBuffer)
	}
	return c
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (c *Cleaner) Start(ctx context.Context) {
	for i, ch := range c.workers {
		go c.runWorker(ctx, i, ch)
	}
}

// Enqueue schedules a delete. Non-blocking up to channelBuffer capacity.
func (c *Cleaner) Enqueue(path string) {
	c.workers[c.shardIndex(path)] <- path
}

// shardIndex maps a path deterministically to a worker index.
func (c *Cleaner) shardIndex(path string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(path))
	return int(h.Sum32()) % len(c.workers)
}

func (c *Cleaner) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-ch:
			if !ok {
				return
			}
			if err := c.manager.DeleteLocal(path); err != nil {
				metrics.CleanupDeletesTotal.WithLabelValues("error").Inc()
				c.log.Warn().Err(err).
					Str("path", path).
					Int("worker_id", id).
					Msg("best-effort file cleanup failed")
				continue
			}
			metrics.CleanupDeletesTotal.WithLabelValues("ok").Inc()
		}
	}
}
