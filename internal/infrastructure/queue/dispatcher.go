package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/talentgate/jobboard/internal/api/metrics"
	"github.com/talentgate/jobboard/internal/core/domain"
	"github.com/talentgate/jobboard/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// AuditDispatcher writes audit entries off the request path. Entries are
// sharded by resource id so the entries for one resource are written in the
// order they were recorded.
type AuditDispatcher struct {
	workers []chan domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewAuditDispatcher creates a dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditDispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &AuditDispatcher{
		workers: make([]chan domain.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return d
}

// Start launches the workers. Writes use ctx's values but outlive its
// cancellation so that Stop can drain what was already accepted.
func (d *AuditDispatcher) Start(ctx context.Context) {
	writeCtx := context.WithoutCancel(ctx)
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(writeCtx, i, ch)
	}
}

// Record enqueues e without blocking. When the shard is full, or the
// dispatcher is stopped, the entry is dropped and counted.
func (d *AuditDispatcher) Record(e domain.AuditEntry) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.drop(e, "stopped")
		return
	}

	idx := d.shardIndex(e.ResourceID)
	select {
	case d.workers[idx] <- e:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
	default:
		d.drop(e, "queue_full")
	}
}

// Stop refuses new entries, waits for queued ones to be written, and returns.
func (d *AuditDispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()

	d.wg.Wait()
}

// shardIndex maps a resource id deterministically to a worker index.
func (d *AuditDispatcher) shardIndex(resourceID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(resourceID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *AuditDispatcher) drop(e domain.AuditEntry, reason string) {
	metrics.AuditDroppedTotal.WithLabelValues(reason).Inc()
	d.log.Warn().
		Str("action", string(e.Action)).
		Str("resource_id", e.ResourceID).
		Str("reason", reason).
		Msg("audit entry dropped")
}

func (d *AuditDispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	defer d.wg.Done()
	label := strconv.Itoa(id)

	for e := range ch {
		metrics.AuditQueueDepth.WithLabelValues(label).Set(float64(len(ch)))
		if err := d.repo.Insert(ctx, &e); err != nil {
			metrics.AuditWriteErrorsTotal.Inc()
			d.log.Error().Err(err).
				Str("action", string(e.Action)).
				Str("resource_id", e.ResourceID).
				Int("worker_id", id).
				Msg("audit write failed")
		}
	}
}
