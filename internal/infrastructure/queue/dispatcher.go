package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/echallan/enforcement-platform/internal/api/metrics"
	"github.com/echallan/enforcement-platform/internal/core/domain"
	"github.com/echallan/enforcement-platform/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// Dispatcher routes detections to a fixed set of workers using consistent
// hashing on the plate number, guaranteeing per-vehicle processing order.
type Dispatcher struct {
	workers []chan domain.Detection
	service ports.DetectionService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.DetectionService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.Detection, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.Detection, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a detection to the worker responsible for its plate.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event domain.Detection) {
	idx := d.shardIndex(event.PlateNumber)
	d.workers[idx] <- event
	metrics.DetectionsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// EnqueueBatch enqueues multiple detections preserving per-vehicle ordering.
func (d *Dispatcher) EnqueueBatch(events []domain.Detection) {
	for _, e := range events {
		d.Enqueue(e)
	}
}

// shardIndex maps a plate number deterministically to a worker index.
func (d *Dispatcher) shardIndex(plate string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(plate))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.Detection) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			metrics.DetectionsQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err := d.service.Process(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("plate", event.PlateNumber).
					Str("camera_id", event.CameraID).
					Int("worker_id", id).
					Msg("detection processing failed")
			}
		}
	}
}
