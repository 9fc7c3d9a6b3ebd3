package history

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"veritor-hq/veritor/pkg/policy"
)

// RecorderConfig contains configuration for the async recorder.
type RecorderConfig struct {
	// Buffer is the size of the pending-write channel.
	// Default: 1000
	Buffer int

	// WriteTimeout bounds each storage write.
	// Default: 5 seconds
	WriteTimeout time.Duration
}

// DefaultRecorderConfig returns the default recorder configuration.
func DefaultRecorderConfig() *RecorderConfig {
	return &RecorderConfig{
		Buffer:       1000,
		WriteTimeout: 5 * time.Second,
	}
}

// Recorder writes evaluation records to storage asynchronously so
// evaluation passes never block on persistence. A full buffer drops the
// record and counts the drop rather than blocking.
type Recorder struct {
	storage Storage
	config  *RecorderConfig
	logger  *slog.Logger

	pending chan *Record
	done    chan struct{}
	wg      sync.WaitGroup
	dropped atomic.Int64

	closeOnce sync.Once
}

// NewRecorder creates a recorder around a storage backend and starts its
// background writer.
func NewRecorder(storage Storage, config *RecorderConfig, logger *slog.Logger) *Recorder {
	if config == nil {
		config = DefaultRecorderConfig()
	}
	if logger == nil {
		logger = slog.Default()
	}

	r := &Recorder{
		storage: storage,
		config:  config,
		logger:  logger.With("component", "history.recorder"),
		pending: make(chan *Record, config.Buffer),
		done:    make(chan struct{}),
	}

	r.wg.Add(1)
	go r.worker()

	r.logger.Info("history recorder started",
		"buffer", config.Buffer,
		"write_timeout", config.WriteTimeout,
	)
	return r
}

// Record converts a batch to a record and enqueues it. The score fields
// are attached when system is non-empty. Returns immediately.
func (r *Recorder) Record(batch *policy.ResultBatch, score float64, system string) {
	rec := FromBatch(batch)
	if system != "" {
		rec.Score = score
		rec.ScoreSystem = system
	}
	r.enqueue(rec)
}

func (r *Recorder) enqueue(rec *Record) {
	select {
	case r.pending <- rec:
	default:
		r.dropped.Add(1)
		r.logger.Warn("history record dropped, buffer full",
			"batch_id", rec.ID,
			"dropped_total", r.dropped.Load(),
		)
	}
}

// Dropped returns the number of records dropped due to a full buffer.
func (r *Recorder) Dropped() int64 {
	return r.dropped.Load()
}

func (r *Recorder) worker() {
	defer r.wg.Done()
	for {
		select {
		case rec := <-r.pending:
			r.write(rec)
		case <-r.done:
			// Drain what is already queued before exiting.
			for {
				select {
				case rec := <-r.pending:
					r.write(rec)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) write(rec *Record) {
	ctx, cancel := context.WithTimeout(context.Background(), r.config.WriteTimeout)
	defer cancel()

	rec.RecordedAt = time.Now().UTC()
	if err := r.storage.Store(ctx, rec); err != nil {
		r.logger.Error("failed to persist history record",
			"batch_id", rec.ID,
			"error", err,
		)
		return
	}
	r.logger.Debug("history record persisted",
		"batch_id", rec.ID,
		"profile_id", rec.ProfileID,
		"rule_count", rec.RuleCount,
	)
}

// Close stops the recorder, flushing queued records first. It does not
// close the underlying storage.
func (r *Recorder) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
		r.wg.Wait()
	})
}
