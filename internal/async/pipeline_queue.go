package async

import (
	"context"
	"sync"
	"time"

	"log/slog"

	"github.com/hebelmx/Veriqan-sub019/internal/common"
	"github.com/hebelmx/Veriqan-sub019/internal/entity"
	"github.com/hebelmx/Veriqan-sub019/internal/pipeline"
)

// Sink receives each finished job. res is nil when err is non-nil. Called
// from worker goroutines; implementations synchronize their own state.
type Sink func(job Job, res *pipeline.Result, err error)

type PipelineQueue struct {
	proc    *pipeline.Processor
	sink    Sink
	logger  *slog.Logger
	workers int
	timeout time.Duration

	ch   chan Job
	wg   sync.WaitGroup
	once sync.Once

	mu     sync.Mutex
	closed bool
}

type Option func(*PipelineQueue)

func WithWorkers(n int) Option {
	return func(q *PipelineQueue) {
		if n > 0 {
			q.workers = n
		}
	}
}
func WithQueueSize(n int) Option {
	return func(q *PipelineQueue) {
		if n > 0 {
			q.ch = make(chan Job, n)
		}
	}
}
func WithProcessTimeout(d time.Duration) Option {
	return func(q *PipelineQueue) {
		if d > 0 {
			q.timeout = d
		}
	}
}

func NewPipelineQueue(proc *pipeline.Processor, sink Sink, logger *slog.Logger, opts ...Option) *PipelineQueue {
	if logger == nil {
		logger = slog.Default()
	}
	if proc == nil {
		proc = pipeline.NewProcessor(logger, nil, nil, nil)
	}
	q := &PipelineQueue{
		proc:    proc,
		sink:    sink,
		logger:  logger,
		workers: 4,
		timeout: 2 * time.Minute,
		ch:      make(chan Job, 256),
	}
	for _, o := range opts {
		o(q)
	}
	q.start()
	return q
}

func (q *PipelineQueue) start() {
	q.once.Do(func() {
		for i := 0; i < q.workers; i++ {
			q.wg.Add(1)
			go func(workerID int) {
				defer q.wg.Done()
				q.logger.Info("async.worker.started", "worker_id", workerID)

				for job := range q.ch {
					defs := job.Defs
					if defs == nil {
						defs = entity.DefaultFieldDefinitions()
					}
					ctx, cancel := context.WithTimeout(context.Background(), q.timeout)
					ctx = common.WithRequestID(ctx, job.TraceID)
					res, err := q.proc.Process(ctx, job.Filing.XML, job.Filing.OCR, job.Filing.Docx, defs)
					cancel()

					if err != nil {
						q.logger.Error("async.job.failed",
							"worker_id", workerID,
							"ref", job.Filing.Ref,
							"request_id", common.RequestIDFromContext(ctx),
							"error", err,
						)
					} else {
						q.logger.Info("async.job.ok",
							"worker_id", workerID,
							"ref", job.Filing.Ref,
							"job_id", res.JobID,
							"fields", len(res.Merge.MergedFieldNames),
							"conflicts", len(res.Merge.Conflicts),
						)
					}
					if q.sink != nil {
						q.sink(job, res, err)
					}
				}

				q.logger.Info("async.worker.stopped", "worker_id", workerID)
			}(i + 1)
		}
	})
}

func (q *PipelineQueue) Enqueue(_ context.Context, job Job) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Warn("async.enqueue.rejected", "ref", job.Filing.Ref)
		return nil
	}
	select {
	case q.ch <- job:
		q.logger.Info("async.enqueue.ok", "ref", job.Filing.Ref)
	default:
		q.logger.Warn("async.enqueue.backpressure", "ref", job.Filing.Ref)
		q.ch <- job
	}
	return nil
}

func (q *PipelineQueue) Shutdown(ctx context.Context) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.ch)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() { defer close(done); q.wg.Wait() }()

	select {
	case <-ctx.Done():
		q.logger.Warn("async.shutdown.interrupted")
	case <-done:
		q.logger.Info("async.shutdown.drained")
	}
}
