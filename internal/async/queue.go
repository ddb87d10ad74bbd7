// Package async runs filing reconciliations on a bounded worker pool so a
// directory scan or watcher can enqueue faster than the pipeline processes.
package async

import (
	"context"
	"time"

	"github.com/hebelmx/Veriqan-sub019/internal/entity"
	"github.com/hebelmx/Veriqan-sub019/internal/ingest"
)

// Job is one requirement filing queued for reconciliation. Extend as needed
// later (retry, priority, etc).
type Job struct {
	Filing      ingest.Filing
	Defs        []entity.FieldDefinition // nil -> the default definitions
	SubmittedAt time.Time
	TraceID     string
}

type Queue interface {
	Enqueue(ctx context.Context, job Job) error
	Shutdown(ctx context.Context)
}
