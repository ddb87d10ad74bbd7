package async_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hebelmx/Veriqan-sub019/constants"
	"github.com/hebelmx/Veriqan-sub019/internal/async"
	"github.com/hebelmx/Veriqan-sub019/internal/docsource"
	"github.com/hebelmx/Veriqan-sub019/internal/ingest"
	"github.com/hebelmx/Veriqan-sub019/internal/pipeline"
)

type collector struct {
	mu   sync.Mutex
	jobs []async.Job
	errs []error
	res  []*pipeline.Result
}

func (c *collector) sink(job async.Job, res *pipeline.Result, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobs = append(c.jobs, job)
	c.res = append(c.res, res)
	c.errs = append(c.errs, err)
}

func inlineFiling(ref, expediente string) ingest.Filing {
	return ingest.Filing{
		Ref: ref,
		XML: docsource.Source{
			Kind:    constants.SourceXML,
			Content: []byte("<r><Expediente>" + expediente + "</Expediente><Causa>Fraude fiscal</Causa></r>"),
		},
	}
}

func TestPipelineQueue_ProcessesJobs(t *testing.T) {
	c := &collector{}
	q := async.NewPipelineQueue(nil, c.sink, nil, async.WithWorkers(2), async.WithQueueSize(8))

	require.NoError(t, q.Enqueue(context.Background(), async.Job{
		Filing:      inlineFiling("EXP-001", "EXP-001/2024"),
		SubmittedAt: time.Now(),
		TraceID:     "trace-1",
	}))
	require.NoError(t, q.Enqueue(context.Background(), async.Job{
		Filing:      inlineFiling("EXP-002", "EXP-002/2024"),
		SubmittedAt: time.Now(),
		TraceID:     "trace-2",
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	q.Shutdown(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	require.Len(t, c.jobs, 2)
	for i, err := range c.errs {
		require.NoError(t, err)
		require.NotNil(t, c.res[i])
		assert.Equal(t, 1, c.res[i].Merge.SourceCount)
		assert.NotEmpty(t, c.res[i].Merge.MergedFields.Expediente)
	}
}

func TestPipelineQueue_EnqueueAfterShutdownIsDropped(t *testing.T) {
	c := &collector{}
	q := async.NewPipelineQueue(nil, c.sink, nil, async.WithWorkers(1))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	q.Shutdown(ctx)
	q.Shutdown(ctx) // idempotent

	require.NoError(t, q.Enqueue(context.Background(), async.Job{Filing: inlineFiling("EXP-003", "X")}))

	c.mu.Lock()
	defer c.mu.Unlock()
	assert.Empty(t, c.jobs)
}
