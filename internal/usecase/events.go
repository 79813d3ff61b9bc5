package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/nfl-insights/internal/platform/logging"
)

const (
	JobSync   = "sync"
	JobRank   = "rank"
	JobExport = "export"
)

// CommitEvent is published once a job's transaction has committed.
type CommitEvent struct {
	Job         string
	Results     []BatchResult
	CommittedAt time.Time
}

// CommitListener reacts to committed writes, e.g. by invalidating caches.
// Listener errors never undo the commit.
type CommitListener interface {
	OnCommit(ctx context.Context, event CommitEvent) error
}

type CommitListenerFunc func(ctx context.Context, event CommitEvent) error

func (f CommitListenerFunc) OnCommit(ctx context.Context, event CommitEvent) error {
	return f(ctx, event)
}

// Recorder receives job metrics.
type Recorder interface {
	ObserveBatch(result BatchResult)
	ObserveRun(job string, elapsed time.Duration, err error)
}

type noopRecorder struct{}

func (noopRecorder) ObserveBatch(BatchResult)                {}
func (noopRecorder) ObserveRun(string, time.Duration, error) {}

func publishCommit(ctx context.Context, logger *logging.Logger, listeners []CommitListener, event CommitEvent) {
	for _, listener := range listeners {
		if listener == nil {
			continue
		}
		if err := listener.OnCommit(ctx, event); err != nil {
			logger.WarnContext(ctx, "commit listener failed", "job", event.Job, "error", err)
		}
	}
}
